package cli

import (
	"context"

	"github.com/savoirtech/ctop/internal/errors"
	"github.com/savoirtech/ctop/internal/logger"
	"github.com/savoirtech/ctop/internal/routing"
)

// buildRuntime creates the in-process routing runtime from the demo
// topology, or from the topology file at path when one is given. Route
// entries are registered under domain.
func buildRuntime(path, domain string) (*routing.Runtime, *routing.Topology, error) {
	topo := routing.DefaultTopology()
	if path != "" {
		loaded, err := routing.LoadTopology(path)
		if err != nil {
			return nil, nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to load workload topology",
				"Check the file exists and is valid YAML: "+path)
		}
		topo = loaded
	}

	rt := routing.NewRuntime(nil)
	if err := topo.Build(rt, routing.WithDomain(domain)); err != nil {
		rt.Shutdown()
		return nil, nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid workload topology",
			"Check the contexts and routes declared in the topology")
	}
	return rt, topo, nil
}

// startWorkload drives the topology's routes in the background until ctx
// is cancelled or the returned stop function is called. stop returns once
// no route is sending any more, so it must run before rt.Shutdown.
func startWorkload(ctx context.Context, rt *routing.Runtime, topo *routing.Topology, log logger.Logger, opts ...routing.WorkloadOption) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := routing.NewWorkload(rt, topo, opts...).Run(ctx); err != nil {
			log.Warn("workload stopped: %v", err)
		}
	}()
	return func() {
		cancel()
		<-done
	}
}
