package monitor

import (
	"context"
	stderrors "errors"
	"math"

	"github.com/savoirtech/ctop/internal/config"
	"github.com/savoirtech/ctop/internal/errors"
	"github.com/savoirtech/ctop/internal/logger"
	"github.com/savoirtech/ctop/internal/mgmt"
)

// Management attribute holding the name of the context that owns a route.
const contextIDAttribute = "ContextId"

// Collector reads route counters from the management registry, one query
// per route per cycle. It keeps no state between calls.
type Collector struct {
	mgmt   Introspector
	domain string
	log    logger.Logger
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithDomain sets the management domain routes are registered under.
func WithDomain(domain string) CollectorOption {
	return func(c *Collector) {
		if domain != "" {
			c.domain = domain
		}
	}
}

// WithCollectorLogger sets the logger used for exclusion diagnostics.
func WithCollectorLogger(l logger.Logger) CollectorOption {
	return func(c *Collector) {
		if l != nil {
			c.log = l
		}
	}
}

// NewCollector creates a collector reading from introspector.
func NewCollector(introspector Introspector, opts ...CollectorOption) *Collector {
	c := &Collector{
		mgmt:   introspector,
		domain: config.DefaultDomain,
		log:    logger.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Domain returns the management domain the collector queries.
func (c *Collector) Domain() string {
	return c.domain
}

// Collect builds the sample set of every route of handle whose counters
// could all be read. Routes with a missing, duplicate or foreign management
// entry, or with any unreadable counter, are left out of this cycle.
// An error is returned only when the registry itself is unreachable.
func (c *Collector) Collect(ctx context.Context, handle Context) (SampleSet, error) {
	if c.mgmt == nil {
		return nil, errors.New(errors.ErrCollect,
			"Management registry unavailable",
			"The host has not exposed a registry for this context")
	}

	ids := handle.RouteIDs()
	samples := make(SampleSet, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sample, ok, err := c.collectRoute(handle.Name(), id)
		if err != nil {
			return nil, err
		}
		if ok {
			samples = append(samples, sample)
		}
	}
	return samples, nil
}

// collectRoute reads one route. ok is false when the route must be excluded.
func (c *Collector) collectRoute(contextName, id string) (MetricSample, bool, error) {
	pattern := mgmt.NewObjectName(c.domain, map[string]string{
		"type": "routes",
		"name": id,
	})

	names, err := c.mgmt.Query(pattern)
	if err != nil {
		if unreachable(err) {
			return MetricSample{}, false, unavailable(err)
		}
		c.log.Debug("route %s: query failed: %v", id, err)
		return MetricSample{}, false, nil
	}
	if len(names) != 1 {
		c.log.Debug("route %s: expected one management entry, found %d", id, len(names))
		return MetricSample{}, false, nil
	}
	name := names[0]

	owner, err := c.mgmt.GetAttribute(name, contextIDAttribute)
	if err != nil {
		if unreachable(err) {
			return MetricSample{}, false, unavailable(err)
		}
		c.log.Debug("route %s: %s unreadable: %v", id, contextIDAttribute, err)
		return MetricSample{}, false, nil
	}
	if s, ok := owner.(string); !ok || s != contextName {
		c.log.Debug("route %s: entry %s belongs to %v, not %s", id, name, owner, contextName)
		return MetricSample{}, false, nil
	}

	sample := MetricSample{ID: id}
	for _, col := range config.Columns() {
		raw, err := c.mgmt.GetAttribute(name, col.String())
		if err != nil {
			if unreachable(err) {
				return MetricSample{}, false, unavailable(err)
			}
			c.log.Debug("route %s: %s unreadable: %v", id, col, err)
			return MetricSample{}, false, nil
		}
		v, ok := toCounter(raw)
		if !ok {
			c.log.Debug("route %s: %s has unusable value %v (%T)", id, col, raw, raw)
			return MetricSample{}, false, nil
		}
		*sample.field(col) = v
	}
	return sample, true, nil
}

func unreachable(err error) bool {
	return stderrors.Is(err, mgmt.ErrUnavailable)
}

func unavailable(err error) error {
	return errors.WrapWithCode(err, errors.ErrCollect,
		"Management registry unavailable",
		"The cycle is skipped and retried on the next refresh")
}

// toCounter converts an attribute value to a non-negative counter.
func toCounter(v any) (int64, bool) {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	case uint32:
		n = int64(x)
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}
		n = int64(x)
	default:
		return 0, false
	}
	if n < 0 {
		return 0, false
	}
	return n, true
}
