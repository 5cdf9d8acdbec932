package routing

import (
	"context"
	"time"

	"github.com/savoirtech/ctop/internal/mgmt"
)

// Route is one message-routing pipeline inside a Context.
type Route struct {
	id      string
	ctxName string
	stats   Stats
	now     func() time.Time
	mbean   mgmt.ObjectName
}

// ID returns the route id.
func (r *Route) ID() string {
	return r.id
}

// Stats returns the live counters of the route.
func (r *Route) Stats() *Stats {
	return &r.stats
}

// ManagementName returns the name the route is registered under.
func (r *Route) ManagementName() mgmt.ObjectName {
	return r.mbean
}

// Process runs fn as one exchange and records its duration and outcome.
func (r *Route) Process(ctx context.Context, fn func(context.Context) error) error {
	start := r.now()
	err := fn(ctx)
	r.stats.Record(r.now().Sub(start), err != nil)
	return err
}

// attributes builds the management view of the route.
func (r *Route) attributes(state func() string) mgmt.Attributes {
	s := &r.stats
	return mgmt.Attributes{
		"ExchangesTotal":      func() any { return s.ExchangesTotal() },
		"ExchangesCompleted":  func() any { return s.ExchangesCompleted() },
		"ExchangesFailed":     func() any { return s.ExchangesFailed() },
		"MinProcessingTime":   func() any { return s.MinProcessingTime() },
		"MaxProcessingTime":   func() any { return s.MaxProcessingTime() },
		"MeanProcessingTime":  func() any { return s.MeanProcessingTime() },
		"TotalProcessingTime": func() any { return s.TotalProcessingTime() },
		"LastProcessingTime":  func() any { return s.LastProcessingTime() },
		"ContextId":           func() any { return r.ctxName },
		"RouteId":             func() any { return r.id },
		"State":               func() any { return state() },
	}
}
