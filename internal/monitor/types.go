package monitor

import (
	"github.com/savoirtech/ctop/internal/config"
	"github.com/savoirtech/ctop/internal/mgmt"
)

// Context is the host's view of the monitored context.
type Context interface {
	Name() string
	Version() string
	Status() string
	UptimeString() string
	AutoStartup() bool
	StartingRoutes() bool
	Suspended() bool
	Tracing() bool
	RouteIDs() []string
}

// Introspector is the management facility the collector reads counters from.
type Introspector interface {
	Query(pattern mgmt.ObjectName) ([]mgmt.ObjectName, error)
	GetAttribute(name mgmt.ObjectName, attr string) (any, error)
}

// MetricSample holds one route's counters for one poll cycle.
// Processing times are in milliseconds.
type MetricSample struct {
	ID                  string
	ExchangesTotal      int64
	ExchangesCompleted  int64
	ExchangesFailed     int64
	MinProcessingTime   int64
	MaxProcessingTime   int64
	MeanProcessingTime  int64
	TotalProcessingTime int64
	LastProcessingTime  int64
}

// Value returns the counter named by col, or 0 for an invalid column.
func (s MetricSample) Value(col config.DisplayColumn) int64 {
	if p := s.field(col); p != nil {
		return *p
	}
	return 0
}

func (s *MetricSample) field(col config.DisplayColumn) *int64 {
	switch col {
	case config.ExchangesTotal:
		return &s.ExchangesTotal
	case config.ExchangesCompleted:
		return &s.ExchangesCompleted
	case config.ExchangesFailed:
		return &s.ExchangesFailed
	case config.MinProcessingTime:
		return &s.MinProcessingTime
	case config.MaxProcessingTime:
		return &s.MaxProcessingTime
	case config.MeanProcessingTime:
		return &s.MeanProcessingTime
	case config.TotalProcessingTime:
		return &s.TotalProcessingTime
	case config.LastProcessingTime:
		return &s.LastProcessingTime
	default:
		return nil
	}
}

// SampleSet is one cycle's samples. It is replaced wholesale every cycle.
type SampleSet []MetricSample

// IDs returns the route ids in set order.
func (s SampleSet) IDs() []string {
	ids := make([]string, len(s))
	for i, sample := range s {
		ids[i] = sample.ID
	}
	return ids
}

// Sum adds up col over every sample.
func (s SampleSet) Sum(col config.DisplayColumn) int64 {
	var total int64
	for _, sample := range s {
		total += sample.Value(col)
	}
	return total
}

// HeaderInfo is the context description shown above the table.
type HeaderInfo struct {
	Name           string
	Version        string
	Status         string
	Uptime         string
	AutoStartup    bool
	StartingRoutes bool
	Suspended      bool
	Tracing        bool
}

// HeaderFrom captures the current header fields of c.
func HeaderFrom(c Context) HeaderInfo {
	return HeaderInfo{
		Name:           c.Name(),
		Version:        c.Version(),
		Status:         c.Status(),
		Uptime:         c.UptimeString(),
		AutoStartup:    c.AutoStartup(),
		StartingRoutes: c.StartingRoutes(),
		Suspended:      c.Suspended(),
		Tracing:        c.Tracing(),
	}
}
