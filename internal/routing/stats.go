package routing

import (
	"sync/atomic"
	"time"
)

// Stats holds the performance counters of one route. All methods are safe
// for concurrent use; a reader may observe counters from different
// exchanges mid-update.
type Stats struct {
	total     atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
	minMs     atomic.Int64 // minimum + 1, 0 until the first exchange
	maxMs     atomic.Int64
	totalMs   atomic.Int64
	lastMs    atomic.Int64
}

// Record adds one finished exchange.
func (s *Stats) Record(elapsed time.Duration, failed bool) {
	ms := elapsed.Milliseconds()
	if ms < 0 {
		ms = 0
	}

	s.total.Add(1)
	if failed {
		s.failed.Add(1)
	} else {
		s.completed.Add(1)
	}
	s.totalMs.Add(ms)
	s.lastMs.Store(ms)

	for {
		cur := s.minMs.Load()
		if cur != 0 && cur <= ms+1 {
			break
		}
		if s.minMs.CompareAndSwap(cur, ms+1) {
			break
		}
	}
	for {
		cur := s.maxMs.Load()
		if cur >= ms {
			break
		}
		if s.maxMs.CompareAndSwap(cur, ms) {
			break
		}
	}
}

// Reset zeroes every counter.
func (s *Stats) Reset() {
	s.total.Store(0)
	s.completed.Store(0)
	s.failed.Store(0)
	s.minMs.Store(0)
	s.maxMs.Store(0)
	s.totalMs.Store(0)
	s.lastMs.Store(0)
}

func (s *Stats) ExchangesTotal() int64     { return s.total.Load() }
func (s *Stats) ExchangesCompleted() int64 { return s.completed.Load() }
func (s *Stats) ExchangesFailed() int64    { return s.failed.Load() }

// MinProcessingTime is 0 until the first exchange.
func (s *Stats) MinProcessingTime() int64 {
	if v := s.minMs.Load(); v > 0 {
		return v - 1
	}
	return 0
}

func (s *Stats) MaxProcessingTime() int64   { return s.maxMs.Load() }
func (s *Stats) TotalProcessingTime() int64 { return s.totalMs.Load() }
func (s *Stats) LastProcessingTime() int64  { return s.lastMs.Load() }

// MeanProcessingTime is the integer mean over all exchanges, 0 before the
// first one.
func (s *Stats) MeanProcessingTime() int64 {
	n := s.total.Load()
	if n == 0 {
		return 0
	}
	return s.totalMs.Load() / n
}
