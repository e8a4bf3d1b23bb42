package api

import (
	"slices"
	"sync"
	"time"
)

type sample struct {
	at      time.Time
	elapsed time.Duration
}

// LatencySnapshot aggregates the request latencies inside the window.
type LatencySnapshot struct {
	Count int     `json:"count"`
	MinMs float64 `json:"min_ms"`
	MaxMs float64 `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// LatencyStats keeps request latencies for a rolling window.
type LatencyStats struct {
	mu      sync.Mutex
	samples []sample
	window  time.Duration
	now     func() time.Time
}

func NewLatencyStats(window time.Duration) *LatencyStats {
	if window <= 0 {
		window = time.Hour
	}
	return &LatencyStats{
		samples: make([]sample, 0, 256),
		window:  window,
		now:     time.Now,
	}
}

func (s *LatencyStats) Record(d time.Duration) {
	d = max(d, 0)
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.pruneLocked(now)
	s.samples = append(s.samples, sample{at: now, elapsed: d})
}

func (s *LatencyStats) Snapshot() LatencySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(s.now())
	if len(s.samples) == 0 {
		return LatencySnapshot{}
	}

	ms := make([]float64, len(s.samples))
	var sum float64
	for i, sm := range s.samples {
		ms[i] = float64(sm.elapsed) / float64(time.Millisecond)
		sum += ms[i]
	}
	slices.Sort(ms)

	return LatencySnapshot{
		Count: len(ms),
		MinMs: ms[0],
		MaxMs: ms[len(ms)-1],
		AvgMs: sum / float64(len(ms)),
		P50Ms: percentile(ms, 50),
		P95Ms: percentile(ms, 95),
		P99Ms: percentile(ms, 99),
	}
}

func (s *LatencyStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.window)
	s.samples = slices.DeleteFunc(s.samples, func(sm sample) bool {
		return sm.at.Before(cutoff)
	})
}

// percentile interpolates linearly between the closest ranks of sorted.
func percentile(sorted []float64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return sorted[0]
	}
	if pct >= 100 {
		return sorted[len(sorted)-1]
	}
	rank := float64(len(sorted)-1) * pct / 100
	lower := int(rank)
	if lower+1 >= len(sorted) {
		return sorted[lower]
	}
	weight := rank - float64(lower)
	return sorted[lower] + (sorted[lower+1]-sorted[lower])*weight
}
