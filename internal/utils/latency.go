package utils

import (
	"sort"
	"sync"
	"time"
)

const defaultLatencyWindow = 256

// LatencyWindow keeps the most recent classification durations in a ring
// buffer so health checks can report recent percentiles without scraping
// Prometheus.
type LatencyWindow struct {
	mu      sync.Mutex
	samples []time.Duration
	next    int
	full    bool
}

// NewLatencyWindow creates a window holding up to size samples.
func NewLatencyWindow(size int) *LatencyWindow {
	if size <= 0 {
		size = defaultLatencyWindow
	}
	return &LatencyWindow{samples: make([]time.Duration, size)}
}

// Observe records d, overwriting the oldest sample once the window is full.
func (w *LatencyWindow) Observe(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.samples[w.next] = d
	w.next = (w.next + 1) % len(w.samples)
	if w.next == 0 {
		w.full = true
	}
}

// Len returns the number of samples currently held.
func (w *LatencyWindow) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.len()
}

func (w *LatencyWindow) len() int {
	if w.full {
		return len(w.samples)
	}
	return w.next
}

// Percentile returns the nearest-rank percentile (0-100) of the window, or zero
// when nothing has been observed.
func (w *LatencyWindow) Percentile(p float64) time.Duration {
	w.mu.Lock()
	n := w.len()
	sorted := append([]time.Duration(nil), w.samples[:n]...)
	w.mu.Unlock()

	if n == 0 {
		return 0
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	switch {
	case p <= 0:
		return sorted[0]
	case p >= 100:
		return sorted[n-1]
	}
	return sorted[int(p/100*float64(n-1))]
}
