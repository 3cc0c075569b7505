package utils

import (
	"testing"
	"time"
)

func TestLatencyWindowPercentile(t *testing.T) {
	window := NewLatencyWindow(10)
	if window.Percentile(50) != 0 {
		t.Fatalf("expected zero percentile on empty window")
	}
	for _, ms := range []int{50, 10, 40, 20, 30} {
		window.Observe(time.Duration(ms) * time.Millisecond)
	}

	if window.Len() != 5 {
		t.Fatalf("expected 5 samples, got %d", window.Len())
	}
	if got := window.Percentile(50); got != 30*time.Millisecond {
		t.Fatalf("expected p50 30ms, got %v", got)
	}
	if got := window.Percentile(100); got != 50*time.Millisecond {
		t.Fatalf("expected max 50ms, got %v", got)
	}
	if got := window.Percentile(0); got != 10*time.Millisecond {
		t.Fatalf("expected min 10ms, got %v", got)
	}
}

func TestLatencyWindowOverwritesOldest(t *testing.T) {
	window := NewLatencyWindow(3)
	for i := 1; i <= 10; i++ {
		window.Observe(time.Duration(i) * time.Millisecond)
	}
	if window.Len() != 3 {
		t.Fatalf("expected window size 3, got %d", window.Len())
	}
	if got := window.Percentile(0); got != 8*time.Millisecond {
		t.Fatalf("expected oldest retained sample 8ms, got %v", got)
	}
}
