package ratelimit

import (
	"testing"
	"time"
)

func TestFixedIntervalInterval(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		expected time.Duration
	}{
		{"Default polite rate", 2.0, 500 * time.Millisecond},
		{"One per second", 1.0, time.Second},
		{"Clamped to 100ms floor", 1000.0, 100 * time.Millisecond},
		{"At the fast bound", 10.0, 100 * time.Millisecond},
		{"Zero rate clamped to slow bound", 0, 10 * time.Second},
		{"Negative rate clamped to slow bound", -5, 10 * time.Second},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			limiter := NewFixedInterval(test.rps)
			if limiter.Interval() != test.expected {
				t.Errorf("Expected interval %v, got %v", test.expected, limiter.Interval())
			}
		})
	}
}

func TestFixedIntervalWait(t *testing.T) {
	limiter := NewFixedInterval(10.0)

	var slept time.Duration
	limiter.sleep = func(d time.Duration) { slept += d }

	for i := 0; i < 3; i++ {
		limiter.Wait()
	}

	if slept != 300*time.Millisecond {
		t.Errorf("Expected 300ms total sleep for 3 waits, got %v", slept)
	}
}

func TestFixedIntervalWaitBlocks(t *testing.T) {
	limiter := NewFixedInterval(10.0)

	start := time.Now()
	limiter.Wait()
	elapsed := time.Since(start)

	if elapsed < 100*time.Millisecond {
		t.Errorf("Expected Wait to block at least 100ms, blocked %v", elapsed)
	}
}
