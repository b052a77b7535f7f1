package ratelimit

import (
	"time"
)

// Rate clamps. The interval derived from requests-per-second always lands
// between 100ms and 10s regardless of configuration.
const (
	// MinRequestsPerSecond is the floor applied to the configured rate; it
	// also bounds the worst-case sleep at 10s.
	MinRequestsPerSecond = 0.1
	// MaxRequestsPerSecond caps the rate so the limiter never fires faster
	// than one request per 100ms, even if misconfigured.
	MaxRequestsPerSecond = 10.0
)

// Limiter defines the interface for rate limiting outbound requests.
type Limiter interface {
	// Wait blocks for the inter-request interval before the caller may
	// issue the next request.
	Wait()
	// Interval returns the enforced delay between requests.
	Interval() time.Duration
}

// FixedInterval is a fixed-delay rate limiter: each call to Wait sleeps the
// full inter-request interval.
type FixedInterval struct {
	interval time.Duration
	sleep    func(time.Duration)
}

// NewFixedInterval creates a fixed-delay limiter targeting the given
// requests-per-second ceiling, clamped to the package rate bounds.
func NewFixedInterval(requestsPerSecond float64) *FixedInterval {
	if requestsPerSecond < MinRequestsPerSecond {
		requestsPerSecond = MinRequestsPerSecond
	}
	if requestsPerSecond > MaxRequestsPerSecond {
		requestsPerSecond = MaxRequestsPerSecond
	}

	return &FixedInterval{
		interval: time.Duration(float64(time.Second) / requestsPerSecond),
		sleep:    time.Sleep,
	}
}

// Wait blocks for the configured inter-request interval.
func (f *FixedInterval) Wait() {
	f.sleep(f.interval)
}

// Interval returns the enforced delay between requests.
func (f *FixedInterval) Interval() time.Duration {
	return f.interval
}
