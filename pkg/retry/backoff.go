package retry

import (
	"context"
	"time"
)

// BackoffStrategy computes the delay after a failed attempt.
type BackoffStrategy interface {
	// NextDelay returns the delay to wait after the given 1-based attempt.
	NextDelay(attempt int) time.Duration
}

// ExponentialBackoff doubles the delay after every failed attempt:
// Base after the first, Base*2 after the second, and so on.
type ExponentialBackoff struct {
	// Base is the delay after the first failed attempt.
	Base time.Duration
	// Max caps the delay; 0 means uncapped.
	Max time.Duration
}

// DefaultExponentialBackoff returns the backoff used for EDGAR requests.
func DefaultExponentialBackoff() *ExponentialBackoff {
	return &ExponentialBackoff{
		Base: time.Second,
		Max:  60 * time.Second,
	}
}

// NextDelay returns Base * 2^(attempt-1), capped at Max when Max is set.
func (eb *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	delay := eb.Base
	for i := 1; i < attempt; i++ {
		delay *= 2
		if eb.Max > 0 && delay >= eb.Max {
			return eb.Max
		}
	}
	if eb.Max > 0 && delay > eb.Max {
		return eb.Max
	}
	return delay
}

// ConstantBackoff waits the same delay after every failed attempt.
type ConstantBackoff struct {
	Delay time.Duration
}

// NextDelay returns the constant delay.
func (cb *ConstantBackoff) NextDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	return cb.Delay
}

// Wait sleeps for delay or until the context is cancelled.
func Wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
