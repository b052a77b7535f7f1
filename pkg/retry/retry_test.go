package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"edgarfetch/pkg/logger"
)

func TestExponentialBackoff(t *testing.T) {
	backoff := &ExponentialBackoff{
		Base: 100 * time.Millisecond,
		Max:  time.Second,
	}

	tests := []struct {
		attempt     int
		expected    time.Duration
		description string
	}{
		{1, 100 * time.Millisecond, "First attempt"},
		{2, 200 * time.Millisecond, "Second attempt"},
		{3, 400 * time.Millisecond, "Third attempt"},
		{4, 800 * time.Millisecond, "Fourth attempt"},
		{5, time.Second, "Fifth attempt (capped at max)"},
		{6, time.Second, "Sixth attempt (still capped)"},
		{0, 0, "Attempt zero"},
	}

	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			if delay := backoff.NextDelay(test.attempt); delay != test.expected {
				t.Errorf("Expected delay %v, got %v", test.expected, delay)
			}
		})
	}
}

func TestExponentialBackoffUncapped(t *testing.T) {
	backoff := &ExponentialBackoff{Base: time.Second}

	if delay := backoff.NextDelay(7); delay != 64*time.Second {
		t.Errorf("Expected uncapped delay 64s, got %v", delay)
	}
}

func TestRetryWithSuccess(t *testing.T) {
	attempts := 0
	op := func() error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}

	cfg := &Config{
		MaxAttempts: 5,
		Backoff:     &ConstantBackoff{Delay: time.Millisecond},
		RetryIf:     func(err error) bool { return true },
		Logger:      logger.NewTestLogger(),
	}

	if err := Do(context.Background(), op, cfg); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	attempts := 0
	cause := errors.New("always failing")
	op := func() error {
		attempts++
		return cause
	}

	base := 10 * time.Millisecond
	cfg := &Config{
		MaxAttempts: 4,
		Backoff:     &ExponentialBackoff{Base: base},
		RetryIf:     func(err error) bool { return true },
		Logger:      logger.NewTestLogger(),
	}

	start := time.Now()
	err := Do(context.Background(), op, cfg)
	elapsed := time.Since(start)

	if !errors.Is(err, ErrRetriesExhausted) {
		t.Fatalf("Expected ErrRetriesExhausted, got %v", err)
	}
	if attempts != 4 {
		t.Errorf("Expected exactly 4 attempts, got %d", attempts)
	}

	// Total delay is base * (2^0 + 2^1 + 2^2 + 2^3) = 15 * base.
	wantDelay := 15 * base
	if elapsed < wantDelay {
		t.Errorf("Expected total delay of at least %v, elapsed %v", wantDelay, elapsed)
	}
	if elapsed > wantDelay+200*time.Millisecond {
		t.Errorf("Total delay %v far exceeds expected %v", elapsed, wantDelay)
	}
}

func TestRetryStopsOnTerminalError(t *testing.T) {
	attempts := 0
	terminal := errors.New("terminal error")
	op := func() error {
		attempts++
		return terminal
	}

	cfg := &Config{
		MaxAttempts: 5,
		Backoff:     &ConstantBackoff{Delay: time.Millisecond},
		RetryIf:     func(err error) bool { return false },
		Logger:      logger.NewTestLogger(),
	}

	err := Do(context.Background(), op, cfg)
	if !errors.Is(err, terminal) {
		t.Fatalf("Expected terminal error returned as-is, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected exactly 1 attempt, got %d", attempts)
	}
}

func TestRetryOnRetryCallback(t *testing.T) {
	var delays []time.Duration
	op := func() error { return errors.New("fail") }

	cfg := &Config{
		MaxAttempts: 3,
		Backoff:     &ExponentialBackoff{Base: time.Millisecond},
		RetryIf:     func(err error) bool { return true },
		OnRetry: func(attempt int, err error, delay time.Duration) {
			delays = append(delays, delay)
		},
		Logger: logger.NewTestLogger(),
	}

	_ = Do(context.Background(), op, cfg)

	want := []time.Duration{time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond}
	if len(delays) != len(want) {
		t.Fatalf("Expected %d retry callbacks, got %d", len(want), len(delays))
	}
	for i := range want {
		if delays[i] != want[i] {
			t.Errorf("Callback %d: expected delay %v, got %v", i, want[i], delays[i])
		}
	}
}

func TestRetryContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	op := func() error {
		attempts++
		return errors.New("fail")
	}

	cfg := &Config{
		MaxAttempts: 5,
		Backoff:     &ConstantBackoff{Delay: time.Minute},
		RetryIf:     func(err error) bool { return true },
		Logger:      logger.NewTestLogger(),
	}

	err := Do(ctx, op, cfg)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt before cancellation, got %d", attempts)
	}
}

func TestDoWithResult(t *testing.T) {
	attempts := 0
	op := func() ([]byte, error) {
		attempts++
		if attempts < 2 {
			return nil, errors.New("fail once")
		}
		return []byte("payload"), nil
	}

	cfg := &Config{
		MaxAttempts: 3,
		Backoff:     &ConstantBackoff{Delay: time.Millisecond},
		RetryIf:     func(err error) bool { return true },
		Logger:      logger.NewTestLogger(),
	}

	result, err := DoWithResult(context.Background(), op, cfg)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if string(result) != "payload" {
		t.Errorf("Expected payload, got %q", result)
	}
}
