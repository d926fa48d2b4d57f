package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
)

func TestDoRetriesTemporaryFailure(t *testing.T) {
	errTemp := errors.New("temporary")
	runner := NewRunner(Policy{
		MaxAttempts:    3,
		InitialBackoff: 1 * time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		Multiplier:     2,
		BreakerEnabled: false,
	}, func(err error) Verdict {
		return Verdict{Retryable: errors.Is(err, errTemp), RecordFailure: true}
	})

	attempts := 0
	err := runner.Do(context.Background(), "op", func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errTemp
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestDoDoesNotRetryPermanentFailure(t *testing.T) {
	errPermanent := errors.New("permanent")
	runner := NewRunner(Policy{
		MaxAttempts:    3,
		InitialBackoff: 1 * time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		Multiplier:     2,
		BreakerEnabled: false,
	}, func(error) Verdict {
		return Verdict{Retryable: false, RecordFailure: false}
	})

	attempts := 0
	err := runner.Do(context.Background(), "op", func(context.Context) error {
		attempts++
		return errPermanent
	})
	if !errors.Is(err, errPermanent) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestDoOpensCircuitAfterFailures(t *testing.T) {
	errTemp := errors.New("temporary")
	runner := NewRunner(Policy{
		MaxAttempts:        1,
		InitialBackoff:     1 * time.Millisecond,
		MaxBackoff:         1 * time.Millisecond,
		Multiplier:         2,
		BreakerEnabled:     true,
		BreakerMinRequests: 2,
		BreakerRatio:       0.5,
		BreakerOpenFor:     50 * time.Millisecond,
		BreakerProbeCalls:  1,
	}, func(error) Verdict {
		return Verdict{Retryable: false, RecordFailure: true}
	})

	for i := 0; i < 2; i++ {
		err := runner.Do(context.Background(), "op", func(context.Context) error {
			return errTemp
		})
		if !errors.Is(err, errTemp) {
			t.Fatalf("expected temporary error on iteration %d, got %v", i, err)
		}
	}

	err := runner.Do(context.Background(), "op", func(context.Context) error {
		t.Fatalf("circuit should be open and must not call operation")
		return nil
	})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected open state error, got %v", err)
	}
	if !IsCircuitOpen(err) {
		t.Fatalf("IsCircuitOpen(%v) = false, want true", err)
	}
}

func TestDoRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(Policy{BreakerEnabled: false}, nil)
	err := runner.Do(ctx, "op", func(context.Context) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
