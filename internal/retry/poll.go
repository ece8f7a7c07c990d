package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrExhausted is returned when no attempt produced a terminal value.
var ErrExhausted = errors.New("retry: attempts exhausted")

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Policy bounds a polling loop. The wait before attempt n is
// Interval * Multiplier^(n-1); a zero Multiplier means a fixed interval.
type Policy struct {
	MaxAttempts int
	Interval    time.Duration
	Multiplier  float64
	Sleep       SleepFunc
}

// Fixed returns a policy with a constant interval between attempts.
func Fixed(attempts int, interval time.Duration) Policy {
	return Policy{MaxAttempts: attempts, Interval: interval}
}

// ContextSleep is the real-clock SleepFunc.
func ContextSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (p Policy) wait(attempt int) time.Duration {
	d := p.Interval
	if p.Multiplier > 1 {
		for i := 1; i < attempt; i++ {
			d = time.Duration(float64(d) * p.Multiplier)
		}
	}
	return d
}

// Poll waits, then calls fetch, until done reports a terminal value or the
// attempts run out. Errors from fetch are treated as transient.
func Poll[T any](ctx context.Context, p Policy, fetch func(context.Context) (T, error), done func(T) bool) (T, error) {
	var zero T
	if p.MaxAttempts <= 0 {
		return zero, fmt.Errorf("%w: no attempts allowed", ErrExhausted)
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = ContextSleep
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := sleep(ctx, p.wait(attempt)); err != nil {
			return zero, err
		}
		v, err := fetch(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return zero, ctxErr
			}
			lastErr = err
			continue
		}
		if done(v) {
			return v, nil
		}
	}
	if lastErr != nil {
		return zero, fmt.Errorf("%w after %d attempts: %v", ErrExhausted, p.MaxAttempts, lastErr)
	}
	return zero, fmt.Errorf("%w after %d attempts", ErrExhausted, p.MaxAttempts)
}
