package llm

import (
	"context"
	"time"
)

// RetryPolicy bounds how often a transient model failure is retried and how
// long to back off between attempts. Sleep is injectable so tests can run
// without waiting.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	Sleep      func(time.Duration)
}

// DefaultRetryPolicy retries twice with delays of 1s then 2s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 2, BaseDelay: time.Second}
}

// Do runs fn up to MaxRetries+1 times. Only transient failures are retried;
// a fatal failure or a cancelled context returns immediately. The delay
// doubles with every attempt (BaseDelay, 2*BaseDelay, 4*BaseDelay, ...).
func (p RetryPolicy) Do(ctx context.Context, fn func() (string, error)) (string, error) {
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var lastErr error
	delay := p.BaseDelay
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		if attempt > 0 {
			sleep(delay)
			delay *= 2
		}

		reply, err := fn()
		if err == nil {
			return reply, nil
		}
		if !IsTransient(err) {
			return "", err
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", lastErr
}
