// Package retry provides the retry policy shared by transaction
// fetches, subscription reconnects and task-queue redeliveries.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy describes an exponential backoff schedule.
type Policy struct {
	// MaxAttempts bounds the number of tries; 0 means retry until the
	// context is cancelled or MaxElapsedTime runs out.
	MaxAttempts uint64
	// InitialInterval is the first delay
	InitialInterval time.Duration
	// MaxInterval caps the delay growth
	MaxInterval time.Duration
	// Multiplier is the per-attempt growth factor
	Multiplier float64
	// MaxElapsedTime bounds the total retry duration; 0 means no bound
	MaxElapsedTime time.Duration
}

// Default returns the schedule used where a component does not
// configure its own: 500ms doubling up to 30s, unbounded elapsed time.
func Default() Policy {
	return Policy{
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     30 * time.Second,
		Multiplier:      2,
	}
}

// NewBackOff builds the underlying exponential backoff for callers
// that drive the schedule themselves, e.g. a reconnect loop that
// resets it after a healthy period.
func (p Policy) NewBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	b.MaxInterval = p.MaxInterval
	b.Multiplier = p.Multiplier
	b.MaxElapsedTime = p.MaxElapsedTime
	b.RandomizationFactor = 0.5
	b.Reset()
	return b
}

// Do runs op under the policy until it succeeds, the attempts are
// exhausted, or ctx is cancelled. notify, if non-nil, observes each
// failed attempt and the delay before the next one.
func (p Policy) Do(ctx context.Context, op func() error, notify func(error, time.Duration)) error {
	var b backoff.BackOff = backoff.WithContext(p.NewBackOff(), ctx)
	if p.MaxAttempts > 0 {
		b = backoff.WithMaxRetries(b, p.MaxAttempts-1)
	}
	if notify == nil {
		notify = func(error, time.Duration) {}
	}
	return backoff.RetryNotify(op, b, notify)
}

// Delay returns the deterministic (un-jittered) delay for a given
// zero-based attempt number. Used to schedule queue redeliveries where
// the broker, not this process, sleeps.
func (p Policy) Delay(attempt int) time.Duration {
	d := p.InitialInterval
	for i := 0; i < attempt; i++ {
		next := time.Duration(float64(d) * p.Multiplier)
		if next > p.MaxInterval {
			return p.MaxInterval
		}
		d = next
	}
	if d > p.MaxInterval {
		return p.MaxInterval
	}
	return d
}
