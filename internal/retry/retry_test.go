package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taste-fun/tf-indexer/internal/retry"
)

func fastPolicy(maxAttempts uint64) retry.Policy {
	return retry.Policy{
		MaxAttempts:     maxAttempts,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		Multiplier:      2,
	}
}

func TestDoSucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	err := fastPolicy(5).Do(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDoStopsAtMaxAttempts(t *testing.T) {
	boom := errors.New("boom")
	attempts := 0
	err := fastPolicy(3).Do(context.Background(), func() error {
		attempts++
		return boom
	}, nil)

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 3, attempts)
}

func TestDoHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	err := fastPolicy(0).Do(ctx, func() error {
		attempts++
		if attempts == 2 {
			cancel()
		}
		return errors.New("still failing")
	}, nil)

	require.Error(t, err)
	assert.LessOrEqual(t, attempts, 3)
}

func TestDoNotifiesEachFailure(t *testing.T) {
	var notified int
	_ = fastPolicy(4).Do(context.Background(), func() error {
		return errors.New("nope")
	}, func(err error, d time.Duration) {
		notified++
		assert.Error(t, err)
	})

	// The final failure returns instead of notifying.
	assert.Equal(t, 3, notified)
}

func TestDelayGrowsAndCaps(t *testing.T) {
	p := retry.Policy{
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     time.Second,
		Multiplier:      2,
	}

	assert.Equal(t, 100*time.Millisecond, p.Delay(0))
	assert.Equal(t, 200*time.Millisecond, p.Delay(1))
	assert.Equal(t, 400*time.Millisecond, p.Delay(2))
	assert.Equal(t, 800*time.Millisecond, p.Delay(3))
	assert.Equal(t, time.Second, p.Delay(4))
	assert.Equal(t, time.Second, p.Delay(10))
}

func TestNewBackOffResets(t *testing.T) {
	b := fastPolicy(0).NewBackOff()
	first := b.NextBackOff()
	_ = b.NextBackOff()
	b.Reset()
	again := b.NextBackOff()

	// With jitter both draws come from the initial interval's window.
	assert.InDelta(t, float64(first), float64(again), float64(time.Millisecond))
}
