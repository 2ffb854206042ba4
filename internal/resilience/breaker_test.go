package resilience

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBreaker(threshold int, cooldown time.Duration) (*Breaker, *time.Time) {
	b := NewBreaker("test", BreakerConfig{Threshold: threshold, Cooldown: cooldown})
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return clock }
	return b, &clock
}

func fail(b *Breaker, n int) {
	for range n {
		_, _ = Guard(context.Background(), b, func(context.Context) (int, error) {
			return 0, eris.New("boom")
		})
	}
}

func TestBreaker_PassesThroughWhileClosed(t *testing.T) {
	b, _ := newTestBreaker(3, time.Minute)

	v, err := Guard(context.Background(), b, func(context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, "closed", b.State())
}

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	b, _ := newTestBreaker(3, time.Minute)

	fail(b, 2)
	assert.Equal(t, "closed", b.State())

	fail(b, 1)
	assert.Equal(t, "open", b.State())

	called := false
	_, err := Guard(context.Background(), b, func(context.Context) (int, error) {
		called = true
		return 0, nil
	})
	assert.ErrorIs(t, err, ErrBreakerOpen)
	assert.False(t, called, "open breaker must not invoke fn")
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	b, _ := newTestBreaker(3, time.Minute)

	fail(b, 2)
	_, err := Guard(context.Background(), b, func(context.Context) (int, error) {
		return 1, nil
	})
	require.NoError(t, err)

	fail(b, 2)
	assert.Equal(t, "closed", b.State(), "count restarts after a success")
}

func TestBreaker_ProbeAfterCooldown(t *testing.T) {
	b, clock := newTestBreaker(2, time.Minute)
	fail(b, 2)
	require.Equal(t, "open", b.State())

	*clock = clock.Add(2 * time.Minute)
	assert.Equal(t, "half-open", b.State())

	v, err := Guard(context.Background(), b, func(context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, "closed", b.State())
}

func TestBreaker_FailedProbeRestartsCooldown(t *testing.T) {
	b, clock := newTestBreaker(2, time.Minute)
	fail(b, 2)

	*clock = clock.Add(2 * time.Minute)
	fail(b, 1)
	assert.Equal(t, "open", b.State())

	_, err := Guard(context.Background(), b, func(context.Context) (int, error) {
		return 0, nil
	})
	assert.ErrorIs(t, err, ErrBreakerOpen)
}

func TestBreaker_TripsFilter(t *testing.T) {
	b := NewBreaker("test", BreakerConfig{Threshold: 1, Cooldown: time.Minute, Trips: IsTransient})

	_, _ = Guard(context.Background(), b, func(context.Context) (int, error) {
		return 0, eris.New("permanent: bad credentials")
	})
	assert.Equal(t, "closed", b.State(), "non-transient errors do not trip")

	_, _ = Guard(context.Background(), b, func(context.Context) (int, error) {
		return 0, NewTransientError(eris.New("overloaded"), 529)
	})
	assert.Equal(t, "open", b.State())
}
