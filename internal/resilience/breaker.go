// Package resilience provides transient-error classification, retry with
// backoff, and circuit breaking for upstream provider calls.
package resilience

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ErrBreakerOpen is returned when a call is rejected because the breaker
// is open.
var ErrBreakerOpen = eris.New("resilience: breaker open")

// BreakerConfig controls a Breaker.
type BreakerConfig struct {
	// Threshold is the number of consecutive failures that opens the
	// breaker. Default: 5.
	Threshold int
	// Cooldown is how long the breaker stays open before admitting a
	// single probe call. Default: 30s.
	Cooldown time.Duration
	// Trips decides whether an error counts as a failure. Nil counts
	// every error.
	Trips func(error) bool
}

// DefaultBreakerConfig returns the defaults used for provider clients.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{Threshold: 5, Cooldown: 30 * time.Second}
}

// Breaker is a consecutive-failure circuit breaker guarding one upstream
// service. While closed, calls pass through. After Threshold consecutive
// failures it opens and rejects calls until Cooldown elapses, then admits
// a single probe; a successful probe closes the breaker, a failed one
// restarts the cooldown.
type Breaker struct {
	service   string
	threshold int
	cooldown  time.Duration
	trips     func(error) bool

	mu       sync.Mutex
	failures int
	openedAt time.Time
	probing  bool

	now func() time.Time
}

// NewBreaker creates a breaker for the named service.
func NewBreaker(service string, cfg BreakerConfig) *Breaker {
	if cfg.Threshold <= 0 {
		cfg.Threshold = 5
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}
	trips := cfg.Trips
	if trips == nil {
		trips = func(err error) bool { return err != nil }
	}
	return &Breaker{
		service:   service,
		threshold: cfg.Threshold,
		cooldown:  cfg.Cooldown,
		trips:     trips,
		now:       time.Now,
	}
}

// State reports "closed", "open", or "half-open".
func (b *Breaker) State() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failures < b.threshold {
		return "closed"
	}
	if b.now().Sub(b.openedAt) < b.cooldown {
		return "open"
	}
	return "half-open"
}

// Guard runs fn through the breaker, rejecting with ErrBreakerOpen while
// it is open.
func Guard[T any](ctx context.Context, b *Breaker, fn func(ctx context.Context) (T, error)) (T, error) {
	if err := b.admit(); err != nil {
		var zero T
		return zero, err
	}
	val, err := fn(ctx)
	b.observe(err)
	return val, err
}

func (b *Breaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failures < b.threshold {
		return nil
	}
	if b.now().Sub(b.openedAt) < b.cooldown {
		return ErrBreakerOpen
	}
	// Cooldown elapsed; admit exactly one probe at a time.
	if b.probing {
		return ErrBreakerOpen
	}
	b.probing = true
	return nil
}

func (b *Breaker) observe(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	wasOpen := b.failures >= b.threshold
	probe := b.probing
	b.probing = false

	if err == nil || !b.trips(err) {
		b.failures = 0
		if wasOpen {
			zap.L().Info("breaker closed", zap.String("service", b.service))
		}
		return
	}

	if probe {
		// Failed probe restarts the cooldown.
		b.openedAt = b.now()
		return
	}

	b.failures++
	if b.failures == b.threshold {
		b.openedAt = b.now()
		zap.L().Warn("breaker opened",
			zap.String("service", b.service),
			zap.Int("failures", b.failures),
		)
	}
}
