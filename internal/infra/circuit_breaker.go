package infra

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned when Execute fast-fails without calling fn.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CBState is the externally visible breaker state, reported by /health.
type CBState int

const (
	CBClosed   CBState = iota // requests flow
	CBOpen                    // fast-fail until the cooldown elapses
	CBHalfOpen                // cooldown elapsed, next request is the probe
)

func (s CBState) String() string {
	switch s {
	case CBClosed:
		return "closed"
	case CBOpen:
		return "open"
	case CBHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig tunes the breaker guarding the AI endpoint.
type CircuitBreakerConfig struct {
	FailureThreshold int           // consecutive failures that trip the breaker
	OpenTimeout      time.Duration // cooldown before a probe is allowed
}

// DefaultCBConfig is tuned for the AI provider: quota errors come in
// bursts, so trip fast and probe soon.
func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 3,
		OpenTimeout:      30 * time.Second,
	}
}

// CircuitBreaker stops hammering the AI provider when it is down or
// rate-limited. Consecutive failures trip it open; after the cooldown a
// single request is let through as a probe, and one success closes it.
type CircuitBreaker struct {
	mu        sync.Mutex
	failures  int
	open      bool
	openedAt  time.Time
	threshold int
	cooldown  time.Duration
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	return &CircuitBreaker{threshold: cfg.FailureThreshold, cooldown: cfg.OpenTimeout}
}

// State reports the current breaker state. Safe for concurrent use.
func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	switch {
	case !cb.open:
		return CBClosed
	case time.Since(cb.openedAt) >= cb.cooldown:
		return CBHalfOpen
	default:
		return CBOpen
	}
}

// Execute runs fn through the breaker, returning ErrCircuitOpen without
// calling fn while the breaker is open and still cooling down.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	if cb.open && time.Since(cb.openedAt) < cb.cooldown {
		cb.mu.Unlock()
		return ErrCircuitOpen
	}
	probing := cb.open
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.failures++
		// A failed probe reopens immediately, restarting the cooldown.
		if probing || cb.failures >= cb.threshold {
			cb.open = true
			cb.openedAt = time.Now()
			cb.failures = 0
		}
		return err
	}
	cb.open = false
	cb.failures = 0
	return nil
}
