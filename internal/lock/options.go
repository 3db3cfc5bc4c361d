package lock

import (
	"time"

	"github.com/dmitrijs2005/antara/internal/logging"
	"github.com/dmitrijs2005/antara/internal/timex"
)

const (
	// PinSlot holds the credential.
	PinSlot = "antara_pin"
	// AttemptsSlot holds the failure counter and throttle deadline.
	AttemptsSlot = "antara_pin_attempts"

	PinLength = 4

	DefaultResetDelay  = 500 * time.Millisecond
	DefaultMaxAttempts = 5
	DefaultBaseDelay   = 30 * time.Second
	DefaultMaxDelay    = 15 * time.Minute
)

type Option func(*Lock)

func WithClock(c timex.Clock) Option {
	return func(l *Lock) { l.clock = c }
}

func WithLogger(logger logging.Logger) Option {
	return func(l *Lock) { l.logger = logger }
}

// WithResetDelay sets how long the error flag stays raised after a miss.
func WithResetDelay(d time.Duration) Option {
	return func(l *Lock) {
		if d > 0 {
			l.resetDelay = d
		}
	}
}

// WithBackoff configures throttling: after maxAttempts consecutive misses
// the lock refuses input for base * 2^(misses-maxAttempts), capped at max.
func WithBackoff(maxAttempts int, base, max time.Duration) Option {
	return func(l *Lock) {
		if maxAttempts > 0 {
			l.maxAttempts = maxAttempts
		}
		if base > 0 {
			l.baseDelay = base
		}
		if max > 0 {
			l.maxDelay = max
		}
	}
}
