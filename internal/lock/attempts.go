package lock

import (
	"context"
	"encoding/json"
	"time"
)

type attempts struct {
	Failures    int       `json:"failures"`
	LockedUntil time.Time `json:"lockedUntil,omitzero"`
}

func (l *Lock) loadAttempts(ctx context.Context) attempts {
	var a attempts
	raw, found, err := l.repo.Get(ctx, AttemptsSlot)
	if err != nil {
		l.logger.Warn(ctx, "reading pin attempts failed", "error", err)
		return a
	}
	if !found {
		return a
	}
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		l.logger.Warn(ctx, "discarding unreadable pin attempts", "slot", AttemptsSlot, "error", err)
		return attempts{}
	}
	return a
}

// saveAttempts is best effort: a medium that refuses the write only loses
// the persisted counter, the in-memory one still applies.
func (l *Lock) saveAttempts(ctx context.Context) {
	var err error
	if l.failures == 0 {
		err = l.repo.Delete(ctx, AttemptsSlot)
	} else {
		var b []byte
		b, err = json.Marshal(attempts{Failures: l.failures, LockedUntil: l.lockedUntil})
		if err == nil {
			err = l.repo.Set(ctx, AttemptsSlot, string(b))
		}
	}
	if err != nil {
		l.logger.Warn(ctx, "persisting pin attempts failed", "error", err)
	}
}

// backoff returns the throttle window after failures consecutive misses.
func (l *Lock) backoff(failures int) time.Duration {
	if failures < l.maxAttempts {
		return 0
	}
	d := l.baseDelay
	for i := l.maxAttempts; i < failures; i++ {
		d *= 2
		if d >= l.maxDelay {
			return l.maxDelay
		}
	}
	return min(d, l.maxDelay)
}
