package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/antara/internal/common"
	"github.com/dmitrijs2005/antara/internal/cryptox"
	"github.com/dmitrijs2005/antara/internal/logging"
	"github.com/dmitrijs2005/antara/internal/repositories/slots"
	"github.com/dmitrijs2005/antara/internal/timex"
)

// Lock is the session gate. It is safe for concurrent use.
type Lock struct {
	repo   slots.Repository
	clock  timex.Clock
	logger logging.Logger

	resetDelay  time.Duration
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration

	mu          sync.Mutex
	state       State
	buffer      []byte
	errorFlag   bool
	failures    int
	lockedUntil time.Time
	timer       *time.Timer
	closed      bool
}

// New reads the stored credential and the persisted attempt counter.
//
// The initial state is:
//  1. Disabled when no credential is stored.
//  2. Throttled when a stored throttle window has not yet passed.
//  3. Locked otherwise.
//
// Parameters:
//
//	ctx  - used for the initial reads
//	repo - medium holding the PIN and attempts slots
//	opts - clock, logger, reset delay and backoff settings
//
// Returns:
//
//	The lock, or an error if the medium could not be read. Call Close to
//	stop the error flag timer.
func New(ctx context.Context, repo slots.Repository, opts ...Option) (*Lock, error) {
	l := &Lock{
		repo:        repo,
		clock:       timex.SystemClock,
		logger:      logging.Discard(),
		resetDelay:  DefaultResetDelay,
		maxAttempts: DefaultMaxAttempts,
		baseDelay:   DefaultBaseDelay,
		maxDelay:    DefaultMaxDelay,
	}
	for _, o := range opts {
		o(l)
	}

	_, found, err := repo.Get(ctx, PinSlot)
	if err != nil {
		return nil, fmt.Errorf("%w: read credential: %w", common.ErrStorage, err)
	}
	if !found {
		l.state = Disabled
		return l, nil
	}

	a := l.loadAttempts(ctx)
	l.failures = a.Failures
	l.lockedUntil = a.LockedUntil
	l.state = Locked
	l.refreshThrottle()
	l.logger.Info(ctx, "session locked", "state", l.state.String())
	return l, nil
}

// refresh moves Throttled back to Locked once the window has passed.
// Callers hold mu.
func (l *Lock) refresh() {
	if l.state == Throttled && !l.clock.Now().Before(l.lockedUntil) {
		l.state = Locked
	}
}

func (l *Lock) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refresh()
	return l.state
}

// Visible reports whether content may be shown.
func (l *Lock) Visible() bool {
	return l.State().Visible()
}

// Buffer returns the number of digits entered so far.
func (l *Lock) Buffer() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buffer)
}

// ErrorFlag reports whether a wrong PIN was entered within the last
// reset delay.
func (l *Lock) ErrorFlag() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errorFlag
}

// RetryAfter returns the remaining throttle window, or zero.
func (l *Lock) RetryAfter() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refresh()
	if l.state != Throttled {
		return 0
	}
	return l.lockedUntil.Sub(l.clock.Now())
}

// SubmitDigit appends d to the entry buffer and verifies once four digits
// are in. It reports whether that verification unlocked the session.
// Input outside the Locked state is ignored.
//
// Returns:
//
//	common.ErrValidation when d is not an ASCII digit.
//	common.ErrThrottled while the backoff window is open.
//	An error wrapping cryptox.ErrMalformedCredential when the stored value
//	is unreadable.
//
// Example:
//
//	for _, d := range "4821" {
//	    ok, err := l.SubmitDigit(ctx, d)
//	    ...
//	}
func (l *Lock) SubmitDigit(ctx context.Context, d rune) (bool, error) {
	if d < '0' || d > '9' {
		return false, fmt.Errorf("%w: %q is not a digit", common.ErrValidation, d)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.refresh()
	switch l.state {
	case Throttled:
		return false, common.ErrThrottled
	case Locked:
	default:
		return false, nil
	}

	l.buffer = append(l.buffer, byte(d))
	if len(l.buffer) < PinLength {
		return false, nil
	}

	candidate := string(l.buffer)
	common.WipeByteArray(l.buffer)
	l.buffer = l.buffer[:0]
	return l.verify(ctx, candidate)
}

// Verify checks a full candidate PIN. It reports true when content is
// visible afterwards.
func (l *Lock) Verify(ctx context.Context, candidate string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refresh()

	switch l.state {
	case Throttled:
		return false, common.ErrThrottled
	case Locked:
		l.buffer = l.buffer[:0]
		return l.verify(ctx, candidate)
	default:
		return true, nil
	}
}

// verify runs with mu held and state Locked.
func (l *Lock) verify(ctx context.Context, candidate string) (bool, error) {
	stored, found, err := l.repo.Get(ctx, PinSlot)
	if err != nil {
		return false, fmt.Errorf("%w: read credential: %w", common.ErrStorage, err)
	}
	if !found {
		l.logger.Warn(ctx, "credential disappeared, lock disabled")
		l.state = Disabled
		l.failures = 0
		l.lockedUntil = time.Time{}
		return true, nil
	}

	ok := false
	if common.IsDigits(candidate, PinLength) {
		ok, err = cryptox.VerifyPIN(stored, candidate)
		if err != nil {
			l.logger.Error(ctx, "stored credential is unreadable", "error", err)
			return false, fmt.Errorf("verify pin: %w", err)
		}
	}

	if ok {
		l.state = Unlocked
		l.errorFlag = false
		l.failures = 0
		l.lockedUntil = time.Time{}
		l.saveAttempts(ctx)
		if cryptox.IsLegacy(stored) {
			l.upgrade(ctx, candidate)
		}
		l.logger.Info(ctx, "session unlocked")
		return true, nil
	}

	l.failures++
	l.raiseErrorFlag()
	if wait := l.backoff(l.failures); wait > 0 {
		l.lockedUntil = l.clock.Now().Add(wait)
		l.state = Throttled
		l.logger.Warn(ctx, "too many failed pin attempts", "failures", l.failures, "retry_after", wait)
	} else {
		l.logger.Info(ctx, "wrong pin", "failures", l.failures)
	}
	l.saveAttempts(ctx)
	return false, nil
}

func (l *Lock) upgrade(ctx context.Context, pin string) {
	if err := l.repo.Set(ctx, PinSlot, cryptox.HashPIN(pin)); err != nil {
		l.logger.Warn(ctx, "upgrading legacy credential failed", "error", err)
		return
	}
	l.logger.Info(ctx, "legacy credential upgraded")
}

// raiseErrorFlag runs with mu held.
func (l *Lock) raiseErrorFlag() {
	if l.closed {
		return
	}
	l.errorFlag = true
	if l.timer != nil {
		l.timer.Stop()
	}
	l.timer = time.AfterFunc(l.resetDelay, func() {
		l.mu.Lock()
		l.errorFlag = false
		l.mu.Unlock()
	})
}

func (l *Lock) requireVisible() error {
	l.refresh()
	if !l.state.Visible() {
		return common.ErrLocked
	}
	return nil
}

// SetPin stores a new credential. It is only allowed while content is
// visible and does not lock the current session.
func (l *Lock) SetPin(ctx context.Context, pin string) error {
	if !common.IsDigits(pin, PinLength) {
		return fmt.Errorf("%w: pin must be exactly %d digits", common.ErrValidation, PinLength)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireVisible(); err != nil {
		return err
	}

	if err := l.repo.Set(ctx, PinSlot, cryptox.HashPIN(pin)); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	l.state = Unlocked
	l.failures = 0
	l.lockedUntil = time.Time{}
	l.saveAttempts(ctx)
	l.logger.Info(ctx, "pin set")
	return nil
}

// ClearPin removes the credential. The next start is Disabled.
func (l *Lock) ClearPin(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireVisible(); err != nil {
		return err
	}

	if err := l.repo.Delete(ctx, PinSlot); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	l.failures = 0
	l.lockedUntil = time.Time{}
	l.saveAttempts(ctx)
	l.logger.Info(ctx, "pin cleared")
	return nil
}

// HasPin reports whether a credential is stored.
func (l *Lock) HasPin(ctx context.Context) (bool, error) {
	_, found, err := l.repo.Get(ctx, PinSlot)
	if err != nil {
		return false, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return found, nil
}

// Reload re-reads persisted lock data after the store was replaced
// underneath it. A visible session stays visible.
func (l *Lock) Reload(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, found, err := l.repo.Get(ctx, PinSlot)
	if err != nil {
		return fmt.Errorf("%w: read credential: %w", common.ErrStorage, err)
	}

	l.refresh()
	switch {
	case !found:
		l.state = Disabled
		l.failures = 0
		l.lockedUntil = time.Time{}
	case l.state == Disabled:
		l.state = Unlocked
	case !l.state.Visible():
		a := l.loadAttempts(ctx)
		l.failures = a.Failures
		l.lockedUntil = a.LockedUntil
		l.state = Locked
		l.refreshThrottle()
	}
	return nil
}

func (l *Lock) refreshThrottle() {
	if l.clock.Now().Before(l.lockedUntil) {
		l.state = Throttled
	}
}

// Close stops pending timers. The lock must not be used afterwards.
func (l *Lock) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	l.errorFlag = false
	return nil
}
