package services

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/antara/internal/collection"
	"github.com/dmitrijs2005/antara/internal/common"
	"github.com/dmitrijs2005/antara/internal/logging"
	"github.com/dmitrijs2005/antara/internal/models"
	"github.com/dmitrijs2005/antara/internal/repositories/slots"
	"github.com/dmitrijs2005/antara/internal/timex"
)

// IsUnlocked reports whether c may be opened at now. It depends only on
// its arguments.
func IsUnlocked(c models.Capsule, now time.Time) bool {
	return !now.Before(c.RevealAt())
}

// TimeRemaining renders the countdown shown on a sealed capsule.
func TimeRemaining(c models.Capsule, now time.Time) string {
	total := c.RevealAt().Sub(now)
	days := int64(math.Floor(total.Hours() / 24))
	hours := int64(math.Floor(total.Hours())) % 24

	if days > 0 {
		return fmt.Sprintf("%d days left", days)
	}
	if hours > 0 {
		return fmt.Sprintf("%d hours left", hours)
	}
	return "Opening soon..."
}

// TickFunc receives the refresh instant and the capsules that became
// openable since the previous tick.
type TickFunc func(now time.Time, unlocked []models.Capsule)

type CapsuleService interface {
	Seal(ctx context.Context, title, message string, revealAt time.Time) (models.Capsule, error)
	List(ctx context.Context) ([]models.Capsule, error)
	Open(ctx context.Context, id int64) (models.Capsule, error)
	Discard(ctx context.Context, id int64) (bool, error)
	Viewing() (models.Capsule, bool)
	CloseView()
	Watch(ctx context.Context, interval time.Duration, onTick TickFunc) error
}

type capsuleService struct {
	store  *collection.Store[models.Capsule]
	clock  timex.Clock
	logger logging.Logger

	mu      sync.Mutex
	viewing *models.Capsule
}

func NewCapsuleService(repo slots.Repository, logger logging.Logger, clock timex.Clock) CapsuleService {
	schema := collection.Schema[models.Capsule]{
		Slot: SlotCapsules,
		ID:   func(c models.Capsule) int64 { return c.ID },
		Init: func(c *models.Capsule, id int64, now time.Time) {
			c.ID = id
			c.CreatedAt = now.UTC()
			c.IsRead = false
		},
	}
	return &capsuleService{
		store:  collection.New(schema, repo, logger, collection.WithClock[models.Capsule](clock)),
		clock:  clock,
		logger: logger,
	}
}

// Seal stores a capsule that cannot be opened before revealAt.
func (s *capsuleService) Seal(ctx context.Context, title, message string, revealAt time.Time) (models.Capsule, error) {
	if err := required("title", title); err != nil {
		return models.Capsule{}, err
	}
	if err := required("message", message); err != nil {
		return models.Capsule{}, err
	}
	if revealAt.IsZero() {
		return models.Capsule{}, fmt.Errorf("%w: reveal date is required", common.ErrValidation)
	}
	if now := s.clock.Now(); !revealAt.After(now) {
		return models.Capsule{}, fmt.Errorf("%w: reveal date must be in the future", common.ErrValidation)
	}

	c, err := s.store.Create(ctx, models.Capsule{
		Title:      trim(title),
		Message:    message,
		RevealDate: timex.NewInstant(revealAt),
	})
	if err != nil {
		return models.Capsule{}, err
	}
	s.logger.Info(ctx, "capsule sealed", "id", c.ID, "reveal_at", revealAt)
	return c, nil
}

// List orders capsules by reveal time, earliest first. Ties keep
// insertion order.
func (s *capsuleService) List(ctx context.Context) ([]models.Capsule, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(items, func(a, b models.Capsule) int {
		return cmp.Compare(a.RevealAt().UnixNano(), b.RevealAt().UnixNano())
	})
	return items, nil
}

// Open reveals an unlocked capsule and makes it the one being viewed.
// Nothing is persisted; a capsule can be opened any number of times.
func (s *capsuleService) Open(ctx context.Context, id int64) (models.Capsule, error) {
	c, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return models.Capsule{}, err
	}
	if !ok {
		return models.Capsule{}, notFound("capsule", id)
	}
	if !IsUnlocked(c, s.clock.Now()) {
		return models.Capsule{}, fmt.Errorf("%w: %s", common.ErrStillSealed, TimeRemaining(c, s.clock.Now()))
	}

	s.mu.Lock()
	s.viewing = &c
	s.mu.Unlock()
	return c, nil
}

// Discard deletes the capsule whether sealed or not. If it is being
// viewed the view is closed.
func (s *capsuleService) Discard(ctx context.Context, id int64) (bool, error) {
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	if s.viewing != nil && s.viewing.ID == id {
		s.viewing = nil
	}
	s.mu.Unlock()
	return ok, nil
}

func (s *capsuleService) Viewing() (models.Capsule, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.viewing == nil {
		return models.Capsule{}, false
	}
	return *s.viewing, true
}

func (s *capsuleService) CloseView() {
	s.mu.Lock()
	s.viewing = nil
	s.mu.Unlock()
}

// Watch calls onTick every interval until ctx is done, then returns nil.
// It only reads.
func (s *capsuleService) Watch(ctx context.Context, interval time.Duration, onTick TickFunc) error {
	if interval <= 0 {
		return fmt.Errorf("%w: refresh interval must be positive", common.ErrValidation)
	}

	sealed := make(map[int64]bool)
	scan := func(now time.Time) []models.Capsule {
		items, err := s.List(ctx)
		if err != nil {
			s.logger.Warn(ctx, "capsule refresh failed", "error", err)
			return nil
		}
		var unlocked []models.Capsule
		seen := make(map[int64]bool, len(items))
		for _, c := range items {
			seen[c.ID] = true
			if !IsUnlocked(c, now) {
				sealed[c.ID] = true
				continue
			}
			if sealed[c.ID] {
				unlocked = append(unlocked, c)
				delete(sealed, c.ID)
			}
		}
		for id := range sealed {
			if !seen[id] {
				delete(sealed, id)
			}
		}
		return unlocked
	}
	scan(s.clock.Now())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			now := s.clock.Now()
			onTick(now, scan(now))
		}
	}
}
