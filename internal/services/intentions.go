package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/antara/internal/collection"
	"github.com/dmitrijs2005/antara/internal/common"
	"github.com/dmitrijs2005/antara/internal/logging"
	"github.com/dmitrijs2005/antara/internal/models"
	"github.com/dmitrijs2005/antara/internal/repositories/slots"
	"github.com/dmitrijs2005/antara/internal/timex"
)

type IntentionService interface {
	Add(ctx context.Context, text string, area models.Area, cycle models.Cycle) (models.Intention, error)
	Toggle(ctx context.Context, id int64) (models.Intention, error)
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]models.Intention, error)
	ByCycle(ctx context.Context, cycle models.Cycle) ([]models.Intention, error)
}

type intentionService struct {
	store *collection.Store[models.Intention]
}

func NewIntentionService(repo slots.Repository, logger logging.Logger, clock timex.Clock) IntentionService {
	schema := collection.Schema[models.Intention]{
		Slot: SlotIntentions,
		ID:   func(i models.Intention) int64 { return i.ID },
		Init: func(i *models.Intention, id int64, now time.Time) {
			i.ID = id
			i.CreatedAt = now.UTC()
		},
	}
	return &intentionService{store: collection.New(schema, repo, logger, collection.WithClock[models.Intention](clock))}
}

func (s *intentionService) Add(ctx context.Context, text string, area models.Area, cycle models.Cycle) (models.Intention, error) {
	if err := required("text", text); err != nil {
		return models.Intention{}, err
	}
	if area == "" {
		area = models.AreaPersonal
	}
	if !area.Valid() {
		return models.Intention{}, fmt.Errorf("%w: unknown area %q", common.ErrValidation, area)
	}
	if !cycle.Valid() {
		return models.Intention{}, fmt.Errorf("%w: unknown cycle %q", common.ErrValidation, cycle)
	}
	return s.store.Create(ctx, models.Intention{Text: trim(text), Area: area, Cycle: cycle})
}

func (s *intentionService) Toggle(ctx context.Context, id int64) (models.Intention, error) {
	it, ok, err := s.store.Update(ctx, id, func(i *models.Intention) { i.Completed = !i.Completed })
	if err != nil {
		return models.Intention{}, err
	}
	if !ok {
		return models.Intention{}, notFound("intention", id)
	}
	return it, nil
}

func (s *intentionService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.store.Delete(ctx, id)
}

func (s *intentionService) List(ctx context.Context) ([]models.Intention, error) {
	return s.store.List(ctx)
}

// ByCycle keeps insertion order.
func (s *intentionService) ByCycle(ctx context.Context, cycle models.Cycle) ([]models.Intention, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Intention, 0, len(items))
	for _, it := range items {
		if it.Cycle == cycle {
			out = append(out, it)
		}
	}
	return out, nil
}
