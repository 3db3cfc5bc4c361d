package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/antara/internal/collection"
	"github.com/dmitrijs2005/antara/internal/logging"
	"github.com/dmitrijs2005/antara/internal/models"
	"github.com/dmitrijs2005/antara/internal/repositories/slots"
	"github.com/dmitrijs2005/antara/internal/timex"
)

// gratitudeDateLayout matches a short locale date, e.g. "3/1/2025".
const gratitudeDateLayout = "1/2/2006"

type GratitudeService interface {
	Add(ctx context.Context, text string) (models.GratitudeNote, error)
	List(ctx context.Context) ([]models.GratitudeNote, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type gratitudeService struct {
	store *collection.Store[models.GratitudeNote]
}

func NewGratitudeService(repo slots.Repository, logger logging.Logger, clock timex.Clock) GratitudeService {
	schema := collection.Schema[models.GratitudeNote]{
		Slot: SlotGratitude,
		ID:   func(n models.GratitudeNote) int64 { return n.ID },
		Init: func(n *models.GratitudeNote, id int64, now time.Time) {
			n.ID = id
			n.Date = now.Format(gratitudeDateLayout)
		},
	}
	return &gratitudeService{store: collection.New(schema, repo, logger, collection.WithClock[models.GratitudeNote](clock))}
}

func (s *gratitudeService) Add(ctx context.Context, text string) (models.GratitudeNote, error) {
	if err := required("text", text); err != nil {
		return models.GratitudeNote{}, err
	}
	return s.store.Create(ctx, models.GratitudeNote{Text: text})
}

func (s *gratitudeService) List(ctx context.Context) ([]models.GratitudeNote, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return newestFirst(items, func(x models.GratitudeNote) int64 { return x.ID }), nil
}

func (s *gratitudeService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.store.Delete(ctx, id)
}

type AffirmationService interface {
	Add(ctx context.Context, text string) (models.Affirmation, error)
	List(ctx context.Context) ([]models.Affirmation, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type affirmationService struct {
	store *collection.Store[models.Affirmation]
}

func NewAffirmationService(repo slots.Repository, logger logging.Logger, clock timex.Clock) AffirmationService {
	schema := collection.Schema[models.Affirmation]{
		Slot: SlotAffirmations,
		ID:   func(a models.Affirmation) int64 { return a.ID },
		Init: func(a *models.Affirmation, id int64, _ time.Time) { a.ID = id },
	}
	return &affirmationService{store: collection.New(schema, repo, logger, collection.WithClock[models.Affirmation](clock))}
}

func (s *affirmationService) Add(ctx context.Context, text string) (models.Affirmation, error) {
	if err := required("text", text); err != nil {
		return models.Affirmation{}, err
	}
	return s.store.Create(ctx, models.Affirmation{Text: trim(text)})
}

func (s *affirmationService) List(ctx context.Context) ([]models.Affirmation, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return newestFirst(items, func(x models.Affirmation) int64 { return x.ID }), nil
}

func (s *affirmationService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.store.Delete(ctx, id)
}

type TodoService interface {
	Add(ctx context.Context, text string) (models.Todo, error)
	Toggle(ctx context.Context, id int64) (models.Todo, error)
	List(ctx context.Context) ([]models.Todo, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type todoService struct {
	store *collection.Store[models.Todo]
}

func NewTodoService(repo slots.Repository, logger logging.Logger, clock timex.Clock) TodoService {
	schema := collection.Schema[models.Todo]{
		Slot: SlotTodos,
		ID:   func(t models.Todo) int64 { return t.ID },
		Init: func(t *models.Todo, id int64, _ time.Time) { t.ID = id },
	}
	return &todoService{store: collection.New(schema, repo, logger, collection.WithClock[models.Todo](clock))}
}

func (s *todoService) Add(ctx context.Context, text string) (models.Todo, error) {
	if err := required("text", text); err != nil {
		return models.Todo{}, err
	}
	return s.store.Create(ctx, models.Todo{Text: trim(text)})
}

// Toggle flips the completed flag.
func (s *todoService) Toggle(ctx context.Context, id int64) (models.Todo, error) {
	t, ok, err := s.store.Update(ctx, id, func(t *models.Todo) { t.Completed = !t.Completed })
	if err != nil {
		return models.Todo{}, err
	}
	if !ok {
		return models.Todo{}, notFound("todo", id)
	}
	return t, nil
}

func (s *todoService) List(ctx context.Context) ([]models.Todo, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return newestFirst(items, func(x models.Todo) int64 { return x.ID }), nil
}

func (s *todoService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.store.Delete(ctx, id)
}
