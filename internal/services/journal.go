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

const untitled = "Untitled"

type JournalService interface {
	Write(ctx context.Context, title, content string) (models.JournalEntry, error)
	List(ctx context.Context) ([]models.JournalEntry, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type journalService struct {
	store *collection.Store[models.JournalEntry]
}

func NewJournalService(repo slots.Repository, logger logging.Logger, clock timex.Clock) JournalService {
	schema := collection.Schema[models.JournalEntry]{
		Slot: SlotJournal,
		ID:   func(e models.JournalEntry) int64 { return e.ID },
		Init: func(e *models.JournalEntry, id int64, now time.Time) {
			e.ID = id
			e.Date = now.Format(models.JournalDateLayout)
			e.Timestamp = now.UTC()
		},
	}
	return &journalService{store: collection.New(schema, repo, logger, collection.WithClock[models.JournalEntry](clock))}
}

// Write stores a new entry. A blank title becomes "Untitled".
func (s *journalService) Write(ctx context.Context, title, content string) (models.JournalEntry, error) {
	if err := required("content", content); err != nil {
		return models.JournalEntry{}, err
	}
	title = trim(title)
	if title == "" {
		title = untitled
	}
	return s.store.Create(ctx, models.JournalEntry{Title: title, Content: content})
}

func (s *journalService) List(ctx context.Context) ([]models.JournalEntry, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return newestFirst(items, func(x models.JournalEntry) int64 { return x.ID }), nil
}

func (s *journalService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.store.Delete(ctx, id)
}
