package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/antara/internal/collection"
	"github.com/dmitrijs2005/antara/internal/common"
	"github.com/dmitrijs2005/antara/internal/logging"
	"github.com/dmitrijs2005/antara/internal/models"
	"github.com/dmitrijs2005/antara/internal/repositories/slots"
	"github.com/dmitrijs2005/antara/internal/timex"
)

type LibraryService interface {
	AddBook(ctx context.Context, title, author string, status models.BookStatus) (models.Book, error)
	SetStatus(ctx context.Context, id int64, status models.BookStatus) (models.Book, error)
	SetProgress(ctx context.Context, id int64, progress int) (models.Book, error)
	SetReview(ctx context.Context, id int64, review string) (models.Book, error)
	AddSpark(ctx context.Context, bookID int64, text string) (models.Spark, error)
	DeleteSpark(ctx context.Context, bookID, sparkID int64) (bool, error)
	DeleteBook(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]models.Book, error)
	ByStatus(ctx context.Context, status models.BookStatus) ([]models.Book, error)
}

type libraryService struct {
	store *collection.Store[models.Book]
	clock timex.Clock

	lastSparkID int64
}

func NewLibraryService(repo slots.Repository, logger logging.Logger, clock timex.Clock) LibraryService {
	schema := collection.Schema[models.Book]{
		Slot: SlotLibrary,
		ID:   func(b models.Book) int64 { return b.ID },
		Init: func(b *models.Book, id int64, now time.Time) {
			b.ID = id
			b.AddedAt = now.UTC()
			if b.Sparks == nil {
				b.Sparks = []models.Spark{}
			}
		},
	}
	return &libraryService{
		store: collection.New(schema, repo, logger, collection.WithClock[models.Book](clock)),
		clock: clock,
	}
}

func (s *libraryService) AddBook(ctx context.Context, title, author string, status models.BookStatus) (models.Book, error) {
	if err := required("title", title); err != nil {
		return models.Book{}, err
	}
	if status == "" {
		status = models.StatusWishlist
	}
	if !status.Valid() {
		return models.Book{}, fmt.Errorf("%w: unknown status %q", common.ErrValidation, status)
	}
	return s.store.Create(ctx, models.Book{Title: trim(title), Author: trim(author), Status: status})
}

func (s *libraryService) update(ctx context.Context, id int64, patch func(*models.Book)) (models.Book, error) {
	b, ok, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return models.Book{}, err
	}
	if !ok {
		return models.Book{}, notFound("book", id)
	}
	return b, nil
}

func (s *libraryService) SetStatus(ctx context.Context, id int64, status models.BookStatus) (models.Book, error) {
	if !status.Valid() {
		return models.Book{}, fmt.Errorf("%w: unknown status %q", common.ErrValidation, status)
	}
	return s.update(ctx, id, func(b *models.Book) { b.Status = status })
}

func (s *libraryService) SetProgress(ctx context.Context, id int64, progress int) (models.Book, error) {
	if progress < 0 || progress > 100 {
		return models.Book{}, fmt.Errorf("%w: progress must be within 0..100", common.ErrValidation)
	}
	return s.update(ctx, id, func(b *models.Book) { b.Progress = progress })
}

func (s *libraryService) SetReview(ctx context.Context, id int64, review string) (models.Book, error) {
	return s.update(ctx, id, func(b *models.Book) { b.Review = review })
}

// AddSpark appends a note to a book. Spark ids follow the same
// time-derived scheme as records and are unique within the book.
func (s *libraryService) AddSpark(ctx context.Context, bookID int64, text string) (models.Spark, error) {
	if err := required("text", text); err != nil {
		return models.Spark{}, err
	}

	var spark models.Spark
	_, err := s.update(ctx, bookID, func(b *models.Book) {
		now := s.clock.Now()
		id := max(now.UnixMilli(), s.lastSparkID+1)
		for _, sp := range b.Sparks {
			id = max(id, sp.ID+1)
		}
		s.lastSparkID = id
		spark = models.Spark{ID: id, Text: trim(text), Date: now.UTC()}
		b.Sparks = append(b.Sparks, spark)
	})
	if err != nil {
		return models.Spark{}, err
	}
	return spark, nil
}

func (s *libraryService) DeleteSpark(ctx context.Context, bookID, sparkID int64) (bool, error) {
	removed := false
	_, err := s.update(ctx, bookID, func(b *models.Book) {
		n := len(b.Sparks)
		b.Sparks = slices.DeleteFunc(b.Sparks, func(sp models.Spark) bool { return sp.ID == sparkID })
		removed = len(b.Sparks) != n
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

func (s *libraryService) DeleteBook(ctx context.Context, id int64) (bool, error) {
	return s.store.Delete(ctx, id)
}

func (s *libraryService) List(ctx context.Context) ([]models.Book, error) {
	return s.store.List(ctx)
}

func (s *libraryService) ByStatus(ctx context.Context, status models.BookStatus) ([]models.Book, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(items, func(b models.Book) bool { return b.Status != status }), nil
}
