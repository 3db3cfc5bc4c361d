// Package collection persists small typed record lists, one list per slot.
//
// Every feature of the journal keeps its data in a Store configured by a
// Schema. A Store reads the whole list on each call and writes the whole
// list back on each mutation; lists are expected to stay in the hundreds.
package collection

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/antara/internal/common"
	"github.com/dmitrijs2005/antara/internal/logging"
	"github.com/dmitrijs2005/antara/internal/repositories/slots"
	"github.com/dmitrijs2005/antara/internal/timex"
)

// Schema describes how records of type T live in a slot.
type Schema[T any] struct {
	// Slot is the storage key the list is kept under.
	Slot string
	// ID extracts the record identity.
	ID func(T) int64
	// Init stamps a fresh id and creation time on a new record.
	Init func(rec *T, id int64, now time.Time)
}

// Store is a durable ordered list of T.
type Store[T any] struct {
	schema Schema[T]
	repo   slots.Repository
	clock  timex.Clock
	logger logging.Logger

	mu     sync.Mutex
	lastID int64
}

type Option[T any] func(*Store[T])

// WithClock overrides the clock used for ids and creation stamps.
func WithClock[T any](c timex.Clock) Option[T] {
	return func(s *Store[T]) { s.clock = c }
}

// New returns a store for the collection described by schema.
//
// Nothing is read until the first call; a slot that was never written
// behaves as an empty collection.
//
// Parameters:
//
//	schema - slot name, id accessor and init hook of the record type
//	repo   - key/value medium the collection is persisted in
//	logger - receives a WARN when the stored value cannot be parsed
//	opts   - optional settings such as WithClock
//
// Example:
//
//	todos := collection.New(collection.Schema[models.Todo]{
//	    Slot: "todos",
//	    ID:   func(t models.Todo) int64 { return t.ID },
//	    Init: func(t *models.Todo, id int64, _ time.Time) { t.ID = id },
//	}, repo, logger)
func New[T any](schema Schema[T], repo slots.Repository, logger logging.Logger, opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		schema: schema,
		repo:   repo,
		clock:  timex.SystemClock,
		logger: logger,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// load returns the current list. A missing slot or unparsable value
// yields an empty list; the latter is logged.
func (s *Store[T]) load(ctx context.Context) ([]T, error) {
	raw, found, err := s.repo.Get(ctx, s.schema.Slot)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	if !found || raw == "" {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logger.Warn(ctx, "discarding unreadable collection", "slot", s.schema.Slot, "error", err)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s *Store[T]) persist(ctx context.Context, items []T) error {
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.schema.Slot, err)
	}
	if err := s.repo.Set(ctx, s.schema.Slot, string(b)); err != nil {
		s.logger.Error(ctx, "persist failed", "slot", s.schema.Slot, "error", err)
		return fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return nil
}

// nextID returns max(now in ms, last issued + 1, max existing + 1).
func (s *Store[T]) nextID(now time.Time, items []T) int64 {
	id := now.UnixMilli()
	if s.lastID >= id {
		id = s.lastID + 1
	}
	for _, it := range items {
		if existing := s.schema.ID(it); existing >= id {
			id = existing + 1
		}
	}
	s.lastID = id
	return id
}

// Create stamps payload with a fresh id and the current time, appends it
// and persists the list.
//
// The id is the current time in milliseconds, bumped past the last id this
// store issued and past every id already in the collection, so it stays
// unique when the clock repeats or moves backwards.
//
// Returns:
//
//	The stored record, or an error wrapping common.ErrStorage when the
//	medium refused the write. The persisted value is unchanged on error.
func (s *Store[T]) Create(ctx context.Context, payload T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	now := s.clock.Now()
	rec := payload
	s.schema.Init(&rec, s.nextID(now, items), now)

	if err := s.persist(ctx, append(items, rec)); err != nil {
		var zero T
		return zero, err
	}
	return rec, nil
}

// List returns all records in insertion order.
func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store[T]) Get(ctx context.Context, id int64) (T, bool, error) {
	items, err := s.List(ctx)
	if err != nil {
		var zero T
		return zero, false, err
	}
	for _, it := range items {
		if s.schema.ID(it) == id {
			return it, true, nil
		}
	}
	var zero T
	return zero, false, nil
}

// Update applies patch to the record with the given id and persists.
//
// Parameters:
//
//	id    - identity of the record to change
//	patch - mutates the record in place; it must not change the id
//
// Returns:
//
//	The updated record and true on success. An unknown id reports false
//	and writes nothing. Storage failures wrap common.ErrStorage.
func (s *Store[T]) Update(ctx context.Context, id int64, patch func(*T)) (T, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	items, err := s.load(ctx)
	if err != nil {
		return zero, false, err
	}

	for i := range items {
		if s.schema.ID(items[i]) != id {
			continue
		}
		patch(&items[i])
		if err := s.persist(ctx, items); err != nil {
			return zero, false, err
		}
		return items[i], true, nil
	}
	return zero, false, nil
}

// Delete removes the record with the given id. An unknown id is a no-op.
func (s *Store[T]) Delete(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	for i := range items {
		if s.schema.ID(items[i]) != id {
			continue
		}
		kept := append(items[:i:i], items[i+1:]...)
		if err := s.persist(ctx, kept); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}
