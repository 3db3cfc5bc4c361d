package collection

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/antara/internal/common"
	"github.com/dmitrijs2005/antara/internal/logging"
	"github.com/dmitrijs2005/antara/internal/repositories/slots"
	"github.com/dmitrijs2005/antara/internal/timex"
)

type note struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

var noteSchema = Schema[note]{
	Slot: "notes",
	ID:   func(n note) int64 { return n.ID },
	Init: func(n *note, id int64, now time.Time) {
		n.ID = id
		n.CreatedAt = now
	},
}

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newStore(t *testing.T) (*Store[note], *slots.MemoryRepository, *timex.ManualClock) {
	t.Helper()
	repo := slots.NewMemoryRepository()
	clock := timex.NewManualClock(t0)
	return New(noteSchema, repo, logging.Discard(), WithClock[note](clock)), repo, clock
}

func TestList_NeverWrittenIsEmpty(t *testing.T) {
	s, _, _ := newStore(t)

	items, err := s.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestCreate_AppendsAndStamps(t *testing.T) {
	s, _, _ := newStore(t)
	ctx := context.Background()

	rec, err := s.Create(ctx, note{Text: "first"})
	require.NoError(t, err)
	assert.Equal(t, t0.UnixMilli(), rec.ID)
	assert.True(t, rec.CreatedAt.Equal(t0))

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, rec.ID, items[0].ID)
}

func TestCreate_IdsUniqueWithinSameMillisecond(t *testing.T) {
	s, _, _ := newStore(t)
	ctx := context.Background()

	seen := map[int64]bool{}
	for i := 0; i < 50; i++ {
		rec, err := s.Create(ctx, note{Text: "x"})
		require.NoError(t, err)
		require.False(t, seen[rec.ID], "id %d reused", rec.ID)
		seen[rec.ID] = true
	}

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 50)
}

func TestCreate_IdAboveExistingAfterClockSkew(t *testing.T) {
	s, repo, clock := newStore(t)
	ctx := context.Background()

	future := t0.Add(time.Hour).UnixMilli()
	require.NoError(t, repo.Set(ctx, "notes", `[{"id":`+strconv.FormatInt(future, 10)+`,"text":"from the future"}]`))

	clock.Advance(-time.Hour)
	rec, err := s.Create(ctx, note{Text: "now"})
	require.NoError(t, err)
	assert.Equal(t, future+1, rec.ID)
}

func TestCreate_PreservesInsertionOrder(t *testing.T) {
	s, _, clock := newStore(t)
	ctx := context.Background()

	for _, txt := range []string{"a", "b", "c"} {
		_, err := s.Create(ctx, note{Text: txt})
		require.NoError(t, err)
		clock.Advance(time.Second)
	}

	items, err := s.List(ctx)
	require.NoError(t, err)
	got := []string{items[0].Text, items[1].Text, items[2].Text}
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdate_AppliesPatch(t *testing.T) {
	s, _, _ := newStore(t)
	ctx := context.Background()

	a, _ := s.Create(ctx, note{Text: "a"})
	b, _ := s.Create(ctx, note{Text: "b"})

	got, ok, err := s.Update(ctx, b.ID, func(n *note) { n.Text = "B" })
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "B", got.Text)

	items, _ := s.List(ctx)
	want := []note{a, {ID: b.ID, Text: "B", CreatedAt: b.CreatedAt}}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Fatalf("after update (-want +got):\n%s", diff)
	}
}

func TestUpdate_MissWritesNothing(t *testing.T) {
	s, repo, _ := newStore(t)
	ctx := context.Background()

	_, _ = s.Create(ctx, note{Text: "a"})
	before, _, _ := repo.Get(ctx, "notes")

	repo.SetErr = errors.New("must not write")
	_, ok, err := s.Update(ctx, 42, func(n *note) { n.Text = "zzz" })
	require.NoError(t, err)
	require.False(t, ok)

	after, _, _ := repo.Get(ctx, "notes")
	assert.Equal(t, before, after)
}

func TestDelete_RemovesExactlyOne(t *testing.T) {
	s, _, _ := newStore(t)
	ctx := context.Background()

	a, _ := s.Create(ctx, note{Text: "a"})
	b, _ := s.Create(ctx, note{Text: "b"})
	c, _ := s.Create(ctx, note{Text: "c"})

	ok, err := s.Delete(ctx, b.ID)
	require.NoError(t, err)
	require.True(t, ok)

	items, _ := s.List(ctx)
	require.Len(t, items, 2)
	assert.Equal(t, a.ID, items[0].ID)
	assert.Equal(t, c.ID, items[1].ID)

	ok, err = s.Delete(ctx, b.ID)
	require.NoError(t, err)
	require.False(t, ok)

	items, _ = s.List(ctx)
	require.Len(t, items, 2)
}

func TestDelete_IdNeverReused(t *testing.T) {
	s, _, _ := newStore(t)
	ctx := context.Background()

	a, _ := s.Create(ctx, note{Text: "a"})
	_, _ = s.Delete(ctx, a.ID)

	b, err := s.Create(ctx, note{Text: "b"})
	require.NoError(t, err)
	assert.Greater(t, b.ID, a.ID)
}

func TestGet(t *testing.T) {
	s, _, _ := newStore(t)
	ctx := context.Background()

	a, _ := s.Create(ctx, note{Text: "a"})

	got, ok, err := s.Get(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", got.Text)

	_, ok, err = s.Get(ctx, a.ID+1)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestList_MalformedTreatedAsEmptyAndLogged(t *testing.T) {
	repo := slots.NewMemoryRepository()
	var buf bytes.Buffer
	logger := logging.New(&buf, "debug", "text")
	s := New(noteSchema, repo, logger)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "notes", "{not json"))

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "slot=notes")
}

func TestList_JSONNullIsEmpty(t *testing.T) {
	s, repo, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, "notes", "null"))

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestCreate_StorageFailureLeavesPriorValue(t *testing.T) {
	s, repo, _ := newStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, note{Text: "kept"})
	require.NoError(t, err)
	before, _, _ := repo.Get(ctx, "notes")

	repo.SetErr = errors.New("quota exceeded")
	_, err = s.Create(ctx, note{Text: "lost"})
	require.ErrorIs(t, err, common.ErrStorage)

	_, _, err = s.Update(ctx, 0, func(*note) {})
	require.NoError(t, err)

	after, _, _ := repo.Get(ctx, "notes")
	assert.Equal(t, before, after)
}

func TestCreate_SQLMediumRejectsWrite(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM slots WHERE key = ?`)).
		WithArgs("notes").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`[{"id":1,"text":"old"}]`))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO slots`)).
		WillReturnError(errors.New("database or disk is full"))

	s := New(noteSchema, slots.NewSQLiteRepository(db), logging.Discard(), WithClock[note](timex.NewManualClock(t0)))
	_, err = s.Create(context.Background(), note{Text: "new"})
	require.ErrorIs(t, err, common.ErrStorage)
	require.NoError(t, mock.ExpectationsWereMet())
}
