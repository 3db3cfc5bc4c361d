package services

import (
	"context"
	"encoding/json"
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

type dailyValue interface {
	~string
	Valid() bool
}

// DailyLog records at most one value per local calendar day.
type DailyLog[V dailyValue] struct {
	kind   string
	store  *collection.Store[models.DailyEntry[V]]
	repo   slots.Repository
	logger logging.Logger
	clock  timex.Clock
	legacy legacyDay
}

// legacyDay decodes an old single-day slot into the local day it was
// recorded on and its value.
type legacyDay struct {
	slot   string
	decode func(raw string, loc *time.Location) (day, value string, err error)
}

func newDailyLog[V dailyValue](kind, slot string, legacy legacyDay, repo slots.Repository, logger logging.Logger, clock timex.Clock) *DailyLog[V] {
	schema := collection.Schema[models.DailyEntry[V]]{
		Slot: slot,
		ID:   func(e models.DailyEntry[V]) int64 { return e.ID },
		Init: func(e *models.DailyEntry[V], id int64, now time.Time) {
			e.ID = id
			e.Day = now.Format(models.DayLayout)
			e.RecordedAt = now.UTC()
		},
	}
	return &DailyLog[V]{
		kind:   kind,
		store:  collection.New(schema, repo, logger, collection.WithClock[models.DailyEntry[V]](clock)),
		repo:   repo,
		logger: logger,
		clock:  clock,
		legacy: legacy,
	}
}

// legacyMood reads {"date":"Sat Mar 01 2025","value":"blue"}.
func legacyMood(raw string, loc *time.Location) (string, string, error) {
	var v struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return "", "", err
	}
	t, err := time.ParseInLocation("Mon Jan 02 2006", v.Date, loc)
	if err != nil {
		return "", "", err
	}
	return t.Format(models.DayLayout), v.Value, nil
}

// legacyWeather reads {"date":"2025-03-01T09:00:00.000Z","weather":"sunny"}.
func legacyWeather(raw string, loc *time.Location) (string, string, error) {
	var v struct {
		Date    string `json:"date"`
		Weather string `json:"weather"`
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return "", "", err
	}
	t, err := timex.ParseInstant(v.Date)
	if err != nil {
		return "", "", err
	}
	return t.In(loc).Format(models.DayLayout), v.Weather, nil
}

func NewMoodLog(repo slots.Repository, logger logging.Logger, clock timex.Clock) *DailyLog[models.Mood] {
	return newDailyLog[models.Mood]("mood", SlotMood, legacyDay{SlotLegacyMood, legacyMood}, repo, logger, clock)
}

func NewWeatherLog(repo slots.Repository, logger logging.Logger, clock timex.Clock) *DailyLog[models.Weather] {
	return newDailyLog[models.Weather]("weather", SlotWeather, legacyDay{SlotLegacyWeather, legacyWeather}, repo, logger, clock)
}

// Record sets today's value, replacing one recorded earlier today.
func (l *DailyLog[V]) Record(ctx context.Context, value V) (models.DailyEntry[V], error) {
	if !value.Valid() {
		return models.DailyEntry[V]{}, fmt.Errorf("%w: unknown %s %q", common.ErrValidation, l.kind, value)
	}

	today, ok, err := l.Today(ctx)
	if err != nil {
		return models.DailyEntry[V]{}, err
	}
	if ok && today.ID != 0 {
		now := l.clock.Now()
		e, found, err := l.store.Update(ctx, today.ID, func(e *models.DailyEntry[V]) {
			e.Value = value
			e.RecordedAt = now.UTC()
		})
		if err != nil || found {
			return e, err
		}
	}
	return l.store.Create(ctx, models.DailyEntry[V]{Value: value})
}

// Today returns the value recorded for the current local day, if any.
// When the log has nothing for today, a value the older single-day slot
// holds for today is returned with a zero ID.
func (l *DailyLog[V]) Today(ctx context.Context) (models.DailyEntry[V], bool, error) {
	items, err := l.store.List(ctx)
	if err != nil {
		return models.DailyEntry[V]{}, false, err
	}
	now := l.clock.Now()
	day := now.Format(models.DayLayout)
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Day == day {
			return items[i], true, nil
		}
	}
	return l.legacyToday(ctx, now)
}

func (l *DailyLog[V]) legacyToday(ctx context.Context, now time.Time) (models.DailyEntry[V], bool, error) {
	raw, found, err := l.repo.Get(ctx, l.legacy.slot)
	if err != nil {
		return models.DailyEntry[V]{}, false, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	if !found {
		return models.DailyEntry[V]{}, false, nil
	}

	day, value, err := l.legacy.decode(raw, now.Location())
	if err != nil {
		l.logger.Warn(ctx, "ignoring unreadable legacy slot", "slot", l.legacy.slot, "error", err)
		return models.DailyEntry[V]{}, false, nil
	}
	v := V(value)
	if day != now.Format(models.DayLayout) || !v.Valid() {
		return models.DailyEntry[V]{}, false, nil
	}
	return models.DailyEntry[V]{Day: day, Value: v}, true, nil
}

// History returns up to limit most recent days, newest first. A limit of
// zero or less returns everything.
func (l *DailyLog[V]) History(ctx context.Context, limit int) ([]models.DailyEntry[V], error) {
	items, err := l.store.List(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(items, func(a, b models.DailyEntry[V]) int {
		switch {
		case a.Day > b.Day:
			return -1
		case a.Day < b.Day:
			return 1
		}
		return 0
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
