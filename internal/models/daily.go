package models

import (
	"slices"
	"time"
)

// DayLayout keys daily log entries by local calendar day.
const DayLayout = "2006-01-02"

type Mood string

var Moods = []Mood{"red", "orange", "yellow", "green", "blue", "purple", "pink"}

func (m Mood) Valid() bool { return slices.Contains(Moods, m) }

type Weather string

var Weathers = []Weather{"sunny", "cloudy", "rainy", "stormy", "starlit"}

func (w Weather) Valid() bool { return slices.Contains(Weathers, w) }

// DailyEntry is one value recorded for a calendar day. Recording again on
// the same day overwrites Value.
type DailyEntry[V ~string] struct {
	ID         int64     `json:"id"`
	Day        string    `json:"date"`
	Value      V         `json:"value"`
	RecordedAt time.Time `json:"recordedAt"`
}
