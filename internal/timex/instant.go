package timex

import (
	"encoding/json"
	"fmt"
	"time"
)

// LocalMinuteLayout is the form produced by a datetime-local input,
// e.g. "2025-03-01T09:30". It carries no zone and is read as local time.
const LocalMinuteLayout = "2006-01-02T15:04"

// Instant is a time.Time that marshals as RFC 3339 and unmarshals from
// RFC 3339, LocalMinuteLayout, or a bare date.
type Instant struct {
	time.Time
}

func NewInstant(t time.Time) Instant { return Instant{Time: t} }

func (i Instant) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Time.Format(time.RFC3339Nano))
}

func (i *Instant) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := ParseInstant(s)
	if err != nil {
		return err
	}
	i.Time = t
	return nil
}

// ParseInstant accepts RFC 3339 (with or without fractional seconds),
// LocalMinuteLayout, and "2006-01-02".
func ParseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{LocalMinuteLayout, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}
