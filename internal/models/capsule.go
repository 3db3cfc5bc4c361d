package models

import (
	"time"

	"github.com/dmitrijs2005/antara/internal/timex"
)

// Capsule is a message sealed until RevealDate.
//
// IsRead is carried for layout compatibility; whether a capsule has been
// opened is session state and is not derived from it.
type Capsule struct {
	ID         int64         `json:"id"`
	Title      string        `json:"title"`
	Message    string        `json:"message"`
	RevealDate timex.Instant `json:"revealDate"`
	CreatedAt  time.Time     `json:"createdAt"`
	IsRead     bool          `json:"isRead"`
}

// RevealAt returns the reveal instant.
func (c Capsule) RevealAt() time.Time { return c.RevealDate.Time }
