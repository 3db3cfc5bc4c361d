package models

import "time"

// JournalDateLayout is the human-readable date stored alongside each entry.
const JournalDateLayout = "Monday, January 2, 2006"

type JournalEntry struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
}

type GratitudeNote struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
	Date string `json:"date"`
}

type Affirmation struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

type Todo struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}
