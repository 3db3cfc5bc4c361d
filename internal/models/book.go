package models

import (
	"slices"
	"time"
)

// BookStatus is the shelf a book sits on.
type BookStatus string

const (
	StatusWishlist  BookStatus = "wishlist"
	StatusCurrent   BookStatus = "current"
	StatusCompleted BookStatus = "completed"
)

var BookStatuses = []BookStatus{StatusWishlist, StatusCurrent, StatusCompleted}

func (s BookStatus) Valid() bool { return slices.Contains(BookStatuses, s) }

// Spark is a short note taken while reading.
type Spark struct {
	ID   int64     `json:"id"`
	Text string    `json:"text"`
	Date time.Time `json:"date"`
}

type Book struct {
	ID       int64      `json:"id"`
	Title    string     `json:"title"`
	Author   string     `json:"author"`
	Status   BookStatus `json:"status"`
	Progress int        `json:"progress"`
	Sparks   []Spark    `json:"sparks"`
	Review   string     `json:"review"`
	AddedAt  time.Time  `json:"addedAt"`
}
