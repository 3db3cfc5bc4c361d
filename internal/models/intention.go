package models

import (
	"slices"
	"time"
)

type Area string

const (
	AreaPersonal   Area = "personal"
	AreaCareer     Area = "career"
	AreaDevotional Area = "devotional"
	AreaHobby      Area = "hobby"
)

var Areas = []Area{AreaPersonal, AreaCareer, AreaDevotional, AreaHobby}

func (a Area) Valid() bool { return slices.Contains(Areas, a) }

type Cycle string

const (
	CycleWeekly  Cycle = "weekly"
	CycleMonthly Cycle = "monthly"
	CycleYearly  Cycle = "yearly"
)

var Cycles = []Cycle{CycleWeekly, CycleMonthly, CycleYearly}

func (c Cycle) Valid() bool { return slices.Contains(Cycles, c) }

type Intention struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Area      Area      `json:"area"`
	Cycle     Cycle     `json:"cycle"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}
