package models

import "slices"

type Theme string

const (
	ThemeLight    Theme = "light"
	ThemeGolden   Theme = "golden"
	ThemeMidnight Theme = "midnight"
)

var Themes = []Theme{ThemeLight, ThemeGolden, ThemeMidnight}

func (t Theme) Valid() bool { return slices.Contains(Themes, t) }

type Font string

const (
	FontSerif Font = "serif"
	FontSans  Font = "sans"
)

var Fonts = []Font{FontSerif, FontSans}

func (f Font) Valid() bool { return slices.Contains(Fonts, f) }

// Preferences are stored as two raw string slots, not as a collection.
type Preferences struct {
	Theme Theme
	Font  Font
}

func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeLight, Font: FontSerif}
}
