package services

// Slot names of the persisted layout.
const (
	SlotJournal      = "journal_entries"
	SlotGratitude    = "gratitude_jar"
	SlotIntentions   = "antara_intentions"
	SlotLibrary      = "antara_library"
	SlotCapsules     = "antara_capsules"
	SlotAffirmations = "affirmations"
	SlotTodos        = "todos"
	SlotMood         = "antara_mood_log"
	SlotWeather      = "antara_weather_log"
	SlotTheme        = "theme"
	SlotFont         = "font"

	// Single-day slots written by older versions. Read only.
	SlotLegacyMood    = "daily_mood"
	SlotLegacyWeather = "antara_weather_today"
)
