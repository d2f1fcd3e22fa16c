package domain

// Ограничения на значения, которые задает хост
const (
	MinEventDurationMinutes = 1
	MaxEventDurationMinutes = 1440 // сутки
	MaxNameLength           = 255
	MaxSlugLength           = 255
	MaxDescriptionLength    = 2000
	MaxInviteeNameLength    = 255
	MaxInviteeEmailLength   = 255
)

// DefaultTimezone метка часового пояса по умолчанию (только для отображения)
const DefaultTimezone = "UTC"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
