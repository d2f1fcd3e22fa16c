package domain

import "time"

// EventType bookable meeting template with a fixed duration
type EventType struct {
	ID              int64
	Name            string
	Slug            string // уникальный, используется в ссылке на бронирование
	DurationMinutes int
	Description     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
