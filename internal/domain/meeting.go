package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// MeetingStatus represents the status of a meeting
type MeetingStatus string

const (
	StatusScheduled MeetingStatus = "scheduled"
	StatusCancelled MeetingStatus = "cancelled"
)

// Meeting booked meeting between the host and an invitee
type Meeting struct {
	ID           int64
	EventTypeID  int64
	InviteeName  string
	InviteeEmail string
	MeetingDate  time.Time
	MeetingTime  types.TimeString
	Status       MeetingStatus

	// Joined from event_types
	EventName       string
	DurationMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsScheduled returns true if the meeting takes part in overlap checks
func (m *Meeting) IsScheduled() bool {
	return m.Status == StatusScheduled
}

// IsCancelled returns true if the meeting has been cancelled
func (m *Meeting) IsCancelled() bool {
	return m.Status == StatusCancelled
}

// Interval returns [start, start+duration) in minutes since midnight
func (m *Meeting) Interval() (Interval, error) {
	start, err := m.MeetingTime.Minutes()
	if err != nil {
		return Interval{}, err
	}
	return NewInterval(start, m.DurationMinutes), nil
}

// MeetingScope partition of the meetings listing
type MeetingScope string

const (
	ScopeScheduled MeetingScope = ""         // все запланированные, без отмененных
	ScopeUpcoming  MeetingScope = "upcoming" // запланированные с датой >= сегодня
	ScopePast      MeetingScope = "past"     // запланированные с датой < сегодня
	ScopeAll       MeetingScope = "all"      // все, включая отмененные
)

// IsValid returns true for known scopes
func (s MeetingScope) IsValid() bool {
	switch s {
	case ScopeScheduled, ScopeUpcoming, ScopePast, ScopeAll:
		return true
	default:
		return false
	}
}

// MeetingsFilter фильтр списка встреч
type MeetingsFilter struct {
	Scope MeetingScope
	Today time.Time // граница upcoming/past (только дата)
}
