package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модели

// ListMeetingsRequest запрос списка встреч
// Filter: "" (запланированные), "upcoming", "past", "all"
type ListMeetingsRequest struct {
	Filter string `json:"filter"`
}

// Response модели

// MeetingResponse ответ с данными встречи
type MeetingResponse struct {
	ID              int64  `json:"id"`
	EventTypeID     int64  `json:"eventTypeId"`
	InviteeName     string `json:"inviteeName"`
	InviteeEmail    string `json:"inviteeEmail"`
	MeetingDate     string `json:"meetingDate"` // "2026-10-19"
	MeetingTime     string `json:"meetingTime"` // "10:00"
	Status          string `json:"status"`
	EventName       string `json:"eventName"`
	DurationMinutes int    `json:"durationMinutes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MeetingListResponse ответ со списком встреч
type MeetingListResponse struct {
	Meetings []MeetingResponse `json:"meetings"`
}

// CalendarFile выгрузка встречи в формате iCalendar
type CalendarFile struct {
	FileName string
	Content  []byte
}

// Методы конвертации

// FromDomainMeeting конвертирует domain модель в DTO
func FromDomainMeeting(m *domain.Meeting) *MeetingResponse {
	if m == nil {
		return nil
	}

	return &MeetingResponse{
		ID:              m.ID,
		EventTypeID:     m.EventTypeID,
		InviteeName:     m.InviteeName,
		InviteeEmail:    m.InviteeEmail,
		MeetingDate:     m.MeetingDate.Format(domain.DateFormat),
		MeetingTime:     m.MeetingTime.String(),
		Status:          string(m.Status),
		EventName:       m.EventName,
		DurationMinutes: m.DurationMinutes,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// FromDomainMeetingList конвертирует список domain моделей в DTO
func FromDomainMeetingList(meetings []*domain.Meeting) *MeetingListResponse {
	result := make([]MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		if resp := FromDomainMeeting(m); resp != nil {
			result = append(result, *resp)
		}
	}
	return &MeetingListResponse{Meetings: result}
}
