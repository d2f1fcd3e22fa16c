package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	EventTypeID  int64  `json:"eventTypeId"`
	InviteeName  string `json:"inviteeName"`
	InviteeEmail string `json:"inviteeEmail"`
	MeetingDate  string `json:"meetingDate"` // "2026-10-19"
	MeetingTime  string `json:"meetingTime"` // "10:00"
}

// MeetingResponse HTTP response model
type MeetingResponse struct {
	ID              int64  `json:"id"`
	EventTypeID     int64  `json:"eventTypeId"`
	InviteeName     string `json:"inviteeName"`
	InviteeEmail    string `json:"inviteeEmail"`
	MeetingDate     string `json:"meetingDate"`
	MeetingTime     string `json:"meetingTime"`
	Status          string `json:"status"`
	EventName       string `json:"eventName"`
	DurationMinutes int    `json:"durationMinutes"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Разбор даты и времени выполняет use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		EventTypeID:  r.EventTypeID,
		InviteeName:  r.InviteeName,
		InviteeEmail: r.InviteeEmail,
		Date:         r.MeetingDate,
		Time:         r.MeetingTime,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *MeetingResponse {
	return &MeetingResponse{
		ID:              resp.ID,
		EventTypeID:     resp.EventTypeID,
		InviteeName:     resp.InviteeName,
		InviteeEmail:    resp.InviteeEmail,
		MeetingDate:     resp.MeetingDate.Format(domain.DateFormat),
		MeetingTime:     resp.MeetingTime.String(),
		Status:          resp.Status,
		EventName:       resp.EventName,
		DurationMinutes: resp.DurationMinutes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
