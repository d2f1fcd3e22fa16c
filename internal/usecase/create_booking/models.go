package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на создание встречи
type Request struct {
	EventTypeID  int64  `validate:"required,gt=0"`          // ID типа события
	InviteeName  string `validate:"required,max=255"`       // Имя приглашенного
	InviteeEmail string `validate:"required,email,max=255"` // Email приглашенного
	Date         string `validate:"required"`               // Дата в формате YYYY-MM-DD
	Time         string `validate:"required"`               // Время начала "HH:MM" или "HH:MM:SS"
}

// Response модель ответа с созданной встречей
type Response struct {
	ID           int64
	EventTypeID  int64
	InviteeName  string
	InviteeEmail string
	MeetingDate  time.Time
	MeetingTime  types.TimeString
	Status       string

	// Из типа события
	EventName       string
	DurationMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}
