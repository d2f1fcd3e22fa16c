package create_booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
	"github.com/m04kA/SMC-SchedulingService/pkg/validation"
)

// validatedRequest разобранный и нормализованный запрос
type validatedRequest struct {
	eventTypeID  int64
	inviteeName  string
	inviteeEmail string
	date         time.Time
	startTime    types.TimeString
	startMinutes int
}

// validateRequest валидирует входные данные запроса
// Строки обрезаются по краям до проверки обязательности
func validateRequest(req *Request) (*validatedRequest, error) {
	normalized := Request{
		EventTypeID:  req.EventTypeID,
		InviteeName:  strings.TrimSpace(req.InviteeName),
		InviteeEmail: strings.TrimSpace(req.InviteeEmail),
		Date:         strings.TrimSpace(req.Date),
		Time:         strings.TrimSpace(req.Time),
	}

	if err := validation.Struct(normalized); err != nil {
		return nil, classifyValidationError(err)
	}

	date, err := time.Parse(domain.DateFormat, normalized.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, normalized.Date)
	}

	startTime, err := types.NewTimeStringFromString(normalized.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	// 24:00 граница окончания, начинать встречу в это время нельзя
	if startTime.IsEndOfDay() {
		return nil, fmt.Errorf("%w: %q is end of day", ErrInvalidTime, normalized.Time)
	}

	startMinutes, err := startTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}

	return &validatedRequest{
		eventTypeID:  normalized.EventTypeID,
		inviteeName:  normalized.InviteeName,
		inviteeEmail: normalized.InviteeEmail,
		date:         date,
		startTime:    startTime,
		startMinutes: startMinutes,
	}, nil
}

// classifyValidationError выбирает самую точную причину:
// отсутствующее поле важнее неверного email, неверный email важнее длины
func classifyValidationError(err error) error {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	switch {
	case verr.HasTag("required") || verr.HasTag("gt"):
		return fmt.Errorf("%w: %v", ErrMissingFields, err)
	case verr.HasTag("email"):
		return fmt.Errorf("%w: %v", ErrInvalidEmail, err)
	case verr.HasTag("max"):
		return fmt.Errorf("%w: %v", ErrFieldTooLong, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
}

// validateFitsDay проверяет, что встреча заканчивается не позже полуночи
func validateFitsDay(requested domain.Interval) error {
	if requested.End > types.MinutesPerDay {
		return fmt.Errorf("%w: ends at minute %d", ErrMeetingPastMidnight, requested.End)
	}
	return nil
}

// findConflict возвращает первую запланированную встречу, пересекающуюся с запрошенным интервалом
// Длительность каждой встречи берется из её собственного типа события
func findConflict(requested domain.Interval, meetings []*domain.Meeting) *domain.Meeting {
	for _, meeting := range meetings {
		if !meeting.IsScheduled() {
			continue
		}
		interval, err := meeting.Interval()
		if err != nil {
			continue
		}
		if requested.Overlaps(interval) {
			return meeting
		}
	}
	return nil
}
