package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrEventTypeNotFound возвращается, когда тип события не найден
	ErrEventTypeNotFound = errors.New("create_booking: event type not found")

	// ErrSlotNotAvailable возвращается, когда запрошенное время пересекается с запланированной встречей
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// Уточнения ErrInvalidInput: errors.Is(err, ErrInvalidInput) выполняется для каждой
	ErrMissingFields       = fmt.Errorf("%w: required field is missing", ErrInvalidInput)
	ErrInvalidEmail        = fmt.Errorf("%w: invalid invitee email", ErrInvalidInput)
	ErrFieldTooLong        = fmt.Errorf("%w: field is too long", ErrInvalidInput)
	ErrInvalidDate         = fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	ErrInvalidTime         = fmt.Errorf("%w: time must be in HH:MM format", ErrInvalidInput)
	ErrMeetingPastMidnight = fmt.Errorf("%w: meeting must end by midnight", ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// Источники конфликта для метрик
const (
	conflictSourceOverlap  = "overlap"
	conflictSourceDatabase = "database"
)
