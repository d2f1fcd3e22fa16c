package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// EventTypeRepository интерфейс репозитория типов событий
type EventTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.EventType, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	// GetByDayOfWeek получает окно доступности на день недели
	GetByDayOfWeek(ctx context.Context, day domain.DayOfWeek) (*domain.AvailabilityWindow, error)
}

// MeetingRepository интерфейс репозитория встреч
type MeetingRepository interface {
	// ListScheduledByDate получает запланированные встречи на дату вместе с их длительностью
	ListScheduledByDate(ctx context.Context, date time.Time) ([]*domain.Meeting, error)
}

// Metrics интерфейс бизнес-метрик (реализуется *metrics.Metrics)
type Metrics interface {
	RecordSlotLookup(dayOfWeek string, slots int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
