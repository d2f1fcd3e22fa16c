package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// EventTypeRepository интерфейс репозитория типов событий
type EventTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.EventType, error)
}

// MeetingRepository интерфейс репозитория встреч
type MeetingRepository interface {
	Create(ctx context.Context, meeting *domain.Meeting) (*domain.Meeting, error)
	// ListScheduledByDate внутри транзакции блокирует строки встреч на дату
	ListScheduledByDate(ctx context.Context, date time.Time) ([]*domain.Meeting, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// DateLocker взаимное исключение бронирований на одну дату внутри процесса
type DateLocker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// Metrics интерфейс бизнес-метрик (реализуется *metrics.Metrics)
type Metrics interface {
	RecordBookingCreated()
	RecordBookingConflict(source string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
