package eventtypes

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// EventTypeRepository интерфейс репозитория типов событий
type EventTypeRepository interface {
	Create(ctx context.Context, eventType *domain.EventType) (*domain.EventType, error)
	GetByID(ctx context.Context, id int64) (*domain.EventType, error)
	GetBySlug(ctx context.Context, slug string) (*domain.EventType, error)
	List(ctx context.Context) ([]*domain.EventType, error)
	Update(ctx context.Context, eventType *domain.EventType) (*domain.EventType, error)
	Delete(ctx context.Context, id int64) error
	HasScheduledMeetings(ctx context.Context, id int64) (bool, error)
}

// TransactionManager выполняет функцию в сериализуемой транзакции
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
