package meetings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// MeetingRepository интерфейс репозитория встреч
type MeetingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Meeting, error)
	List(ctx context.Context, filter domain.MeetingsFilter) ([]*domain.Meeting, error)
	UpdateStatus(ctx context.Context, id int64, status domain.MeetingStatus) error
}

// CalendarBuilder строит iCalendar документ для встречи
type CalendarBuilder interface {
	Build(meeting *domain.Meeting, now time.Time) ([]byte, error)
}

// Metrics интерфейс бизнес-метрик (реализуется *metrics.Metrics)
type Metrics interface {
	RecordMeetingCancelled()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
