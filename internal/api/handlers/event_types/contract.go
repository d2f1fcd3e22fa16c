package event_types

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/eventtypes/models"
)

type EventTypeService interface {
	List(ctx context.Context) (*models.EventTypeListResponse, error)
	GetBySlug(ctx context.Context, slug string) (*models.EventTypeResponse, error)
	Create(ctx context.Context, req *models.EventTypeRequest) (*models.EventTypeResponse, error)
	Update(ctx context.Context, id int64, req *models.EventTypeRequest) (*models.EventTypeResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
