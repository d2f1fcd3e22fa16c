package export_meeting_ics

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/meetings/models"
)

type MeetingService interface {
	ExportICS(ctx context.Context, id int64) (*models.CalendarFile, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
