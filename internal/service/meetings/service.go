package meetings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/calendar"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	meetingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/meeting"
	"github.com/m04kA/SMC-SchedulingService/internal/service/meetings/models"
)

// Service сервис для работы со встречами
type Service struct {
	meetingRepo  MeetingRepository
	calendar     CalendarBuilder
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса встреч
func NewService(
	meetingRepo MeetingRepository,
	calendar CalendarBuilder,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		meetingRepo:  meetingRepo,
		calendar:     calendar,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// List получает встречи по фильтру
// "upcoming" и "past" разделяются по сегодняшней дате, "all" включает отмененные
func (s *Service) List(ctx context.Context, req *models.ListMeetingsRequest) (*models.MeetingListResponse, error) {
	scope := domain.MeetingScope(strings.ToLower(strings.TrimSpace(req.Filter)))
	if !scope.IsValid() {
		s.logger.Warn("List: unknown filter=%q", req.Filter)
		return nil, fmt.Errorf("%w: unknown filter %q", ErrInvalidInput, req.Filter)
	}

	now := s.timeProvider.Now()
	filter := domain.MeetingsFilter{
		Scope: scope,
		Today: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}

	s.logger.Info("List: fetching meetings, filter=%q, today=%s", scope, filter.Today.Format(domain.DateFormat))

	meetings, err := s.meetingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d meetings", len(meetings))
	return models.FromDomainMeetingList(meetings), nil
}

// GetByID получает встречу по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.MeetingResponse, error) {
	meeting, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainMeeting(meeting), nil
}

// Cancel отменяет встречу (мягкое удаление, запись остается со статусом cancelled)
// Повторная отмена уже отмененной встречи не является ошибкой
func (s *Service) Cancel(ctx context.Context, id int64) error {
	s.logger.Info("Cancel: cancelling meeting id=%d", id)

	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	if err := s.meetingRepo.UpdateStatus(ctx, id, domain.StatusCancelled); err != nil {
		if errors.Is(err, meetingRepo.ErrMeetingNotFound) {
			s.logger.Warn("Cancel: meeting id=%d not found", id)
			return ErrMeetingNotFound
		}
		s.logger.Error("Cancel: repository error for meeting id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.metrics.RecordMeetingCancelled()
	s.logger.Info("Cancel: successfully cancelled meeting id=%d", id)
	return nil
}

// ExportICS выгружает встречу в формате iCalendar
func (s *Service) ExportICS(ctx context.Context, id int64) (*models.CalendarFile, error) {
	meeting, err := s.get(ctx, "ExportICS", id)
	if err != nil {
		return nil, err
	}

	content, err := s.calendar.Build(meeting, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("ExportICS: failed to build calendar for meeting id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: ExportICS - build calendar: %v", ErrInternal, err)
	}

	return &models.CalendarFile{
		FileName: calendar.FileName(meeting.ID),
		Content:  content,
	}, nil
}

func (s *Service) get(ctx context.Context, method string, id int64) (*domain.Meeting, error) {
	s.logger.Info("%s: fetching meeting id=%d", method, id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	meeting, err := s.meetingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, meetingRepo.ErrMeetingNotFound) {
			s.logger.Warn("%s: meeting id=%d not found", method, id)
			return nil, ErrMeetingNotFound
		}
		s.logger.Error("%s: repository error for meeting id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}

	return meeting, nil
}
