package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
	"github.com/m04kA/SMC-SchedulingService/pkg/validation"
)

// Service сервис для управления недельным расписанием хоста
type Service struct {
	availabilityRepo AvailabilityRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(availabilityRepo AvailabilityRepository, logger Logger) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		logger:           logger,
	}
}

// List возвращает окна доступности в порядке Monday..Sunday
func (s *Service) List(ctx context.Context) (*models.AvailabilityListResponse, error) {
	windows, err := s.availabilityRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].DayOfWeek.WeekPosition() < windows[j].DayOfWeek.WeekPosition()
	})

	s.logger.Info("List: successfully fetched %d availability windows", len(windows))
	return models.FromDomainWindowList(windows), nil
}

// Upsert создает окно для дня недели или заменяет существующее
func (s *Service) Upsert(ctx context.Context, req *models.UpsertAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("Upsert: day=%s, %s-%s", req.DayOfWeek, req.StartTime, req.EndTime)

	window, err := toDomainWindow(req)
	if err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.availabilityRepo.Upsert(ctx, window)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrInvalidWindow) {
			s.logger.Warn("Upsert: database rejected window for %s", window.DayOfWeek)
			return nil, fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
		}
		s.logger.Error("Upsert: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: saved availability id=%d for %s", saved.ID, saved.DayOfWeek)
	return models.FromDomainWindow(saved), nil
}

// Delete удаляет окно доступности по ID
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting availability id=%d", id)

	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	if err := s.availabilityRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			s.logger.Warn("Delete: availability id=%d not found", id)
			return ErrAvailabilityNotFound
		}
		s.logger.Error("Delete: repository error for availability id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted availability id=%d", id)
	return nil
}

// toDomainWindow валидирует запрос и приводит значения к каноническому виду
func toDomainWindow(req *models.UpsertAvailabilityRequest) (*domain.AvailabilityWindow, error) {
	req.DayOfWeek = strings.TrimSpace(req.DayOfWeek)
	req.StartTime = strings.TrimSpace(req.StartTime)
	req.EndTime = strings.TrimSpace(req.EndTime)
	req.Timezone = strings.TrimSpace(req.Timezone)

	if err := validation.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	day, err := domain.ParseDayOfWeek(req.DayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = domain.DefaultTimezone
	}

	window := &domain.AvailabilityWindow{
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
		Timezone:  timezone,
	}

	if err := window.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return window, nil
}
