package eventtypes

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	eventTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/eventtype"
	"github.com/m04kA/SMC-SchedulingService/internal/service/eventtypes/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
	"github.com/m04kA/SMC-SchedulingService/pkg/validation"
)

// Service сервис для управления типами событий
type Service struct {
	eventTypeRepo EventTypeRepository
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса типов событий
func NewService(eventTypeRepo EventTypeRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		eventTypeRepo: eventTypeRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// List возвращает все типы событий, новые первыми
func (s *Service) List(ctx context.Context) (*models.EventTypeListResponse, error) {
	list, err := s.eventTypeRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d event types", len(list))
	return models.FromDomainEventTypeList(list), nil
}

// GetBySlug получает тип события по slug из ссылки на бронирование
func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.EventTypeResponse, error) {
	s.logger.Info("GetBySlug: fetching event type slug=%s", slug)

	eventType, err := s.eventTypeRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, s.translate("GetBySlug", err)
	}

	return models.FromDomainEventType(eventType), nil
}

// GetByID получает тип события по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.EventTypeResponse, error) {
	s.logger.Info("GetByID: fetching event type id=%d", id)

	eventType, err := s.eventTypeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.translate("GetByID", err)
	}

	return models.FromDomainEventType(eventType), nil
}

// Create создает новый тип события
func (s *Service) Create(ctx context.Context, req *models.EventTypeRequest) (*models.EventTypeResponse, error) {
	req.Normalize()
	s.logger.Info("Create: creating event type slug=%s, duration=%d", req.Slug, req.DurationMinutes)

	if err := validation.Struct(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.eventTypeRepo.Create(ctx, req.ToDomain())
	if err != nil {
		return nil, s.translate("Create", err)
	}

	s.logger.Info("Create: successfully created event type id=%d", created.ID)
	return models.FromDomainEventType(created), nil
}

// Update полностью заменяет поля типа события
// Длительность нельзя изменить, пока у типа есть запланированные встречи:
// иначе уже забронированные интервалы начнут пересекаться
func (s *Service) Update(ctx context.Context, id int64, req *models.EventTypeRequest) (*models.EventTypeResponse, error) {
	req.Normalize()
	s.logger.Info("Update: updating event type id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	if err := validation.Struct(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	eventType := req.ToDomain()
	eventType.ID = id

	var updated *domain.EventType
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := s.eventTypeRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if current.DurationMinutes != eventType.DurationMinutes {
			inUse, err := s.eventTypeRepo.HasScheduledMeetings(txCtx, id)
			if err != nil {
				return err
			}
			if inUse {
				s.logger.Warn("Update: duration change %d -> %d rejected, event type id=%d has scheduled meetings",
					current.DurationMinutes, eventType.DurationMinutes, id)
				return eventTypeRepo.ErrEventTypeInUse
			}
		}

		updated, err = s.eventTypeRepo.Update(txCtx, eventType)
		return err
	})
	if err != nil {
		// Параллельное бронирование этого типа события
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			err = eventTypeRepo.ErrEventTypeInUse
		}
		return nil, s.translate("Update", err)
	}

	s.logger.Info("Update: successfully updated event type id=%d", id)
	return models.FromDomainEventType(updated), nil
}

// Delete удаляет тип события
// Тип события, на который ссылаются встречи, удалить нельзя
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting event type id=%d", id)

	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	if err := s.eventTypeRepo.Delete(ctx, id); err != nil {
		return s.translate("Delete", err)
	}

	s.logger.Info("Delete: successfully deleted event type id=%d", id)
	return nil
}

// translate переводит ошибки репозитория в ошибки сервиса
func (s *Service) translate(method string, err error) error {
	switch {
	case errors.Is(err, eventTypeRepo.ErrEventTypeNotFound):
		s.logger.Warn("%s: event type not found", method)
		return ErrEventTypeNotFound
	case errors.Is(err, eventTypeRepo.ErrDuplicateSlug):
		s.logger.Warn("%s: duplicate slug", method)
		return ErrDuplicateSlug
	case errors.Is(err, eventTypeRepo.ErrEventTypeInUse):
		s.logger.Warn("%s: event type is used by meetings", method)
		return ErrEventTypeInUse
	default:
		s.logger.Error("%s: repository error: %v", method, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
}
