package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/availability"
	eventTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/eventtype"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// UseCase use case для получения свободных слотов на дату
type UseCase struct {
	eventTypeRepo    EventTypeRepository
	availabilityRepo AvailabilityRepository
	meetingRepo      MeetingRepository
	metrics          Metrics
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	eventTypeRepo EventTypeRepository,
	availabilityRepo AvailabilityRepository,
	meetingRepo MeetingRepository,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		eventTypeRepo:    eventTypeRepo,
		availabilityRepo: availabilityRepo,
		meetingRepo:      meetingRepo,
		metrics:          metrics,
		logger:           logger,
	}
}

// Execute выполняет use case получения свободных слотов
// Только чтение, повторный вызов без изменений в БД дает тот же результат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: eventType=%d, date=%s", req.EventTypeID, req.Date)

	// 1. Валидация входных данных
	date, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем тип события
	eventType, err := uc.eventTypeRepo.GetByID(ctx, req.EventTypeID)
	if err != nil {
		if errors.Is(err, eventTypeRepo.ErrEventTypeNotFound) {
			uc.logger.Warn("GetAvailableSlots: event type id=%d not found", req.EventTypeID)
			return nil, ErrEventTypeNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get event type id=%d: %v", req.EventTypeID, err)
		return nil, fmt.Errorf("%w: failed to get event type: %v", ErrInternal, err)
	}

	day := domain.DayOfWeekFromDate(date)
	response := &Response{
		Date:            date,
		EventTypeID:     eventType.ID,
		DayOfWeek:       day,
		DurationMinutes: eventType.DurationMinutes,
		Slots:           []types.TimeString{},
	}

	// 3. Получаем окно доступности на день недели
	window, err := uc.availabilityRepo.GetByDayOfWeek(ctx, day)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			uc.logger.Info("GetAvailableSlots: no availability on %s", day)
			uc.metrics.RecordSlotLookup(string(day), 0)
			return response, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get availability for %s: %v", day, err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	bounds, err := window.Bounds()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: broken availability window id=%d: %v", window.ID, err)
		return nil, fmt.Errorf("%w: failed to parse availability window: %v", ErrInternal, err)
	}

	// 4. Получаем запланированные встречи на дату
	meetings, err := uc.meetingRepo.ListScheduledByDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get meetings: %v", err)
		return nil, fmt.Errorf("%w: failed to get meetings: %v", ErrInternal, err)
	}

	// 5. Генерируем кандидатов и отбрасываем занятые
	candidates := generateCandidates(bounds, eventType.DurationMinutes)
	slots, err := freeSlots(candidates, eventType.DurationMinutes, busyIntervals(meetings))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build slots: %v", err)
		return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
	}

	response.Slots = slots
	uc.metrics.RecordSlotLookup(string(day), len(slots))

	uc.logger.Info("GetAvailableSlots: %d of %d slots free for eventType=%d on %s (%s)",
		len(slots), len(candidates), eventType.ID, req.Date, day)

	return response, nil
}
