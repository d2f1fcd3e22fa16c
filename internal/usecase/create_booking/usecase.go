package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	eventTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/eventtype"
	meetingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/meeting"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

// UseCase use case для создания встречи
type UseCase struct {
	eventTypeRepo EventTypeRepository
	meetingRepo   MeetingRepository
	txManager     TransactionManager
	locker        DateLocker
	metrics       Metrics
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	eventTypeRepo EventTypeRepository,
	meetingRepo MeetingRepository,
	txManager TransactionManager,
	locker DateLocker,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		eventTypeRepo: eventTypeRepo,
		meetingRepo:   meetingRepo,
		txManager:     txManager,
		locker:        locker,
		metrics:       metrics,
		logger:        logger,
	}
}

// Execute выполняет use case создания встречи
// Проверка пересечений и вставка выполняются атомарно:
// блокировка даты в процессе, сериализуемая транзакция и уникальный индекс в БД
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: eventType=%d, date=%s, time=%s", req.EventTypeID, req.Date, req.Time)

	// 1. Валидация входных данных
	valid, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Захватываем дату, чтобы параллельные бронирования этого процесса шли по очереди
	dateKey := valid.date.Format(domain.DateFormat)
	unlock, err := uc.locker.Lock(ctx, dateKey)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to lock date %s: %v", dateKey, err)
		return nil, fmt.Errorf("%w: failed to lock date: %v", ErrInternal, err)
	}
	defer unlock()

	var (
		eventType *domain.EventType
		result    *domain.Meeting
	)

	// 3. Тип события, проверка и вставка в одной сериализуемой транзакции:
	// параллельное изменение длительности типа события приведет к ошибке сериализации
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем тип события
		var err error
		eventType, err = uc.eventTypeRepo.GetByID(txCtx, valid.eventTypeID)
		if err != nil {
			if errors.Is(err, eventTypeRepo.ErrEventTypeNotFound) {
				uc.logger.Warn("CreateBooking: event type id=%d not found", valid.eventTypeID)
				return ErrEventTypeNotFound
			}
			uc.logger.Error("CreateBooking: failed to get event type id=%d: %v", valid.eventTypeID, err)
			return fmt.Errorf("%w: failed to get event type: %v", ErrInternal, err)
		}

		requested := domain.NewInterval(valid.startMinutes, eventType.DurationMinutes)
		if err := validateFitsDay(requested); err != nil {
			uc.logger.Warn("CreateBooking: %s + %d min crosses midnight", valid.startTime, eventType.DurationMinutes)
			return err
		}

		// 3.2. Получаем запланированные встречи на дату с блокировкой (FOR UPDATE)
		meetings, err := uc.meetingRepo.ListScheduledByDate(txCtx, valid.date)
		if err != nil {
			if errors.Is(err, meetingRepo.ErrConcurrentWrite) {
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to get meetings on %s: %v", dateKey, err)
			return fmt.Errorf("%w: failed to get meetings: %v", ErrInternal, err)
		}

		// 3.3. Повторно проверяем пересечения на момент записи
		if conflict := findConflict(requested, meetings); conflict != nil {
			uc.logger.Warn("CreateBooking: %s %s overlaps meeting id=%d at %s (%d min)",
				dateKey, valid.startTime, conflict.ID, conflict.MeetingTime, conflict.DurationMinutes)
			uc.metrics.RecordBookingConflict(conflictSourceOverlap)
			return ErrSlotNotAvailable
		}

		// 3.4. Сохраняем встречу
		created, err := uc.meetingRepo.Create(txCtx, &domain.Meeting{
			EventTypeID:  eventType.ID,
			InviteeName:  valid.inviteeName,
			InviteeEmail: valid.inviteeEmail,
			MeetingDate:  valid.date,
			MeetingTime:  valid.startTime,
			Status:       domain.StatusScheduled,
		})
		if err != nil {
			if errors.Is(err, meetingRepo.ErrSlotTaken) || errors.Is(err, meetingRepo.ErrConcurrentWrite) {
				uc.logger.Warn("CreateBooking: database rejected %s %s: %v", dateKey, valid.startTime, err)
				uc.metrics.RecordBookingConflict(conflictSourceDatabase)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create meeting: %v", err)
			return fmt.Errorf("%w: failed to create meeting: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: serialization failure on %s %s: %v", dateKey, valid.startTime, err)
			uc.metrics.RecordBookingConflict(conflictSourceDatabase)
			return nil, ErrSlotNotAvailable
		}
		if errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, ErrInternal) ||
			errors.Is(err, ErrEventTypeNotFound) || errors.Is(err, ErrInvalidInput) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	result.EventName = eventType.Name
	result.DurationMinutes = eventType.DurationMinutes

	uc.metrics.RecordBookingCreated()
	uc.logger.Info("CreateBooking: successfully created meeting id=%d on %s at %s",
		result.ID, dateKey, result.MeetingTime)

	return &Response{
		ID:              result.ID,
		EventTypeID:     result.EventTypeID,
		InviteeName:     result.InviteeName,
		InviteeEmail:    result.InviteeEmail,
		MeetingDate:     result.MeetingDate,
		MeetingTime:     result.MeetingTime,
		Status:          string(result.Status),
		EventName:       result.EventName,
		DurationMinutes: result.DurationMinutes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
