package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingFields      = "все поля обязательны: eventTypeId, inviteeName, inviteeEmail, meetingDate, meetingTime"
	msgInvalidEmail       = "некорректный email приглашенного"
	msgFieldTooLong       = "inviteeName и inviteeEmail не длиннее 255 символов"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgPastMidnight       = "встреча должна закончиться не позже полуночи"
	msgInvalidInput       = "некорректные данные бронирования"
	msgSlotNotAvailable   = "выбранное время уже занято"
	msgEventTypeNotFound  = "тип события не найден"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, invalidInputMessage(err))

		case errors.Is(err, createBooking.ErrEventTypeNotFound):
			h.logger.Warn("POST /bookings - Event type not found: event_type_id=%d", req.EventTypeID)
			handlers.RespondNotFound(w, msgEventTypeNotFound)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: date=%s, time=%s", req.MeetingDate, req.MeetingTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: event_type_id=%d, date=%s, time=%s, error=%v",
				req.EventTypeID, req.MeetingDate, req.MeetingTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Meeting created successfully: meeting_id=%d, date=%s, time=%s",
		result.ID, req.MeetingDate, result.MeetingTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// invalidInputMessage сообщение клиенту с конкретной причиной отказа
func invalidInputMessage(err error) string {
	switch {
	case errors.Is(err, createBooking.ErrMissingFields):
		return msgMissingFields
	case errors.Is(err, createBooking.ErrInvalidEmail):
		return msgInvalidEmail
	case errors.Is(err, createBooking.ErrFieldTooLong):
		return msgFieldTooLong
	case errors.Is(err, createBooking.ErrInvalidDate):
		return msgInvalidDate
	case errors.Is(err, createBooking.ErrInvalidTime):
		return msgInvalidTime
	case errors.Is(err, createBooking.ErrMeetingPastMidnight):
		return msgPastMidnight
	default:
		return msgInvalidInput
	}
}
