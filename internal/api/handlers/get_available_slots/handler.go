package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgMissingParams      = "параметры date и eventTypeId обязательны"
	msgInvalidEventTypeID = "некорректный ID типа события"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgEventTypeNotFound  = "тип события не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/bookings/slots
// Query params: date (required, YYYY-MM-DD), eventTypeId (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	dateStr := query.Get("date")
	eventTypeIDStr := query.Get("eventTypeId")

	if dateStr == "" || eventTypeIDStr == "" {
		h.logger.Warn("GET /bookings/slots - Missing params: date=%q, eventTypeId=%q", dateStr, eventTypeIDStr)
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	eventTypeID, err := strconv.ParseInt(eventTypeIDStr, 10, 64)
	if err != nil || eventTypeID <= 0 {
		h.logger.Warn("GET /bookings/slots - Invalid event type ID: %q", eventTypeIDStr)
		handlers.RespondBadRequest(w, msgInvalidEventTypeID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		Date:        dateStr,
		EventTypeID: eventTypeID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /bookings/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrEventTypeNotFound):
			h.logger.Warn("GET /bookings/slots - Event type not found: event_type_id=%d", eventTypeID)
			handlers.RespondNotFound(w, msgEventTypeNotFound)

		default:
			h.logger.Error("GET /bookings/slots - Failed to get slots: event_type_id=%d, date=%s, error=%v",
				eventTypeID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/slots - Slots retrieved successfully: event_type_id=%d, date=%s, slots_count=%d",
		eventTypeID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
