package availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	availabilityService "github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability/models"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidAvailabilityID = "некорректный ID окна доступности"
	msgInvalidInput          = "dayOfWeek, startTime и endTime обязательны, startTime должно быть раньше endTime"
	msgNotFound              = "окно доступности не найдено"
	msgDeleted               = "окно доступности удалено"
)

// Handler управление недельным расписанием
type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/availability
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /availability - Failed to list availability: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Upsert POST /api/availability
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrInvalidInput):
			h.logger.Warn("POST /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /availability - Failed to save availability: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability - Availability saved successfully: id=%d, day=%s", resp.ID, resp.DayOfWeek)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Delete DELETE /api/availability/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /availability/{id} - Invalid availability ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAvailabilityID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrAvailabilityNotFound):
			h.logger.Warn("DELETE /availability/{id} - Availability not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availabilityService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidAvailabilityID)

		default:
			h.logger.Error("DELETE /availability/{id} - Failed to delete availability: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availability/{id} - Availability deleted successfully: id=%d", id)
	handlers.RespondMessage(w, msgDeleted)
}
