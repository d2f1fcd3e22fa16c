package event_types

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/eventtypes"
	"github.com/m04kA/SMC-SchedulingService/internal/service/eventtypes/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidEventTypeID = "некорректный ID типа события"
	msgInvalidInput       = "name, slug (a-z, 0-9, -) и durationMinutes (1..1440) обязательны"
	msgNotFound           = "тип события не найден"
	msgDuplicateSlug      = "тип события с таким slug уже существует"
	msgInUse              = "тип события используется встречами: удаление и изменение длительности невозможны"
	msgDeleted            = "тип события удален"
)

// Handler CRUD типов событий
type Handler struct {
	service EventTypeService
	logger  Logger
}

func NewHandler(service EventTypeService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/event-types
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.List(r.Context())
	if err != nil {
		h.respondError(w, "GET /event-types", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// GetBySlug GET /api/event-types/{slug}
func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	resp, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		h.respondError(w, "GET /event-types/{slug}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Create POST /api/event-types
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.EventTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /event-types - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /event-types", err)
		return
	}

	h.logger.Info("POST /event-types - Event type created successfully: id=%d, slug=%s", resp.ID, resp.Slug)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

// Update PUT /api/event-types/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PUT /event-types/{id} - Invalid event type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventTypeID)
		return
	}

	var req models.EventTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /event-types/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /event-types/{id}", err)
		return
	}

	h.logger.Info("PUT /event-types/{id} - Event type updated successfully: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Delete DELETE /api/event-types/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /event-types/{id} - Invalid event type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventTypeID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /event-types/{id}", err)
		return
	}

	h.logger.Info("DELETE /event-types/{id} - Event type deleted successfully: id=%d", id)
	handlers.RespondMessage(w, msgDeleted)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, eventtypes.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, eventtypes.ErrEventTypeNotFound):
		h.logger.Warn("%s - Event type not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, eventtypes.ErrDuplicateSlug):
		h.logger.Warn("%s - Duplicate slug", route)
		handlers.RespondConflict(w, msgDuplicateSlug)

	case errors.Is(err, eventtypes.ErrEventTypeInUse):
		h.logger.Warn("%s - Event type in use", route)
		handlers.RespondConflict(w, msgInUse)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
