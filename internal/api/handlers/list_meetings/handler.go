package list_meetings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/meetings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/meetings/models"
)

const msgInvalidFilter = "некорректный фильтр, допустимо: upcoming, past, all"

type Handler struct {
	service MeetingService
	logger  Logger
}

func NewHandler(service MeetingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/bookings/meetings
// Query params: filter (optional: upcoming, past, all)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")

	resp, err := h.service.List(r.Context(), &models.ListMeetingsRequest{Filter: filter})
	if err != nil {
		switch {
		case errors.Is(err, meetings.ErrInvalidInput):
			h.logger.Warn("GET /bookings/meetings - Invalid filter: %q", filter)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /bookings/meetings - Failed to list meetings: filter=%q, error=%v", filter, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/meetings - Meetings retrieved successfully: filter=%q, count=%d", filter, len(resp.Meetings))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
