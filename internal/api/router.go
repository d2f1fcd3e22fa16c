package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers/cancel_meeting"
	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_booking"
	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers/event_types"
	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers/export_meeting_ics"
	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_meeting"
	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers/health"
	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_meetings"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
)

// Handlers все HTTP обработчики сервиса
type Handlers struct {
	Health            *health.Handler
	GetAvailableSlots *get_available_slots.Handler
	CreateBooking     *create_booking.Handler
	ListMeetings      *list_meetings.Handler
	GetMeeting        *get_meeting.Handler
	ExportMeetingICS  *export_meeting_ics.Handler
	CancelMeeting     *cancel_meeting.Handler
	EventTypes        *event_types.Handler
	Availability      *availability.Handler
}

// RouterOptions параметры роутера
// Metrics == nil отключает и HTTP метрики, и endpoint Prometheus
type RouterOptions struct {
	Metrics     *metrics.Metrics
	MetricsPath string
}

// NewRouter собирает маршруты /api и оборачивает их в CORS
func NewRouter(h Handlers, opts RouterOptions) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
		if opts.MetricsPath != "" {
			r.Handle(opts.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
		}
	}

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", h.Health.Handle).Methods(http.MethodGet)

	// --- Бронирование ---
	api.HandleFunc("/bookings/slots", h.GetAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", h.CreateBooking.Handle).Methods(http.MethodPost)

	// --- Встречи ---
	api.HandleFunc("/bookings/meetings", h.ListMeetings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/meetings/{id}", h.GetMeeting.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/meetings/{id}/ics", h.ExportMeetingICS.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/meetings/{id}/cancel", h.CancelMeeting.Handle).Methods(http.MethodPut)

	// --- Типы событий ---
	api.HandleFunc("/event-types", h.EventTypes.List).Methods(http.MethodGet)
	api.HandleFunc("/event-types", h.EventTypes.Create).Methods(http.MethodPost)
	api.HandleFunc("/event-types/{slug}", h.EventTypes.GetBySlug).Methods(http.MethodGet)
	api.HandleFunc("/event-types/{id}", h.EventTypes.Update).Methods(http.MethodPut)
	api.HandleFunc("/event-types/{id}", h.EventTypes.Delete).Methods(http.MethodDelete)

	// --- Недельное расписание ---
	api.HandleFunc("/availability", h.Availability.List).Methods(http.MethodGet)
	api.HandleFunc("/availability", h.Availability.Upsert).Methods(http.MethodPost)
	api.HandleFunc("/availability/{id}", h.Availability.Delete).Methods(http.MethodDelete)

	return middleware.CORS()(r)
}
