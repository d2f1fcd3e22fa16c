package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus метрик сервиса
// Все методы безопасны для nil-получателя, поэтому при выключенных метриках
// можно передавать nil без дополнительных проверок
type Metrics struct {
	serviceName string

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrorsTotal *prometheus.CounterVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	// Бизнес-метрики
	BookingsCreatedTotal  *prometheus.CounterVec
	BookingConflictsTotal *prometheus.CounterVec
	MeetingsCancelled     *prometheus.CounterVec
	SlotLookupsTotal      *prometheus.CounterVec
	SlotsReturned         *prometheus.HistogramVec
}

// New регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном реестре (используется в тестах)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"service", "method", "route", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "route"},
		),

		DBQueryDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "db_query_duration_seconds",
				Help:    "Database query duration in seconds",
				Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"service", "operation"},
		),
		DBQueryErrorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "db_query_errors_total",
				Help: "Total number of failed database queries",
			},
			[]string{"service", "operation"},
		),
		DBOpenConnections: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_open_connections",
				Help: "Number of established connections to the database",
			},
			[]string{"service"},
		),
		DBInUseConnections: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_in_use_connections",
				Help: "Number of connections currently in use",
			},
			[]string{"service"},
		),
		DBIdleConnections: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_idle_connections",
				Help: "Number of idle connections",
			},
			[]string{"service"},
		),
		DBWaitCount: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_wait_count",
				Help: "Total number of connections waited for",
			},
			[]string{"service"},
		),

		BookingsCreatedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookings_created_total",
				Help: "Total number of created meetings",
			},
			[]string{"service"},
		),
		BookingConflictsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "booking_conflicts_total",
				Help: "Total number of rejected bookings due to overlapping meetings",
			},
			[]string{"service", "source"},
		),
		MeetingsCancelled: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meetings_cancelled_total",
				Help: "Total number of cancelled meetings",
			},
			[]string{"service"},
		),
		SlotLookupsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slot_lookups_total",
				Help: "Total number of available slot lookups",
			},
			[]string{"service", "day_of_week"},
		),
		SlotsReturned: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "slots_returned",
				Help:    "Number of free slots returned per lookup",
				Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
			},
			[]string{"service"},
		),
	}
}

// ServiceName имя сервиса, которым помечаются метрики
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

// RecordBookingCreated учитывает успешное бронирование
func (m *Metrics) RecordBookingCreated() {
	if m == nil {
		return
	}
	m.BookingsCreatedTotal.WithLabelValues(m.serviceName).Inc()
}

// RecordBookingConflict учитывает отказ в бронировании
// source: "overlap" (найдено пересечение), "database" (сработала защита БД)
func (m *Metrics) RecordBookingConflict(source string) {
	if m == nil {
		return
	}
	m.BookingConflictsTotal.WithLabelValues(m.serviceName, source).Inc()
}

// RecordMeetingCancelled учитывает отмену встречи
func (m *Metrics) RecordMeetingCancelled() {
	if m == nil {
		return
	}
	m.MeetingsCancelled.WithLabelValues(m.serviceName).Inc()
}

// RecordSlotLookup учитывает запрос свободных слотов
func (m *Metrics) RecordSlotLookup(dayOfWeek string, slots int) {
	if m == nil {
		return
	}
	m.SlotLookupsTotal.WithLabelValues(m.serviceName, dayOfWeek).Inc()
	m.SlotsReturned.WithLabelValues(m.serviceName).Observe(float64(slots))
}

// RecordHTTPRequest учитывает обработанный HTTP запрос
// route - шаблон маршрута mux, а не фактический путь, чтобы не плодить метки
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, route).Observe(duration.Seconds())
}
