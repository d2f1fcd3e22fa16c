package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
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
	"github.com/m04kA/SMC-SchedulingService/internal/calendar"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	availabilityService "github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	eventTypesService "github.com/m04kA/SMC-SchedulingService/internal/service/eventtypes"
	eventTypeModels "github.com/m04kA/SMC-SchedulingService/internal/service/eventtypes/models"
	meetingsService "github.com/m04kA/SMC-SchedulingService/internal/service/meetings"
	meetingModels "github.com/m04kA/SMC-SchedulingService/internal/service/meetings/models"
	"github.com/m04kA/SMC-SchedulingService/internal/testfixtures"
	createBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/keylock"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
)

type pinger struct{ err error }

func (p pinger) PingContext(ctx context.Context) error { return p.err }

type server struct {
	store   *testfixtures.Store
	handler http.Handler
}

func newServer(t *testing.T, db pinger, m *metrics.Metrics) *server {
	t.Helper()

	clock := testfixtures.NewClock(time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC))
	store := testfixtures.NewStore(clock)
	log := logger.NewNop()

	meetingsSvc := meetingsService.NewService(store.Meetings(), calendar.NewBuilder("-//test//EN", "scheduler.test"), m, log).
		WithTimeProvider(clock)
	slotsUC := getAvailableSlotsUC.NewUseCase(store.EventTypes(), store.Availability(), store.Meetings(), m, log)
	bookingUC := createBookingUC.NewUseCase(store.EventTypes(), store.Meetings(), &testfixtures.TxManager{}, keylock.New(), m, log)

	h := NewRouter(Handlers{
		Health:            health.NewHandler(db, log),
		GetAvailableSlots: get_available_slots.NewHandler(slotsUC, log),
		CreateBooking:     create_booking.NewHandler(bookingUC, log),
		ListMeetings:      list_meetings.NewHandler(meetingsSvc, log),
		GetMeeting:        get_meeting.NewHandler(meetingsSvc, log),
		ExportMeetingICS:  export_meeting_ics.NewHandler(meetingsSvc, log),
		CancelMeeting:     cancel_meeting.NewHandler(meetingsSvc, log),
		EventTypes:        event_types.NewHandler(eventTypesService.NewService(store.EventTypes(), &testfixtures.TxManager{}, log), log),
		Availability:      availability.NewHandler(availabilityService.NewService(store.Availability(), log), log),
	}, RouterOptions{Metrics: m, MetricsPath: "/metrics"})

	return &server{store: store, handler: h}
}

func (s *server) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func (s *server) slots(t *testing.T, eventTypeID int64, date string) []string {
	t.Helper()
	rec := s.do(t, http.MethodGet, fmt.Sprintf("/api/bookings/slots?date=%s&eventTypeId=%d", date, eventTypeID), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp get_available_slots.AvailableSlotsResponse
	decode(t, rec, &resp)
	return resp.Slots
}

func TestBookingLifecycle(t *testing.T) {
	s := newServer(t, pinger{}, nil)

	rec := s.do(t, http.MethodPost, "/api/event-types", `{"name":"Intro call","slug":"intro-call","durationMinutes":30}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var eventType eventTypeModels.EventTypeResponse
	decode(t, rec, &eventType)

	rec = s.do(t, http.MethodPost, "/api/availability", `{"dayOfWeek":"monday","startTime":"09:00","endTime":"17:00"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	slots := s.slots(t, eventType.ID, "2026-10-19")
	require.Len(t, slots, 16)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "16:30", slots[15])

	booking := fmt.Sprintf(`{"eventTypeId":%d,"inviteeName":"Ann","inviteeEmail":"ann@example.com","meetingDate":"2026-10-19","meetingTime":"10:00"}`, eventType.ID)
	rec = s.do(t, http.MethodPost, "/api/bookings", booking)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created create_booking.MeetingResponse
	decode(t, rec, &created)
	assert.Equal(t, "scheduled", created.Status)
	assert.Equal(t, "Intro call", created.EventName)

	rec = s.do(t, http.MethodPost, "/api/bookings", booking)
	assert.Equal(t, http.StatusConflict, rec.Code)

	slots = s.slots(t, eventType.ID, "2026-10-19")
	assert.NotContains(t, slots, "10:00")
	assert.Contains(t, slots, "09:30")
	assert.Contains(t, slots, "10:30")

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/bookings/meetings/%d", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got meetingModels.MeetingResponse
	decode(t, rec, &got)
	assert.Equal(t, "2026-10-19", got.MeetingDate)
	assert.Equal(t, "10:00", got.MeetingTime)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/bookings/meetings/%d/ics", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), fmt.Sprintf("meeting-%d.ics", created.ID))
	assert.Contains(t, rec.Body.String(), "BEGIN:VEVENT")

	rec = s.do(t, http.MethodPut, fmt.Sprintf("/api/bookings/meetings/%d/cancel", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, s.slots(t, eventType.ID, "2026-10-19"), "10:00")

	rec = s.do(t, http.MethodGet, "/api/bookings/meetings?filter=all", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all meetingModels.MeetingListResponse
	decode(t, rec, &all)
	require.Len(t, all.Meetings, 1)
	assert.Equal(t, "cancelled", all.Meetings[0].Status)
}

func TestErrorMapping(t *testing.T) {
	s := newServer(t, pinger{}, nil)
	eventType := s.store.MustEventType("Intro", "intro", 30)
	s.store.MustMeeting(eventType.ID, "2026-10-19", "10:00")

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"malformed booking body", http.MethodPost, "/api/bookings", `{"eventTypeId":`, http.StatusBadRequest},
		{"invalid booking email", http.MethodPost, "/api/bookings",
			fmt.Sprintf(`{"eventTypeId":%d,"inviteeName":"A","inviteeEmail":"nope","meetingDate":"2026-10-19","meetingTime":"11:00"}`, eventType.ID),
			http.StatusBadRequest},
		{"booking unknown event type", http.MethodPost, "/api/bookings",
			`{"eventTypeId":999,"inviteeName":"A","inviteeEmail":"a@example.com","meetingDate":"2026-10-19","meetingTime":"11:00"}`,
			http.StatusNotFound},
		{"overlapping booking", http.MethodPost, "/api/bookings",
			fmt.Sprintf(`{"eventTypeId":%d,"inviteeName":"A","inviteeEmail":"a@example.com","meetingDate":"2026-10-19","meetingTime":"09:45"}`, eventType.ID),
			http.StatusConflict},
		{"slots without params", http.MethodGet, "/api/bookings/slots", "", http.StatusBadRequest},
		{"slots bad date", http.MethodGet, fmt.Sprintf("/api/bookings/slots?date=19.10.2026&eventTypeId=%d", eventType.ID), "", http.StatusBadRequest},
		{"slots unknown event type", http.MethodGet, "/api/bookings/slots?date=2026-10-19&eventTypeId=999", "", http.StatusNotFound},
		{"meeting bad id", http.MethodGet, "/api/bookings/meetings/abc", "", http.StatusBadRequest},
		{"meeting not found", http.MethodGet, "/api/bookings/meetings/999", "", http.StatusNotFound},
		{"cancel not found", http.MethodPut, "/api/bookings/meetings/999/cancel", "", http.StatusNotFound},
		{"ics not found", http.MethodGet, "/api/bookings/meetings/999/ics", "", http.StatusNotFound},
		{"unknown list filter", http.MethodGet, "/api/bookings/meetings?filter=tomorrow", "", http.StatusBadRequest},
		{"duplicate slug", http.MethodPost, "/api/event-types", `{"name":"Other","slug":"intro","durationMinutes":15}`, http.StatusConflict},
		{"invalid slug", http.MethodPost, "/api/event-types", `{"name":"Other","slug":"Not A Slug","durationMinutes":15}`, http.StatusBadRequest},
		{"event type in use", http.MethodDelete, fmt.Sprintf("/api/event-types/%d", eventType.ID), "", http.StatusConflict},
		{"event type slug not found", http.MethodGet, "/api/event-types/unknown", "", http.StatusNotFound},
		{"update missing event type", http.MethodPut, "/api/event-types/999", `{"name":"X","slug":"x","durationMinutes":15}`, http.StatusNotFound},
		{"availability start after end", http.MethodPost, "/api/availability", `{"dayOfWeek":"Tuesday","startTime":"17:00","endTime":"09:00"}`, http.StatusBadRequest},
		{"availability unknown day", http.MethodPost, "/api/availability", `{"dayOfWeek":"Funday","startTime":"09:00","endTime":"17:00"}`, http.StatusBadRequest},
		{"availability delete missing", http.MethodDelete, "/api/availability/999", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())

			var body handlers.ErrorResponse
			decode(t, rec, &body)
			assert.Equal(t, tt.want, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestInternalErrorIsOpaque(t *testing.T) {
	s := newServer(t, pinger{}, nil)
	s.store.FailNext(testfixtures.OpMeetingList, errors.New("connection refused"))

	rec := s.do(t, http.MethodGet, "/api/bookings/meetings", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestEventTypeCRUD(t *testing.T) {
	s := newServer(t, pinger{}, nil)

	rec := s.do(t, http.MethodPost, "/api/event-types", `{"name":"Demo","slug":"demo","durationMinutes":45,"description":"product demo"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created eventTypeModels.EventTypeResponse
	decode(t, rec, &created)

	rec = s.do(t, http.MethodGet, "/api/event-types/demo", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPut, fmt.Sprintf("/api/event-types/%d", created.ID), `{"name":"Demo","slug":"demo-long","durationMinutes":60}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated eventTypeModels.EventTypeResponse
	decode(t, rec, &updated)
	assert.Equal(t, 60, updated.DurationMinutes)
	assert.Equal(t, "demo-long", updated.Slug)

	rec = s.do(t, http.MethodGet, "/api/event-types", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list eventTypeModels.EventTypeListResponse
	decode(t, rec, &list)
	require.Len(t, list.EventTypes, 1)

	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/event-types/%d", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/event-types/demo-long", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAvailabilityUpsertReplacesDay(t *testing.T) {
	s := newServer(t, pinger{}, nil)
	s.store.MustWindow(domain.Friday, "10:00", "12:00")

	rec := s.do(t, http.MethodPost, "/api/availability", `{"dayOfWeek":"FRIDAY","startTime":"13:00:00","endTime":"15:00"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/availability", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, strings.Count(rec.Body.String(), `"dayOfWeek":"Friday"`))
	assert.Contains(t, rec.Body.String(), `"startTime":"13:00"`)
}

func TestHealth(t *testing.T) {
	rec := newServer(t, pinger{}, nil).do(t, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.HeaderRequestID))

	rec = newServer(t, pinger{err: errors.New("down")}, nil).do(t, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body health.Response
	decode(t, rec, &body)
	assert.Equal(t, "unavailable", body.Database)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newServer(t, pinger{}, testfixtures.NewMetrics())

	rec := s.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = newServer(t, pinger{}, nil).do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDurationLockedWhileMeetingsScheduled(t *testing.T) {
	s := newServer(t, pinger{}, nil)
	s.store.MustWindow(domain.Monday, "09:00", "17:00")

	rec := s.do(t, http.MethodPost, "/api/event-types", `{"name":"Intro call","slug":"intro-call","durationMinutes":30}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var eventType eventTypeModels.EventTypeResponse
	decode(t, rec, &eventType)

	for _, at := range []string{"10:00", "10:30"} {
		booking := fmt.Sprintf(`{"eventTypeId":%d,"inviteeName":"Ann","inviteeEmail":"ann@example.com","meetingDate":"2026-10-19","meetingTime":"%s"}`, eventType.ID, at)
		rec = s.do(t, http.MethodPost, "/api/bookings", booking)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodPut, fmt.Sprintf("/api/event-types/%d", eventType.ID), `{"name":"Intro call","slug":"intro-call","durationMinutes":60}`)
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	var body handlers.ErrorResponse
	decode(t, rec, &body)
	assert.Equal(t, http.StatusConflict, body.Code)

	rec = s.do(t, http.MethodGet, "/api/bookings/meetings?filter=upcoming", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var upcoming meetingModels.MeetingListResponse
	decode(t, rec, &upcoming)
	require.Len(t, upcoming.Meetings, 2)
	for _, m := range upcoming.Meetings {
		assert.Equal(t, 30, m.DurationMinutes)
	}

	slots := s.slots(t, eventType.ID, "2026-10-19")
	assert.NotContains(t, slots, "10:00")
	assert.NotContains(t, slots, "10:30")
	assert.Contains(t, slots, "11:00")

	// Переименование без изменения длительности разрешено
	rec = s.do(t, http.MethodPut, fmt.Sprintf("/api/event-types/%d", eventType.ID), `{"name":"Short call","slug":"intro-call","durationMinutes":30}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestBookingValidationNamesCause(t *testing.T) {
	s := newServer(t, pinger{}, nil)
	eventType := s.store.MustEventType("Intro", "intro", 30)

	rec := s.do(t, http.MethodPost, "/api/bookings",
		fmt.Sprintf(`{"eventTypeId":%d,"inviteeName":"A","inviteeEmail":"nope","meetingDate":"2026-10-19","meetingTime":"11:00"}`, eventType.ID))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body handlers.ErrorResponse
	decode(t, rec, &body)
	assert.Contains(t, body.Message, "email")

	rec = s.do(t, http.MethodPost, "/api/bookings",
		fmt.Sprintf(`{"eventTypeId":%d,"inviteeName":"A","inviteeEmail":"a@example.com","meetingDate":"2026-10-19","meetingTime":"11:61"}`, eventType.ID))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	decode(t, rec, &body)
	assert.Contains(t, body.Message, "HH:MM")
}
