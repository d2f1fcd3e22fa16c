package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBusinessCounters(t *testing.T) {
	m := NewWithRegisterer("scheduler", prometheus.NewRegistry())

	m.RecordBookingCreated()
	m.RecordBookingCreated()
	m.RecordBookingConflict("overlap")
	m.RecordMeetingCancelled()
	m.RecordSlotLookup("Monday", 16)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingsCreatedTotal.WithLabelValues("scheduler")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingConflictsTotal.WithLabelValues("scheduler", "overlap")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BookingConflictsTotal.WithLabelValues("scheduler", "database")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MeetingsCancelled.WithLabelValues("scheduler")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlotLookupsTotal.WithLabelValues("scheduler", "Monday")))
}

func TestNilMetricsAreNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordBookingCreated()
		m.RecordBookingConflict("overlap")
		m.RecordMeetingCancelled()
		m.RecordSlotLookup("Sunday", 0)
		m.RecordHTTPRequest("GET", "/api/health", 200, time.Millisecond)
	})
	assert.Equal(t, "", m.ServiceName())
}

func TestRecordHTTPRequest(t *testing.T) {
	m := NewWithRegisterer("scheduler", prometheus.NewRegistry())

	m.RecordHTTPRequest("POST", "/api/bookings", 409, 5*time.Millisecond)
	m.RecordHTTPRequest("POST", "/api/bookings", 409, 7*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("scheduler", "POST", "/api/bookings", "409")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestDuration))
}
