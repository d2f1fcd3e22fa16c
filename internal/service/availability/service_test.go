package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability/models"
	"github.com/m04kA/SMC-SchedulingService/internal/testfixtures"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

func newService() (*Service, *testfixtures.Store) {
	store := testfixtures.NewStore(nil)
	return NewService(store.Availability(), logger.NewNop()), store
}

func TestUpsertCreatesAndReplaces(t *testing.T) {
	svc, _ := newService()

	created, err := svc.Upsert(context.Background(), &models.UpsertAvailabilityRequest{
		DayOfWeek: "monday",
		StartTime: "09:00:00",
		EndTime:   "17:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "Monday", created.DayOfWeek)
	assert.Equal(t, "09:00", created.StartTime)
	assert.Equal(t, "17:00", created.EndTime)
	assert.Equal(t, domain.DefaultTimezone, created.Timezone)

	replaced, err := svc.Upsert(context.Background(), &models.UpsertAvailabilityRequest{
		DayOfWeek: "Monday",
		StartTime: "10:00",
		EndTime:   "12:00",
		Timezone:  "Europe/Berlin",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, replaced.ID)
	assert.Equal(t, "10:00", replaced.StartTime)
	assert.Equal(t, "Europe/Berlin", replaced.Timezone)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list.Availability, 1)
}

func TestUpsertValidation(t *testing.T) {
	svc, _ := newService()

	tests := []struct {
		name string
		req  models.UpsertAvailabilityRequest
	}{
		{name: "missing day", req: models.UpsertAvailabilityRequest{StartTime: "09:00", EndTime: "17:00"}},
		{name: "unknown day", req: models.UpsertAvailabilityRequest{DayOfWeek: "Funday", StartTime: "09:00", EndTime: "17:00"}},
		{name: "bad start", req: models.UpsertAvailabilityRequest{DayOfWeek: "Monday", StartTime: "9am", EndTime: "17:00"}},
		{name: "missing end", req: models.UpsertAvailabilityRequest{DayOfWeek: "Monday", StartTime: "09:00"}},
		{name: "start equals end", req: models.UpsertAvailabilityRequest{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "09:00"}},
		{name: "start after end", req: models.UpsertAvailabilityRequest{DayOfWeek: "Monday", StartTime: "18:00", EndTime: "09:00"}},
		{name: "end with seconds", req: models.UpsertAvailabilityRequest{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "10:29:59"}},
		{name: "start at end of day", req: models.UpsertAvailabilityRequest{DayOfWeek: "Monday", StartTime: "24:00", EndTime: "24:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := svc.Upsert(context.Background(), &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpsertWindowEndingAtMidnight(t *testing.T) {
	svc, _ := newService()

	saved, err := svc.Upsert(context.Background(), &models.UpsertAvailabilityRequest{
		DayOfWeek: "Friday",
		StartTime: "20:00",
		EndTime:   "24:00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "20:00", saved.StartTime)
	assert.Equal(t, "24:00", saved.EndTime)
}

func TestListWeekOrder(t *testing.T) {
	svc, store := newService()
	store.MustWindow(domain.Sunday, "10:00", "12:00")
	store.MustWindow(domain.Wednesday, "09:00", "17:00")
	store.MustWindow(domain.Monday, "09:00", "17:00")

	resp, err := svc.List(context.Background())
	require.NoError(t, err)

	days := make([]string, 0, len(resp.Availability))
	for _, w := range resp.Availability {
		days = append(days, w.DayOfWeek)
	}
	assert.Equal(t, []string{"Monday", "Wednesday", "Sunday"}, days)
}

func TestDelete(t *testing.T) {
	svc, store := newService()
	window := store.MustWindow(domain.Friday, "09:00", "13:00")

	require.NoError(t, svc.Delete(context.Background(), window.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), window.ID), ErrAvailabilityNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), -1), ErrInvalidInput)
}
