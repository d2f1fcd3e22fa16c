package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOfWeekFromDate(t *testing.T) {
	tests := []struct {
		date string
		want DayOfWeek
	}{
		{"2026-10-18", Sunday},
		{"2026-10-19", Monday},
		{"2026-10-20", Tuesday},
		{"2026-10-21", Wednesday},
		{"2026-10-22", Thursday},
		{"2026-10-23", Friday},
		{"2026-10-24", Saturday},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			date, err := time.Parse(DateFormat, tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, DayOfWeekFromDate(date))
		})
	}
}

func TestParseDayOfWeek(t *testing.T) {
	d, err := ParseDayOfWeek(" monday ")
	require.NoError(t, err)
	assert.Equal(t, Monday, d)

	d, err = ParseDayOfWeek("SUNDAY")
	require.NoError(t, err)
	assert.Equal(t, Sunday, d)

	_, err = ParseDayOfWeek("Funday")
	assert.ErrorIs(t, err, ErrInvalidDayOfWeek)
}

func TestWeekPosition(t *testing.T) {
	assert.Equal(t, 0, Monday.WeekPosition())
	assert.Equal(t, 6, Sunday.WeekPosition())
	assert.Equal(t, 7, DayOfWeek("Funday").WeekPosition())
}

func TestAvailabilityWindowValidate(t *testing.T) {
	valid := AvailabilityWindow{DayOfWeek: Monday, StartTime: "09:00", EndTime: "17:00"}
	require.NoError(t, valid.Validate())

	bounds, err := valid.Bounds()
	require.NoError(t, err)
	assert.Equal(t, Interval{Start: 540, End: 1020}, bounds)

	inverted := AvailabilityWindow{DayOfWeek: Monday, StartTime: "17:00", EndTime: "09:00"}
	assert.ErrorIs(t, inverted.Validate(), ErrInvalidWindow)

	empty := AvailabilityWindow{DayOfWeek: Monday, StartTime: "09:00", EndTime: "09:00"}
	assert.ErrorIs(t, empty.Validate(), ErrInvalidWindow)

	badDay := AvailabilityWindow{DayOfWeek: "Someday", StartTime: "09:00", EndTime: "10:00"}
	assert.ErrorIs(t, badDay.Validate(), ErrInvalidDayOfWeek)
}

func TestIntervalOverlaps(t *testing.T) {
	slot := NewInterval(11*60+30, 30) // 11:30-12:00

	tests := []struct {
		name     string
		other    Interval
		overlaps bool
	}{
		{"partial from left", NewInterval(11*60+20, 20), true},
		{"ends at slot start", NewInterval(11*60, 30), false},
		{"starts at slot end", NewInterval(12*60, 30), false},
		{"contains slot", NewInterval(11*60, 120), true},
		{"inside slot", NewInterval(11*60+40, 10), true},
		{"identical", NewInterval(11*60+30, 30), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, slot.Overlaps(tt.other))
			assert.Equal(t, tt.overlaps, tt.other.Overlaps(slot))
		})
	}
}

func TestIntervalContains(t *testing.T) {
	window := Interval{Start: 540, End: 1020}
	assert.True(t, window.Contains(NewInterval(990, 30)))
	assert.False(t, window.Contains(NewInterval(1000, 30)))
	assert.Equal(t, 480, window.Duration())
}

func TestMeetingInterval(t *testing.T) {
	m := Meeting{MeetingTime: "10:00", DurationMinutes: 60, Status: StatusScheduled}

	interval, err := m.Interval()
	require.NoError(t, err)
	assert.Equal(t, Interval{Start: 600, End: 660}, interval)
	assert.True(t, m.IsScheduled())
	assert.False(t, m.IsCancelled())
}

func TestMeetingScopeIsValid(t *testing.T) {
	assert.True(t, ScopeScheduled.IsValid())
	assert.True(t, ScopeUpcoming.IsValid())
	assert.True(t, ScopePast.IsValid())
	assert.True(t, ScopeAll.IsValid())
	assert.False(t, MeetingScope("tomorrow").IsValid())
}
