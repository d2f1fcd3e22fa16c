package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// DayOfWeek day name used as the availability key
type DayOfWeek string

const (
	Sunday    DayOfWeek = "Sunday"
	Monday    DayOfWeek = "Monday"
	Tuesday   DayOfWeek = "Tuesday"
	Wednesday DayOfWeek = "Wednesday"
	Thursday  DayOfWeek = "Thursday"
	Friday    DayOfWeek = "Friday"
	Saturday  DayOfWeek = "Saturday"
)

var (
	// ErrInvalidDayOfWeek возвращается при неизвестном названии дня недели
	ErrInvalidDayOfWeek = errors.New("invalid day of week")

	// ErrInvalidWindow возвращается, когда начало окна не раньше его конца
	ErrInvalidWindow = errors.New("availability window start must be before end")
)

// daysByIndex Sunday-based mapping: index 0 = Sunday ... 6 = Saturday
var daysByIndex = [7]DayOfWeek{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekOrder порядок дней при выводе расписания (неделя с понедельника)
var WeekOrder = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// DayOfWeekFromDate returns the day name of the calendar date
func DayOfWeekFromDate(date time.Time) DayOfWeek {
	return daysByIndex[int(date.Weekday())]
}

// ParseDayOfWeek parses a day name case-insensitively ("monday", "MONDAY", "Monday")
func ParseDayOfWeek(s string) (DayOfWeek, error) {
	normalized := strings.TrimSpace(s)
	for _, d := range daysByIndex {
		if strings.EqualFold(string(d), normalized) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDayOfWeek, s)
}

// WeekPosition позиция дня в WeekOrder (Monday = 0 ... Sunday = 6)
func (d DayOfWeek) WeekPosition() int {
	for i, day := range WeekOrder {
		if day == d {
			return i
		}
	}
	return len(WeekOrder)
}

// AvailabilityWindow host's open hours for one day of the week
type AvailabilityWindow struct {
	ID        int64
	DayOfWeek DayOfWeek
	StartTime types.TimeString
	EndTime   types.TimeString
	Timezone  string // только метка, в вычислениях не участвует
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Bounds returns the window as minutes since midnight
func (w *AvailabilityWindow) Bounds() (Interval, error) {
	start, err := w.StartTime.Minutes()
	if err != nil {
		return Interval{}, err
	}
	end, err := w.EndTime.Minutes()
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: end}, nil
}

// Validate checks day, time formats and start < end
func (w *AvailabilityWindow) Validate() error {
	if _, err := ParseDayOfWeek(string(w.DayOfWeek)); err != nil {
		return err
	}
	bounds, err := w.Bounds()
	if err != nil {
		return err
	}
	if bounds.Start >= bounds.End {
		return fmt.Errorf("%w: %s-%s", ErrInvalidWindow, w.StartTime, w.EndTime)
	}
	return nil
}
