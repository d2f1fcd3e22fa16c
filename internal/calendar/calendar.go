package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Формат "плавающего" локального времени iCalendar (без Z и TZID)
const floatingTimeFormat = "20060102T150405"

// ErrInvalidMeeting возвращается, если по встрече нельзя построить событие
var ErrInvalidMeeting = errors.New("calendar: invalid meeting")

// Builder строит iCalendar документы для встреч
type Builder struct {
	productID string
	uidDomain string
}

// NewBuilder создает построитель календарей
// productID попадает в PRODID, uidDomain в правую часть UID событий
func NewBuilder(productID, uidDomain string) *Builder {
	return &Builder{
		productID: productID,
		uidDomain: uidDomain,
	}
}

// MeetingUID стабильный UID события: один и тот же для встречи при любом экспорте
func (b *Builder) MeetingUID(meetingID int64) string {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("%s/meetings/%d", b.uidDomain, meetingID)))
	return id.String() + "@" + b.uidDomain
}

// FileName имя файла для выгрузки встречи
func FileName(meetingID int64) string {
	return fmt.Sprintf("meeting-%d.ics", meetingID)
}

// Build строит VCALENDAR с одним VEVENT
// Время встречи выгружается как локальное без конвертации часовых поясов
func (b *Builder) Build(meeting *domain.Meeting, now time.Time) ([]byte, error) {
	if meeting == nil || meeting.ID <= 0 {
		return nil, fmt.Errorf("%w: meeting is required", ErrInvalidMeeting)
	}

	interval, err := meeting.Interval()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMeeting, err)
	}

	day := time.Date(meeting.MeetingDate.Year(), meeting.MeetingDate.Month(), meeting.MeetingDate.Day(), 0, 0, 0, 0, time.UTC)
	start := day.Add(time.Duration(interval.Start) * time.Minute)
	end := day.Add(time.Duration(interval.End) * time.Minute)

	cal := ical.NewCalendarFor(b.productID)
	cal.SetMethod(ical.MethodPublish)

	event := cal.AddEvent(b.MeetingUID(meeting.ID))
	event.SetDtStampTime(now)
	if !meeting.CreatedAt.IsZero() {
		event.SetCreatedTime(meeting.CreatedAt)
	}
	if !meeting.UpdatedAt.IsZero() {
		event.SetModifiedAt(meeting.UpdatedAt)
	}
	event.SetProperty(ical.ComponentPropertyDtStart, start.Format(floatingTimeFormat))
	event.SetProperty(ical.ComponentPropertyDtEnd, end.Format(floatingTimeFormat))
	event.SetSummary(summary(meeting))
	event.SetDescription(fmt.Sprintf("%s (%d min) with %s", meeting.EventName, meeting.DurationMinutes, meeting.InviteeName))

	if meeting.IsCancelled() {
		event.SetStatus(ical.ObjectStatusCancelled)
	} else {
		event.SetStatus(ical.ObjectStatusConfirmed)
	}

	if meeting.InviteeEmail != "" {
		event.AddAttendee(meeting.InviteeEmail,
			ical.CalendarUserTypeIndividual,
			ical.ParticipationStatusNeedsAction,
			ical.ParticipationRoleReqParticipant,
		)
	}

	return []byte(cal.Serialize()), nil
}

func summary(meeting *domain.Meeting) string {
	name := strings.TrimSpace(meeting.EventName)
	if name == "" {
		name = "Meeting"
	}
	if meeting.InviteeName == "" {
		return name
	}
	return name + ": " + meeting.InviteeName
}
