// Package testfixtures содержит in-memory реализации репозиториев и
// вспомогательные объекты для тестов usecase, сервисов и хендлеров
package testfixtures

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/availability"
	eventTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/eventtype"
	meetingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/meeting"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Операции, для которых можно подставить ошибку через FailNext
const (
	OpEventTypeGet        = "eventtypes.Get"
	OpEventTypeList       = "eventtypes.List"
	OpAvailabilityGet     = "availability.Get"
	OpMeetingList         = "meetings.List"
	OpMeetingListByDate   = "meetings.ListScheduledByDate"
	OpMeetingCreate       = "meetings.Create"
	OpMeetingUpdateStatus = "meetings.UpdateStatus"
)

// Store общее in-memory хранилище, повторяющее ограничения схемы БД:
// уникальный slug, одно окно на день, уникальная (дата, время) запланированной встречи,
// запрет удаления типа события со встречами
type Store struct {
	mu sync.Mutex

	nextID     int64
	eventTypes map[int64]*domain.EventType
	windows    map[domain.DayOfWeek]*domain.AvailabilityWindow
	meetings   map[int64]*domain.Meeting
	failures   map[string]error
	clock      *Clock
}

// NewStore создает пустое хранилище
func NewStore(clock *Clock) *Store {
	if clock == nil {
		clock = NewClock(time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC))
	}
	return &Store{
		eventTypes: make(map[int64]*domain.EventType),
		windows:    make(map[domain.DayOfWeek]*domain.AvailabilityWindow),
		meetings:   make(map[int64]*domain.Meeting),
		failures:   make(map[string]error),
		clock:      clock,
	}
}

// FailNext заставляет следующий вызов операции вернуть err
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// takeFailure вызывается под s.mu
func (s *Store) takeFailure(op string) error {
	err, ok := s.failures[op]
	if !ok {
		return nil
	}
	delete(s.failures, op)
	return err
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// EventTypes репозиторий типов событий поверх хранилища
func (s *Store) EventTypes() *EventTypeRepository { return &EventTypeRepository{s: s} }

// Availability репозиторий окон доступности поверх хранилища
func (s *Store) Availability() *AvailabilityRepository { return &AvailabilityRepository{s: s} }

// Meetings репозиторий встреч поверх хранилища
func (s *Store) Meetings() *MeetingRepository { return &MeetingRepository{s: s} }

// MustEventType добавляет тип события, паникуя при ошибке
func (s *Store) MustEventType(name, slug string, duration int) *domain.EventType {
	created, err := s.EventTypes().Create(context.Background(), &domain.EventType{
		Name:            name,
		Slug:            slug,
		DurationMinutes: duration,
	})
	if err != nil {
		panic(err)
	}
	return created
}

// MustWindow добавляет окно доступности, паникуя при ошибке
func (s *Store) MustWindow(day domain.DayOfWeek, start, end string) *domain.AvailabilityWindow {
	saved, err := s.Availability().Upsert(context.Background(), &domain.AvailabilityWindow{
		DayOfWeek: day,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Timezone:  domain.DefaultTimezone,
	})
	if err != nil {
		panic(err)
	}
	return saved
}

// MustMeeting добавляет запланированную встречу, паникуя при ошибке
func (s *Store) MustMeeting(eventTypeID int64, date, at string) *domain.Meeting {
	day, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		panic(err)
	}
	created, err := s.Meetings().Create(context.Background(), &domain.Meeting{
		EventTypeID:  eventTypeID,
		InviteeName:  "Invitee",
		InviteeEmail: "invitee@example.com",
		MeetingDate:  day,
		MeetingTime:  types.TimeString(at),
		Status:       domain.StatusScheduled,
	})
	if err != nil {
		panic(err)
	}
	return created
}

// EventTypeRepository in-memory репозиторий типов событий
type EventTypeRepository struct{ s *Store }

func (r *EventTypeRepository) Create(ctx context.Context, eventType *domain.EventType) (*domain.EventType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.eventTypes {
		if existing.Slug == eventType.Slug {
			return nil, eventTypeRepo.ErrDuplicateSlug
		}
	}

	now := r.s.clock.Now()
	stored := *eventType
	stored.ID = r.s.id()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.s.eventTypes[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *EventTypeRepository) GetByID(ctx context.Context, id int64) (*domain.EventType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.takeFailure(OpEventTypeGet); err != nil {
		return nil, err
	}

	stored, ok := r.s.eventTypes[id]
	if !ok {
		return nil, eventTypeRepo.ErrEventTypeNotFound
	}
	out := *stored
	return &out, nil
}

func (r *EventTypeRepository) GetBySlug(ctx context.Context, slug string) (*domain.EventType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.takeFailure(OpEventTypeGet); err != nil {
		return nil, err
	}

	for _, stored := range r.s.eventTypes {
		if stored.Slug == slug {
			out := *stored
			return &out, nil
		}
	}
	return nil, eventTypeRepo.ErrEventTypeNotFound
}

func (r *EventTypeRepository) List(ctx context.Context) ([]*domain.EventType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.takeFailure(OpEventTypeList); err != nil {
		return nil, err
	}

	result := make([]*domain.EventType, 0, len(r.s.eventTypes))
	for _, stored := range r.s.eventTypes {
		out := *stored
		result = append(result, &out)
	}
	// Новые первыми; ID растет вместе со временем создания
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (r *EventTypeRepository) Update(ctx context.Context, eventType *domain.EventType) (*domain.EventType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.eventTypes[eventType.ID]
	if !ok {
		return nil, eventTypeRepo.ErrEventTypeNotFound
	}
	for id, existing := range r.s.eventTypes {
		if id != eventType.ID && existing.Slug == eventType.Slug {
			return nil, eventTypeRepo.ErrDuplicateSlug
		}
	}

	stored.Name = eventType.Name
	stored.Slug = eventType.Slug
	stored.DurationMinutes = eventType.DurationMinutes
	stored.Description = eventType.Description
	stored.UpdatedAt = r.s.clock.Now()

	out := *stored
	return &out, nil
}

func (r *EventTypeRepository) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.eventTypes[id]; !ok {
		return eventTypeRepo.ErrEventTypeNotFound
	}
	for _, m := range r.s.meetings {
		if m.EventTypeID == id {
			return eventTypeRepo.ErrEventTypeInUse
		}
	}
	delete(r.s.eventTypes, id)
	return nil
}

func (r *EventTypeRepository) HasScheduledMeetings(ctx context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, m := range r.s.meetings {
		if m.EventTypeID == id && m.Status == domain.StatusScheduled {
			return true, nil
		}
	}
	return false, nil
}

// AvailabilityRepository in-memory репозиторий окон доступности
type AvailabilityRepository struct{ s *Store }

func (r *AvailabilityRepository) Upsert(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if window.StartTime.String() >= window.EndTime.String() {
		return nil, availabilityRepo.ErrInvalidWindow
	}

	now := r.s.clock.Now()
	if existing, ok := r.s.windows[window.DayOfWeek]; ok {
		existing.StartTime = window.StartTime
		existing.EndTime = window.EndTime
		existing.Timezone = window.Timezone
		existing.UpdatedAt = now
		out := *existing
		return &out, nil
	}

	stored := *window
	stored.ID = r.s.id()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.s.windows[stored.DayOfWeek] = &stored

	out := stored
	return &out, nil
}

func (r *AvailabilityRepository) GetByDayOfWeek(ctx context.Context, day domain.DayOfWeek) (*domain.AvailabilityWindow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.takeFailure(OpAvailabilityGet); err != nil {
		return nil, err
	}

	stored, ok := r.s.windows[day]
	if !ok {
		return nil, availabilityRepo.ErrAvailabilityNotFound
	}
	out := *stored
	return &out, nil
}

func (r *AvailabilityRepository) List(ctx context.Context) ([]*domain.AvailabilityWindow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.AvailabilityWindow, 0, len(r.s.windows))
	for _, stored := range r.s.windows {
		out := *stored
		result = append(result, &out)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *AvailabilityRepository) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for day, stored := range r.s.windows {
		if stored.ID == id {
			delete(r.s.windows, day)
			return nil
		}
	}
	return availabilityRepo.ErrAvailabilityNotFound
}

// MeetingRepository in-memory репозиторий встреч
type MeetingRepository struct{ s *Store }

func (r *MeetingRepository) Create(ctx context.Context, meeting *domain.Meeting) (*domain.Meeting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.takeFailure(OpMeetingCreate); err != nil {
		return nil, err
	}

	if _, ok := r.s.eventTypes[meeting.EventTypeID]; !ok {
		return nil, meetingRepo.ErrExecQuery
	}

	// Аналог частичного уникального индекса (meeting_date, meeting_time) WHERE status = 'scheduled'
	if meeting.Status == domain.StatusScheduled {
		for _, existing := range r.s.meetings {
			if existing.IsScheduled() &&
				sameDate(existing.MeetingDate, meeting.MeetingDate) &&
				existing.MeetingTime == meeting.MeetingTime {
				return nil, meetingRepo.ErrSlotTaken
			}
		}
	}

	now := r.s.clock.Now()
	stored := *meeting
	stored.ID = r.s.id()
	stored.EventName = ""
	stored.DurationMinutes = 0
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.s.meetings[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *MeetingRepository) GetByID(ctx context.Context, id int64) (*domain.Meeting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.meetings[id]
	if !ok {
		return nil, meetingRepo.ErrMeetingNotFound
	}
	return r.joined(stored), nil
}

func (r *MeetingRepository) ListScheduledByDate(ctx context.Context, date time.Time) ([]*domain.Meeting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.takeFailure(OpMeetingListByDate); err != nil {
		return nil, err
	}

	result := make([]*domain.Meeting, 0)
	for _, stored := range r.s.meetings {
		if stored.IsScheduled() && sameDate(stored.MeetingDate, date) {
			result = append(result, r.joined(stored))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].MeetingTime < result[j].MeetingTime })
	return result, nil
}

func (r *MeetingRepository) List(ctx context.Context, filter domain.MeetingsFilter) ([]*domain.Meeting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.takeFailure(OpMeetingList); err != nil {
		return nil, err
	}

	today := filter.Today.Format(domain.DateFormat)
	result := make([]*domain.Meeting, 0)
	for _, stored := range r.s.meetings {
		date := stored.MeetingDate.Format(domain.DateFormat)
		switch filter.Scope {
		case domain.ScopeUpcoming:
			if !stored.IsScheduled() || date < today {
				continue
			}
		case domain.ScopePast:
			if !stored.IsScheduled() || date >= today {
				continue
			}
		case domain.ScopeAll:
		default:
			if !stored.IsScheduled() {
				continue
			}
		}
		result = append(result, r.joined(stored))
	}

	ascending := filter.Scope == domain.ScopeUpcoming
	sort.Slice(result, func(i, j int) bool {
		ki := result[i].MeetingDate.Format(domain.DateFormat) + " " + result[i].MeetingTime.String()
		kj := result[j].MeetingDate.Format(domain.DateFormat) + " " + result[j].MeetingTime.String()
		if ascending {
			return ki < kj
		}
		return ki > kj
	})
	return result, nil
}

func (r *MeetingRepository) UpdateStatus(ctx context.Context, id int64, status domain.MeetingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.takeFailure(OpMeetingUpdateStatus); err != nil {
		return err
	}

	stored, ok := r.s.meetings[id]
	if !ok {
		return meetingRepo.ErrMeetingNotFound
	}
	stored.Status = status
	stored.UpdatedAt = r.s.clock.Now()
	return nil
}

// joined вызывается под s.mu
func (r *MeetingRepository) joined(stored *domain.Meeting) *domain.Meeting {
	out := *stored
	if eventType, ok := r.s.eventTypes[stored.EventTypeID]; ok {
		out.EventName = eventType.Name
		out.DurationMinutes = eventType.DurationMinutes
	}
	return &out
}

func sameDate(a, b time.Time) bool {
	return a.Format(domain.DateFormat) == b.Format(domain.DateFormat)
}
