package meeting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/pgerrors"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Колонки встречи вместе с названием и длительностью типа события
var joinedColumns = []string{
	"m.id",
	"m.event_type_id",
	"m.invitee_name",
	"m.invitee_email",
	"m.meeting_date",
	"m.meeting_time",
	"m.status",
	"m.created_at",
	"m.updated_at",
	"e.name",
	"e.duration",
}

// Repository репозиторий для работы со встречами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория встреч
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую встречу
// Если в контексте передана активная транзакция, использует её.
// Проверка пересечений выполняется usecase-ом в той же транзакции до вызова Create.
func (r *Repository) Create(ctx context.Context, meeting *domain.Meeting) (*domain.Meeting, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("meetings").
		Columns(
			"event_type_id",
			"invitee_name",
			"invitee_email",
			"meeting_date",
			"meeting_time",
			"status",
		).
		Values(
			meeting.EventTypeID,
			meeting.InviteeName,
			meeting.InviteeEmail,
			meeting.MeetingDate.Format(domain.DateFormat),
			meeting.MeetingTime,
			meeting.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&meeting.ID,
		&meeting.CreatedAt,
		&meeting.UpdatedAt,
	)
	if err != nil {
		return nil, classifyWriteError("Create - execute insert", err)
	}

	return meeting, nil
}

// GetByID получает встречу по ID вместе с названием и длительностью типа события
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Meeting, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectJoined().
		Where(squirrel.Eq{"m.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var meeting domain.Meeting
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&meeting.ID,
		&meeting.EventTypeID,
		&meeting.InviteeName,
		&meeting.InviteeEmail,
		&meeting.MeetingDate,
		&meeting.MeetingTime,
		&meeting.Status,
		&meeting.CreatedAt,
		&meeting.UpdatedAt,
		&meeting.EventName,
		&meeting.DurationMinutes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMeetingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan meeting: %v", ErrScanRow, err)
	}

	return &meeting, nil
}

// ListScheduledByDate возвращает запланированные встречи на дату, отсортированные по времени
// Внутри транзакции строки блокируются (FOR UPDATE OF m), чтобы параллельное
// бронирование на ту же дату дождалось завершения текущего
func (r *Repository) ListScheduledByDate(ctx context.Context, date time.Time) ([]*domain.Meeting, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := scheduledByDateQuery(date, dbmetrics.IsInTransaction(ctx)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListScheduledByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifyWriteError("ListScheduledByDate - execute query", err)
	}
	defer rows.Close()

	return r.scanMeetings(rows)
}

// List возвращает встречи с учетом фильтра
//   - ScopeUpcoming: запланированные, meeting_date >= today, по возрастанию
//   - ScopePast: запланированные, meeting_date < today, по убыванию
//   - ScopeAll: все встречи, включая отмененные, по убыванию
//   - ScopeScheduled: все запланированные, по убыванию
func (r *Repository) List(ctx context.Context, filter domain.MeetingsFilter) ([]*domain.Meeting, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanMeetings(rows)
}

// UpdateStatus обновляет статус встречи
// ErrMeetingNotFound возвращается только если ни одна строка не совпала по ID
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.MeetingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("meetings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrMeetingNotFound
	}

	return nil
}

func selectJoined() squirrel.SelectBuilder {
	return psqlbuilder.Select(joinedColumns...).
		From("meetings m").
		Join("event_types e ON m.event_type_id = e.id")
}

// scheduledByDateQuery запланированные встречи на дату; forUpdate блокирует строки встреч
func scheduledByDateQuery(date time.Time, forUpdate bool) squirrel.SelectBuilder {
	selectBuilder := selectJoined().
		Where(squirrel.Eq{"m.meeting_date": date.Format(domain.DateFormat)}).
		Where(squirrel.Eq{"m.status": domain.StatusScheduled}).
		OrderBy("m.meeting_time ASC")

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF m")
	}
	return selectBuilder
}

// listQuery запрос списка встреч для фильтра; граница "сегодня" относится к upcoming
func listQuery(filter domain.MeetingsFilter) squirrel.SelectBuilder {
	selectBuilder := selectJoined()
	today := filter.Today.Format(domain.DateFormat)

	switch filter.Scope {
	case domain.ScopeUpcoming:
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"m.status": domain.StatusScheduled}).
			Where(squirrel.GtOrEq{"m.meeting_date": today}).
			OrderBy("m.meeting_date ASC", "m.meeting_time ASC")
	case domain.ScopePast:
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"m.status": domain.StatusScheduled}).
			Where(squirrel.Lt{"m.meeting_date": today}).
			OrderBy("m.meeting_date DESC", "m.meeting_time DESC")
	case domain.ScopeAll:
		selectBuilder = selectBuilder.
			OrderBy("m.meeting_date DESC", "m.meeting_time DESC")
	default:
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"m.status": domain.StatusScheduled}).
			OrderBy("m.meeting_date DESC", "m.meeting_time DESC")
	}

	return selectBuilder
}

// scanMeetings сканирует результаты запроса в слайс встреч
func (r *Repository) scanMeetings(rows *sql.Rows) ([]*domain.Meeting, error) {
	meetings := make([]*domain.Meeting, 0)

	for rows.Next() {
		var meeting domain.Meeting
		err := rows.Scan(
			&meeting.ID,
			&meeting.EventTypeID,
			&meeting.InviteeName,
			&meeting.InviteeEmail,
			&meeting.MeetingDate,
			&meeting.MeetingTime,
			&meeting.Status,
			&meeting.CreatedAt,
			&meeting.UpdatedAt,
			&meeting.EventName,
			&meeting.DurationMinutes,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanMeetings - scan row: %v", ErrScanRow, err)
		}
		meetings = append(meetings, &meeting)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanMeetings - rows error: %v", ErrScanRow, err)
	}

	return meetings, nil
}

// classifyWriteError отделяет конфликты бронирования от прочих ошибок БД
func classifyWriteError(step string, err error) error {
	switch {
	case pgerrors.IsUniqueViolation(err):
		return ErrSlotTaken
	case pgerrors.IsSerializationFailure(err):
		return fmt.Errorf("%w: %s: %v", ErrConcurrentWrite, step, err)
	default:
		return fmt.Errorf("%w: %s: %v", ErrExecQuery, step, err)
	}
}
