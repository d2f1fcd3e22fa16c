package eventtype

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/pgerrors"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

const table = "event_types"

var columns = []string{
	"id",
	"name",
	"slug",
	"duration",
	"description",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с типами событий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория типов событий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый тип события
func (r *Repository) Create(ctx context.Context, eventType *domain.EventType) (*domain.EventType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("name", "slug", "duration", "description").
		Values(eventType.Name, eventType.Slug, eventType.DurationMinutes, eventType.Description).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&eventType.ID,
		&eventType.CreatedAt,
		&eventType.UpdatedAt,
	)
	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return eventType, nil
}

// GetByID получает тип события по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.EventType, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetBySlug получает тип события по slug (используется в ссылке на бронирование)
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.EventType, error) {
	return r.getOne(ctx, "GetBySlug", squirrel.Eq{"slug": slug})
}

// List возвращает все типы событий, новые первыми
func (r *Repository) List(ctx context.Context) ([]*domain.EventType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	eventTypes := make([]*domain.EventType, 0)
	for rows.Next() {
		var et domain.EventType
		if err := rows.Scan(
			&et.ID,
			&et.Name,
			&et.Slug,
			&et.DurationMinutes,
			&et.Description,
			&et.CreatedAt,
			&et.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		eventTypes = append(eventTypes, &et)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return eventTypes, nil
}

// Update полностью заменяет поля типа события
func (r *Repository) Update(ctx context.Context, eventType *domain.EventType) (*domain.EventType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("name", eventType.Name).
		Set("slug", eventType.Slug).
		Set("duration", eventType.DurationMinutes).
		Set("description", eventType.Description).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": eventType.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&eventType.CreatedAt, &eventType.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventTypeNotFound
	}
	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		// Конфликт сериализации при обновлении означает параллельное бронирование этого типа
		if pgerrors.IsSerializationFailure(err) {
			return nil, ErrEventTypeInUse
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return eventType, nil
}

// Delete удаляет тип события
// Встречи сохраняются как история, поэтому удаление используемого типа запрещено (ON DELETE RESTRICT)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsForeignKeyViolation(err) {
			return ErrEventTypeInUse
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEventTypeNotFound
	}

	return nil
}

// HasScheduledMeetings сообщает, есть ли у типа события запланированные встречи
// Отмененные встречи не учитываются
func (r *Repository) HasScheduledMeetings(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := scheduledMeetingsExistQuery(id).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasScheduledMeetings - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: HasScheduledMeetings - scan exists: %v", ErrScanRow, err)
	}

	return exists, nil
}

func scheduledMeetingsExistQuery(id int64) squirrel.SelectBuilder {
	return psqlbuilder.Select("1").
		From("meetings").
		Where(squirrel.Eq{"event_type_id": id}).
		Where(squirrel.Eq{"status": domain.StatusScheduled}).
		Prefix("SELECT EXISTS (").
		Suffix(")")
}

func (r *Repository) getOne(ctx context.Context, method string, where squirrel.Sqlizer) (*domain.EventType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	var et domain.EventType
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&et.ID,
		&et.Name,
		&et.Slug,
		&et.DurationMinutes,
		&et.Description,
		&et.CreatedAt,
		&et.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan event type: %v", ErrScanRow, method, err)
	}

	return &et, nil
}
