package availability

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

const table = "availability"

var columns = []string{
	"id",
	"day_of_week",
	"start_time",
	"end_time",
	"timezone",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с окнами доступности хоста
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает окно для дня недели или заменяет существующее
// На один день недели приходится не более одного окна (UNIQUE day_of_week)
func (r *Repository) Upsert(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := upsertQuery(window).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&window.ID,
		&window.CreatedAt,
		&window.UpdatedAt,
	)
	if err != nil {
		if pgerrors.IsCheckViolation(err) {
			return nil, ErrInvalidWindow
		}
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return window, nil
}

func upsertQuery(window *domain.AvailabilityWindow) squirrel.InsertBuilder {
	return psqlbuilder.Insert(table).
		Columns("day_of_week", "start_time", "end_time", "timezone").
		Values(window.DayOfWeek, window.StartTime, window.EndTime, window.Timezone).
		Suffix(`ON CONFLICT (day_of_week) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			timezone = EXCLUDED.timezone,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`)
}

// GetByDayOfWeek получает окно доступности для дня недели
func (r *Repository) GetByDayOfWeek(ctx context.Context, day domain.DayOfWeek) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"day_of_week": day}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDayOfWeek - build select query: %v", ErrBuildQuery, err)
	}

	var window domain.AvailabilityWindow
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&window.ID,
		&window.DayOfWeek,
		&window.StartTime,
		&window.EndTime,
		&window.Timezone,
		&window.CreatedAt,
		&window.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDayOfWeek - scan availability: %v", ErrScanRow, err)
	}

	return &window, nil
}

// List возвращает все окна доступности
// Порядок дней (Monday..Sunday) задает сервисный слой
func (r *Repository) List(ctx context.Context) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.AvailabilityWindow, 0)
	for rows.Next() {
		var window domain.AvailabilityWindow
		if err := rows.Scan(
			&window.ID,
			&window.DayOfWeek,
			&window.StartTime,
			&window.EndTime,
			&window.Timezone,
			&window.CreatedAt,
			&window.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		windows = append(windows, &window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// Delete удаляет окно доступности по ID
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
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAvailabilityNotFound
	}

	return nil
}
