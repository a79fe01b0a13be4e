package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-StaffService/internal/domain"
	"github.com/m04kA/SMC-StaffService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StaffService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-StaffService/pkg/types"
)

const uniqueViolation = "23505"

var scheduleColumns = []string{
	"id",
	"staff_id",
	"name",
	"is_default",
	"is_active",
	"effective_from",
	"effective_until",
	"created_at",
	"updated_at",
}

var workingHoursColumns = []string{
	"id",
	"schedule_id",
	"day_of_week",
	"start_time",
	"end_time",
	"break_start",
	"break_end",
	"is_working",
}

// Repository репозиторий для работы с расписаниями и рабочими часами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое расписание (без строк рабочих часов)
func (r *Repository) Create(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("staff_schedules").
		Columns(
			"staff_id",
			"name",
			"is_default",
			"is_active",
			"effective_from",
			"effective_until",
		).
		Values(
			schedule.StaffID,
			schedule.Name,
			schedule.IsDefault,
			schedule.IsActive,
			schedule.EffectiveFrom,
			schedule.EffectiveUntil,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return schedule, nil
}

// GetByID получает расписание по ID вместе с рабочими часами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("staff_schedules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	schedule, err := r.scanSchedule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan schedule: %v", ErrScanRow, err)
	}

	if err := r.loadWorkingHours(ctx, []*domain.Schedule{schedule}); err != nil {
		return nil, err
	}

	return schedule, nil
}

// GetByStaffID получает все расписания сотрудника с рабочими часами.
// Это снапшот для ядра доступности: сортировка по (is_default desc,
// created_at desc) совпадает с ранжированием резолвера.
func (r *Repository) GetByStaffID(ctx context.Context, staffID int64) ([]*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("staff_schedules").
		Where(squirrel.Eq{"staff_id": staffID}).
		OrderBy("is_default DESC", "created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		schedule, err := r.scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByStaffID - scan schedule: %v", ErrScanRow, err)
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByStaffID - rows error: %v", ErrScanRow, err)
	}

	if err := r.loadWorkingHours(ctx, schedules); err != nil {
		return nil, err
	}

	return schedules, nil
}

// CountByStaffID возвращает количество расписаний сотрудника
func (r *Repository) CountByStaffID(ctx context.Context, staffID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("staff_schedules").
		Where(squirrel.Eq{"staff_id": staffID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByStaffID - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByStaffID - scan: %v", ErrScanRow, err)
	}

	return count, nil
}

// Update обновляет изменяемые поля расписания
func (r *Repository) Update(ctx context.Context, schedule *domain.Schedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("staff_schedules").
		Set("name", schedule.Name).
		Set("is_default", schedule.IsDefault).
		Set("is_active", schedule.IsActive).
		Set("effective_from", schedule.EffectiveFrom).
		Set("effective_until", schedule.EffectiveUntil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": schedule.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return r.requireRowsAffected(result, "Update")
}

// SetDefault выставляет флаг is_default расписанию
func (r *Repository) SetDefault(ctx context.Context, id int64, isDefault bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("staff_schedules").
		Set("is_default", isDefault).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetDefault - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetDefault - execute update: %v", ErrExecQuery, err)
	}

	return r.requireRowsAffected(result, "SetDefault")
}

// ClearDefaultForStaff снимает флаг is_default со всех расписаний сотрудника,
// кроме указанного. Вызывается в транзакции вместе с SetDefault, чтобы
// инвариант "не больше одного дефолтного" держался атомарно.
func (r *Repository) ClearDefaultForStaff(ctx context.Context, staffID int64, exceptID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("staff_schedules").
		Set("is_default", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"staff_id": staffID, "is_default": true}).
		Where(squirrel.NotEq{"id": exceptID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ClearDefaultForStaff - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ClearDefaultForStaff - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет расписание вместе с рабочими часами (каскад по FK)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("staff_schedules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return r.requireRowsAffected(result, "Delete")
}

// ReplaceWorkingHours заменяет все строки рабочих часов расписания.
// Вызывается в транзакции: удаление и вставка либо проходят вместе,
// либо не проходят вовсе.
func (r *Repository) ReplaceWorkingHours(ctx context.Context, scheduleID int64, hours []*domain.WorkingHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("staff_working_hours").
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceWorkingHours - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWorkingHours - execute delete: %v", ErrExecQuery, err)
	}

	if len(hours) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("staff_working_hours").
		Columns(
			"schedule_id",
			"day_of_week",
			"start_time",
			"end_time",
			"break_start",
			"break_end",
			"is_working",
		)

	for _, wh := range hours {
		insertBuilder = insertBuilder.Values(
			scheduleID,
			wh.DayOfWeek,
			wh.StartTime,
			wh.EndTime,
			wh.BreakStart,
			wh.BreakEnd,
			wh.IsWorking,
		)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWorkingHours - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return ErrDuplicateWorkingHours
		}
		return fmt.Errorf("%w: ReplaceWorkingHours - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) loadWorkingHours(ctx context.Context, schedules []*domain.Schedule) error {
	if len(schedules) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	ids := make([]int64, len(schedules))
	byID := make(map[int64]*domain.Schedule, len(schedules))
	for i, s := range schedules {
		ids[i] = s.ID
		byID[s.ID] = s
	}

	query, args, err := psqlbuilder.Select(workingHoursColumns...).
		From("staff_working_hours").
		Where(squirrel.Eq{"schedule_id": ids}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadWorkingHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var wh domain.WorkingHours
		var breakStart, breakEnd types.TimeString
		if err := rows.Scan(
			&wh.ID,
			&wh.ScheduleID,
			&wh.DayOfWeek,
			&wh.StartTime,
			&wh.EndTime,
			&breakStart,
			&breakEnd,
			&wh.IsWorking,
		); err != nil {
			return fmt.Errorf("%w: loadWorkingHours - scan row: %v", ErrScanRow, err)
		}

		if !breakStart.IsZero() {
			wh.BreakStart = &breakStart
		}
		if !breakEnd.IsZero() {
			wh.BreakEnd = &breakEnd
		}

		if schedule, ok := byID[wh.ScheduleID]; ok {
			hours := wh
			schedule.WorkingHours = append(schedule.WorkingHours, &hours)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadWorkingHours - rows error: %v", ErrScanRow, err)
	}

	return nil
}

func (r *Repository) requireRowsAffected(result sql.Result, method string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanSchedule(row rowScanner) (*domain.Schedule, error) {
	var schedule domain.Schedule
	var effectiveFrom, effectiveUntil, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&schedule.ID,
		&schedule.StaffID,
		&schedule.Name,
		&schedule.IsDefault,
		&schedule.IsActive,
		&effectiveFrom,
		&effectiveUntil,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if effectiveFrom.Valid {
		schedule.EffectiveFrom = &effectiveFrom.Time
	}
	if effectiveUntil.Valid {
		schedule.EffectiveUntil = &effectiveUntil.Time
	}
	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return &schedule, nil
}
