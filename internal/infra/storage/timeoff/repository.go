package timeoff

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StaffService/internal/domain"
	"github.com/m04kA/SMC-StaffService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StaffService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-StaffService/pkg/types"
)

var timeOffColumns = []string{
	"id",
	"staff_id",
	"leave_type",
	"start_date",
	"end_date",
	"start_time",
	"end_time",
	"is_full_day",
	"reason",
	"status",
	"approved_by_id",
	"approved_at",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с заявками на отпуск
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отпусков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую заявку на отпуск
func (r *Repository) Create(ctx context.Context, timeOff *domain.TimeOff) (*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("staff_time_off").
		Columns(
			"staff_id",
			"leave_type",
			"start_date",
			"end_date",
			"start_time",
			"end_time",
			"is_full_day",
			"reason",
			"status",
			"notes",
		).
		Values(
			timeOff.StaffID,
			timeOff.LeaveType,
			timeOff.StartDate,
			timeOff.EndDate,
			timeOff.StartTime,
			timeOff.EndTime,
			timeOff.IsFullDay,
			timeOff.Reason,
			timeOff.Status,
			timeOff.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&timeOff.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	timeOff.CreatedAt = createdAt.Time
	timeOff.UpdatedAt = updatedAt.Time

	return timeOff, nil
}

// GetByID получает заявку на отпуск по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(timeOffColumns...).
		From("staff_time_off").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	timeOff, err := r.scanTimeOff(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTimeOffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan time off: %v", ErrScanRow, err)
	}

	return timeOff, nil
}

// List получает заявки на отпуск с фильтрацией.
// Фильтр по периоду выбирает заявки, пересекающиеся с [StartDate, EndDate]
// (обе границы включительно).
func (r *Repository) List(ctx context.Context, filter domain.TimeOffFilter) ([]*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(timeOffColumns...).
		From("staff_time_off").
		OrderBy("start_date DESC")

	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"end_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_date": *filter.EndDate})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanTimeOffList(rows)
}

// ListBlockingForDate получает блокирующие заявки сотрудника, покрывающие дату.
// Блокирующими считаются pending и approved.
func (r *Repository) ListBlockingForDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	blockingStatuses := make([]string, len(domain.BlockingTimeOffStatuses))
	for i, s := range domain.BlockingTimeOffStatuses {
		blockingStatuses[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(timeOffColumns...).
		From("staff_time_off").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.LtOrEq{"start_date": date}).
		Where(squirrel.GtOrEq{"end_date": date}).
		Where(squirrel.Eq{"status": blockingStatuses}).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockingForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockingForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanTimeOffList(rows)
}

// Update обновляет изменяемые поля заявки
func (r *Repository) Update(ctx context.Context, timeOff *domain.TimeOff) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("staff_time_off").
		Set("leave_type", timeOff.LeaveType).
		Set("start_date", timeOff.StartDate).
		Set("end_date", timeOff.EndDate).
		Set("start_time", timeOff.StartTime).
		Set("end_time", timeOff.EndTime).
		Set("is_full_day", timeOff.IsFullDay).
		Set("reason", timeOff.Reason).
		Set("notes", timeOff.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": timeOff.ID}).
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

// UpdateStatus переводит заявку в новый статус.
// Для approved дополнительно фиксируется кто и когда одобрил,
// для rejected причина попадает в notes.
func (r *Repository) UpdateStatus(
	ctx context.Context,
	id int64,
	status domain.TimeOffStatus,
	approvedByID *int64,
	notes *string,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("staff_time_off").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if status == domain.TimeOffStatusApproved {
		updateBuilder = updateBuilder.
			Set("approved_by_id", approvedByID).
			Set("approved_at", squirrel.Expr("NOW()"))
	}
	if notes != nil {
		updateBuilder = updateBuilder.Set("notes", *notes)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return r.requireRowsAffected(result, "UpdateStatus")
}

// Delete удаляет заявку на отпуск
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("staff_time_off").
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

// CountByStatus возвращает количество заявок в указанном статусе
func (r *Repository) CountByStatus(ctx context.Context, status domain.TimeOffStatus) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("staff_time_off").
		Where(squirrel.Eq{"status": status}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByStatus - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByStatus - scan: %v", ErrScanRow, err)
	}

	return count, nil
}

func (r *Repository) requireRowsAffected(result sql.Result, method string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrTimeOffNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanTimeOff(row rowScanner) (*domain.TimeOff, error) {
	var timeOff domain.TimeOff
	var startTime, endTime types.TimeString
	var approvedByID sql.NullInt64
	var approvedAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&timeOff.ID,
		&timeOff.StaffID,
		&timeOff.LeaveType,
		&timeOff.StartDate,
		&timeOff.EndDate,
		&startTime,
		&endTime,
		&timeOff.IsFullDay,
		&timeOff.Reason,
		&timeOff.Status,
		&approvedByID,
		&approvedAt,
		&timeOff.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if !startTime.IsZero() {
		timeOff.StartTime = &startTime
	}
	if !endTime.IsZero() {
		timeOff.EndTime = &endTime
	}
	if approvedByID.Valid {
		timeOff.ApprovedByID = &approvedByID.Int64
	}
	if approvedAt.Valid {
		timeOff.ApprovedAt = &approvedAt.Time
	}
	timeOff.CreatedAt = createdAt.Time
	timeOff.UpdatedAt = updatedAt.Time

	return &timeOff, nil
}

func (r *Repository) scanTimeOffList(rows *sql.Rows) ([]*domain.TimeOff, error) {
	entries := make([]*domain.TimeOff, 0)
	for rows.Next() {
		timeOff, err := r.scanTimeOff(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan time off: %v", ErrScanRow, err)
		}
		entries = append(entries, timeOff)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
