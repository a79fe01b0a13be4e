package assignment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-StaffService/internal/domain"
	"github.com/m04kA/SMC-StaffService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StaffService/pkg/psqlbuilder"
)

var assignmentColumns = []string{
	"id",
	"staff_id",
	"service_id",
	"service_name",
	"custom_duration_minutes",
	"custom_price",
	"is_primary",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с назначениями услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория назначений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает назначение услуги сотруднику
func (r *Repository) Create(ctx context.Context, assignment *domain.ServiceAssignment) (*domain.ServiceAssignment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("staff_service_assignments").
		Columns(
			"staff_id",
			"service_id",
			"service_name",
			"custom_duration_minutes",
			"custom_price",
			"is_primary",
			"is_active",
		).
		Values(
			assignment.StaffID,
			assignment.ServiceID,
			assignment.ServiceName,
			assignment.CustomDurationMinutes,
			assignment.CustomPrice,
			assignment.IsPrimary,
			assignment.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&assignment.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrDuplicateAssignment
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	assignment.CreatedAt = createdAt.Time
	assignment.UpdatedAt = updatedAt.Time

	return assignment, nil
}

// GetByStaffID получает назначения сотрудника.
// activeOnly ограничивает выборку активными назначениями.
func (r *Repository) GetByStaffID(ctx context.Context, staffID int64, activeOnly bool) ([]*domain.ServiceAssignment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(assignmentColumns...).
		From("staff_service_assignments").
		Where(squirrel.Eq{"staff_id": staffID}).
		OrderBy("is_primary DESC", "service_name ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAssignmentList(rows)
}

// GetByStaffAndService получает назначение конкретной услуги сотруднику
func (r *Repository) GetByStaffAndService(ctx context.Context, staffID, serviceID int64) (*domain.ServiceAssignment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(assignmentColumns...).
		From("staff_service_assignments").
		Where(squirrel.Eq{"staff_id": staffID, "service_id": serviceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndService - build select query: %v", ErrBuildQuery, err)
	}

	assignment, err := r.scanAssignment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAssignmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndService - scan assignment: %v", ErrScanRow, err)
	}

	return assignment, nil
}

// Update обновляет параметры назначения
func (r *Repository) Update(ctx context.Context, assignment *domain.ServiceAssignment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("staff_service_assignments").
		Set("service_name", assignment.ServiceName).
		Set("custom_duration_minutes", assignment.CustomDurationMinutes).
		Set("custom_price", assignment.CustomPrice).
		Set("is_primary", assignment.IsPrimary).
		Set("is_active", assignment.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": assignment.ID}).
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

// SetActive включает или выключает назначение
func (r *Repository) SetActive(ctx context.Context, id int64, isActive bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("staff_service_assignments").
		Set("is_active", isActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	return r.requireRowsAffected(result, "SetActive")
}

// Delete удаляет назначение
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("staff_service_assignments").
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

// ListStaffIDsByService возвращает ID сотрудников с активным назначением услуги
func (r *Repository) ListStaffIDsByService(ctx context.Context, serviceID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("staff_id").
		From("staff_service_assignments").
		Where(squirrel.Eq{"service_id": serviceID, "is_active": true}).
		OrderBy("staff_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListStaffIDsByService - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaffIDsByService - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	staffIDs := make([]int64, 0)
	for rows.Next() {
		var staffID int64
		if err := rows.Scan(&staffID); err != nil {
			return nil, fmt.Errorf("%w: ListStaffIDsByService - scan staff id: %v", ErrScanRow, err)
		}
		staffIDs = append(staffIDs, staffID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStaffIDsByService - rows error: %v", ErrScanRow, err)
	}

	return staffIDs, nil
}

func (r *Repository) requireRowsAffected(result sql.Result, method string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanAssignment(row rowScanner) (*domain.ServiceAssignment, error) {
	var assignment domain.ServiceAssignment
	var customDuration sql.NullInt64
	var customPrice sql.NullFloat64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&assignment.ID,
		&assignment.StaffID,
		&assignment.ServiceID,
		&assignment.ServiceName,
		&customDuration,
		&customPrice,
		&assignment.IsPrimary,
		&assignment.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if customDuration.Valid {
		duration := int(customDuration.Int64)
		assignment.CustomDurationMinutes = &duration
	}
	if customPrice.Valid {
		assignment.CustomPrice = &customPrice.Float64
	}
	assignment.CreatedAt = createdAt.Time
	assignment.UpdatedAt = updatedAt.Time

	return &assignment, nil
}

func (r *Repository) scanAssignmentList(rows *sql.Rows) ([]*domain.ServiceAssignment, error) {
	assignments := make([]*domain.ServiceAssignment, 0)
	for rows.Next() {
		assignment, err := r.scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan assignment: %v", ErrScanRow, err)
		}
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return assignments, nil
}
