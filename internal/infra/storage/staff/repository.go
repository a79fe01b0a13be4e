package staff

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-StaffService/internal/domain"
	"github.com/m04kA/SMC-StaffService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StaffService/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var staffColumns = []string{
	"id",
	"first_name",
	"last_name",
	"email",
	"phone",
	"employee_id",
	"role",
	"hire_date",
	"termination_date",
	"status",
	"bio",
	"specialties",
	"is_bookable",
	"calendar_color",
	"booking_buffer_minutes",
	"hourly_rate",
	"commission_rate",
	"display_order",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с сотрудниками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового сотрудника
func (r *Repository) Create(ctx context.Context, member *domain.StaffMember) (*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("staff_members").
		Columns(
			"first_name",
			"last_name",
			"email",
			"phone",
			"employee_id",
			"role",
			"hire_date",
			"termination_date",
			"status",
			"bio",
			"specialties",
			"is_bookable",
			"calendar_color",
			"booking_buffer_minutes",
			"hourly_rate",
			"commission_rate",
			"display_order",
			"notes",
		).
		Values(
			member.FirstName,
			member.LastName,
			member.Email,
			member.Phone,
			member.EmployeeID,
			member.Role,
			member.HireDate,
			member.TerminationDate,
			member.Status,
			member.Bio,
			member.Specialties,
			member.IsBookable,
			member.CalendarColor,
			member.BookingBufferMinutes,
			member.HourlyRate,
			member.CommissionRate,
			member.DisplayOrder,
			member.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&member.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return nil, ErrDuplicateEmployeeID
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	member.CreatedAt = createdAt.Time
	member.UpdatedAt = updatedAt.Time

	return member, nil
}

// GetByID получает сотрудника по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(staffColumns...).
		From("staff_members").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	member, err := r.scanStaff(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan staff member: %v", ErrScanRow, err)
	}

	return member, nil
}

// List получает список сотрудников с фильтрацией.
// Порядок стабильный: display_order, first_name, last_name.
func (r *Repository) List(ctx context.Context, filter domain.StaffFilter) ([]*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(staffColumns...).
		From("staff_members").
		OrderBy("display_order ASC", "first_name ASC", "last_name ASC")

	// Поиск по имени, email, телефону, табельному номеру
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
			squirrel.ILike{"email": pattern},
			squirrel.ILike{"phone": pattern},
			squirrel.ILike{"employee_id": pattern},
		})
	}

	if filter.Role != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"role": *filter.Role})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.IsBookable != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_bookable": *filter.IsBookable})
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

	return r.scanStaffList(rows)
}

// ListBookable получает активных и доступных для записи сотрудников
func (r *Repository) ListBookable(ctx context.Context) ([]*domain.StaffMember, error) {
	status := domain.StaffStatusActive
	bookable := true
	return r.List(ctx, domain.StaffFilter{Status: &status, IsBookable: &bookable})
}

// Update обновляет изменяемые поля сотрудника
func (r *Repository) Update(ctx context.Context, member *domain.StaffMember) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("staff_members").
		Set("first_name", member.FirstName).
		Set("last_name", member.LastName).
		Set("email", member.Email).
		Set("phone", member.Phone).
		Set("role", member.Role).
		Set("hire_date", member.HireDate).
		Set("termination_date", member.TerminationDate).
		Set("status", member.Status).
		Set("bio", member.Bio).
		Set("specialties", member.Specialties).
		Set("is_bookable", member.IsBookable).
		Set("calendar_color", member.CalendarColor).
		Set("booking_buffer_minutes", member.BookingBufferMinutes).
		Set("hourly_rate", member.HourlyRate).
		Set("commission_rate", member.CommissionRate).
		Set("display_order", member.DisplayOrder).
		Set("notes", member.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": member.ID}).
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

// UpdateStatus обновляет статус сотрудника.
// terminationDate и isBookable задаются вместе со статусом, чтобы увольнение
// было атомарным.
func (r *Repository) UpdateStatus(
	ctx context.Context,
	id int64,
	status domain.StaffStatus,
	terminationDate *time.Time,
	isBookable *bool,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("staff_members").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if terminationDate != nil {
		updateBuilder = updateBuilder.Set("termination_date", *terminationDate)
	}
	if isBookable != nil {
		updateBuilder = updateBuilder.Set("is_bookable", *isBookable)
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

// SetBookable выставляет флаг доступности для записи
func (r *Repository) SetBookable(ctx context.Context, id int64, isBookable bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("staff_members").
		Set("is_bookable", isBookable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetBookable - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetBookable - execute update: %v", ErrExecQuery, err)
	}

	return r.requireRowsAffected(result, "SetBookable")
}

// Delete удаляет сотрудника
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("staff_members").
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

// NextEmployeeNumber возвращает следующий порядковый номер для генерации
// табельного номера вида EMP-0001
func (r *Repository) NextEmployeeNumber(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(MAX(id), 0) + 1").
		From("staff_members").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: NextEmployeeNumber - build select query: %v", ErrBuildQuery, err)
	}

	var next int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&next); err != nil {
		return 0, fmt.Errorf("%w: NextEmployeeNumber - scan: %v", ErrScanRow, err)
	}

	return next, nil
}

// CountByStatus возвращает количество сотрудников по статусам
func (r *Repository) CountByStatus(ctx context.Context) (map[domain.StaffStatus]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status", "COUNT(*)").
		From("staff_members").
		GroupBy("status").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[domain.StaffStatus]int)
	for rows.Next() {
		var status domain.StaffStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByStatus - scan row: %v", ErrScanRow, err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// CountBookable возвращает количество активных сотрудников, доступных для записи
func (r *Repository) CountBookable(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("staff_members").
		Where(squirrel.Eq{"status": domain.StaffStatusActive, "is_bookable": true}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountBookable - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountBookable - scan: %v", ErrScanRow, err)
	}

	return count, nil
}

func (r *Repository) requireRowsAffected(result sql.Result, method string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrStaffNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanStaff(row rowScanner) (*domain.StaffMember, error) {
	var member domain.StaffMember
	var hireDate, terminationDate, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&member.ID,
		&member.FirstName,
		&member.LastName,
		&member.Email,
		&member.Phone,
		&member.EmployeeID,
		&member.Role,
		&hireDate,
		&terminationDate,
		&member.Status,
		&member.Bio,
		&member.Specialties,
		&member.IsBookable,
		&member.CalendarColor,
		&member.BookingBufferMinutes,
		&member.HourlyRate,
		&member.CommissionRate,
		&member.DisplayOrder,
		&member.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if hireDate.Valid {
		member.HireDate = &hireDate.Time
	}
	if terminationDate.Valid {
		member.TerminationDate = &terminationDate.Time
	}
	member.CreatedAt = createdAt.Time
	member.UpdatedAt = updatedAt.Time

	return &member, nil
}

func (r *Repository) scanStaffList(rows *sql.Rows) ([]*domain.StaffMember, error) {
	members := make([]*domain.StaffMember, 0)
	for rows.Next() {
		member, err := r.scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan staff member: %v", ErrScanRow, err)
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return members, nil
}
