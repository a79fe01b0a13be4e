package schedules

import (
	"context"

	"github.com/m04kA/SMC-StaffService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error)
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	GetByStaffID(ctx context.Context, staffID int64) ([]*domain.Schedule, error)
	CountByStaffID(ctx context.Context, staffID int64) (int, error)
	Update(ctx context.Context, schedule *domain.Schedule) error
	SetDefault(ctx context.Context, id int64, isDefault bool) error
	ClearDefaultForStaff(ctx context.Context, staffID int64, exceptID int64) error
	Delete(ctx context.Context, id int64) error
	ReplaceWorkingHours(ctx context.Context, scheduleID int64, hours []*domain.WorkingHours) error
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.StaffMember, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
