package staff

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StaffService/internal/domain"
)

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	Create(ctx context.Context, member *domain.StaffMember) (*domain.StaffMember, error)
	GetByID(ctx context.Context, id int64) (*domain.StaffMember, error)
	List(ctx context.Context, filter domain.StaffFilter) ([]*domain.StaffMember, error)
	ListBookable(ctx context.Context) ([]*domain.StaffMember, error)
	Update(ctx context.Context, member *domain.StaffMember) error
	UpdateStatus(ctx context.Context, id int64, status domain.StaffStatus, terminationDate *time.Time, isBookable *bool) error
	SetBookable(ctx context.Context, id int64, isBookable bool) error
	Delete(ctx context.Context, id int64) error
	NextEmployeeNumber(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[domain.StaffStatus]int, error)
	CountBookable(ctx context.Context) (int, error)
}

// ScheduleRepository интерфейс репозитория расписаний.
// Нужен для автоматического создания расписания по умолчанию при приёме
// нового сотрудника.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error)
	ReplaceWorkingHours(ctx context.Context, scheduleID int64, hours []*domain.WorkingHours) error
}

// TimeOffRepository интерфейс репозитория заявок на отпуск (для статистики)
type TimeOffRepository interface {
	CountByStatus(ctx context.Context, status domain.TimeOffStatus) (int, error)
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
