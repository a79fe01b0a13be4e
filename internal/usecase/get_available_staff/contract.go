package get_available_staff

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StaffService/internal/domain"
)

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	ListBookable(ctx context.Context) ([]*domain.StaffMember, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByStaffID(ctx context.Context, staffID int64) ([]*domain.Schedule, error)
}

// TimeOffRepository интерфейс репозитория заявок на отпуск
type TimeOffRepository interface {
	ListBlockingForDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.TimeOff, error)
}

// AssignmentRepository интерфейс репозитория назначений услуг
type AssignmentRepository interface {
	ListStaffIDsByService(ctx context.Context, serviceID int64) ([]int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
