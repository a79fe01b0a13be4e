package timeoff

import (
	"context"

	"github.com/m04kA/SMC-StaffService/internal/domain"
)

// TimeOffRepository интерфейс репозитория заявок на отпуск
type TimeOffRepository interface {
	Create(ctx context.Context, timeOff *domain.TimeOff) (*domain.TimeOff, error)
	GetByID(ctx context.Context, id int64) (*domain.TimeOff, error)
	List(ctx context.Context, filter domain.TimeOffFilter) ([]*domain.TimeOff, error)
	Update(ctx context.Context, timeOff *domain.TimeOff) error
	UpdateStatus(ctx context.Context, id int64, status domain.TimeOffStatus, approvedByID *int64, notes *string) error
	Delete(ctx context.Context, id int64) error
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.StaffMember, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
