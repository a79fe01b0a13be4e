package assignments

import (
	"context"

	"github.com/m04kA/SMC-StaffService/internal/domain"
	"github.com/m04kA/SMC-StaffService/internal/integrations/servicecatalog"
)

// AssignmentRepository интерфейс репозитория назначений услуг
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.ServiceAssignment) (*domain.ServiceAssignment, error)
	GetByStaffID(ctx context.Context, staffID int64, activeOnly bool) ([]*domain.ServiceAssignment, error)
	GetByStaffAndService(ctx context.Context, staffID, serviceID int64) (*domain.ServiceAssignment, error)
	Update(ctx context.Context, assignment *domain.ServiceAssignment) error
	SetActive(ctx context.Context, id int64, isActive bool) error
	Delete(ctx context.Context, id int64) error
	ListStaffIDsByService(ctx context.Context, serviceID int64) ([]int64, error)
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.StaffMember, error)
}

// ServiceCatalogClient интерфейс клиента каталога услуг
type ServiceCatalogClient interface {
	GetServiceWithGracefulDegradation(ctx context.Context, serviceID int64) (*servicecatalog.Service, error)
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
