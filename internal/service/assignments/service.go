package assignments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StaffService/internal/domain"
	staffRepo "github.com/m04kA/SMC-StaffService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-StaffService/internal/integrations/servicecatalog"
	"github.com/m04kA/SMC-StaffService/internal/service/assignments/models"
)

// Service сервис для работы с назначениями услуг
type Service struct {
	assignmentRepo AssignmentRepository
	staffRepo      StaffRepository
	catalogClient  ServiceCatalogClient
	txManager      TransactionManager
	logger         Logger
}

// NewService создает новый экземпляр сервиса назначений
func NewService(
	assignmentRepo AssignmentRepository,
	staffRepo StaffRepository,
	catalogClient ServiceCatalogClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		assignmentRepo: assignmentRepo,
		staffRepo:      staffRepo,
		catalogClient:  catalogClient,
		txManager:      txManager,
		logger:         logger,
	}
}

// Sync синхронизирует набор назначений сотрудника с переданным списком.
// Новые услуги назначаются, существующие обновляются и реактивируются,
// отсутствующие в списке деактивируются (история назначений сохраняется).
// Название услуги подтягивается из каталога; при его недоступности
// используется название из запроса.
func (s *Service) Sync(ctx context.Context, staffID int64, req *models.SyncAssignmentsRequest) (*models.AssignmentListResponse, error) {
	s.logger.Info("Sync: syncing %d assignments for staff id=%d", len(req.Assignments), staffID)

	if _, err := s.staffRepo.GetByID(ctx, staffID); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("Sync: staff member id=%d not found", staffID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("Sync: failed to fetch staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: Sync - fetch staff: %v", ErrInternal, err)
	}

	seen := make(map[int64]bool, len(req.Assignments))
	for _, entry := range req.Assignments {
		if entry.ServiceID <= 0 {
			return nil, fmt.Errorf("%w: invalid service id %d", ErrInvalidInput, entry.ServiceID)
		}
		if seen[entry.ServiceID] {
			return nil, fmt.Errorf("%w: duplicate service id %d", ErrInvalidInput, entry.ServiceID)
		}
		seen[entry.ServiceID] = true
		if entry.CustomDurationMinutes != nil &&
			(*entry.CustomDurationMinutes < domain.MinSlotDurationMinutes || *entry.CustomDurationMinutes > domain.MaxSlotDurationMinutes) {
			return nil, fmt.Errorf("%w: custom duration out of range for service id %d", ErrInvalidInput, entry.ServiceID)
		}
	}

	// Разрешаем названия услуг до открытия транзакции, чтобы не держать её
	// на время сетевых вызовов
	resolvedNames := make(map[int64]string, len(req.Assignments))
	for _, entry := range req.Assignments {
		name, err := s.resolveServiceName(ctx, entry)
		if err != nil {
			return nil, err
		}
		resolvedNames[entry.ServiceID] = name
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		existing, err := s.assignmentRepo.GetByStaffID(ctx, staffID, false)
		if err != nil {
			return fmt.Errorf("%w: Sync - fetch existing assignments: %v", ErrInternal, err)
		}

		existingByService := make(map[int64]*domain.ServiceAssignment, len(existing))
		for _, assignment := range existing {
			existingByService[assignment.ServiceID] = assignment
		}

		for _, entry := range req.Assignments {
			if current, ok := existingByService[entry.ServiceID]; ok {
				current.ServiceName = resolvedNames[entry.ServiceID]
				current.CustomDurationMinutes = entry.CustomDurationMinutes
				current.CustomPrice = entry.CustomPrice
				current.IsPrimary = entry.IsPrimary
				current.IsActive = true
				if err := s.assignmentRepo.Update(ctx, current); err != nil {
					return fmt.Errorf("%w: Sync - update assignment for service %d: %v", ErrInternal, entry.ServiceID, err)
				}
				continue
			}

			assignment := &domain.ServiceAssignment{
				StaffID:               staffID,
				ServiceID:             entry.ServiceID,
				ServiceName:           resolvedNames[entry.ServiceID],
				CustomDurationMinutes: entry.CustomDurationMinutes,
				CustomPrice:           entry.CustomPrice,
				IsPrimary:             entry.IsPrimary,
				IsActive:              true,
			}
			if _, err := s.assignmentRepo.Create(ctx, assignment); err != nil {
				return fmt.Errorf("%w: Sync - create assignment for service %d: %v", ErrInternal, entry.ServiceID, err)
			}
		}

		// Деактивируем назначения, которых нет в новом списке
		for _, assignment := range existing {
			if !seen[assignment.ServiceID] && assignment.IsActive {
				if err := s.assignmentRepo.SetActive(ctx, assignment.ID, false); err != nil {
					return fmt.Errorf("%w: Sync - deactivate assignment %d: %v", ErrInternal, assignment.ID, err)
				}
			}
		}

		return nil
	})
	if err != nil {
		s.logger.Error("Sync: transaction failed for staff id=%d: %v", staffID, err)
		return nil, err
	}

	active, err := s.assignmentRepo.GetByStaffID(ctx, staffID, true)
	if err != nil {
		s.logger.Error("Sync: failed to reload assignments for staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: Sync - reload assignments: %v", ErrInternal, err)
	}

	s.logger.Info("Sync: staff id=%d now has %d active assignments", staffID, len(active))
	return models.FromDomainAssignmentList(active), nil
}

// ListByStaff получает назначения сотрудника
func (s *Service) ListByStaff(ctx context.Context, staffID int64, activeOnly bool) (*models.AssignmentListResponse, error) {
	assignments, err := s.assignmentRepo.GetByStaffID(ctx, staffID, activeOnly)
	if err != nil {
		s.logger.Error("ListByStaff: repository error for staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: ListByStaff - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAssignmentList(assignments), nil
}

// StaffIDsForService возвращает ID сотрудников с активным назначением услуги
func (s *Service) StaffIDsForService(ctx context.Context, serviceID int64) ([]int64, error) {
	staffIDs, err := s.assignmentRepo.ListStaffIDsByService(ctx, serviceID)
	if err != nil {
		s.logger.Error("StaffIDsForService: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: StaffIDsForService - repository error: %v", ErrInternal, err)
	}

	return staffIDs, nil
}

// resolveServiceName получает название услуги из каталога.
// При недоступности каталога (graceful degradation) используется название
// из запроса; отсутствие услуги в каталоге - ошибка.
func (s *Service) resolveServiceName(ctx context.Context, entry models.AssignmentEntry) (string, error) {
	service, err := s.catalogClient.GetServiceWithGracefulDegradation(ctx, entry.ServiceID)
	if err != nil {
		if errors.Is(err, servicecatalog.ErrServiceNotFound) {
			s.logger.Warn("resolveServiceName: service id=%d not found in catalog", entry.ServiceID)
			return "", ErrServiceNotFound
		}
		if errors.Is(err, servicecatalog.ErrServiceDegraded) {
			if entry.ServiceName == "" {
				return "", fmt.Errorf("%w: service catalog unavailable and no service name provided for service %d", ErrInvalidInput, entry.ServiceID)
			}
			s.logger.Warn("resolveServiceName: catalog degraded, using provided name %q for service id=%d", entry.ServiceName, entry.ServiceID)
			return entry.ServiceName, nil
		}
		s.logger.Error("resolveServiceName: catalog error for service id=%d: %v", entry.ServiceID, err)
		return "", fmt.Errorf("%w: resolveServiceName - catalog error: %v", ErrInternal, err)
	}

	return service.Name, nil
}
