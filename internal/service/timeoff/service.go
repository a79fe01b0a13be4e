package timeoff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StaffService/internal/domain"
	staffRepo "github.com/m04kA/SMC-StaffService/internal/infra/storage/staff"
	timeoffRepo "github.com/m04kA/SMC-StaffService/internal/infra/storage/timeoff"
	"github.com/m04kA/SMC-StaffService/internal/service/timeoff/models"
)

// Service сервис для работы с заявками на отпуск
type Service struct {
	timeOffRepo TimeOffRepository
	staffRepo   StaffRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса отпусков
func NewService(
	timeOffRepo TimeOffRepository,
	staffRepo StaffRepository,
	logger Logger,
) *Service {
	return &Service{
		timeOffRepo: timeOffRepo,
		staffRepo:   staffRepo,
		logger:      logger,
	}
}

// Create создает заявку на отпуск в статусе pending.
// Заявка с указанным временем начала и конца считается частичной,
// без времени - на полный день.
func (s *Service) Create(ctx context.Context, staffID int64, req *models.CreateTimeOffRequest) (*models.TimeOffResponse, error) {
	s.logger.Info("Create: creating time off for staff id=%d, type=%s", staffID, req.LeaveType)

	if _, err := s.staffRepo.GetByID(ctx, staffID); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("Create: staff member id=%d not found", staffID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("Create: failed to fetch staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: Create - fetch staff: %v", ErrInternal, err)
	}

	timeOff, err := s.buildTimeOff(staffID, req)
	if err != nil {
		s.logger.Warn("Create: invalid request for staff id=%d: %v", staffID, err)
		return nil, err
	}

	created, err := s.timeOffRepo.Create(ctx, timeOff)
	if err != nil {
		s.logger.Error("Create: repository error for staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created time off id=%d for staff id=%d", created.ID, staffID)
	return models.FromDomainTimeOff(created), nil
}

// GetByID получает заявку по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.TimeOffResponse, error) {
	timeOff, err := s.timeOffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, timeoffRepo.ErrTimeOffNotFound) {
			s.logger.Warn("GetByID: time off id=%d not found", id)
			return nil, ErrTimeOffNotFound
		}
		s.logger.Error("GetByID: repository error for time off id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTimeOff(timeOff), nil
}

// List получает заявки с фильтрацией по сотруднику, периоду и статусу
func (s *Service) List(ctx context.Context, req *models.ListTimeOffRequest) (*models.TimeOffListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	entries, err := s.timeOffRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d time off entries", len(entries))
	return models.FromDomainTimeOffList(entries), nil
}

// Update обновляет заявку. Редактировать можно только заявки в статусе pending.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateTimeOffRequest) (*models.TimeOffResponse, error) {
	s.logger.Info("Update: updating time off id=%d", id)

	timeOff, err := s.timeOffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, timeoffRepo.ErrTimeOffNotFound) {
			s.logger.Warn("Update: time off id=%d not found", id)
			return nil, ErrTimeOffNotFound
		}
		s.logger.Error("Update: repository error for time off id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if timeOff.Status != domain.TimeOffStatusPending {
		s.logger.Warn("Update: time off id=%d is %s, only pending can be edited", id, timeOff.Status)
		return nil, fmt.Errorf("%w: only pending requests can be edited", ErrInvalidTransition)
	}

	if err := s.applyPatch(timeOff, req); err != nil {
		s.logger.Warn("Update: invalid patch for time off id=%d: %v", id, err)
		return nil, err
	}

	if err := s.timeOffRepo.Update(ctx, timeOff); err != nil {
		if errors.Is(err, timeoffRepo.ErrTimeOffNotFound) {
			return nil, ErrTimeOffNotFound
		}
		s.logger.Error("Update: repository error for time off id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated time off id=%d", id)
	return models.FromDomainTimeOff(timeOff), nil
}

// Resolve обрабатывает решение по заявке: approve, reject или cancel.
// Approve и reject допустимы только из pending. Cancel допустим из pending
// и approved - сотрудник может отменить уже согласованный отпуск.
func (s *Service) Resolve(ctx context.Context, id int64, resolvedByID int64, req *models.ResolveTimeOffRequest) (*models.TimeOffResponse, error) {
	s.logger.Info("Resolve: resolving time off id=%d, action=%s, by user=%d", id, req.Action, resolvedByID)

	timeOff, err := s.timeOffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, timeoffRepo.ErrTimeOffNotFound) {
			s.logger.Warn("Resolve: time off id=%d not found", id)
			return nil, ErrTimeOffNotFound
		}
		s.logger.Error("Resolve: repository error for time off id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}

	var newStatus domain.TimeOffStatus
	var approvedByID *int64

	switch req.Action {
	case "approve":
		if timeOff.Status != domain.TimeOffStatusPending {
			return nil, fmt.Errorf("%w: only pending requests can be approved", ErrInvalidTransition)
		}
		newStatus = domain.TimeOffStatusApproved
		approvedByID = &resolvedByID
	case "reject":
		if timeOff.Status != domain.TimeOffStatusPending {
			return nil, fmt.Errorf("%w: only pending requests can be rejected", ErrInvalidTransition)
		}
		newStatus = domain.TimeOffStatusRejected
	case "cancel":
		if timeOff.Status != domain.TimeOffStatusPending && timeOff.Status != domain.TimeOffStatusApproved {
			return nil, fmt.Errorf("%w: only pending or approved requests can be cancelled", ErrInvalidTransition)
		}
		newStatus = domain.TimeOffStatusCancelled
	default:
		s.logger.Warn("Resolve: unknown action %q for time off id=%d", req.Action, id)
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}

	if err := s.timeOffRepo.UpdateStatus(ctx, id, newStatus, approvedByID, req.Notes); err != nil {
		if errors.Is(err, timeoffRepo.ErrTimeOffNotFound) {
			return nil, ErrTimeOffNotFound
		}
		s.logger.Error("Resolve: repository error for time off id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}

	resolved, err := s.timeOffRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Resolve: failed to reload time off id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Resolve - reload: %v", ErrInternal, err)
	}

	s.logger.Info("Resolve: time off id=%d is now %s", id, newStatus)
	return models.FromDomainTimeOff(resolved), nil
}

// Delete удаляет заявку
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting time off id=%d", id)

	if err := s.timeOffRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, timeoffRepo.ErrTimeOffNotFound) {
			s.logger.Warn("Delete: time off id=%d not found", id)
			return ErrTimeOffNotFound
		}
		s.logger.Error("Delete: repository error for time off id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted time off id=%d", id)
	return nil
}

// Вспомогательные методы

func (s *Service) buildTimeOff(staffID int64, req *models.CreateTimeOffRequest) (*domain.TimeOff, error) {
	leaveType, err := models.ToDomainLeaveType(req.LeaveType)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid leave type %q", ErrInvalidInput, req.LeaveType)
	}

	startDate, err := time.Parse(domain.DateFormat, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date", ErrInvalidInput)
	}
	endDate, err := time.Parse(domain.DateFormat, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end date", ErrInvalidInput)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidDateRange)
	}

	startTime, err := models.ParseOptionalTime(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time", ErrInvalidInput)
	}
	endTime, err := models.ParseOptionalTime(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end time", ErrInvalidInput)
	}
	if (startTime == nil) != (endTime == nil) {
		return nil, fmt.Errorf("%w: start time and end time must be set together", ErrInvalidInput)
	}
	if startTime != nil && !endTime.IsAfter(*startTime) {
		return nil, fmt.Errorf("%w: end time must be after start time", ErrInvalidDateRange)
	}

	return &domain.TimeOff{
		StaffID:   staffID,
		LeaveType: leaveType,
		StartDate: startDate,
		EndDate:   endDate,
		StartTime: startTime,
		EndTime:   endTime,
		IsFullDay: startTime == nil,
		Reason:    req.Reason,
		Status:    domain.TimeOffStatusPending,
	}, nil
}

func (s *Service) applyPatch(timeOff *domain.TimeOff, req *models.UpdateTimeOffRequest) error {
	if req.LeaveType != nil {
		leaveType, err := models.ToDomainLeaveType(*req.LeaveType)
		if err != nil {
			return fmt.Errorf("%w: invalid leave type %q", ErrInvalidInput, *req.LeaveType)
		}
		timeOff.LeaveType = leaveType
	}
	if req.StartDate != nil {
		startDate, err := time.Parse(domain.DateFormat, *req.StartDate)
		if err != nil {
			return fmt.Errorf("%w: invalid start date", ErrInvalidInput)
		}
		timeOff.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := time.Parse(domain.DateFormat, *req.EndDate)
		if err != nil {
			return fmt.Errorf("%w: invalid end date", ErrInvalidInput)
		}
		timeOff.EndDate = endDate
	}
	if timeOff.EndDate.Before(timeOff.StartDate) {
		return fmt.Errorf("%w: end date before start date", ErrInvalidDateRange)
	}

	if req.StartTime != nil {
		startTime, err := models.ParseOptionalTime(req.StartTime)
		if err != nil {
			return fmt.Errorf("%w: invalid start time", ErrInvalidInput)
		}
		timeOff.StartTime = startTime
	}
	if req.EndTime != nil {
		endTime, err := models.ParseOptionalTime(req.EndTime)
		if err != nil {
			return fmt.Errorf("%w: invalid end time", ErrInvalidInput)
		}
		timeOff.EndTime = endTime
	}
	if req.FullDay != nil {
		timeOff.IsFullDay = *req.FullDay
		if timeOff.IsFullDay {
			timeOff.StartTime = nil
			timeOff.EndTime = nil
		}
	}
	if !timeOff.IsFullDay {
		if timeOff.StartTime == nil || timeOff.EndTime == nil {
			return fmt.Errorf("%w: partial day requires start and end time", ErrInvalidInput)
		}
		if !timeOff.EndTime.IsAfter(*timeOff.StartTime) {
			return fmt.Errorf("%w: end time must be after start time", ErrInvalidDateRange)
		}
	}

	if req.Reason != nil {
		timeOff.Reason = *req.Reason
	}
	if req.Notes != nil {
		if len(*req.Notes) > domain.MaxNotesLength {
			return fmt.Errorf("%w: notes too long", ErrInvalidInput)
		}
		timeOff.Notes = *req.Notes
	}

	return nil
}
