package schedules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StaffService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-StaffService/internal/infra/storage/schedule"
	staffRepo "github.com/m04kA/SMC-StaffService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-StaffService/internal/service/schedules/models"
	"github.com/m04kA/SMC-StaffService/pkg/types"
)

// Service сервис для работы с расписаниями
type Service struct {
	scheduleRepo ScheduleRepository
	staffRepo    StaffRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	staffRepo StaffRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		staffRepo:    staffRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create создает расписание для сотрудника.
// Первое расписание сотрудника всегда становится расписанием по умолчанию.
// Если запрошен isDefault, флаг снимается с остальных расписаний в той же
// транзакции.
func (s *Service) Create(ctx context.Context, staffID int64, req *models.CreateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Create: creating schedule %q for staff id=%d", req.Name, staffID)

	if _, err := s.staffRepo.GetByID(ctx, staffID); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("Create: staff member id=%d not found", staffID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("Create: failed to fetch staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: Create - fetch staff: %v", ErrInternal, err)
	}

	schedule, err := s.buildSchedule(staffID, req)
	if err != nil {
		s.logger.Warn("Create: invalid request for staff id=%d: %v", staffID, err)
		return nil, err
	}

	var created *domain.Schedule
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		count, err := s.scheduleRepo.CountByStaffID(ctx, staffID)
		if err != nil {
			return fmt.Errorf("%w: Create - count schedules: %v", ErrInternal, err)
		}
		if count == 0 {
			// Первое расписание сотрудника всегда default
			schedule.IsDefault = true
		}

		created, err = s.scheduleRepo.Create(ctx, schedule)
		if err != nil {
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		if created.IsDefault {
			if err := s.scheduleRepo.ClearDefaultForStaff(ctx, staffID, created.ID); err != nil {
				return fmt.Errorf("%w: Create - clear other defaults: %v", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		s.logger.Error("Create: transaction failed for staff id=%d: %v", staffID, err)
		return nil, err
	}

	s.logger.Info("Create: successfully created schedule id=%d for staff id=%d", created.ID, staffID)
	return models.FromDomainSchedule(created), nil
}

// GetByID получает расписание по ID вместе с рабочими часами
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ScheduleResponse, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("GetByID: schedule id=%d not found", id)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("GetByID: repository error for schedule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(schedule), nil
}

// ListByStaff получает расписания сотрудника, отсортированные по приоритету
// (default первым, далее по дате создания)
func (s *Service) ListByStaff(ctx context.Context, staffID int64) (*models.ScheduleListResponse, error) {
	schedules, err := s.scheduleRepo.GetByStaffID(ctx, staffID)
	if err != nil {
		s.logger.Error("ListByStaff: repository error for staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: ListByStaff - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainScheduleList(schedules), nil
}

// Update частично обновляет расписание
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Update: updating schedule id=%d", id)

	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Update: schedule id=%d not found", id)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("Update: repository error for schedule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if err := s.applyPatch(schedule, req); err != nil {
		s.logger.Warn("Update: invalid patch for schedule id=%d: %v", id, err)
		return nil, err
	}

	if err := s.scheduleRepo.Update(ctx, schedule); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("Update: repository error for schedule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated schedule id=%d", id)
	return models.FromDomainSchedule(schedule), nil
}

// SetDefault делает расписание расписанием по умолчанию.
// Флаг снимается с остальных расписаний сотрудника в той же транзакции,
// так что инвариант "не более одного default" сохраняется.
func (s *Service) SetDefault(ctx context.Context, id int64) error {
	s.logger.Info("SetDefault: setting schedule id=%d as default", id)

	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("SetDefault: schedule id=%d not found", id)
			return ErrScheduleNotFound
		}
		s.logger.Error("SetDefault: repository error for schedule id=%d: %v", id, err)
		return fmt.Errorf("%w: SetDefault - repository error: %v", ErrInternal, err)
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.scheduleRepo.ClearDefaultForStaff(ctx, schedule.StaffID, id); err != nil {
			return fmt.Errorf("%w: SetDefault - clear other defaults: %v", ErrInternal, err)
		}
		if err := s.scheduleRepo.SetDefault(ctx, id, true); err != nil {
			return fmt.Errorf("%w: SetDefault - set default: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("SetDefault: transaction failed for schedule id=%d: %v", id, err)
		return err
	}

	s.logger.Info("SetDefault: schedule id=%d is now default for staff id=%d", id, schedule.StaffID)
	return nil
}

// Delete удаляет расписание вместе с рабочими часами (каскад на уровне БД).
// Единственное расписание сотрудника удалить нельзя. Если удаляется
// расписание по умолчанию, default переходит к самому свежему из оставшихся.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting schedule id=%d", id)

	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Delete: schedule id=%d not found", id)
			return ErrScheduleNotFound
		}
		s.logger.Error("Delete: repository error for schedule id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		count, err := s.scheduleRepo.CountByStaffID(ctx, schedule.StaffID)
		if err != nil {
			return fmt.Errorf("%w: Delete - count schedules: %v", ErrInternal, err)
		}
		if count <= 1 {
			return ErrLastSchedule
		}

		if err := s.scheduleRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		if schedule.IsDefault {
			remaining, err := s.scheduleRepo.GetByStaffID(ctx, schedule.StaffID)
			if err != nil {
				return fmt.Errorf("%w: Delete - fetch remaining schedules: %v", ErrInternal, err)
			}
			if len(remaining) > 0 {
				// GetByStaffID отдаёт самое свежее первым
				if err := s.scheduleRepo.SetDefault(ctx, remaining[0].ID, true); err != nil {
					return fmt.Errorf("%w: Delete - reassign default: %v", ErrInternal, err)
				}
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrLastSchedule) {
			s.logger.Warn("Delete: schedule id=%d is the only schedule of staff id=%d", id, schedule.StaffID)
			return ErrLastSchedule
		}
		s.logger.Error("Delete: transaction failed for schedule id=%d: %v", id, err)
		return err
	}

	s.logger.Info("Delete: successfully deleted schedule id=%d", id)
	return nil
}

// SaveWorkingHours полностью заменяет рабочие часы расписания
func (s *Service) SaveWorkingHours(ctx context.Context, scheduleID int64, req *models.SaveWorkingHoursRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("SaveWorkingHours: saving %d entries for schedule id=%d", len(req.Hours), scheduleID)

	if _, err := s.scheduleRepo.GetByID(ctx, scheduleID); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("SaveWorkingHours: schedule id=%d not found", scheduleID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("SaveWorkingHours: repository error for schedule id=%d: %v", scheduleID, err)
		return nil, fmt.Errorf("%w: SaveWorkingHours - repository error: %v", ErrInternal, err)
	}

	hours := make([]*domain.WorkingHours, 0, len(req.Hours))
	for _, entry := range req.Hours {
		if err := s.validateWorkingHoursEntry(&entry); err != nil {
			s.logger.Warn("SaveWorkingHours: invalid entry for schedule id=%d, day=%d: %v", scheduleID, entry.DayOfWeek, err)
			return nil, err
		}
		hours = append(hours, entry.ToDomainWorkingHours(scheduleID))
	}

	if err := s.scheduleRepo.ReplaceWorkingHours(ctx, scheduleID, hours); err != nil {
		if errors.Is(err, scheduleRepo.ErrDuplicateWorkingHours) {
			s.logger.Warn("SaveWorkingHours: duplicate weekday for schedule id=%d", scheduleID)
			return nil, fmt.Errorf("%w: duplicate weekday", ErrInvalidWorkingHours)
		}
		s.logger.Error("SaveWorkingHours: repository error for schedule id=%d: %v", scheduleID, err)
		return nil, fmt.Errorf("%w: SaveWorkingHours - repository error: %v", ErrInternal, err)
	}

	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		s.logger.Error("SaveWorkingHours: failed to reload schedule id=%d: %v", scheduleID, err)
		return nil, fmt.Errorf("%w: SaveWorkingHours - reload schedule: %v", ErrInternal, err)
	}

	s.logger.Info("SaveWorkingHours: successfully saved hours for schedule id=%d", scheduleID)
	return models.FromDomainSchedule(schedule), nil
}

// Вспомогательные методы

func (s *Service) buildSchedule(staffID int64, req *models.CreateScheduleRequest) (*domain.Schedule, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: schedule name is required", ErrInvalidInput)
	}
	if len(req.Name) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: schedule name too long", ErrInvalidInput)
	}

	schedule := &domain.Schedule{
		StaffID:   staffID,
		Name:      req.Name,
		IsDefault: req.IsDefault,
		IsActive:  true,
	}

	if req.EffectiveFrom != nil {
		from, err := time.Parse(domain.DateFormat, *req.EffectiveFrom)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid effective from date", ErrInvalidInput)
		}
		schedule.EffectiveFrom = &from
	}
	if req.EffectiveUntil != nil {
		until, err := time.Parse(domain.DateFormat, *req.EffectiveUntil)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid effective until date", ErrInvalidInput)
		}
		schedule.EffectiveUntil = &until
	}

	if schedule.EffectiveFrom != nil && schedule.EffectiveUntil != nil &&
		schedule.EffectiveUntil.Before(*schedule.EffectiveFrom) {
		return nil, fmt.Errorf("%w: effective until before effective from", ErrInvalidInput)
	}

	return schedule, nil
}

func (s *Service) applyPatch(schedule *domain.Schedule, req *models.UpdateScheduleRequest) error {
	if req.Name != nil {
		if *req.Name == "" || len(*req.Name) > domain.MaxNameLength {
			return fmt.Errorf("%w: invalid schedule name", ErrInvalidInput)
		}
		schedule.Name = *req.Name
	}
	if req.IsActive != nil {
		schedule.IsActive = *req.IsActive
	}
	if req.ClearEffectiveFrom {
		schedule.EffectiveFrom = nil
	} else if req.EffectiveFrom != nil {
		from, err := time.Parse(domain.DateFormat, *req.EffectiveFrom)
		if err != nil {
			return fmt.Errorf("%w: invalid effective from date", ErrInvalidInput)
		}
		schedule.EffectiveFrom = &from
	}
	if req.ClearEffectiveUntil {
		schedule.EffectiveUntil = nil
	} else if req.EffectiveUntil != nil {
		until, err := time.Parse(domain.DateFormat, *req.EffectiveUntil)
		if err != nil {
			return fmt.Errorf("%w: invalid effective until date", ErrInvalidInput)
		}
		schedule.EffectiveUntil = &until
	}

	if schedule.EffectiveFrom != nil && schedule.EffectiveUntil != nil &&
		schedule.EffectiveUntil.Before(*schedule.EffectiveFrom) {
		return fmt.Errorf("%w: effective until before effective from", ErrInvalidInput)
	}

	return nil
}

// validateWorkingHoursEntry проверяет рабочие часы одного дня.
// Для выходного дня временные поля не проверяются.
func (s *Service) validateWorkingHoursEntry(entry *models.WorkingHoursEntry) error {
	if entry.DayOfWeek < 0 || entry.DayOfWeek > 6 {
		return fmt.Errorf("%w: day of week must be 0..6", ErrInvalidWorkingHours)
	}
	if !entry.IsWorking {
		return nil
	}

	start, err := types.NewTimeStringFromString(entry.StartTime)
	if err != nil {
		return fmt.Errorf("%w: invalid start time %q", ErrInvalidWorkingHours, entry.StartTime)
	}
	end, err := types.NewTimeStringFromString(entry.EndTime)
	if err != nil {
		return fmt.Errorf("%w: invalid end time %q", ErrInvalidWorkingHours, entry.EndTime)
	}
	if !end.IsAfter(start) {
		return fmt.Errorf("%w: end time must be after start time", ErrInvalidWorkingHours)
	}

	if (entry.BreakStart == nil) != (entry.BreakEnd == nil) {
		return fmt.Errorf("%w: break start and break end must be set together", ErrInvalidWorkingHours)
	}
	if entry.BreakStart != nil {
		breakStart, err := types.NewTimeStringFromString(*entry.BreakStart)
		if err != nil {
			return fmt.Errorf("%w: invalid break start %q", ErrInvalidWorkingHours, *entry.BreakStart)
		}
		breakEnd, err := types.NewTimeStringFromString(*entry.BreakEnd)
		if err != nil {
			return fmt.Errorf("%w: invalid break end %q", ErrInvalidWorkingHours, *entry.BreakEnd)
		}
		if !breakEnd.IsAfter(breakStart) {
			return fmt.Errorf("%w: break end must be after break start", ErrInvalidWorkingHours)
		}
		if breakStart.IsBefore(start) || breakEnd.IsAfter(end) {
			return fmt.Errorf("%w: break must be inside working hours", ErrInvalidWorkingHours)
		}
	}

	return nil
}
