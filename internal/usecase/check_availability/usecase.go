package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StaffService/internal/availability"
	"github.com/m04kA/SMC-StaffService/internal/domain"
	staffRepo "github.com/m04kA/SMC-StaffService/internal/infra/storage/staff"
)

// UseCase use case для точечной проверки доступности сотрудника
type UseCase struct {
	staffRepo    StaffRepository
	scheduleRepo ScheduleRepository
	timeOffRepo  TimeOffRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	staffRepo StaffRepository,
	scheduleRepo ScheduleRepository,
	timeOffRepo TimeOffRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		staffRepo:    staffRepo,
		scheduleRepo: scheduleRepo,
		timeOffRepo:  timeOffRepo,
		logger:       logger,
	}
}

// Execute выполняет проверку: работает ли сотрудник в указанный момент
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: staff=%d, date=%s, time=%s",
		req.StaffID, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем сотрудника
	staff, err := uc.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("CheckAvailability: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	// 3. Получаем расписания и блокирующие отпуска
	schedules, err := uc.scheduleRepo.GetByStaffID(ctx, req.StaffID)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get schedules for staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get schedules: %v", ErrInternal, err)
	}

	timeOff, err := uc.timeOffRepo.ListBlockingForDate(ctx, req.StaffID, req.Date)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get time off for staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get time off: %v", ErrInternal, err)
	}

	// 4. Несколько default-расписаний одновременно применимы - данные
	// неконсистентны, но запрос обслуживаем по самому свежему
	if res := availability.ResolveDay(schedules, req.Date); res != nil && res.AmbiguousDefault {
		uc.logger.Warn("CheckAvailability: staff id=%d has multiple default schedules applicable on %s",
			req.StaffID, req.Date.Format(domain.DateFormat))
	}

	// 5. Точечная проверка доступности
	available := availability.IsAvailableAt(staff, schedules, timeOff, req.Date, req.Time)

	uc.logger.Info("CheckAvailability: staff=%d, date=%s, time=%s, available=%v",
		req.StaffID, req.Date.Format(domain.DateFormat), req.Time, available)

	return &Response{
		StaffID:   req.StaffID,
		Date:      req.Date,
		Time:      req.Time,
		Available: available,
	}, nil
}
