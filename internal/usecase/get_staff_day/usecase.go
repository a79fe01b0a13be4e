package get_staff_day

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StaffService/internal/availability"
	"github.com/m04kA/SMC-StaffService/internal/domain"
	staffRepo "github.com/m04kA/SMC-StaffService/internal/infra/storage/staff"
)

// UseCase use case для разбора дня сотрудника: какое расписание применилось,
// какие часы действуют и какие отпуска блокируют день
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

// Execute выполняет разбор дня сотрудника
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetStaffDay: staff=%d, date=%s", req.StaffID, req.Date.Format(domain.DateFormat))

	if req.StaffID <= 0 {
		return nil, fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if _, err := uc.staffRepo.GetByID(ctx, req.StaffID); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("GetStaffDay: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetStaffDay: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	schedules, err := uc.scheduleRepo.GetByStaffID(ctx, req.StaffID)
	if err != nil {
		uc.logger.Error("GetStaffDay: failed to get schedules for staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get schedules: %v", ErrInternal, err)
	}

	timeOff, err := uc.timeOffRepo.ListBlockingForDate(ctx, req.StaffID, req.Date)
	if err != nil {
		uc.logger.Error("GetStaffDay: failed to get time off for staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get time off: %v", ErrInternal, err)
	}

	resp := &Response{
		StaffID: req.StaffID,
		Date:    req.Date,
		TimeOff: make([]TimeOffEntry, 0, len(timeOff)),
	}
	for _, to := range timeOff {
		resp.TimeOff = append(resp.TimeOff, newTimeOffEntry(to))
	}

	res := availability.ResolveDay(schedules, req.Date)
	if res == nil {
		uc.logger.Info("GetStaffDay: no applicable schedule for staff=%d on %s",
			req.StaffID, req.Date.Format(domain.DateFormat))
		return resp, nil
	}

	resp.ScheduleID = &res.Schedule.ID
	resp.ScheduleName = res.Schedule.Name
	resp.AmbiguousDefault = res.AmbiguousDefault
	resp.IsWorkingDay = res.IsWorkingDay()

	if res.AmbiguousDefault {
		uc.logger.Warn("GetStaffDay: staff id=%d has multiple default schedules applicable on %s",
			req.StaffID, req.Date.Format(domain.DateFormat))
	}

	if resp.IsWorkingDay {
		hours := &DayHours{
			StartTime: res.Hours.StartTime.String(),
			EndTime:   res.Hours.EndTime.String(),
		}
		if res.Hours.HasBreak() {
			breakStart := res.Hours.BreakStart.String()
			breakEnd := res.Hours.BreakEnd.String()
			hours.BreakStart = &breakStart
			hours.BreakEnd = &breakEnd
		}
		resp.Hours = hours
	}

	return resp, nil
}
