package get_available_staff

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-StaffService/internal/availability"
	"github.com/m04kA/SMC-StaffService/internal/domain"
)

// UseCase use case для подбора сотрудников, доступных в указанный момент
type UseCase struct {
	staffRepo      StaffRepository
	scheduleRepo   ScheduleRepository
	timeOffRepo    TimeOffRepository
	assignmentRepo AssignmentRepository
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	staffRepo StaffRepository,
	scheduleRepo ScheduleRepository,
	timeOffRepo TimeOffRepository,
	assignmentRepo AssignmentRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		staffRepo:      staffRepo,
		scheduleRepo:   scheduleRepo,
		timeOffRepo:    timeOffRepo,
		assignmentRepo: assignmentRepo,
		logger:         logger,
	}
}

// Execute подбирает сотрудников, доступных в указанные дату и время.
// Кандидаты - активные сотрудники с включенной записью; при заданной услуге
// дополнительно требуется активное назначение этой услуги.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableStaff: date=%s, time=%s, service=%v",
		req.Date.Format(domain.DateFormat), req.Time, req.ServiceID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableStaff: validation failed: %v", err)
		return nil, err
	}

	// 2. Кандидаты: активные сотрудники с включенной записью
	candidates, err := uc.staffRepo.ListBookable(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableStaff: failed to list bookable staff: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookable staff: %v", ErrInternal, err)
	}

	// 3. Фильтр по услуге, если задан
	if req.ServiceID != nil {
		staffIDs, err := uc.assignmentRepo.ListStaffIDsByService(ctx, *req.ServiceID)
		if err != nil {
			uc.logger.Error("GetAvailableStaff: failed to list staff for service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to list staff for service: %v", ErrInternal, err)
		}

		assigned := make(map[int64]bool, len(staffIDs))
		for _, id := range staffIDs {
			assigned[id] = true
		}

		filtered := candidates[:0]
		for _, member := range candidates {
			if assigned[member.ID] {
				filtered = append(filtered, member)
			}
		}
		candidates = filtered
	}

	// 4. Точечная проверка доступности каждого кандидата
	available := make([]Candidate, 0, len(candidates))
	for _, member := range candidates {
		schedules, err := uc.scheduleRepo.GetByStaffID(ctx, member.ID)
		if err != nil {
			uc.logger.Error("GetAvailableStaff: failed to get schedules for staff id=%d: %v", member.ID, err)
			return nil, fmt.Errorf("%w: failed to get schedules: %v", ErrInternal, err)
		}

		timeOff, err := uc.timeOffRepo.ListBlockingForDate(ctx, member.ID, req.Date)
		if err != nil {
			uc.logger.Error("GetAvailableStaff: failed to get time off for staff id=%d: %v", member.ID, err)
			return nil, fmt.Errorf("%w: failed to get time off: %v", ErrInternal, err)
		}

		if res := availability.ResolveDay(schedules, req.Date); res != nil && res.AmbiguousDefault {
			uc.logger.Warn("GetAvailableStaff: staff id=%d has multiple default schedules applicable on %s",
				member.ID, req.Date.Format(domain.DateFormat))
		}

		if availability.IsAvailableAt(member, schedules, timeOff, req.Date, req.Time) {
			available = append(available, newCandidate(member))
		}
	}

	uc.logger.Info("GetAvailableStaff: %d of %d candidates available at %s %s",
		len(available), len(candidates), req.Date.Format(domain.DateFormat), req.Time)

	return &Response{
		Date:      req.Date,
		Time:      req.Time,
		ServiceID: req.ServiceID,
		Staff:     available,
	}, nil
}
