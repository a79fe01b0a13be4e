package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StaffService/internal/availability"
	"github.com/m04kA/SMC-StaffService/internal/domain"
	staffRepo "github.com/m04kA/SMC-StaffService/internal/infra/storage/staff"
)

// UseCase use case для получения доступных слотов сотрудника на день
type UseCase struct {
	staffRepo    StaffRepository
	scheduleRepo ScheduleRepository
	timeOffRepo  TimeOffRepository
	timeProvider TimeProvider
	defaults     domain.StaffDefaults
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	staffRepo StaffRepository,
	scheduleRepo ScheduleRepository,
	timeOffRepo TimeOffRepository,
	defaults domain.StaffDefaults,
	logger Logger,
) *UseCase {
	return &UseCase{
		staffRepo:    staffRepo,
		scheduleRepo: scheduleRepo,
		timeOffRepo:  timeOffRepo,
		timeProvider: &RealTimeProvider{},
		defaults:     defaults,
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: staff=%d, date=%s, duration=%d, interval=%d",
		req.StaffID, req.Date.Format(domain.DateFormat), req.DurationMinutes, req.IntervalMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Получаем сотрудника и проверяем, что он доступен для записи
	staff, err := uc.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailableSlots: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	if !staff.IsAvailableForBooking() {
		uc.logger.Warn("GetAvailableSlots: staff id=%d is not bookable (status=%s, is_bookable=%v)",
			req.StaffID, staff.Status, staff.IsBookable)
		return nil, ErrStaffNotBookable
	}

	// 4. Подставляем значения из конфигурации, если параметры не заданы
	duration := req.DurationMinutes
	if duration == 0 {
		duration = uc.defaults.DefaultSlotDurationMinutes
	}
	interval := req.IntervalMinutes
	if interval == 0 {
		interval = uc.defaults.DefaultSlotIntervalMinutes
	}

	// 5. Получаем расписания и блокирующие отпуска
	schedules, err := uc.scheduleRepo.GetByStaffID(ctx, req.StaffID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedules for staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get schedules: %v", ErrInternal, err)
	}

	timeOff, err := uc.timeOffRepo.ListBlockingForDate(ctx, req.StaffID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get time off for staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get time off: %v", ErrInternal, err)
	}

	if res := availability.ResolveDay(schedules, req.Date); res != nil && res.AmbiguousDefault {
		uc.logger.Warn("GetAvailableSlots: staff id=%d has multiple default schedules applicable on %s",
			req.StaffID, req.Date.Format(domain.DateFormat))
	}

	// 6. Генерируем слоты и отбрасываем прошедшие для сегодняшней даты
	slots := availability.Slots(schedules, timeOff, req.Date, duration, interval)
	slots = filterPastSlots(slots, req.Date, now, uc.defaults.MinAdvanceBookingHours)

	uc.logger.Info("GetAvailableSlots: generated %d slots for staff=%d, date=%s",
		len(slots), req.StaffID, req.Date.Format(domain.DateFormat))

	return &Response{
		StaffID:         req.StaffID,
		Date:            req.Date,
		DurationMinutes: duration,
		IntervalMinutes: interval,
		Slots:           slots,
	}, nil
}
