package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-StaffService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes < 0 || req.IntervalMinutes < 0 {
		return fmt.Errorf("%w: duration and interval cannot be negative", ErrInvalidInput)
	}

	if req.DurationMinutes > 0 &&
		(req.DurationMinutes < domain.MinSlotDurationMinutes || req.DurationMinutes > domain.MaxSlotDurationMinutes) {
		return fmt.Errorf("%w: duration must be %d..%d minutes",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if req.IntervalMinutes > 0 &&
		(req.IntervalMinutes < domain.MinSlotIntervalMinutes || req.IntervalMinutes > domain.MaxSlotIntervalMinutes) {
		return fmt.Errorf("%w: interval must be %d..%d minutes",
			ErrInvalidInput, domain.MinSlotIntervalMinutes, domain.MaxSlotIntervalMinutes)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(requestDate time.Time, now time.Time) error {
	if domain.DateOnly(requestDate).Before(domain.DateOnly(now)) {
		return ErrInvalidDate
	}
	return nil
}
