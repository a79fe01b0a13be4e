package check_availability

import (
	"fmt"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if _, err := req.Time.Minutes(); err != nil {
		return fmt.Errorf("%w: invalid time %q", ErrInvalidInput, req.Time)
	}

	return nil
}
