package timeoff

import "errors"

var (
	// ErrTimeOffNotFound возвращается, когда заявка не найдена
	ErrTimeOffNotFound = errors.New("time off request not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrInvalidDateRange возвращается при некорректном диапазоне дат
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidTransition возвращается при недопустимой смене статуса заявки
	ErrInvalidTransition = errors.New("invalid time off status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
