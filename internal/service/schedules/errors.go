package schedules

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrLastSchedule возвращается при попытке удалить единственное расписание
	ErrLastSchedule = errors.New("cannot delete the only schedule of a staff member")

	// ErrInvalidWorkingHours возвращается при некорректных рабочих часах
	ErrInvalidWorkingHours = errors.New("invalid working hours")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
