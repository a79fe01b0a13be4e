package assignment

import "errors"

var (
	// ErrAssignmentNotFound назначение не найдено
	ErrAssignmentNotFound = errors.New("service assignment not found")
	// ErrDuplicateAssignment услуга уже назначена сотруднику
	ErrDuplicateAssignment = errors.New("service already assigned to staff member")
	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("failed to build query")
	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("failed to execute query")
	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("failed to scan row")
)
