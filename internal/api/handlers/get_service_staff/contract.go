package get_service_staff

import "context"

type AssignmentService interface {
	StaffIDsForService(ctx context.Context, serviceID int64) ([]int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
