package get_staff_day

import (
	"context"

	getStaffDay "github.com/m04kA/SMC-StaffService/internal/usecase/get_staff_day"
)

type GetStaffDayUseCase interface {
	Execute(ctx context.Context, req *getStaffDay.Request) (*getStaffDay.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
