package resolve_time_off

import (
	"context"

	"github.com/m04kA/SMC-StaffService/internal/service/timeoff/models"
)

type TimeOffService interface {
	Resolve(ctx context.Context, id int64, resolvedByID int64, req *models.ResolveTimeOffRequest) (*models.TimeOffResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
