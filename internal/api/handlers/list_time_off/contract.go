package list_time_off

import (
	"context"

	"github.com/m04kA/SMC-StaffService/internal/service/timeoff/models"
)

type TimeOffService interface {
	List(ctx context.Context, req *models.ListTimeOffRequest) (*models.TimeOffListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
