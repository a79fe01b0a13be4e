package create_time_off

import (
	"context"

	"github.com/m04kA/SMC-StaffService/internal/service/timeoff/models"
)

type TimeOffService interface {
	Create(ctx context.Context, staffID int64, req *models.CreateTimeOffRequest) (*models.TimeOffResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
