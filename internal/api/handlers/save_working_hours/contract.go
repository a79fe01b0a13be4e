package save_working_hours

import (
	"context"

	"github.com/m04kA/SMC-StaffService/internal/service/schedules/models"
)

type ScheduleService interface {
	SaveWorkingHours(ctx context.Context, scheduleID int64, req *models.SaveWorkingHoursRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
