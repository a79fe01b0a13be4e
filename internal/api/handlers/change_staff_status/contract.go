package change_staff_status

import (
	"context"

	"github.com/m04kA/SMC-StaffService/internal/service/staff/models"
)

type StaffService interface {
	ChangeStatus(ctx context.Context, id int64, req *models.ChangeStatusRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
