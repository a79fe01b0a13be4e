package sync_assignments

import (
	"context"

	"github.com/m04kA/SMC-StaffService/internal/service/assignments/models"
)

type AssignmentService interface {
	Sync(ctx context.Context, staffID int64, req *models.SyncAssignmentsRequest) (*models.AssignmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
