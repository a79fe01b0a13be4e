package set_default_schedule

import (
	"context"
)

type ScheduleService interface {
	SetDefault(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
