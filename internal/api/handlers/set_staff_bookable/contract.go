package set_staff_bookable

import (
	"context"
)

type StaffService interface {
	SetBookable(ctx context.Context, id int64, isBookable bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
