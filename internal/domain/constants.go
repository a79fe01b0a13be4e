package domain

import "github.com/m04kA/SMC-StaffService/pkg/types"

// Default configuration values
const (
	DefaultWorkStart              = types.TimeString("09:00")
	DefaultWorkEnd                = types.TimeString("18:00")
	DefaultBreakMinutes           = 60
	DefaultSlotDurationMinutes    = 60
	DefaultSlotIntervalMinutes    = 15
	DefaultMinAdvanceBookingHours = 1
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MinSlotIntervalMinutes = 5
	MaxSlotIntervalMinutes = 240
	MaxNotesLength         = 500
	MaxNameLength          = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ValidStaffStatuses допустимые статусы сотрудника
var ValidStaffStatuses = []StaffStatus{
	StaffStatusActive,
	StaffStatusInactive,
	StaffStatusOnLeave,
	StaffStatusTerminated,
}

// BlockingTimeOffStatuses статусы заявок, которые блокируют доступность.
// Pending учитывается наравне с approved, чтобы слот не был предложен
// клиенту, пока заявка ждёт решения.
var BlockingTimeOffStatuses = []TimeOffStatus{
	TimeOffStatusPending,
	TimeOffStatusApproved,
}

// ValidLeaveTypes допустимые типы отпусков
var ValidLeaveTypes = []LeaveType{
	LeaveTypeVacation,
	LeaveTypeSick,
	LeaveTypePersonal,
	LeaveTypeTraining,
	LeaveTypeOther,
}

// WeekdayNames названия дней недели в нумерации расписаний (0=Monday)
var WeekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}
