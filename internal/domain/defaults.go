package domain

import "github.com/m04kA/SMC-StaffService/pkg/types"

// StaffDefaults значения по умолчанию для модуля персонала.
// Заполняется из секции [staff_defaults] конфигурации и передается явно —
// глобального синглтона в сервисе нет.
type StaffDefaults struct {
	DefaultWorkStart           types.TimeString
	DefaultWorkEnd             types.TimeString
	DefaultBreakMinutes        int
	DefaultSlotDurationMinutes int
	DefaultSlotIntervalMinutes int
	MinAdvanceBookingHours     int
}

// NewStaffDefaults возвращает дефолтные настройки модуля
func NewStaffDefaults() StaffDefaults {
	return StaffDefaults{
		DefaultWorkStart:           DefaultWorkStart,
		DefaultWorkEnd:             DefaultWorkEnd,
		DefaultBreakMinutes:        DefaultBreakMinutes,
		DefaultSlotDurationMinutes: DefaultSlotDurationMinutes,
		DefaultSlotIntervalMinutes: DefaultSlotIntervalMinutes,
		MinAdvanceBookingHours:     DefaultMinAdvanceBookingHours,
	}
}
