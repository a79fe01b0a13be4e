package get_staff_day

import (
	"github.com/m04kA/SMC-StaffService/internal/domain"
	getStaffDay "github.com/m04kA/SMC-StaffService/internal/usecase/get_staff_day"
)

// StaffDayResponse HTTP response model: как разрешился день сотрудника
type StaffDayResponse struct {
	StaffID          int64          `json:"staffId"`
	Date             string         `json:"date"`
	ScheduleID       *int64         `json:"scheduleId,omitempty"`
	ScheduleName     string         `json:"scheduleName,omitempty"`
	IsWorkingDay     bool           `json:"isWorkingDay"`
	Hours            *DayHours      `json:"hours,omitempty"`
	AmbiguousDefault bool           `json:"ambiguousDefault"`
	TimeOff          []TimeOffEntry `json:"timeOff"`
}

// DayHours рабочие часы дня
type DayHours struct {
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// TimeOffEntry отпуск, покрывающий дату
type TimeOffEntry struct {
	ID        int64   `json:"id"`
	LeaveType string  `json:"leaveType"`
	Status    string  `json:"status"`
	IsFullDay bool    `json:"isFullDay"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getStaffDay.Response) *StaffDayResponse {
	out := &StaffDayResponse{
		StaffID:          resp.StaffID,
		Date:             resp.Date.Format(domain.DateFormat),
		ScheduleID:       resp.ScheduleID,
		ScheduleName:     resp.ScheduleName,
		IsWorkingDay:     resp.IsWorkingDay,
		AmbiguousDefault: resp.AmbiguousDefault,
		TimeOff:          make([]TimeOffEntry, len(resp.TimeOff)),
	}

	if resp.Hours != nil {
		out.Hours = &DayHours{
			StartTime:  resp.Hours.StartTime,
			EndTime:    resp.Hours.EndTime,
			BreakStart: resp.Hours.BreakStart,
			BreakEnd:   resp.Hours.BreakEnd,
		}
	}

	for i, entry := range resp.TimeOff {
		out.TimeOff[i] = TimeOffEntry{
			ID:        entry.ID,
			LeaveType: entry.LeaveType,
			Status:    entry.Status,
			IsFullDay: entry.IsFullDay,
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
		}
	}

	return out
}
