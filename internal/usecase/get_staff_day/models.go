package get_staff_day

import (
	"time"

	"github.com/m04kA/SMC-StaffService/internal/domain"
)

// Request модель запроса на разбор дня сотрудника
type Request struct {
	StaffID int64     // ID сотрудника
	Date    time.Time // Дата (без времени)
}

// DayHours рабочие часы разрешённого дня
type DayHours struct {
	StartTime  string  // "09:00"
	EndTime    string  // "18:00"
	BreakStart *string // Перерыв, если есть
	BreakEnd   *string //
}

// TimeOffEntry блокирующий отпуск, покрывающий дату
type TimeOffEntry struct {
	ID        int64
	LeaveType string
	Status    string
	IsFullDay bool
	StartTime *string // Для частичного дня
	EndTime   *string //
}

// Response модель ответа: как разрешился день сотрудника
type Response struct {
	StaffID          int64
	Date             time.Time
	ScheduleID       *int64    // Выбранное расписание; nil, если ни одно не применимо
	ScheduleName     string    // Название выбранного расписания
	IsWorkingDay     bool      // Рабочий ли день по расписанию
	Hours            *DayHours // Рабочие часы; nil для нерабочего дня
	AmbiguousDefault bool      // Несколько default-расписаний применимы одновременно
	TimeOff          []TimeOffEntry
}

// newTimeOffEntry собирает запись отпуска из domain модели
func newTimeOffEntry(to *domain.TimeOff) TimeOffEntry {
	entry := TimeOffEntry{
		ID:        to.ID,
		LeaveType: string(to.LeaveType),
		Status:    string(to.Status),
		IsFullDay: to.IsFullDay,
	}
	if to.StartTime != nil {
		startTime := to.StartTime.String()
		entry.StartTime = &startTime
	}
	if to.EndTime != nil {
		endTime := to.EndTime.String()
		entry.EndTime = &endTime
	}
	return entry
}
