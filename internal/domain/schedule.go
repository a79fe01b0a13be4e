package domain

import (
	"time"

	"github.com/m04kA/SMC-StaffService/pkg/types"
)

// Schedule represents a weekly schedule template for a staff member.
// A staff member may own several schedules (e.g. a seasonal override bounded
// by an effective window); at most one of them is flagged default.
type Schedule struct {
	ID             int64
	StaffID        int64
	Name           string
	IsDefault      bool
	IsActive       bool
	EffectiveFrom  *time.Time // Включительно; nil = без нижней границы
	EffectiveUntil *time.Time // Включительно; nil = без верхней границы
	WorkingHours   []*WorkingHours

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsApplicableOn returns true if the schedule is active and its effective
// window (inclusive on both ends, either end may be open) covers the date.
func (s *Schedule) IsApplicableOn(date time.Time) bool {
	if !s.IsActive {
		return false
	}
	day := DateOnly(date)
	if s.EffectiveFrom != nil && day.Before(DateOnly(*s.EffectiveFrom)) {
		return false
	}
	if s.EffectiveUntil != nil && day.After(DateOnly(*s.EffectiveUntil)) {
		return false
	}
	return true
}

// HoursForWeekday returns the working hours row for the given weekday
// (0=Monday .. 6=Sunday), or nil if none is defined.
func (s *Schedule) HoursForWeekday(dayOfWeek int) *WorkingHours {
	for _, wh := range s.WorkingHours {
		if wh.DayOfWeek == dayOfWeek {
			return wh
		}
	}
	return nil
}

// WorkingHours represents working hours for one day of week within a schedule
type WorkingHours struct {
	ID         int64
	ScheduleID int64
	DayOfWeek  int // 0=Monday .. 6=Sunday
	StartTime  types.TimeString
	EndTime    types.TimeString
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString
	IsWorking  bool
}

// HasBreak returns true if both break bounds are set
func (wh *WorkingHours) HasBreak() bool {
	return wh.BreakStart != nil && wh.BreakEnd != nil
}

// WorkingMinutes calculates total working minutes for the day, break excluded.
// Returns 0 for a day off or malformed bounds.
func (wh *WorkingHours) WorkingMinutes() int {
	if !wh.IsWorking {
		return 0
	}
	start, err := wh.StartTime.Minutes()
	if err != nil {
		return 0
	}
	end, err := wh.EndTime.Minutes()
	if err != nil {
		return 0
	}
	total := end - start
	if total <= 0 {
		return 0
	}
	if wh.HasBreak() {
		bs, err1 := wh.BreakStart.Minutes()
		be, err2 := wh.BreakEnd.Minutes()
		if err1 == nil && err2 == nil && be > bs {
			total -= be - bs
		}
	}
	return total
}

// WeekdayIndex converts time.Weekday (Sunday=0) to the schedule numbering
// (Monday=0 .. Sunday=6).
func WeekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// DateOnly truncates a timestamp to midnight, keeping the location
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
