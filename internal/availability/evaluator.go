package availability

import (
	"time"

	"github.com/m04kA/SMC-StaffService/internal/domain"
	"github.com/m04kA/SMC-StaffService/pkg/types"
)

// IsAvailableAt answers the point-in-time availability question: is the staff
// member working at the given date and time.
//
// Checks short-circuit in a fixed order: employment status, blocking time off,
// resolved working hours, the working window, the break window.
//
// Boundary semantics: the working window start is inclusive and its end is
// exclusive (the last bookable instant is end minus an instant); the break end
// is exclusive as well. A partial-day time off, by contrast, blocks its end
// time inclusively. The asymmetry is deliberate and must not be "fixed"
// without a product decision.
func IsAvailableAt(
	staff *domain.StaffMember,
	schedules []*domain.Schedule,
	timeOff []*domain.TimeOff,
	date time.Time,
	at types.TimeString,
) bool {
	// Статусный гейт предшествует любой временной логике
	if !staff.IsActive() {
		return false
	}

	// Блокирующие отпуска на эту дату
	for _, to := range timeOff {
		if !to.IsBlocking() || !to.CoversDate(date) {
			continue
		}
		if to.IsFullDay {
			return false
		}
		if to.StartTime != nil && to.EndTime != nil {
			// Обе границы включительно
			if !at.IsBefore(*to.StartTime) && !at.IsAfter(*to.EndTime) {
				return false
			}
		}
	}

	res := ResolveDay(schedules, date)
	if !res.IsWorkingDay() {
		return false
	}
	hours := res.Hours

	// Начало рабочего окна включительно, конец — нет
	if at.IsBefore(hours.StartTime) || !at.IsBefore(hours.EndTime) {
		return false
	}

	// Перерыв: начало включительно, конец — нет
	if hours.HasBreak() {
		if !at.IsBefore(*hours.BreakStart) && at.IsBefore(*hours.BreakEnd) {
			return false
		}
	}

	return true
}

// Slots enumerates bookable slot start times for the staff member's day.
//
// The sequence starts at the working window start and advances by
// intervalMinutes, emitting every candidate whose whole duration fits before
// the window end and does not overlap the break. Candidates merely touching
// the break boundary are kept: a slot ending exactly at break start or
// starting exactly at break end does not overlap.
//
// Any blocking full-day time off empties the whole day. Partial-day time off
// is intentionally not consulted here; the point-in-time check owns that
// finer rule.
//
// The result is finite, ascending and recomputed from scratch on every call.
// Malformed inputs (end before start, unparsable times, non-positive
// duration or interval) degrade to an empty result.
func Slots(
	schedules []*domain.Schedule,
	timeOff []*domain.TimeOff,
	date time.Time,
	durationMinutes int,
	intervalMinutes int,
) []types.TimeString {
	slots := make([]types.TimeString, 0)

	if durationMinutes <= 0 || intervalMinutes <= 0 {
		return slots
	}

	res := ResolveDay(schedules, date)
	if !res.IsWorkingDay() {
		return slots
	}
	hours := res.Hours

	// Полнодневный блокирующий отпуск обнуляет весь день
	for _, to := range timeOff {
		if to.IsBlocking() && to.IsFullDay && to.CoversDate(date) {
			return slots
		}
	}

	current := hours.StartTime
	for {
		candidateEnd, err := current.AddMinutes(durationMinutes)
		if err != nil {
			return slots
		}
		if candidateEnd.IsAfter(hours.EndTime) {
			break
		}

		overlapsBreak := false
		if hours.HasBreak() {
			// Пересечение есть, только если интервалы действительно
			// накладываются; слоты, граничащие с перерывом, не отбрасываются
			if candidateEnd.IsAfter(*hours.BreakStart) && current.IsBefore(*hours.BreakEnd) {
				overlapsBreak = true
			}
		}

		if !overlapsBreak {
			slots = append(slots, current)
		}

		next, err := current.AddMinutes(intervalMinutes)
		if err != nil {
			return slots
		}
		current = next
	}

	return slots
}
