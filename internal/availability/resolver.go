// Package availability contains the schedule resolution and availability
// evaluation core. Everything in this package is a pure computation over
// snapshots of staff data fetched by the caller: no queries, no logging,
// no retained state. Concurrent calls are safe as long as the caller does
// not mutate the snapshots.
package availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-StaffService/internal/domain"
)

// DayResolution результат выбора расписания на конкретную дату
type DayResolution struct {
	// Schedule выбранный шаблон расписания
	Schedule *domain.Schedule

	// Hours строка рабочих часов на день недели даты.
	// nil, если в выбранном расписании день не определён.
	Hours *domain.WorkingHours

	// AmbiguousDefault выставляется, когда на дату применимо больше одного
	// дефолтного расписания. Это нарушение инварианта данных: выбор при этом
	// детерминирован (побеждает созданное позже), вызывающий слой должен
	// залогировать предупреждение, но не падать.
	AmbiguousDefault bool
}

// IsWorkingDay reports whether the resolution carries usable working hours.
// Safe to call on a nil resolution.
func (r *DayResolution) IsWorkingDay() bool {
	return r != nil && r.Hours != nil && r.Hours.IsWorking
}

// ResolveDay selects the single applicable weekly schedule for the date and
// returns its working hours for the date's weekday.
//
// Selection: filter to active schedules whose effective window covers the
// date, rank by (is_default desc, created_at desc) and take the first.
// Returns nil when no schedule is applicable. A missing working-hours row
// for the weekday yields a resolution with Hours == nil (day is treated as
// not working).
func ResolveDay(schedules []*domain.Schedule, date time.Time) *DayResolution {
	applicable := make([]*domain.Schedule, 0, len(schedules))
	for _, s := range schedules {
		if s.IsApplicableOn(date) {
			applicable = append(applicable, s)
		}
	}

	if len(applicable) == 0 {
		return nil
	}

	// Явная функция ранжирования вместо каскада условий:
	// дефолтное расписание побеждает недефолтное, при равенстве побеждает
	// созданное позже.
	sort.SliceStable(applicable, func(i, j int) bool {
		if applicable[i].IsDefault != applicable[j].IsDefault {
			return applicable[i].IsDefault
		}
		return applicable[i].CreatedAt.After(applicable[j].CreatedAt)
	})

	defaults := 0
	for _, s := range applicable {
		if s.IsDefault {
			defaults++
		}
	}

	chosen := applicable[0]
	return &DayResolution{
		Schedule:         chosen,
		Hours:            chosen.HoursForWeekday(domain.WeekdayIndex(date.Weekday())),
		AmbiguousDefault: defaults > 1,
	}
}
