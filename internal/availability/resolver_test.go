package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StaffService/internal/domain"
	"github.com/m04kA/SMC-StaffService/pkg/ptr"
	"github.com/m04kA/SMC-StaffService/pkg/types"
)

// monday is a fixed Monday used across the tests (2025-10-13 is a Monday).
var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func workingDay(day int, start, end string) *domain.WorkingHours {
	return &domain.WorkingHours{
		DayOfWeek: day,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		IsWorking: true,
	}
}

func withBreak(wh *domain.WorkingHours, start, end string) *domain.WorkingHours {
	wh.BreakStart = ptr.Ptr(types.TimeString(start))
	wh.BreakEnd = ptr.Ptr(types.TimeString(end))
	return wh
}

func weekdaySchedule(id int64, isDefault bool, createdAt time.Time) *domain.Schedule {
	s := &domain.Schedule{
		ID:        id,
		Name:      "Default Schedule",
		IsDefault: isDefault,
		IsActive:  true,
		CreatedAt: createdAt,
	}
	for day := 0; day < 5; day++ {
		s.WorkingHours = append(s.WorkingHours, workingDay(day, "09:00", "17:00"))
	}
	return s
}

func TestResolveDay(t *testing.T) {
	t.Run("no schedules", func(t *testing.T) {
		assert.Nil(t, ResolveDay(nil, monday))
	})

	t.Run("inactive schedule is ignored", func(t *testing.T) {
		s := weekdaySchedule(1, true, monday.AddDate(0, -1, 0))
		s.IsActive = false
		assert.Nil(t, ResolveDay([]*domain.Schedule{s}, monday))
	})

	t.Run("weekday without hours row", func(t *testing.T) {
		s := weekdaySchedule(1, true, monday.AddDate(0, -1, 0))
		sunday := monday.AddDate(0, 0, 6)

		res := ResolveDay([]*domain.Schedule{s}, sunday)
		require.NotNil(t, res)
		assert.Nil(t, res.Hours)
		assert.False(t, res.IsWorkingDay())
	})

	t.Run("day off row resolves but is not a working day", func(t *testing.T) {
		s := weekdaySchedule(1, true, monday.AddDate(0, -1, 0))
		s.WorkingHours = append(s.WorkingHours, &domain.WorkingHours{
			DayOfWeek: 5,
			StartTime: "09:00",
			EndTime:   "18:00",
			IsWorking: false,
		})
		saturday := monday.AddDate(0, 0, 5)

		res := ResolveDay([]*domain.Schedule{s}, saturday)
		require.NotNil(t, res)
		require.NotNil(t, res.Hours)
		assert.False(t, res.IsWorkingDay())
	})

	t.Run("effective window bounds are inclusive", func(t *testing.T) {
		s := weekdaySchedule(1, true, monday.AddDate(0, -1, 0))
		s.EffectiveFrom = ptr.Ptr(monday)
		s.EffectiveUntil = ptr.Ptr(monday)

		res := ResolveDay([]*domain.Schedule{s}, monday)
		require.NotNil(t, res)
		assert.True(t, res.IsWorkingDay())

		assert.Nil(t, ResolveDay([]*domain.Schedule{s}, monday.AddDate(0, 0, 1)))
		assert.Nil(t, ResolveDay([]*domain.Schedule{s}, monday.AddDate(0, 0, -7)))
	})

	t.Run("future schedule not applicable today", func(t *testing.T) {
		// Scenario C: default without window vs schedule effective next month
		current := weekdaySchedule(1, true, monday.AddDate(0, -2, 0))
		seasonal := weekdaySchedule(2, false, monday.AddDate(0, -1, 0))
		seasonal.EffectiveFrom = ptr.Ptr(monday.AddDate(0, 1, 0))

		res := ResolveDay([]*domain.Schedule{seasonal, current}, monday)
		require.NotNil(t, res)
		assert.Equal(t, int64(1), res.Schedule.ID)
		assert.False(t, res.AmbiguousDefault)
	})

	t.Run("default wins over applicable non-default", func(t *testing.T) {
		base := weekdaySchedule(1, true, monday.AddDate(0, -2, 0))
		override := weekdaySchedule(2, false, monday.AddDate(0, -1, 0))
		override.EffectiveFrom = ptr.Ptr(monday.AddDate(0, 0, -1))
		override.EffectiveUntil = ptr.Ptr(monday.AddDate(0, 0, 1))

		res := ResolveDay([]*domain.Schedule{override, base}, monday)
		require.NotNil(t, res)
		assert.Equal(t, int64(1), res.Schedule.ID)
	})

	t.Run("multiple defaults resolve deterministically to newest", func(t *testing.T) {
		older := weekdaySchedule(1, true, monday.AddDate(0, -2, 0))
		newer := weekdaySchedule(2, true, monday.AddDate(0, -1, 0))

		res := ResolveDay([]*domain.Schedule{older, newer}, monday)
		require.NotNil(t, res)
		assert.Equal(t, int64(2), res.Schedule.ID)
		assert.True(t, res.AmbiguousDefault)

		// Порядок на входе не влияет на выбор
		res2 := ResolveDay([]*domain.Schedule{newer, older}, monday)
		require.NotNil(t, res2)
		assert.Equal(t, int64(2), res2.Schedule.ID)
	})

	t.Run("non-default only falls back to newest non-default", func(t *testing.T) {
		a := weekdaySchedule(1, false, monday.AddDate(0, -3, 0))
		b := weekdaySchedule(2, false, monday.AddDate(0, -1, 0))

		res := ResolveDay([]*domain.Schedule{a, b}, monday)
		require.NotNil(t, res)
		assert.Equal(t, int64(2), res.Schedule.ID)
		assert.False(t, res.AmbiguousDefault)
	})
}

func TestWeekdayIndex(t *testing.T) {
	assert.Equal(t, 0, domain.WeekdayIndex(time.Monday))
	assert.Equal(t, 4, domain.WeekdayIndex(time.Friday))
	assert.Equal(t, 5, domain.WeekdayIndex(time.Saturday))
	assert.Equal(t, 6, domain.WeekdayIndex(time.Sunday))
	assert.Equal(t, 0, domain.WeekdayIndex(monday.Weekday()))
}
