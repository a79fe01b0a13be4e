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

func activeStaff() *domain.StaffMember {
	return &domain.StaffMember{
		ID:         1,
		FirstName:  "Anna",
		LastName:   "Smirnova",
		Status:     domain.StaffStatusActive,
		IsBookable: true,
	}
}

func fullDayOff(from, until time.Time, status domain.TimeOffStatus) *domain.TimeOff {
	return &domain.TimeOff{
		StaffID:   1,
		StartDate: from,
		EndDate:   until,
		IsFullDay: true,
		Status:    status,
	}
}

func partialDayOff(day time.Time, start, end string, status domain.TimeOffStatus) *domain.TimeOff {
	return &domain.TimeOff{
		StaffID:   1,
		StartDate: day,
		EndDate:   day,
		StartTime: ptr.Ptr(types.TimeString(start)),
		EndTime:   ptr.Ptr(types.TimeString(end)),
		IsFullDay: false,
		Status:    status,
	}
}

func TestIsAvailableAt(t *testing.T) {
	schedules := []*domain.Schedule{weekdaySchedule(1, true, monday.AddDate(0, -1, 0))}

	t.Run("status gate precedes everything", func(t *testing.T) {
		for _, status := range []domain.StaffStatus{
			domain.StaffStatusInactive,
			domain.StaffStatusOnLeave,
			domain.StaffStatusTerminated,
		} {
			staff := activeStaff()
			staff.Status = status
			assert.False(t, IsAvailableAt(staff, schedules, nil, monday, "10:00"),
				"status %s must never be available", status)
		}
	})

	t.Run("on_leave blocked regardless of unrelated future time off", func(t *testing.T) {
		// Scenario E
		staff := activeStaff()
		staff.Status = domain.StaffStatusOnLeave
		future := fullDayOff(monday.AddDate(0, 2, 0), monday.AddDate(0, 2, 5), domain.TimeOffStatusApproved)

		assert.False(t, IsAvailableAt(staff, schedules, []*domain.TimeOff{future}, monday, "10:00"))
	})

	t.Run("within working hours", func(t *testing.T) {
		staff := activeStaff()
		assert.True(t, IsAvailableAt(staff, schedules, nil, monday, "09:00"), "start is inclusive")
		assert.True(t, IsAvailableAt(staff, schedules, nil, monday, "16:59"))
		assert.False(t, IsAvailableAt(staff, schedules, nil, monday, "17:00"), "end is exclusive")
		assert.False(t, IsAvailableAt(staff, schedules, nil, monday, "08:59"))
	})

	t.Run("no applicable schedule", func(t *testing.T) {
		assert.False(t, IsAvailableAt(activeStaff(), nil, nil, monday, "10:00"))
	})

	t.Run("weekday without hours", func(t *testing.T) {
		sunday := monday.AddDate(0, 0, 6)
		assert.False(t, IsAvailableAt(activeStaff(), schedules, nil, sunday, "10:00"))
	})

	t.Run("break boundaries", func(t *testing.T) {
		// Scenario D: break 12:00-13:00
		s := weekdaySchedule(1, true, monday.AddDate(0, -1, 0))
		for _, wh := range s.WorkingHours {
			withBreak(wh, "12:00", "13:00")
		}
		broken := []*domain.Schedule{s}
		staff := activeStaff()

		assert.False(t, IsAvailableAt(staff, broken, nil, monday, "12:00"), "break start is inclusive")
		assert.False(t, IsAvailableAt(staff, broken, nil, monday, "12:30"))
		assert.True(t, IsAvailableAt(staff, broken, nil, monday, "13:00"), "break end is exclusive")
	})

	t.Run("full day time off blocks any time", func(t *testing.T) {
		// Scenario B
		off := []*domain.TimeOff{fullDayOff(monday, monday, domain.TimeOffStatusApproved)}
		staff := activeStaff()

		for _, at := range []types.TimeString{"09:00", "12:00", "16:59"} {
			assert.False(t, IsAvailableAt(staff, schedules, off, monday, at))
		}
	})

	t.Run("pending time off blocks as well", func(t *testing.T) {
		off := []*domain.TimeOff{fullDayOff(monday, monday, domain.TimeOffStatusPending)}
		assert.False(t, IsAvailableAt(activeStaff(), schedules, off, monday, "10:00"))
	})

	t.Run("rejected and cancelled time off do not block", func(t *testing.T) {
		off := []*domain.TimeOff{
			fullDayOff(monday, monday, domain.TimeOffStatusRejected),
			fullDayOff(monday, monday, domain.TimeOffStatusCancelled),
		}
		assert.True(t, IsAvailableAt(activeStaff(), schedules, off, monday, "10:00"))
	})

	t.Run("partial day time off end is inclusive", func(t *testing.T) {
		off := []*domain.TimeOff{partialDayOff(monday, "10:00", "12:00", domain.TimeOffStatusApproved)}
		staff := activeStaff()

		assert.True(t, IsAvailableAt(staff, schedules, off, monday, "09:59"))
		assert.False(t, IsAvailableAt(staff, schedules, off, monday, "10:00"))
		assert.False(t, IsAvailableAt(staff, schedules, off, monday, "12:00"),
			"time off end bound is inclusive, unlike working-hours end")
		assert.True(t, IsAvailableAt(staff, schedules, off, monday, "12:01"))
	})

	t.Run("time off on another date is ignored", func(t *testing.T) {
		off := []*domain.TimeOff{fullDayOff(monday.AddDate(0, 0, 1), monday.AddDate(0, 0, 2), domain.TimeOffStatusApproved)}
		assert.True(t, IsAvailableAt(activeStaff(), schedules, off, monday, "10:00"))
	})

	t.Run("malformed hours degrade to unavailable", func(t *testing.T) {
		s := &domain.Schedule{
			ID:        1,
			IsDefault: true,
			IsActive:  true,
			CreatedAt: monday.AddDate(0, -1, 0),
			WorkingHours: []*domain.WorkingHours{
				{DayOfWeek: 0, StartTime: "17:00", EndTime: "09:00", IsWorking: true},
			},
		}
		assert.False(t, IsAvailableAt(activeStaff(), []*domain.Schedule{s}, nil, monday, "10:00"))
	})
}

func TestSlots(t *testing.T) {
	mondayHours := func() []*domain.Schedule {
		s := &domain.Schedule{
			ID:        1,
			IsDefault: true,
			IsActive:  true,
			CreatedAt: monday.AddDate(0, -1, 0),
			WorkingHours: []*domain.WorkingHours{
				withBreak(workingDay(0, "09:00", "17:00"), "12:00", "13:00"),
			},
		}
		return []*domain.Schedule{s}
	}

	t.Run("scenario A", func(t *testing.T) {
		// Mon 09:00-17:00, break 12:00-13:00, duration 60, interval 15
		slots := Slots(mondayHours(), nil, monday, 60, 15)
		require.NotEmpty(t, slots)

		assert.Contains(t, slots, types.TimeString("09:00"))
		assert.Contains(t, slots, types.TimeString("11:00"), "ends exactly at break start")
		assert.Contains(t, slots, types.TimeString("13:00"), "starts exactly at break end")
		assert.NotContains(t, slots, types.TimeString("11:30"), "would overlap the break")
		assert.NotContains(t, slots, types.TimeString("12:45"), "starts inside the break")
		assert.Contains(t, slots, types.TimeString("16:00"), "last slot that still fits")
		assert.NotContains(t, slots, types.TimeString("16:15"), "no room before closing")
		assert.NotContains(t, slots, types.TimeString("17:00"))
	})

	t.Run("upper bound containment", func(t *testing.T) {
		slots := Slots(mondayHours(), nil, monday, 45, 30)
		for _, s := range slots {
			end, err := s.AddMinutes(45)
			require.NoError(t, err)
			assert.False(t, end.IsAfter("17:00"), "slot %s exceeds closing time", s)
		}
	})

	t.Run("no slot overlaps the break", func(t *testing.T) {
		slots := Slots(mondayHours(), nil, monday, 30, 15)
		for _, s := range slots {
			end, err := s.AddMinutes(30)
			require.NoError(t, err)
			overlaps := end.IsAfter("12:00") && s.IsBefore("13:00")
			assert.False(t, overlaps, "slot %s overlaps the break", s)
		}
	})

	t.Run("ascending order", func(t *testing.T) {
		slots := Slots(mondayHours(), nil, monday, 30, 15)
		for i := 1; i < len(slots); i++ {
			assert.True(t, slots[i-1].IsBefore(slots[i]))
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		first := Slots(mondayHours(), nil, monday, 60, 15)
		second := Slots(mondayHours(), nil, monday, 60, 15)
		assert.Equal(t, first, second)
	})

	t.Run("scenario B full day off", func(t *testing.T) {
		off := []*domain.TimeOff{fullDayOff(monday, monday, domain.TimeOffStatusApproved)}
		assert.Empty(t, Slots(mondayHours(), off, monday, 60, 15))
	})

	t.Run("partial day off does not trim slots", func(t *testing.T) {
		// Грубое правило дня: внутри цикла частичные отпуска не учитываются
		off := []*domain.TimeOff{partialDayOff(monday, "09:00", "11:00", domain.TimeOffStatusApproved)}
		slots := Slots(mondayHours(), off, monday, 60, 15)
		assert.Contains(t, slots, types.TimeString("09:00"))
	})

	t.Run("no applicable schedule", func(t *testing.T) {
		assert.Empty(t, Slots(nil, nil, monday, 60, 15))
	})

	t.Run("day off", func(t *testing.T) {
		s := mondayHours()
		s[0].WorkingHours[0].IsWorking = false
		assert.Empty(t, Slots(s, nil, monday, 60, 15))
	})

	t.Run("duration longer than the day", func(t *testing.T) {
		assert.Empty(t, Slots(mondayHours(), nil, monday, 9*60, 15))
	})

	t.Run("invalid duration or interval", func(t *testing.T) {
		assert.Empty(t, Slots(mondayHours(), nil, monday, 0, 15))
		assert.Empty(t, Slots(mondayHours(), nil, monday, 60, 0))
		assert.Empty(t, Slots(mondayHours(), nil, monday, -30, 15))
	})

	t.Run("malformed hours degrade to empty", func(t *testing.T) {
		s := []*domain.Schedule{{
			ID:        1,
			IsDefault: true,
			IsActive:  true,
			CreatedAt: monday.AddDate(0, -1, 0),
			WorkingHours: []*domain.WorkingHours{
				{DayOfWeek: 0, StartTime: "17:00", EndTime: "09:00", IsWorking: true},
			},
		}}
		assert.Empty(t, Slots(s, nil, monday, 60, 15))
	})

	t.Run("no break means contiguous slots", func(t *testing.T) {
		s := []*domain.Schedule{{
			ID:        1,
			IsDefault: true,
			IsActive:  true,
			CreatedAt: monday.AddDate(0, -1, 0),
			WorkingHours: []*domain.WorkingHours{
				workingDay(0, "09:00", "11:00"),
			},
		}}
		slots := Slots(s, nil, monday, 30, 30)
		assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00", "10:30"}, slots)
	})
}
