package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StaffService/internal/domain"
	staffStorage "github.com/m04kA/SMC-StaffService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-StaffService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// monday 2025-10-13 is a Monday
var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type fakeStaffRepo struct {
	member *domain.StaffMember
}

func (f *fakeStaffRepo) GetByID(ctx context.Context, id int64) (*domain.StaffMember, error) {
	if f.member == nil || f.member.ID != id {
		return nil, staffStorage.ErrStaffNotFound
	}
	return f.member, nil
}

type fakeScheduleRepo struct {
	schedules []*domain.Schedule
}

func (f *fakeScheduleRepo) GetByStaffID(ctx context.Context, staffID int64) ([]*domain.Schedule, error) {
	return f.schedules, nil
}

type fakeTimeOffRepo struct {
	entries []*domain.TimeOff
}

func (f *fakeTimeOffRepo) ListBlockingForDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.TimeOff, error) {
	return f.entries, nil
}

func bookableStaff() *domain.StaffMember {
	return &domain.StaffMember{
		ID:         1,
		FirstName:  "Anna",
		LastName:   "Petrova",
		Status:     domain.StaffStatusActive,
		IsBookable: true,
	}
}

func weekdaySchedule() *domain.Schedule {
	s := &domain.Schedule{
		ID:        1,
		StaffID:   1,
		Name:      "Default Schedule",
		IsDefault: true,
		IsActive:  true,
		CreatedAt: monday.AddDate(0, -1, 0),
	}
	for day := 0; day < 5; day++ {
		s.WorkingHours = append(s.WorkingHours, &domain.WorkingHours{
			DayOfWeek: day,
			StartTime: types.TimeString("09:00"),
			EndTime:   types.TimeString("12:00"),
			IsWorking: true,
		})
	}
	return s
}

func newTestUseCase(staff *domain.StaffMember, schedules []*domain.Schedule, timeOff []*domain.TimeOff, now time.Time) *UseCase {
	uc := NewUseCase(
		&fakeStaffRepo{member: staff},
		&fakeScheduleRepo{schedules: schedules},
		&fakeTimeOffRepo{entries: timeOff},
		domain.NewStaffDefaults(),
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestUseCase_Execute(t *testing.T) {
	yesterday := monday.AddDate(0, 0, -1)

	t.Run("future date returns full day of slots", func(t *testing.T) {
		uc := newTestUseCase(bookableStaff(), []*domain.Schedule{weekdaySchedule()}, nil, yesterday)

		resp, err := uc.Execute(context.Background(), &Request{
			StaffID:         1,
			Date:            monday,
			DurationMinutes: 60,
			IntervalMinutes: 60,
		})
		require.NoError(t, err)

		// 09:00-12:00 по часу: 09:00, 10:00, 11:00
		assert.Equal(t, []types.TimeString{"09:00", "10:00", "11:00"}, resp.Slots)
		assert.Equal(t, 60, resp.DurationMinutes)
	})

	t.Run("zero duration and interval fall back to defaults", func(t *testing.T) {
		uc := newTestUseCase(bookableStaff(), []*domain.Schedule{weekdaySchedule()}, nil, yesterday)

		resp, err := uc.Execute(context.Background(), &Request{StaffID: 1, Date: monday})
		require.NoError(t, err)

		assert.Equal(t, domain.DefaultSlotDurationMinutes, resp.DurationMinutes)
		assert.Equal(t, domain.DefaultSlotIntervalMinutes, resp.IntervalMinutes)
	})

	t.Run("today filters slots before advance window", func(t *testing.T) {
		// 09:30 + 1 час минимального уведомления: слоты раньше 10:30 отпадают
		now := time.Date(2025, 10, 13, 9, 30, 0, 0, time.UTC)
		uc := newTestUseCase(bookableStaff(), []*domain.Schedule{weekdaySchedule()}, nil, now)

		resp, err := uc.Execute(context.Background(), &Request{
			StaffID:         1,
			Date:            monday,
			DurationMinutes: 60,
			IntervalMinutes: 30,
		})
		require.NoError(t, err)

		assert.Equal(t, []types.TimeString{"10:30", "11:00"}, resp.Slots)
	})

	t.Run("cutoff past end of day empties today", func(t *testing.T) {
		now := time.Date(2025, 10, 13, 23, 30, 0, 0, time.UTC)
		uc := newTestUseCase(bookableStaff(), []*domain.Schedule{weekdaySchedule()}, nil, now)

		resp, err := uc.Execute(context.Background(), &Request{
			StaffID:         1,
			Date:            monday,
			DurationMinutes: 60,
			IntervalMinutes: 60,
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
	})

	t.Run("full day time off empties the day", func(t *testing.T) {
		timeOff := []*domain.TimeOff{{
			ID:        1,
			StaffID:   1,
			LeaveType: domain.LeaveTypeVacation,
			StartDate: monday,
			EndDate:   monday,
			IsFullDay: true,
			Status:    domain.TimeOffStatusApproved,
		}}
		uc := newTestUseCase(bookableStaff(), []*domain.Schedule{weekdaySchedule()}, timeOff, yesterday)

		resp, err := uc.Execute(context.Background(), &Request{
			StaffID:         1,
			Date:            monday,
			DurationMinutes: 60,
			IntervalMinutes: 60,
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
	})

	t.Run("date in the past", func(t *testing.T) {
		uc := newTestUseCase(bookableStaff(), []*domain.Schedule{weekdaySchedule()}, nil, monday)

		_, err := uc.Execute(context.Background(), &Request{
			StaffID: 1,
			Date:    monday.AddDate(0, 0, -1),
		})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("staff not found", func(t *testing.T) {
		uc := newTestUseCase(bookableStaff(), nil, nil, yesterday)

		_, err := uc.Execute(context.Background(), &Request{StaffID: 42, Date: monday})
		assert.ErrorIs(t, err, ErrStaffNotFound)
	})

	t.Run("staff not bookable", func(t *testing.T) {
		staff := bookableStaff()
		staff.IsBookable = false
		uc := newTestUseCase(staff, []*domain.Schedule{weekdaySchedule()}, nil, yesterday)

		_, err := uc.Execute(context.Background(), &Request{StaffID: 1, Date: monday})
		assert.ErrorIs(t, err, ErrStaffNotBookable)
	})

	t.Run("inactive staff is not bookable", func(t *testing.T) {
		staff := bookableStaff()
		staff.Status = domain.StaffStatusOnLeave
		uc := newTestUseCase(staff, []*domain.Schedule{weekdaySchedule()}, nil, yesterday)

		_, err := uc.Execute(context.Background(), &Request{StaffID: 1, Date: monday})
		assert.ErrorIs(t, err, ErrStaffNotBookable)
	})

	t.Run("duration out of range", func(t *testing.T) {
		uc := newTestUseCase(bookableStaff(), []*domain.Schedule{weekdaySchedule()}, nil, yesterday)

		_, err := uc.Execute(context.Background(), &Request{
			StaffID:         1,
			Date:            monday,
			DurationMinutes: 2,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("no applicable schedule yields no slots", func(t *testing.T) {
		uc := newTestUseCase(bookableStaff(), nil, nil, yesterday)

		resp, err := uc.Execute(context.Background(), &Request{
			StaffID:         1,
			Date:            monday,
			DurationMinutes: 60,
			IntervalMinutes: 60,
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
	})
}

func TestFilterPastSlots(t *testing.T) {
	slots := []types.TimeString{"09:00", "10:00", "11:00"}

	t.Run("future date untouched", func(t *testing.T) {
		now := time.Date(2025, 10, 12, 23, 0, 0, 0, time.UTC)
		assert.Equal(t, slots, filterPastSlots(slots, monday, now, 1))
	})

	t.Run("cutoff at slot boundary keeps the slot", func(t *testing.T) {
		now := time.Date(2025, 10, 13, 9, 0, 0, 0, time.UTC)
		assert.Equal(t, []types.TimeString{"10:00", "11:00"}, filterPastSlots(slots, monday, now, 1))
	})

	t.Run("cutoff crossing midnight empties the list", func(t *testing.T) {
		now := time.Date(2025, 10, 13, 23, 30, 0, 0, time.UTC)
		assert.Empty(t, filterPastSlots(slots, monday, now, 1))
	})
}
