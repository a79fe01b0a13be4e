package get_staff_day

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

type fakeStaffRepo struct {
	members map[int64]*domain.StaffMember
}

func (f *fakeStaffRepo) GetByID(ctx context.Context, id int64) (*domain.StaffMember, error) {
	member, ok := f.members[id]
	if !ok {
		return nil, staffStorage.ErrStaffNotFound
	}
	return member, nil
}

type fakeScheduleRepo struct {
	schedules []*domain.Schedule
}

func (f *fakeScheduleRepo) GetByStaffID(ctx context.Context, staffID int64) ([]*domain.Schedule, error) {
	return f.schedules, nil
}

type fakeTimeOffRepo struct {
	timeOff []*domain.TimeOff
}

func (f *fakeTimeOffRepo) ListBlockingForDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.TimeOff, error) {
	return f.timeOff, nil
}

func weekdaySchedule(id int64, name string, isDefault bool, createdAt time.Time) *domain.Schedule {
	s := &domain.Schedule{
		ID:        id,
		StaffID:   1,
		Name:      name,
		IsDefault: isDefault,
		IsActive:  true,
		CreatedAt: createdAt,
	}
	for day := 0; day < 5; day++ {
		s.WorkingHours = append(s.WorkingHours, &domain.WorkingHours{
			DayOfWeek:  day,
			StartTime:  types.TimeString("09:00"),
			EndTime:    types.TimeString("18:00"),
			BreakStart: ptrTime("13:00"),
			BreakEnd:   ptrTime("14:00"),
			IsWorking:  true,
		})
	}
	for day := 5; day < 7; day++ {
		s.WorkingHours = append(s.WorkingHours, &domain.WorkingHours{
			DayOfWeek: day,
			IsWorking: false,
		})
	}
	return s
}

func ptrTime(v string) *types.TimeString {
	ts := types.TimeString(v)
	return &ts
}

func newTestUseCase(schedules []*domain.Schedule, timeOff []*domain.TimeOff) *UseCase {
	staff := &fakeStaffRepo{members: map[int64]*domain.StaffMember{
		1: {ID: 1, FirstName: "Anna", LastName: "Testova", Status: domain.StaffStatusActive, IsBookable: true},
	}}
	return NewUseCase(staff, &fakeScheduleRepo{schedules: schedules}, &fakeTimeOffRepo{timeOff: timeOff}, nopLogger{})
}

func TestUseCase_Execute(t *testing.T) {
	created := monday.AddDate(0, -1, 0)

	t.Run("working day with break", func(t *testing.T) {
		uc := newTestUseCase([]*domain.Schedule{weekdaySchedule(10, "Default Schedule", true, created)}, nil)

		resp, err := uc.Execute(context.Background(), &Request{StaffID: 1, Date: monday})
		require.NoError(t, err)

		require.NotNil(t, resp.ScheduleID)
		assert.Equal(t, int64(10), *resp.ScheduleID)
		assert.Equal(t, "Default Schedule", resp.ScheduleName)
		assert.True(t, resp.IsWorkingDay)
		assert.False(t, resp.AmbiguousDefault)

		require.NotNil(t, resp.Hours)
		assert.Equal(t, "09:00", resp.Hours.StartTime)
		assert.Equal(t, "18:00", resp.Hours.EndTime)
		require.NotNil(t, resp.Hours.BreakStart)
		assert.Equal(t, "13:00", *resp.Hours.BreakStart)
		assert.Equal(t, "14:00", *resp.Hours.BreakEnd)
	})

	t.Run("non-working day has no hours", func(t *testing.T) {
		uc := newTestUseCase([]*domain.Schedule{weekdaySchedule(10, "Default Schedule", true, created)}, nil)
		sunday := monday.AddDate(0, 0, 6)

		resp, err := uc.Execute(context.Background(), &Request{StaffID: 1, Date: sunday})
		require.NoError(t, err)

		require.NotNil(t, resp.ScheduleID)
		assert.False(t, resp.IsWorkingDay)
		assert.Nil(t, resp.Hours)
	})

	t.Run("no applicable schedule", func(t *testing.T) {
		uc := newTestUseCase(nil, nil)

		resp, err := uc.Execute(context.Background(), &Request{StaffID: 1, Date: monday})
		require.NoError(t, err)

		assert.Nil(t, resp.ScheduleID)
		assert.False(t, resp.IsWorkingDay)
		assert.Nil(t, resp.Hours)
		assert.Empty(t, resp.TimeOff)
	})

	t.Run("two default schedules flag ambiguity", func(t *testing.T) {
		uc := newTestUseCase([]*domain.Schedule{
			weekdaySchedule(10, "Old", true, created),
			weekdaySchedule(20, "New", true, created.AddDate(0, 0, 7)),
		}, nil)

		resp, err := uc.Execute(context.Background(), &Request{StaffID: 1, Date: monday})
		require.NoError(t, err)

		require.NotNil(t, resp.ScheduleID)
		assert.Equal(t, int64(20), *resp.ScheduleID)
		assert.True(t, resp.AmbiguousDefault)
	})

	t.Run("time off entries are included", func(t *testing.T) {
		timeOff := []*domain.TimeOff{{
			ID:        5,
			StaffID:   1,
			LeaveType: domain.LeaveTypeSick,
			StartDate: monday,
			EndDate:   monday,
			IsFullDay: false,
			StartTime: ptrTime("10:00"),
			EndTime:   ptrTime("12:00"),
			Status:    domain.TimeOffStatusPending,
		}}
		uc := newTestUseCase([]*domain.Schedule{weekdaySchedule(10, "Default Schedule", true, created)}, timeOff)

		resp, err := uc.Execute(context.Background(), &Request{StaffID: 1, Date: monday})
		require.NoError(t, err)

		require.Len(t, resp.TimeOff, 1)
		entry := resp.TimeOff[0]
		assert.Equal(t, int64(5), entry.ID)
		assert.Equal(t, "sick", entry.LeaveType)
		assert.Equal(t, "pending", entry.Status)
		assert.False(t, entry.IsFullDay)
		require.NotNil(t, entry.StartTime)
		assert.Equal(t, "10:00", *entry.StartTime)
		assert.Equal(t, "12:00", *entry.EndTime)
	})

	t.Run("staff not found", func(t *testing.T) {
		uc := newTestUseCase(nil, nil)

		_, err := uc.Execute(context.Background(), &Request{StaffID: 99, Date: monday})
		assert.ErrorIs(t, err, ErrStaffNotFound)
	})

	t.Run("invalid staff id", func(t *testing.T) {
		uc := newTestUseCase(nil, nil)

		_, err := uc.Execute(context.Background(), &Request{StaffID: 0, Date: monday})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing date", func(t *testing.T) {
		uc := newTestUseCase(nil, nil)

		_, err := uc.Execute(context.Background(), &Request{StaffID: 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
