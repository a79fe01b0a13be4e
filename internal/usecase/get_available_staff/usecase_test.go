package get_available_staff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StaffService/internal/domain"
	"github.com/m04kA/SMC-StaffService/pkg/ptr"
	"github.com/m04kA/SMC-StaffService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// monday 2025-10-13 is a Monday
var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

type fakeStaffRepo struct {
	members []*domain.StaffMember
}

func (f *fakeStaffRepo) ListBookable(ctx context.Context) ([]*domain.StaffMember, error) {
	return f.members, nil
}

type fakeScheduleRepo struct {
	byStaff map[int64][]*domain.Schedule
}

func (f *fakeScheduleRepo) GetByStaffID(ctx context.Context, staffID int64) ([]*domain.Schedule, error) {
	return f.byStaff[staffID], nil
}

type fakeTimeOffRepo struct {
	byStaff map[int64][]*domain.TimeOff
}

func (f *fakeTimeOffRepo) ListBlockingForDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.TimeOff, error) {
	return f.byStaff[staffID], nil
}

type fakeAssignmentRepo struct {
	byService map[int64][]int64
}

func (f *fakeAssignmentRepo) ListStaffIDsByService(ctx context.Context, serviceID int64) ([]int64, error) {
	return f.byService[serviceID], nil
}

func member(id int64, name string) *domain.StaffMember {
	return &domain.StaffMember{
		ID:         id,
		FirstName:  name,
		LastName:   "Testova",
		Role:       "stylist",
		Status:     domain.StaffStatusActive,
		IsBookable: true,
	}
}

func weekdaySchedule(staffID int64) []*domain.Schedule {
	s := &domain.Schedule{
		ID:        staffID * 10,
		StaffID:   staffID,
		Name:      "Default Schedule",
		IsDefault: true,
		IsActive:  true,
		CreatedAt: monday.AddDate(0, -1, 0),
	}
	for day := 0; day < 5; day++ {
		s.WorkingHours = append(s.WorkingHours, &domain.WorkingHours{
			DayOfWeek: day,
			StartTime: types.TimeString("09:00"),
			EndTime:   types.TimeString("18:00"),
			IsWorking: true,
		})
	}
	return []*domain.Schedule{s}
}

func TestUseCase_Execute(t *testing.T) {
	anna := member(1, "Anna")
	boris := member(2, "Boris")

	schedules := &fakeScheduleRepo{byStaff: map[int64][]*domain.Schedule{
		1: weekdaySchedule(1),
		2: weekdaySchedule(2),
	}}

	t.Run("all working candidates are returned", func(t *testing.T) {
		uc := NewUseCase(
			&fakeStaffRepo{members: []*domain.StaffMember{anna, boris}},
			schedules,
			&fakeTimeOffRepo{byStaff: map[int64][]*domain.TimeOff{}},
			&fakeAssignmentRepo{},
			nopLogger{},
		)

		resp, err := uc.Execute(context.Background(), &Request{
			Date: monday,
			Time: types.TimeString("10:00"),
		})
		require.NoError(t, err)

		require.Len(t, resp.Staff, 2)
		assert.Equal(t, "Anna Testova", resp.Staff[0].FullName)
		assert.Equal(t, "stylist", resp.Staff[0].Role)
	})

	t.Run("staff on time off is excluded", func(t *testing.T) {
		timeOff := &fakeTimeOffRepo{byStaff: map[int64][]*domain.TimeOff{
			1: {{
				ID: 1, StaffID: 1,
				LeaveType: domain.LeaveTypeVacation,
				StartDate: monday, EndDate: monday,
				IsFullDay: true,
				Status:    domain.TimeOffStatusApproved,
			}},
		}}
		uc := NewUseCase(
			&fakeStaffRepo{members: []*domain.StaffMember{anna, boris}},
			schedules,
			timeOff,
			&fakeAssignmentRepo{},
			nopLogger{},
		)

		resp, err := uc.Execute(context.Background(), &Request{
			Date: monday,
			Time: types.TimeString("10:00"),
		})
		require.NoError(t, err)

		require.Len(t, resp.Staff, 1)
		assert.Equal(t, int64(2), resp.Staff[0].StaffID)
	})

	t.Run("service filter keeps only assigned staff", func(t *testing.T) {
		uc := NewUseCase(
			&fakeStaffRepo{members: []*domain.StaffMember{anna, boris}},
			schedules,
			&fakeTimeOffRepo{byStaff: map[int64][]*domain.TimeOff{}},
			&fakeAssignmentRepo{byService: map[int64][]int64{7: {2}}},
			nopLogger{},
		)

		resp, err := uc.Execute(context.Background(), &Request{
			Date:      monday,
			Time:      types.TimeString("10:00"),
			ServiceID: ptr.Ptr(int64(7)),
		})
		require.NoError(t, err)

		require.Len(t, resp.Staff, 1)
		assert.Equal(t, int64(2), resp.Staff[0].StaffID)
	})

	t.Run("service nobody provides yields empty list", func(t *testing.T) {
		uc := NewUseCase(
			&fakeStaffRepo{members: []*domain.StaffMember{anna, boris}},
			schedules,
			&fakeTimeOffRepo{byStaff: map[int64][]*domain.TimeOff{}},
			&fakeAssignmentRepo{byService: map[int64][]int64{}},
			nopLogger{},
		)

		resp, err := uc.Execute(context.Background(), &Request{
			Date:      monday,
			Time:      types.TimeString("10:00"),
			ServiceID: ptr.Ptr(int64(99)),
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Staff)
	})

	t.Run("outside working hours yields empty list", func(t *testing.T) {
		uc := NewUseCase(
			&fakeStaffRepo{members: []*domain.StaffMember{anna, boris}},
			schedules,
			&fakeTimeOffRepo{byStaff: map[int64][]*domain.TimeOff{}},
			&fakeAssignmentRepo{},
			nopLogger{},
		)

		resp, err := uc.Execute(context.Background(), &Request{
			Date: monday,
			Time: types.TimeString("20:00"),
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Staff)
	})

	t.Run("invalid time", func(t *testing.T) {
		uc := NewUseCase(
			&fakeStaffRepo{},
			schedules,
			&fakeTimeOffRepo{},
			&fakeAssignmentRepo{},
			nopLogger{},
		)

		_, err := uc.Execute(context.Background(), &Request{
			Date: monday,
			Time: types.TimeString("later"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
