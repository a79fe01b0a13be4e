package schedules

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StaffService/internal/domain"
	scheduleStorage "github.com/m04kA/SMC-StaffService/internal/infra/storage/schedule"
	staffStorage "github.com/m04kA/SMC-StaffService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-StaffService/internal/service/schedules/models"
	"github.com/m04kA/SMC-StaffService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// passthroughTxManager выполняет функцию без реальной транзакции
type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
func (passthroughTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

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
	schedules map[int64]*domain.Schedule
	nextID    int64
	clock     time.Time
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		schedules: make(map[int64]*domain.Schedule),
		nextID:    1,
		clock:     time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeScheduleRepo) Create(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	stored := *schedule
	stored.ID = f.nextID
	stored.CreatedAt = f.clock
	f.clock = f.clock.Add(time.Hour)
	f.nextID++
	f.schedules[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (f *fakeScheduleRepo) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	stored, ok := f.schedules[id]
	if !ok {
		return nil, scheduleStorage.ErrScheduleNotFound
	}
	copied := *stored
	return &copied, nil
}

func (f *fakeScheduleRepo) GetByStaffID(ctx context.Context, staffID int64) ([]*domain.Schedule, error) {
	var out []*domain.Schedule
	for _, stored := range f.schedules {
		if stored.StaffID == staffID {
			copied := *stored
			out = append(out, &copied)
		}
	}
	// default first, then newest first
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeScheduleRepo) CountByStaffID(ctx context.Context, staffID int64) (int, error) {
	count := 0
	for _, stored := range f.schedules {
		if stored.StaffID == staffID {
			count++
		}
	}
	return count, nil
}

func (f *fakeScheduleRepo) Update(ctx context.Context, schedule *domain.Schedule) error {
	if _, ok := f.schedules[schedule.ID]; !ok {
		return scheduleStorage.ErrScheduleNotFound
	}
	copied := *schedule
	copied.CreatedAt = f.schedules[schedule.ID].CreatedAt
	f.schedules[schedule.ID] = &copied
	return nil
}

func (f *fakeScheduleRepo) SetDefault(ctx context.Context, id int64, isDefault bool) error {
	stored, ok := f.schedules[id]
	if !ok {
		return scheduleStorage.ErrScheduleNotFound
	}
	stored.IsDefault = isDefault
	return nil
}

func (f *fakeScheduleRepo) ClearDefaultForStaff(ctx context.Context, staffID int64, exceptID int64) error {
	for _, stored := range f.schedules {
		if stored.StaffID == staffID && stored.ID != exceptID {
			stored.IsDefault = false
		}
	}
	return nil
}

func (f *fakeScheduleRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.schedules[id]; !ok {
		return scheduleStorage.ErrScheduleNotFound
	}
	delete(f.schedules, id)
	return nil
}

func (f *fakeScheduleRepo) ReplaceWorkingHours(ctx context.Context, scheduleID int64, hours []*domain.WorkingHours) error {
	stored, ok := f.schedules[scheduleID]
	if !ok {
		return scheduleStorage.ErrScheduleNotFound
	}
	seen := make(map[int]bool)
	for _, wh := range hours {
		if seen[wh.DayOfWeek] {
			return scheduleStorage.ErrDuplicateWorkingHours
		}
		seen[wh.DayOfWeek] = true
	}
	stored.WorkingHours = hours
	return nil
}

func newTestService(repo *fakeScheduleRepo) *Service {
	staff := &fakeStaffRepo{members: map[int64]*domain.StaffMember{
		1: {ID: 1, FirstName: "Anna", LastName: "Petrova"},
	}}
	return NewService(repo, staff, passthroughTxManager{}, nopLogger{})
}

func TestService_Create(t *testing.T) {
	t.Run("first schedule becomes default", func(t *testing.T) {
		svc := newTestService(newFakeScheduleRepo())

		resp, err := svc.Create(context.Background(), 1, &models.CreateScheduleRequest{Name: "Main"})
		require.NoError(t, err)

		assert.True(t, resp.IsDefault)
		assert.True(t, resp.IsActive)
	})

	t.Run("second schedule is not default unless requested", func(t *testing.T) {
		svc := newTestService(newFakeScheduleRepo())

		_, err := svc.Create(context.Background(), 1, &models.CreateScheduleRequest{Name: "Main"})
		require.NoError(t, err)

		resp, err := svc.Create(context.Background(), 1, &models.CreateScheduleRequest{Name: "Summer"})
		require.NoError(t, err)
		assert.False(t, resp.IsDefault)
	})

	t.Run("requested default clears previous default", func(t *testing.T) {
		repo := newFakeScheduleRepo()
		svc := newTestService(repo)

		first, err := svc.Create(context.Background(), 1, &models.CreateScheduleRequest{Name: "Main"})
		require.NoError(t, err)

		second, err := svc.Create(context.Background(), 1, &models.CreateScheduleRequest{Name: "Summer", IsDefault: true})
		require.NoError(t, err)
		assert.True(t, second.IsDefault)

		reloaded, err := svc.GetByID(context.Background(), first.ID)
		require.NoError(t, err)
		assert.False(t, reloaded.IsDefault)
	})

	t.Run("unknown staff member", func(t *testing.T) {
		svc := newTestService(newFakeScheduleRepo())

		_, err := svc.Create(context.Background(), 99, &models.CreateScheduleRequest{Name: "Main"})
		assert.ErrorIs(t, err, ErrStaffNotFound)
	})

	t.Run("empty name", func(t *testing.T) {
		svc := newTestService(newFakeScheduleRepo())

		_, err := svc.Create(context.Background(), 1, &models.CreateScheduleRequest{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("effective until before effective from", func(t *testing.T) {
		svc := newTestService(newFakeScheduleRepo())

		_, err := svc.Create(context.Background(), 1, &models.CreateScheduleRequest{
			Name:           "Seasonal",
			EffectiveFrom:  ptr.Ptr("2025-12-01"),
			EffectiveUntil: ptr.Ptr("2025-11-01"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_SetDefault(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := newTestService(repo)

	first, err := svc.Create(context.Background(), 1, &models.CreateScheduleRequest{Name: "Main"})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), 1, &models.CreateScheduleRequest{Name: "Summer"})
	require.NoError(t, err)

	require.NoError(t, svc.SetDefault(context.Background(), second.ID))

	reloadedFirst, err := svc.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	reloadedSecond, err := svc.GetByID(context.Background(), second.ID)
	require.NoError(t, err)

	assert.False(t, reloadedFirst.IsDefault)
	assert.True(t, reloadedSecond.IsDefault)

	assert.ErrorIs(t, svc.SetDefault(context.Background(), 42), ErrScheduleNotFound)
}

func TestService_Delete(t *testing.T) {
	t.Run("last schedule cannot be deleted", func(t *testing.T) {
		svc := newTestService(newFakeScheduleRepo())

		only, err := svc.Create(context.Background(), 1, &models.CreateScheduleRequest{Name: "Main"})
		require.NoError(t, err)

		assert.ErrorIs(t, svc.Delete(context.Background(), only.ID), ErrLastSchedule)
	})

	t.Run("deleting default reassigns to newest remaining", func(t *testing.T) {
		repo := newFakeScheduleRepo()
		svc := newTestService(repo)

		first, err := svc.Create(context.Background(), 1, &models.CreateScheduleRequest{Name: "Main"})
		require.NoError(t, err)
		second, err := svc.Create(context.Background(), 1, &models.CreateScheduleRequest{Name: "Summer"})
		require.NoError(t, err)
		third, err := svc.Create(context.Background(), 1, &models.CreateScheduleRequest{Name: "Winter"})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(context.Background(), first.ID))

		reloadedSecond, err := svc.GetByID(context.Background(), second.ID)
		require.NoError(t, err)
		reloadedThird, err := svc.GetByID(context.Background(), third.ID)
		require.NoError(t, err)

		// Winter создан позже Summer
		assert.False(t, reloadedSecond.IsDefault)
		assert.True(t, reloadedThird.IsDefault)
	})

	t.Run("deleting non-default keeps default untouched", func(t *testing.T) {
		svc := newTestService(newFakeScheduleRepo())

		first, err := svc.Create(context.Background(), 1, &models.CreateScheduleRequest{Name: "Main"})
		require.NoError(t, err)
		second, err := svc.Create(context.Background(), 1, &models.CreateScheduleRequest{Name: "Summer"})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(context.Background(), second.ID))

		reloaded, err := svc.GetByID(context.Background(), first.ID)
		require.NoError(t, err)
		assert.True(t, reloaded.IsDefault)
	})
}

func TestService_SaveWorkingHours(t *testing.T) {
	setup := func(t *testing.T) (*Service, int64) {
		t.Helper()
		svc := newTestService(newFakeScheduleRepo())
		resp, err := svc.Create(context.Background(), 1, &models.CreateScheduleRequest{Name: "Main"})
		require.NoError(t, err)
		return svc, resp.ID
	}

	t.Run("valid week", func(t *testing.T) {
		svc, id := setup(t)

		resp, err := svc.SaveWorkingHours(context.Background(), id, &models.SaveWorkingHoursRequest{
			Hours: []models.WorkingHoursEntry{
				{DayOfWeek: 0, IsWorking: true, StartTime: "09:00", EndTime: "18:00",
					BreakStart: ptr.Ptr("13:00"), BreakEnd: ptr.Ptr("14:00")},
				{DayOfWeek: 5, IsWorking: false},
			},
		})
		require.NoError(t, err)
		require.Len(t, resp.WorkingHours, 2)
		assert.Equal(t, "Monday", resp.WorkingHours[0].DayName)
	})

	t.Run("end before start", func(t *testing.T) {
		svc, id := setup(t)

		_, err := svc.SaveWorkingHours(context.Background(), id, &models.SaveWorkingHoursRequest{
			Hours: []models.WorkingHoursEntry{
				{DayOfWeek: 0, IsWorking: true, StartTime: "18:00", EndTime: "09:00"},
			},
		})
		assert.ErrorIs(t, err, ErrInvalidWorkingHours)
	})

	t.Run("break outside window", func(t *testing.T) {
		svc, id := setup(t)

		_, err := svc.SaveWorkingHours(context.Background(), id, &models.SaveWorkingHoursRequest{
			Hours: []models.WorkingHoursEntry{
				{DayOfWeek: 0, IsWorking: true, StartTime: "09:00", EndTime: "18:00",
					BreakStart: ptr.Ptr("08:00"), BreakEnd: ptr.Ptr("09:30")},
			},
		})
		assert.ErrorIs(t, err, ErrInvalidWorkingHours)
	})

	t.Run("duplicate weekday", func(t *testing.T) {
		svc, id := setup(t)

		_, err := svc.SaveWorkingHours(context.Background(), id, &models.SaveWorkingHoursRequest{
			Hours: []models.WorkingHoursEntry{
				{DayOfWeek: 0, IsWorking: true, StartTime: "09:00", EndTime: "18:00"},
				{DayOfWeek: 0, IsWorking: true, StartTime: "10:00", EndTime: "17:00"},
			},
		})
		assert.ErrorIs(t, err, ErrInvalidWorkingHours)
	})

	t.Run("non-working day skips time validation", func(t *testing.T) {
		svc, id := setup(t)

		_, err := svc.SaveWorkingHours(context.Background(), id, &models.SaveWorkingHoursRequest{
			Hours: []models.WorkingHoursEntry{
				{DayOfWeek: 6, IsWorking: false},
			},
		})
		assert.NoError(t, err)
	})

	t.Run("unknown schedule", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.SaveWorkingHours(context.Background(), 42, &models.SaveWorkingHoursRequest{})
		assert.ErrorIs(t, err, ErrScheduleNotFound)
	})
}
