package timeoff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StaffService/internal/domain"
	staffStorage "github.com/m04kA/SMC-StaffService/internal/infra/storage/staff"
	timeoffStorage "github.com/m04kA/SMC-StaffService/internal/infra/storage/timeoff"
	"github.com/m04kA/SMC-StaffService/internal/service/timeoff/models"
	"github.com/m04kA/SMC-StaffService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

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

type fakeTimeOffRepo struct {
	entries map[int64]*domain.TimeOff
	nextID  int64
}

func newFakeTimeOffRepo() *fakeTimeOffRepo {
	return &fakeTimeOffRepo{entries: make(map[int64]*domain.TimeOff), nextID: 1}
}

func (f *fakeTimeOffRepo) Create(ctx context.Context, timeOff *domain.TimeOff) (*domain.TimeOff, error) {
	stored := *timeOff
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.nextID++
	f.entries[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeTimeOffRepo) GetByID(ctx context.Context, id int64) (*domain.TimeOff, error) {
	stored, ok := f.entries[id]
	if !ok {
		return nil, timeoffStorage.ErrTimeOffNotFound
	}
	copied := *stored
	return &copied, nil
}

func (f *fakeTimeOffRepo) List(ctx context.Context, filter domain.TimeOffFilter) ([]*domain.TimeOff, error) {
	var out []*domain.TimeOff
	for _, stored := range f.entries {
		if filter.StaffID != nil && stored.StaffID != *filter.StaffID {
			continue
		}
		if filter.Status != nil && stored.Status != *filter.Status {
			continue
		}
		copied := *stored
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeTimeOffRepo) Update(ctx context.Context, timeOff *domain.TimeOff) error {
	if _, ok := f.entries[timeOff.ID]; !ok {
		return timeoffStorage.ErrTimeOffNotFound
	}
	copied := *timeOff
	f.entries[timeOff.ID] = &copied
	return nil
}

func (f *fakeTimeOffRepo) UpdateStatus(ctx context.Context, id int64, status domain.TimeOffStatus, approvedByID *int64, notes *string) error {
	stored, ok := f.entries[id]
	if !ok {
		return timeoffStorage.ErrTimeOffNotFound
	}
	stored.Status = status
	if status == domain.TimeOffStatusApproved && approvedByID != nil {
		stored.ApprovedByID = approvedByID
		now := time.Now()
		stored.ApprovedAt = &now
	}
	if notes != nil {
		stored.Notes = *notes
	}
	return nil
}

func (f *fakeTimeOffRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.entries[id]; !ok {
		return timeoffStorage.ErrTimeOffNotFound
	}
	delete(f.entries, id)
	return nil
}

func newTestService(repo *fakeTimeOffRepo) *Service {
	staff := &fakeStaffRepo{members: map[int64]*domain.StaffMember{
		1: {ID: 1, FirstName: "Anna", LastName: "Petrova"},
	}}
	return NewService(repo, staff, nopLogger{})
}

func TestService_Create(t *testing.T) {
	t.Run("full day request", func(t *testing.T) {
		svc := newTestService(newFakeTimeOffRepo())

		resp, err := svc.Create(context.Background(), 1, &models.CreateTimeOffRequest{
			LeaveType: "vacation",
			StartDate: "2025-11-03",
			EndDate:   "2025-11-07",
			Reason:    "family trip",
		})
		require.NoError(t, err)

		assert.Equal(t, "pending", resp.Status)
		assert.True(t, resp.IsFullDay)
		assert.Equal(t, 5, resp.DurationDays)
		assert.Nil(t, resp.StartTime)
	})

	t.Run("partial day request", func(t *testing.T) {
		svc := newTestService(newFakeTimeOffRepo())

		resp, err := svc.Create(context.Background(), 1, &models.CreateTimeOffRequest{
			LeaveType: "personal",
			StartDate: "2025-11-03",
			EndDate:   "2025-11-03",
			StartTime: ptr.Ptr("10:00"),
			EndTime:   ptr.Ptr("13:00"),
		})
		require.NoError(t, err)

		assert.False(t, resp.IsFullDay)
		require.NotNil(t, resp.StartTime)
		assert.Equal(t, "10:00", *resp.StartTime)
	})

	t.Run("unknown staff member", func(t *testing.T) {
		svc := newTestService(newFakeTimeOffRepo())

		_, err := svc.Create(context.Background(), 99, &models.CreateTimeOffRequest{
			LeaveType: "vacation",
			StartDate: "2025-11-03",
			EndDate:   "2025-11-07",
		})
		assert.ErrorIs(t, err, ErrStaffNotFound)
	})

	t.Run("end date before start date", func(t *testing.T) {
		svc := newTestService(newFakeTimeOffRepo())

		_, err := svc.Create(context.Background(), 1, &models.CreateTimeOffRequest{
			LeaveType: "vacation",
			StartDate: "2025-11-07",
			EndDate:   "2025-11-03",
		})
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("start time without end time", func(t *testing.T) {
		svc := newTestService(newFakeTimeOffRepo())

		_, err := svc.Create(context.Background(), 1, &models.CreateTimeOffRequest{
			LeaveType: "sick",
			StartDate: "2025-11-03",
			EndDate:   "2025-11-03",
			StartTime: ptr.Ptr("10:00"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown leave type", func(t *testing.T) {
		svc := newTestService(newFakeTimeOffRepo())

		_, err := svc.Create(context.Background(), 1, &models.CreateTimeOffRequest{
			LeaveType: "sabbatical-forever",
			StartDate: "2025-11-03",
			EndDate:   "2025-11-07",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Update(t *testing.T) {
	createPending := func(t *testing.T, svc *Service) int64 {
		t.Helper()
		resp, err := svc.Create(context.Background(), 1, &models.CreateTimeOffRequest{
			LeaveType: "vacation",
			StartDate: "2025-11-03",
			EndDate:   "2025-11-07",
		})
		require.NoError(t, err)
		return resp.ID
	}

	t.Run("pending request is editable", func(t *testing.T) {
		repo := newFakeTimeOffRepo()
		svc := newTestService(repo)
		id := createPending(t, svc)

		resp, err := svc.Update(context.Background(), id, &models.UpdateTimeOffRequest{
			EndDate: ptr.Ptr("2025-11-10"),
			Reason:  ptr.Ptr("extended"),
		})
		require.NoError(t, err)

		assert.Equal(t, "2025-11-10", resp.EndDate)
		assert.Equal(t, "extended", resp.Reason)
	})

	t.Run("approved request is not editable", func(t *testing.T) {
		repo := newFakeTimeOffRepo()
		svc := newTestService(repo)
		id := createPending(t, svc)
		repo.entries[id].Status = domain.TimeOffStatusApproved

		_, err := svc.Update(context.Background(), id, &models.UpdateTimeOffRequest{
			Reason: ptr.Ptr("too late"),
		})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("switching to partial day requires times", func(t *testing.T) {
		repo := newFakeTimeOffRepo()
		svc := newTestService(repo)
		id := createPending(t, svc)

		_, err := svc.Update(context.Background(), id, &models.UpdateTimeOffRequest{
			FullDay: ptr.Ptr(false),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("not found", func(t *testing.T) {
		svc := newTestService(newFakeTimeOffRepo())

		_, err := svc.Update(context.Background(), 42, &models.UpdateTimeOffRequest{})
		assert.ErrorIs(t, err, ErrTimeOffNotFound)
	})
}

func TestService_Resolve(t *testing.T) {
	createPending := func(t *testing.T, svc *Service) int64 {
		t.Helper()
		resp, err := svc.Create(context.Background(), 1, &models.CreateTimeOffRequest{
			LeaveType: "vacation",
			StartDate: "2025-11-03",
			EndDate:   "2025-11-07",
		})
		require.NoError(t, err)
		return resp.ID
	}

	t.Run("approve pending", func(t *testing.T) {
		repo := newFakeTimeOffRepo()
		svc := newTestService(repo)
		id := createPending(t, svc)

		resp, err := svc.Resolve(context.Background(), id, 7, &models.ResolveTimeOffRequest{
			Action: "approve",
			Notes:  ptr.Ptr("have a good rest"),
		})
		require.NoError(t, err)

		assert.Equal(t, "approved", resp.Status)
		require.NotNil(t, resp.ApprovedByID)
		assert.Equal(t, int64(7), *resp.ApprovedByID)
		assert.NotNil(t, resp.ApprovedAt)
		assert.Equal(t, "have a good rest", resp.Notes)
	})

	t.Run("reject pending", func(t *testing.T) {
		repo := newFakeTimeOffRepo()
		svc := newTestService(repo)
		id := createPending(t, svc)

		resp, err := svc.Resolve(context.Background(), id, 7, &models.ResolveTimeOffRequest{Action: "reject"})
		require.NoError(t, err)

		assert.Equal(t, "rejected", resp.Status)
		assert.Nil(t, resp.ApprovedByID)
	})

	t.Run("approve already approved", func(t *testing.T) {
		repo := newFakeTimeOffRepo()
		svc := newTestService(repo)
		id := createPending(t, svc)
		repo.entries[id].Status = domain.TimeOffStatusApproved

		_, err := svc.Resolve(context.Background(), id, 7, &models.ResolveTimeOffRequest{Action: "approve"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("cancel approved", func(t *testing.T) {
		repo := newFakeTimeOffRepo()
		svc := newTestService(repo)
		id := createPending(t, svc)
		repo.entries[id].Status = domain.TimeOffStatusApproved

		resp, err := svc.Resolve(context.Background(), id, 1, &models.ResolveTimeOffRequest{Action: "cancel"})
		require.NoError(t, err)

		assert.Equal(t, "cancelled", resp.Status)
	})

	t.Run("cancel rejected", func(t *testing.T) {
		repo := newFakeTimeOffRepo()
		svc := newTestService(repo)
		id := createPending(t, svc)
		repo.entries[id].Status = domain.TimeOffStatusRejected

		_, err := svc.Resolve(context.Background(), id, 1, &models.ResolveTimeOffRequest{Action: "cancel"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown action", func(t *testing.T) {
		repo := newFakeTimeOffRepo()
		svc := newTestService(repo)
		id := createPending(t, svc)

		_, err := svc.Resolve(context.Background(), id, 1, &models.ResolveTimeOffRequest{Action: "postpone"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Delete(t *testing.T) {
	repo := newFakeTimeOffRepo()
	svc := newTestService(repo)

	resp, err := svc.Create(context.Background(), 1, &models.CreateTimeOffRequest{
		LeaveType: "vacation",
		StartDate: "2025-11-03",
		EndDate:   "2025-11-07",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), resp.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), resp.ID), ErrTimeOffNotFound)
}
