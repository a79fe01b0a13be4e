package assignments

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StaffService/internal/domain"
	staffStorage "github.com/m04kA/SMC-StaffService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-StaffService/internal/integrations/servicecatalog"
	"github.com/m04kA/SMC-StaffService/internal/service/assignments/models"
	"github.com/m04kA/SMC-StaffService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

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

type fakeAssignmentRepo struct {
	assignments map[int64]*domain.ServiceAssignment
	nextID      int64
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: make(map[int64]*domain.ServiceAssignment), nextID: 1}
}

func (f *fakeAssignmentRepo) Create(ctx context.Context, assignment *domain.ServiceAssignment) (*domain.ServiceAssignment, error) {
	stored := *assignment
	stored.ID = f.nextID
	f.nextID++
	f.assignments[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeAssignmentRepo) GetByStaffID(ctx context.Context, staffID int64, activeOnly bool) ([]*domain.ServiceAssignment, error) {
	var result []*domain.ServiceAssignment
	for id := int64(1); id < f.nextID; id++ {
		assignment, ok := f.assignments[id]
		if !ok || assignment.StaffID != staffID {
			continue
		}
		if activeOnly && !assignment.IsActive {
			continue
		}
		result = append(result, assignment)
	}
	return result, nil
}

func (f *fakeAssignmentRepo) GetByStaffAndService(ctx context.Context, staffID, serviceID int64) (*domain.ServiceAssignment, error) {
	for _, assignment := range f.assignments {
		if assignment.StaffID == staffID && assignment.ServiceID == serviceID {
			return assignment, nil
		}
	}
	return nil, fmt.Errorf("assignment not found")
}

func (f *fakeAssignmentRepo) Update(ctx context.Context, assignment *domain.ServiceAssignment) error {
	stored := *assignment
	f.assignments[assignment.ID] = &stored
	return nil
}

func (f *fakeAssignmentRepo) SetActive(ctx context.Context, id int64, isActive bool) error {
	assignment, ok := f.assignments[id]
	if !ok {
		return fmt.Errorf("assignment not found")
	}
	assignment.IsActive = isActive
	return nil
}

func (f *fakeAssignmentRepo) Delete(ctx context.Context, id int64) error {
	delete(f.assignments, id)
	return nil
}

func (f *fakeAssignmentRepo) ListStaffIDsByService(ctx context.Context, serviceID int64) ([]int64, error) {
	var staffIDs []int64
	for _, assignment := range f.assignments {
		if assignment.ServiceID == serviceID && assignment.IsActive {
			staffIDs = append(staffIDs, assignment.StaffID)
		}
	}
	return staffIDs, nil
}

type fakeCatalogClient struct {
	services map[int64]*servicecatalog.Service
	degraded bool
}

func (f *fakeCatalogClient) GetServiceWithGracefulDegradation(ctx context.Context, serviceID int64) (*servicecatalog.Service, error) {
	if f.degraded {
		return nil, fmt.Errorf("%w: service_id=%d", servicecatalog.ErrServiceDegraded, serviceID)
	}
	service, ok := f.services[serviceID]
	if !ok {
		return nil, servicecatalog.ErrServiceNotFound
	}
	return service, nil
}

func newTestService(repo *fakeAssignmentRepo, catalog *fakeCatalogClient) *Service {
	staff := &fakeStaffRepo{members: map[int64]*domain.StaffMember{
		1: {ID: 1, FirstName: "Anna", LastName: "Testova", Status: domain.StaffStatusActive},
	}}
	return NewService(repo, staff, catalog, passthroughTxManager{}, nopLogger{})
}

func TestService_Sync(t *testing.T) {
	catalog := &fakeCatalogClient{services: map[int64]*servicecatalog.Service{
		10: {ID: 10, Name: "Стрижка"},
		20: {ID: 20, Name: "Окрашивание"},
	}}

	t.Run("creates new assignments", func(t *testing.T) {
		repo := newFakeAssignmentRepo()
		svc := newTestService(repo, catalog)

		resp, err := svc.Sync(context.Background(), 1, &models.SyncAssignmentsRequest{
			Assignments: []models.AssignmentEntry{
				{ServiceID: 10, IsPrimary: true},
				{ServiceID: 20, CustomDurationMinutes: ptr.Ptr(45)},
			},
		})
		require.NoError(t, err)

		require.Len(t, resp.Assignments, 2)
		assert.Equal(t, "Стрижка", resp.Assignments[0].ServiceName)
		assert.True(t, resp.Assignments[0].IsPrimary)
		assert.Equal(t, "Окрашивание", resp.Assignments[1].ServiceName)
		require.NotNil(t, resp.Assignments[1].CustomDurationMinutes)
		assert.Equal(t, 45, *resp.Assignments[1].CustomDurationMinutes)
	})

	t.Run("deactivates assignments missing from the list", func(t *testing.T) {
		repo := newFakeAssignmentRepo()
		svc := newTestService(repo, catalog)

		_, err := svc.Sync(context.Background(), 1, &models.SyncAssignmentsRequest{
			Assignments: []models.AssignmentEntry{{ServiceID: 10}, {ServiceID: 20}},
		})
		require.NoError(t, err)

		resp, err := svc.Sync(context.Background(), 1, &models.SyncAssignmentsRequest{
			Assignments: []models.AssignmentEntry{{ServiceID: 10}},
		})
		require.NoError(t, err)

		require.Len(t, resp.Assignments, 1)
		assert.Equal(t, int64(10), resp.Assignments[0].ServiceID)

		all, err := repo.GetByStaffID(context.Background(), 1, false)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("reactivates previously deactivated assignment", func(t *testing.T) {
		repo := newFakeAssignmentRepo()
		svc := newTestService(repo, catalog)

		_, err := svc.Sync(context.Background(), 1, &models.SyncAssignmentsRequest{
			Assignments: []models.AssignmentEntry{{ServiceID: 10}},
		})
		require.NoError(t, err)

		_, err = svc.Sync(context.Background(), 1, &models.SyncAssignmentsRequest{
			Assignments: []models.AssignmentEntry{{ServiceID: 20}},
		})
		require.NoError(t, err)

		resp, err := svc.Sync(context.Background(), 1, &models.SyncAssignmentsRequest{
			Assignments: []models.AssignmentEntry{{ServiceID: 10, CustomPrice: ptr.Ptr(1500.0)}},
		})
		require.NoError(t, err)

		require.Len(t, resp.Assignments, 1)
		assert.Equal(t, int64(10), resp.Assignments[0].ServiceID)
		assert.True(t, resp.Assignments[0].IsActive)
		require.NotNil(t, resp.Assignments[0].CustomPrice)
		assert.Equal(t, 1500.0, *resp.Assignments[0].CustomPrice)

		all, err := repo.GetByStaffID(context.Background(), 1, false)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("empty list deactivates everything", func(t *testing.T) {
		repo := newFakeAssignmentRepo()
		svc := newTestService(repo, catalog)

		_, err := svc.Sync(context.Background(), 1, &models.SyncAssignmentsRequest{
			Assignments: []models.AssignmentEntry{{ServiceID: 10}, {ServiceID: 20}},
		})
		require.NoError(t, err)

		resp, err := svc.Sync(context.Background(), 1, &models.SyncAssignmentsRequest{})
		require.NoError(t, err)
		assert.Empty(t, resp.Assignments)
	})

	t.Run("catalog degraded falls back to provided name", func(t *testing.T) {
		repo := newFakeAssignmentRepo()
		svc := newTestService(repo, &fakeCatalogClient{degraded: true})

		resp, err := svc.Sync(context.Background(), 1, &models.SyncAssignmentsRequest{
			Assignments: []models.AssignmentEntry{{ServiceID: 10, ServiceName: "Стрижка"}},
		})
		require.NoError(t, err)

		require.Len(t, resp.Assignments, 1)
		assert.Equal(t, "Стрижка", resp.Assignments[0].ServiceName)
	})

	t.Run("catalog degraded without a name fails", func(t *testing.T) {
		repo := newFakeAssignmentRepo()
		svc := newTestService(repo, &fakeCatalogClient{degraded: true})

		_, err := svc.Sync(context.Background(), 1, &models.SyncAssignmentsRequest{
			Assignments: []models.AssignmentEntry{{ServiceID: 10}},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown service in catalog", func(t *testing.T) {
		repo := newFakeAssignmentRepo()
		svc := newTestService(repo, catalog)

		_, err := svc.Sync(context.Background(), 1, &models.SyncAssignmentsRequest{
			Assignments: []models.AssignmentEntry{{ServiceID: 999}},
		})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("duplicate service in request", func(t *testing.T) {
		repo := newFakeAssignmentRepo()
		svc := newTestService(repo, catalog)

		_, err := svc.Sync(context.Background(), 1, &models.SyncAssignmentsRequest{
			Assignments: []models.AssignmentEntry{{ServiceID: 10}, {ServiceID: 10}},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("custom duration out of range", func(t *testing.T) {
		repo := newFakeAssignmentRepo()
		svc := newTestService(repo, catalog)

		_, err := svc.Sync(context.Background(), 1, &models.SyncAssignmentsRequest{
			Assignments: []models.AssignmentEntry{{ServiceID: 10, CustomDurationMinutes: ptr.Ptr(720)}},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown staff member", func(t *testing.T) {
		repo := newFakeAssignmentRepo()
		svc := newTestService(repo, catalog)

		_, err := svc.Sync(context.Background(), 99, &models.SyncAssignmentsRequest{
			Assignments: []models.AssignmentEntry{{ServiceID: 10}},
		})
		assert.ErrorIs(t, err, ErrStaffNotFound)
	})
}

func TestService_ListByStaff(t *testing.T) {
	catalog := &fakeCatalogClient{services: map[int64]*servicecatalog.Service{
		10: {ID: 10, Name: "Стрижка"},
	}}
	repo := newFakeAssignmentRepo()
	svc := newTestService(repo, catalog)

	_, err := svc.Sync(context.Background(), 1, &models.SyncAssignmentsRequest{
		Assignments: []models.AssignmentEntry{{ServiceID: 10}},
	})
	require.NoError(t, err)

	resp, err := svc.ListByStaff(context.Background(), 1, true)
	require.NoError(t, err)
	require.Len(t, resp.Assignments, 1)
	assert.Equal(t, int64(10), resp.Assignments[0].ServiceID)
}

func TestService_StaffIDsForService(t *testing.T) {
	catalog := &fakeCatalogClient{services: map[int64]*servicecatalog.Service{
		10: {ID: 10, Name: "Стрижка"},
	}}
	repo := newFakeAssignmentRepo()
	svc := newTestService(repo, catalog)

	_, err := svc.Sync(context.Background(), 1, &models.SyncAssignmentsRequest{
		Assignments: []models.AssignmentEntry{{ServiceID: 10}},
	})
	require.NoError(t, err)

	staffIDs, err := svc.StaffIDsForService(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, staffIDs)
}
