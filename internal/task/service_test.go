package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/farhanputra/event-management-backend/internal/auth"
	"github.com/farhanputra/event-management-backend/internal/authz"
	"github.com/farhanputra/event-management-backend/internal/common"
	"github.com/farhanputra/event-management-backend/middleware"
)

type mockRepo struct {
	Repository
	createFn           func(ctx context.Context, t *Task) error
	getByIDFn          func(ctx context.Context, id uint) (*Task, error)
	updateFn           func(ctx context.Context, t *Task) error
	deleteFn           func(ctx context.Context, id uint) error
	listFn             func(ctx context.Context, scope ListScope, filters ListFilters, p common.Pagination) ([]Task, int64, error)
	assignmentExistsFn func(ctx context.Context, taskID, assigneeID uint) (bool, error)
	addAssignmentFn    func(ctx context.Context, a *TaskAssignment) error
	completeFn         func(ctx context.Context, taskID, assigneeID uint) error
}

func (m *mockRepo) Create(ctx context.Context, t *Task) error          { return m.createFn(ctx, t) }
func (m *mockRepo) GetByID(ctx context.Context, id uint) (*Task, error) { return m.getByIDFn(ctx, id) }
func (m *mockRepo) Update(ctx context.Context, t *Task) error          { return m.updateFn(ctx, t) }
func (m *mockRepo) Delete(ctx context.Context, id uint) error          { return m.deleteFn(ctx, id) }
func (m *mockRepo) List(ctx context.Context, scope ListScope, filters ListFilters, p common.Pagination) ([]Task, int64, error) {
	return m.listFn(ctx, scope, filters, p)
}
func (m *mockRepo) AssignmentExists(ctx context.Context, taskID, assigneeID uint) (bool, error) {
	return m.assignmentExistsFn(ctx, taskID, assigneeID)
}
func (m *mockRepo) AddAssignment(ctx context.Context, a *TaskAssignment) error {
	return m.addAssignmentFn(ctx, a)
}
func (m *mockRepo) CompleteAssignment(ctx context.Context, taskID, assigneeID uint) error {
	return m.completeFn(ctx, taskID, assigneeID)
}

type mockEvents struct {
	access authz.EventAccess
	err    error
}

func (m *mockEvents) AccessSnapshot(ctx context.Context, eventID uint) (authz.EventAccess, error) {
	return m.access, m.err
}

func staffPrincipal(id uint) *middleware.Principal {
	return &middleware.Principal{UserID: id, Role: auth.RoleStaff, IsActive: true}
}

func TestCreateTaskRequiresExistingEvent(t *testing.T) {
	svc := NewService(&mockRepo{}, &mockEvents{err: common.NotFoundf("event 3")}, nil)

	_, err := svc.Create(context.Background(), staffPrincipal(9), CreateTaskRequest{
		EventID: 3, Title: "Set up chairs",
	})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCreateTaskDoesNotRequireEventMembership(t *testing.T) {
	repo := &mockRepo{
		createFn: func(ctx context.Context, task *Task) error {
			task.ID = 6
			return nil
		},
	}
	// Private event, caller is neither organizer, staff, vendor nor guest
	svc := NewService(repo, &mockEvents{access: authz.EventAccess{OrganizerID: 1, IsPublic: false}}, nil)

	task, err := svc.Create(context.Background(), staffPrincipal(9), CreateTaskRequest{
		EventID: 3, Title: "Set up chairs",
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(9), task.CreatedBy)
}

func TestCreateTaskRecordsCreatorAndAssignments(t *testing.T) {
	var created *Task
	repo := &mockRepo{
		createFn: func(ctx context.Context, task *Task) error {
			task.ID = 4
			created = task
			return nil
		},
	}
	events := &mockEvents{access: authz.EventAccess{OrganizerID: 1, StaffUserIDs: []uint{9}}}
	svc := NewService(repo, events, nil)

	task, err := svc.Create(context.Background(), staffPrincipal(9), CreateTaskRequest{
		EventID:     3,
		Title:       "Set up chairs",
		AssigneeIDs: []uint{9, 12},
	})

	assert.NoError(t, err)
	assert.Equal(t, created, task)
	assert.Equal(t, uint(9), task.CreatedBy)
	assert.Equal(t, StatusTodo, task.Status)
	assert.Equal(t, PriorityMedium, task.Priority)
	assert.Len(t, task.Assignments, 2)
	assert.Equal(t, uint(9), task.Assignments[0].AssignedBy)
}

func TestUpdateTaskRejectsUnknownStatus(t *testing.T) {
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uint) (*Task, error) {
			return &Task{ID: id, EventID: 3, CreatedBy: 9}, nil
		},
	}
	svc := NewService(repo, &mockEvents{}, nil)

	bad := "done"
	_, err := svc.Update(context.Background(), staffPrincipal(9), 4, UpdateTaskRequest{Status: &bad})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestUpdateTaskDeniedForUnrelatedStaff(t *testing.T) {
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uint) (*Task, error) {
			return &Task{ID: id, EventID: 3, CreatedBy: 9}, nil
		},
	}
	svc := NewService(repo, &mockEvents{}, nil)

	title := "New title"
	_, err := svc.Update(context.Background(), staffPrincipal(10), 4, UpdateTaskRequest{Title: &title})
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestListScopeRestrictsNonElevatedRoles(t *testing.T) {
	var captured ListScope
	repo := &mockRepo{
		listFn: func(ctx context.Context, scope ListScope, filters ListFilters, p common.Pagination) ([]Task, int64, error) {
			captured = scope
			return nil, 0, nil
		},
	}
	svc := NewService(repo, &mockEvents{}, nil)
	pg := common.NewPagination(1, 20)

	_, err := svc.List(context.Background(), staffPrincipal(9), ListFilters{}, pg)
	assert.NoError(t, err)
	assert.False(t, captured.All)
	assert.Equal(t, uint(9), captured.AssigneeID)

	_, _ = svc.List(context.Background(), &middleware.Principal{UserID: 2, Role: auth.RoleOrganizer}, ListFilters{}, pg)
	assert.True(t, captured.All)

	_, _ = svc.List(context.Background(), &middleware.Principal{UserID: 1, Role: auth.RoleAdmin}, ListFilters{}, pg)
	assert.True(t, captured.All)
}

func TestAssignDuplicateConflicts(t *testing.T) {
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uint) (*Task, error) {
			return &Task{ID: id, EventID: 3, CreatedBy: 9}, nil
		},
		assignmentExistsFn: func(ctx context.Context, taskID, assigneeID uint) (bool, error) {
			return true, nil
		},
	}
	svc := NewService(repo, &mockEvents{}, nil)

	_, err := svc.Assign(context.Background(), staffPrincipal(9), 4, AssignRequest{AssigneeID: 12})
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestCompleteByAssigneeStampsAssignmentAndStatus(t *testing.T) {
	completedCalls := 0
	var updatedStatus string
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uint) (*Task, error) {
			return &Task{
				ID: id, EventID: 3, CreatedBy: 9, Status: StatusInProgress,
				Assignments: []TaskAssignment{{TaskID: id, AssigneeID: 12}},
			}, nil
		},
		completeFn: func(ctx context.Context, taskID, assigneeID uint) error {
			completedCalls++
			assert.Equal(t, uint(12), assigneeID)
			return nil
		},
		updateFn: func(ctx context.Context, task *Task) error {
			updatedStatus = task.Status
			return nil
		},
	}
	svc := NewService(repo, &mockEvents{}, nil)

	_, err := svc.Complete(context.Background(), staffPrincipal(12), 4)
	assert.NoError(t, err)
	assert.Equal(t, 1, completedCalls)
	assert.Equal(t, StatusCompleted, updatedStatus)
}

func TestCompleteDeniedForBystander(t *testing.T) {
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uint) (*Task, error) {
			return &Task{ID: id, EventID: 3, CreatedBy: 9,
				Assignments: []TaskAssignment{{TaskID: id, AssigneeID: 12}}}, nil
		},
	}
	svc := NewService(repo, &mockEvents{}, nil)

	_, err := svc.Complete(context.Background(), staffPrincipal(13), 4)
	assert.ErrorIs(t, err, common.ErrForbidden)
}
