package budget

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/farhanputra/event-management-backend/internal/auth"
	"github.com/farhanputra/event-management-backend/internal/authz"
	"github.com/farhanputra/event-management-backend/internal/common"
	"github.com/farhanputra/event-management-backend/middleware"
)

type mockRepo struct {
	Repository
	createFn       func(ctx context.Context, b *Budget) error
	getByIDFn      func(ctx context.Context, id uint) (*Budget, error)
	getByEventFn   func(ctx context.Context, eventID uint) (*Budget, error)
	createItemFn   func(ctx context.Context, item *BudgetItem) error
	getItemFn      func(ctx context.Context, id uint) (*BudgetItem, error)
	updateItemFn   func(ctx context.Context, item *BudgetItem) error
	deleteItemFn   func(ctx context.Context, id uint) error
	createExpFn    func(ctx context.Context, e *Expense) error
	listFn         func(ctx context.Context, scope ListScope, filters ListFilters, p common.Pagination) ([]Budget, int64, error)
}

func (m *mockRepo) Create(ctx context.Context, b *Budget) error { return m.createFn(ctx, b) }
func (m *mockRepo) GetByID(ctx context.Context, id uint) (*Budget, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockRepo) GetByEventID(ctx context.Context, eventID uint) (*Budget, error) {
	return m.getByEventFn(ctx, eventID)
}
func (m *mockRepo) CreateItem(ctx context.Context, item *BudgetItem) error {
	return m.createItemFn(ctx, item)
}
func (m *mockRepo) GetItem(ctx context.Context, id uint) (*BudgetItem, error) {
	return m.getItemFn(ctx, id)
}
func (m *mockRepo) UpdateItem(ctx context.Context, item *BudgetItem) error {
	return m.updateItemFn(ctx, item)
}
func (m *mockRepo) DeleteItem(ctx context.Context, id uint) error { return m.deleteItemFn(ctx, id) }
func (m *mockRepo) CreateExpense(ctx context.Context, e *Expense) error {
	return m.createExpFn(ctx, e)
}
func (m *mockRepo) List(ctx context.Context, scope ListScope, filters ListFilters, p common.Pagination) ([]Budget, int64, error) {
	return m.listFn(ctx, scope, filters, p)
}

// mockEvents returns a fixed snapshot for any event id
type mockEvents struct {
	access authz.EventAccess
	err    error
}

func (m *mockEvents) AccessSnapshot(ctx context.Context, eventID uint) (authz.EventAccess, error) {
	return m.access, m.err
}

func organizer(id uint) *middleware.Principal {
	return &middleware.Principal{UserID: id, Role: auth.RoleOrganizer, IsActive: true}
}

func TestCreateBudgetConflictsWhenEventAlreadyHasOne(t *testing.T) {
	repo := &mockRepo{
		getByEventFn: func(ctx context.Context, eventID uint) (*Budget, error) {
			return &Budget{ID: 1, EventID: eventID}, nil
		},
	}
	svc := NewService(repo, &mockEvents{access: authz.EventAccess{OrganizerID: 7}})

	_, err := svc.Create(context.Background(), organizer(7), CreateBudgetRequest{EventID: 3})
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestCreateBudgetRequiresOrganizerOrAdmin(t *testing.T) {
	svc := NewService(&mockRepo{}, &mockEvents{access: authz.EventAccess{OrganizerID: 7}})

	_, err := svc.Create(context.Background(), organizer(8), CreateBudgetRequest{EventID: 3})
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestCreateBudgetSucceeds(t *testing.T) {
	var created *Budget
	repo := &mockRepo{
		getByEventFn: func(ctx context.Context, eventID uint) (*Budget, error) {
			return nil, gorm.ErrRecordNotFound
		},
		createFn: func(ctx context.Context, b *Budget) error {
			b.ID = 11
			created = b
			return nil
		},
	}
	svc := NewService(repo, &mockEvents{access: authz.EventAccess{OrganizerID: 7}})

	b, err := svc.Create(context.Background(), organizer(7), CreateBudgetRequest{EventID: 3, Notes: "initial"})
	assert.NoError(t, err)
	assert.Equal(t, created, b)
	assert.Equal(t, StatusDraft, b.Status)
	assert.Equal(t, uint(7), b.CreatedBy)
}

func TestCreateItemComputesCostsBeforePersisting(t *testing.T) {
	var persisted *BudgetItem
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uint) (*Budget, error) {
			return &Budget{ID: id, EventID: 3}, nil
		},
		createItemFn: func(ctx context.Context, item *BudgetItem) error {
			persisted = item
			return nil
		},
	}
	svc := NewService(repo, &mockEvents{access: authz.EventAccess{OrganizerID: 7}})

	item, err := svc.CreateItem(context.Background(), organizer(7), 11, CreateItemRequest{
		Category:          "catering",
		Description:       "Dinner service",
		Quantity:          3,
		EstimatedUnitCost: 50,
	})

	assert.NoError(t, err)
	assert.Equal(t, persisted, item)
	assert.Equal(t, 150.0, item.EstimatedCost)
	assert.Nil(t, item.ActualCost)
	assert.Equal(t, PaymentUnpaid, item.PaymentStatus)
}

func TestCreateItemRejectsUnknownCategory(t *testing.T) {
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uint) (*Budget, error) {
			return &Budget{ID: id, EventID: 3}, nil
		},
	}
	svc := NewService(repo, &mockEvents{access: authz.EventAccess{OrganizerID: 7}})

	_, err := svc.CreateItem(context.Background(), organizer(7), 11, CreateItemRequest{
		Category:          "bribes",
		Description:       "n/a",
		EstimatedUnitCost: 1,
	})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestUpdateItemRecomputesDerivedCosts(t *testing.T) {
	actual := 40.0
	var persisted *BudgetItem
	repo := &mockRepo{
		getItemFn: func(ctx context.Context, id uint) (*BudgetItem, error) {
			item := &BudgetItem{ID: id, BudgetID: 11, Category: "venue", Description: "Hall",
				Quantity: 2, EstimatedUnitCost: 100, EstimatedCost: 200, PaymentStatus: PaymentUnpaid}
			return item, nil
		},
		getByIDFn: func(ctx context.Context, id uint) (*Budget, error) {
			return &Budget{ID: id, EventID: 3}, nil
		},
		updateItemFn: func(ctx context.Context, item *BudgetItem) error {
			persisted = item
			return nil
		},
	}
	svc := NewService(repo, &mockEvents{access: authz.EventAccess{OrganizerID: 7}})

	item, err := svc.UpdateItem(context.Background(), organizer(7), 5, UpdateItemRequest{
		ActualUnitCost: &actual,
	})

	assert.NoError(t, err)
	assert.Equal(t, persisted, item)
	assert.NotNil(t, item.ActualCost)
	assert.Equal(t, 80.0, *item.ActualCost)
	assert.Equal(t, 200.0, item.EstimatedCost)
}

func TestAddExpenseRejectsNonPositiveAmount(t *testing.T) {
	repo := &mockRepo{
		getItemFn: func(ctx context.Context, id uint) (*BudgetItem, error) {
			return &BudgetItem{ID: id, BudgetID: 11}, nil
		},
		getByIDFn: func(ctx context.Context, id uint) (*Budget, error) {
			return &Budget{ID: id, EventID: 3}, nil
		},
	}
	svc := NewService(repo, &mockEvents{access: authz.EventAccess{OrganizerID: 7}})

	_, err := svc.AddExpense(context.Background(), organizer(7), 5, CreateExpenseRequest{Amount: 0})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestListScopeLiftsOnlyForAdmin(t *testing.T) {
	var captured ListScope
	repo := &mockRepo{
		listFn: func(ctx context.Context, scope ListScope, filters ListFilters, p common.Pagination) ([]Budget, int64, error) {
			captured = scope
			return nil, 0, nil
		},
	}
	svc := NewService(repo, &mockEvents{})
	pg := common.NewPagination(1, 20)

	_, err := svc.List(context.Background(), organizer(7), ListFilters{}, pg)
	assert.NoError(t, err)
	assert.False(t, captured.All)
	assert.Equal(t, uint(7), captured.OrganizerID)

	_, _ = svc.List(context.Background(), &middleware.Principal{UserID: 1, Role: auth.RoleAdmin}, ListFilters{}, pg)
	assert.True(t, captured.All)
}
