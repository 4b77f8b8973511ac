package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/farhanputra/event-management-backend/internal/auth"
	"github.com/farhanputra/event-management-backend/internal/common"
	"github.com/farhanputra/event-management-backend/middleware"
)

type mockRepo struct {
	Repository
	createFn      func(ctx context.Context, u *auth.User) error
	getByIDFn     func(ctx context.Context, id uint) (*auth.User, error)
	updateFn      func(ctx context.Context, u *auth.User) error
	emailExistsFn func(ctx context.Context, email string) (bool, error)
	listFn        func(ctx context.Context, filters ListFilters, p common.Pagination) ([]auth.User, int64, error)
}

func (m *mockRepo) Create(ctx context.Context, u *auth.User) error { return m.createFn(ctx, u) }
func (m *mockRepo) GetByID(ctx context.Context, id uint) (*auth.User, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockRepo) Update(ctx context.Context, u *auth.User) error { return m.updateFn(ctx, u) }
func (m *mockRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.emailExistsFn(ctx, email)
}
func (m *mockRepo) List(ctx context.Context, filters ListFilters, p common.Pagination) ([]auth.User, int64, error) {
	return m.listFn(ctx, filters, p)
}

func admin(id uint) *middleware.Principal {
	return &middleware.Principal{UserID: id, Role: auth.RoleAdmin, IsActive: true}
}

func organizer(id uint) *middleware.Principal {
	return &middleware.Principal{UserID: id, Role: auth.RoleOrganizer, IsActive: true}
}

func TestCreateUserRequiresElevatedRole(t *testing.T) {
	svc := NewService(&mockRepo{})

	_, err := svc.Create(context.Background(), &middleware.Principal{UserID: 3, Role: auth.RoleVendor},
		CreateUserRequest{Email: "x@y.com", Password: "secret123", FirstName: "A", LastName: "B"})
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestOrganizerCannotMintAdmin(t *testing.T) {
	svc := NewService(&mockRepo{})

	_, err := svc.Create(context.Background(), organizer(2), CreateUserRequest{
		Email: "x@y.com", Password: "secret123", FirstName: "A", LastName: "B", Role: auth.RoleAdmin,
	})
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestCreateUserDuplicateEmailConflicts(t *testing.T) {
	repo := &mockRepo{
		emailExistsFn: func(ctx context.Context, email string) (bool, error) { return true, nil },
	}
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), admin(1), CreateUserRequest{
		Email: "Dup@Y.com", Password: "secret123", FirstName: "A", LastName: "B",
	})
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestCreateUserHashesPasswordAndLowercasesEmail(t *testing.T) {
	var created *auth.User
	repo := &mockRepo{
		emailExistsFn: func(ctx context.Context, email string) (bool, error) { return false, nil },
		createFn: func(ctx context.Context, u *auth.User) error {
			created = u
			return nil
		},
	}
	svc := NewService(repo)

	u, err := svc.Create(context.Background(), admin(1), CreateUserRequest{
		Email: "New@Example.COM", Password: "secret123", FirstName: "A", LastName: "B", Role: auth.RoleStaff,
	})

	assert.NoError(t, err)
	assert.Equal(t, created, u)
	assert.Equal(t, "new@example.com", u.Email)
	assert.NotEqual(t, "secret123", u.PasswordHash)
	assert.Equal(t, auth.RoleStaff, u.Role)
	assert.True(t, u.IsActive)
}

func TestUpdateRoleRequiresAdmin(t *testing.T) {
	svc := NewService(&mockRepo{})

	role := auth.RoleOrganizer
	_, err := svc.Update(context.Background(), organizer(2), 2, UpdateUserRequest{Role: &role})
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestDeactivateForbidsSelf(t *testing.T) {
	svc := NewService(&mockRepo{})

	err := svc.Deactivate(context.Background(), admin(1), 1)
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestDeactivateFlipsFlagOnly(t *testing.T) {
	var updated *auth.User
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uint) (*auth.User, error) {
			return &auth.User{ID: id, Email: "u@x.com", IsActive: true}, nil
		},
		updateFn: func(ctx context.Context, u *auth.User) error {
			updated = u
			return nil
		},
	}
	svc := NewService(repo)

	err := svc.Deactivate(context.Background(), admin(1), 5)
	assert.NoError(t, err)
	assert.NotNil(t, updated)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "u@x.com", updated.Email, "record survives with its data intact")
}

func TestListForbiddenForAttendee(t *testing.T) {
	svc := NewService(&mockRepo{})

	_, err := svc.List(context.Background(), &middleware.Principal{UserID: 7, Role: auth.RoleAttendee},
		ListFilters{}, common.NewPagination(1, 20))
	assert.ErrorIs(t, err, common.ErrForbidden)
}
