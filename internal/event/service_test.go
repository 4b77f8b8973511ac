package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/farhanputra/event-management-backend/internal/auth"
	"github.com/farhanputra/event-management-backend/internal/common"
	"github.com/farhanputra/event-management-backend/middleware"
)

// mockRepo embeds the interface so each test only supplies the methods it
// actually exercises.
type mockRepo struct {
	Repository
	createWithBudgetFn func(ctx context.Context, ev *Event, createdBy uint) error
	getByIDFn          func(ctx context.Context, id uint) (*Event, error)
	updateFn           func(ctx context.Context, ev *Event) error
	deleteCascadeFn    func(ctx context.Context, id uint) error
	listFn             func(ctx context.Context, scope ListScope, filters ListFilters, p common.Pagination) ([]Event, int64, error)
	guestExistsFn      func(ctx context.Context, eventID uint, email string) (bool, error)
	addGuestFn         func(ctx context.Context, g *EventGuest) error
	getGuestFn         func(ctx context.Context, id uint) (*EventGuest, error)
	updateGuestFn      func(ctx context.Context, g *EventGuest) error
}

func (m *mockRepo) CreateWithBudget(ctx context.Context, ev *Event, createdBy uint) error {
	return m.createWithBudgetFn(ctx, ev, createdBy)
}
func (m *mockRepo) GetByID(ctx context.Context, id uint) (*Event, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockRepo) Update(ctx context.Context, ev *Event) error { return m.updateFn(ctx, ev) }
func (m *mockRepo) DeleteCascade(ctx context.Context, id uint) error {
	return m.deleteCascadeFn(ctx, id)
}
func (m *mockRepo) List(ctx context.Context, scope ListScope, filters ListFilters, p common.Pagination) ([]Event, int64, error) {
	return m.listFn(ctx, scope, filters, p)
}
func (m *mockRepo) GuestEmailExists(ctx context.Context, eventID uint, email string) (bool, error) {
	return m.guestExistsFn(ctx, eventID, email)
}
func (m *mockRepo) AddGuest(ctx context.Context, g *EventGuest) error { return m.addGuestFn(ctx, g) }
func (m *mockRepo) GetGuest(ctx context.Context, id uint) (*EventGuest, error) {
	return m.getGuestFn(ctx, id)
}
func (m *mockRepo) UpdateGuest(ctx context.Context, g *EventGuest) error {
	return m.updateGuestFn(ctx, g)
}

func organizerPrincipal(id uint) *middleware.Principal {
	return &middleware.Principal{UserID: id, Role: auth.RoleOrganizer, Email: "org@example.com", IsActive: true}
}

func TestCreateEventRejectsInvertedTimeRange(t *testing.T) {
	svc := NewService(&mockRepo{}, nil)

	start := time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), organizerPrincipal(1), CreateEventRequest{
		Title:     "Launch party",
		StartTime: start,
		EndTime:   start.Add(-2 * time.Hour),
	})

	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestCreateEventDefaultsAndPersists(t *testing.T) {
	var created *Event
	var budgetCreator uint
	repo := &mockRepo{
		createWithBudgetFn: func(ctx context.Context, ev *Event, createdBy uint) error {
			ev.ID = 7
			created = ev
			budgetCreator = createdBy
			return nil
		},
	}
	svc := NewService(repo, nil)

	start := time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC)
	ev, err := svc.Create(context.Background(), organizerPrincipal(42), CreateEventRequest{
		Title:     "Launch party",
		StartTime: start,
		EndTime:   start.Add(4 * time.Hour),
	})

	assert.NoError(t, err)
	assert.Equal(t, created, ev)
	assert.Equal(t, uint(42), ev.OrganizerID)
	assert.Equal(t, uint(42), budgetCreator)
	assert.Equal(t, StatusDraft, ev.Status)
	assert.Equal(t, "other", ev.EventType)
	assert.Equal(t, "UTC", ev.Timezone)
	assert.True(t, ev.IsPublic)
}

func TestGetEventDeniesUninvitedAttendeeOnPrivateEvent(t *testing.T) {
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uint) (*Event, error) {
			return &Event{ID: id, OrganizerID: 1, IsPublic: false}, nil
		},
	}
	svc := NewService(repo, nil)

	attendee := &middleware.Principal{UserID: 9, Role: auth.RoleAttendee, Email: "nobody@example.com"}
	_, err := svc.Get(context.Background(), attendee, 5)
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestGetEventAllowsInvitedGuest(t *testing.T) {
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uint) (*Event, error) {
			return &Event{
				ID:          id,
				OrganizerID: 1,
				IsPublic:    false,
				Guests:      []EventGuest{{Email: "invited@example.com"}},
			}, nil
		},
	}
	svc := NewService(repo, nil)

	attendee := &middleware.Principal{UserID: 9, Role: auth.RoleAttendee, Email: "invited@example.com"}
	ev, err := svc.Get(context.Background(), attendee, 5)
	assert.NoError(t, err)
	assert.Equal(t, uint(5), ev.ID)
}

func TestDeleteEventRequiresOrganizerOrAdmin(t *testing.T) {
	deleted := false
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uint) (*Event, error) {
			return &Event{ID: id, OrganizerID: 1}, nil
		},
		deleteCascadeFn: func(ctx context.Context, id uint) error {
			deleted = true
			return nil
		},
	}
	svc := NewService(repo, nil)

	err := svc.Delete(context.Background(), organizerPrincipal(2), 5)
	assert.ErrorIs(t, err, common.ErrForbidden)
	assert.False(t, deleted)

	err = svc.Delete(context.Background(), &middleware.Principal{UserID: 99, Role: auth.RoleAdmin}, 5)
	assert.NoError(t, err)
	assert.True(t, deleted)
}

func TestUpdateEventValidatesPatchedTimeRange(t *testing.T) {
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uint) (*Event, error) {
			start := time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC)
			return &Event{ID: id, OrganizerID: 1, StartTime: start, EndTime: start.Add(time.Hour)}, nil
		},
	}
	svc := NewService(repo, nil)

	badStart := time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC)
	_, err := svc.Update(context.Background(), organizerPrincipal(1), 5, UpdateEventRequest{StartTime: &badStart})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestListScopeFollowsRole(t *testing.T) {
	var captured ListScope
	repo := &mockRepo{
		listFn: func(ctx context.Context, scope ListScope, filters ListFilters, p common.Pagination) ([]Event, int64, error) {
			captured = scope
			return nil, 0, nil
		},
	}
	svc := NewService(repo, nil)
	pg := common.NewPagination(1, 20)

	_, err := svc.List(context.Background(), &middleware.Principal{UserID: 1, Role: auth.RoleAdmin}, ListFilters{}, pg)
	assert.NoError(t, err)
	assert.True(t, captured.All)

	_, _ = svc.List(context.Background(), organizerPrincipal(4), ListFilters{}, pg)
	assert.Equal(t, uint(4), captured.OrganizerID)

	_, _ = svc.List(context.Background(), &middleware.Principal{UserID: 6, Role: auth.RoleStaff}, ListFilters{}, pg)
	assert.Equal(t, uint(6), captured.StaffUserID)

	_, _ = svc.List(context.Background(), &middleware.Principal{UserID: 8, Role: auth.RoleAttendee, Email: "a@b.com"}, ListFilters{}, pg)
	assert.Equal(t, "a@b.com", captured.GuestEmail)
}

func TestAddGuestDuplicateEmailConflicts(t *testing.T) {
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uint) (*Event, error) {
			return &Event{ID: id, OrganizerID: 1, Title: "Gala"}, nil
		},
		guestExistsFn: func(ctx context.Context, eventID uint, email string) (bool, error) {
			return true, nil
		},
	}
	svc := NewService(repo, nil)

	_, err := svc.AddGuest(context.Background(), organizerPrincipal(1), 5, AddGuestRequest{
		Email: "Dup@Example.com", FirstName: "D", LastName: "Up",
	})
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestCheckInGuestIsOneShot(t *testing.T) {
	when := time.Now()
	repo := &mockRepo{
		getGuestFn: func(ctx context.Context, id uint) (*EventGuest, error) {
			return &EventGuest{ID: id, EventID: 5, Email: "g@x.com", CheckInTime: &when}, nil
		},
		getByIDFn: func(ctx context.Context, id uint) (*Event, error) {
			return &Event{ID: id, OrganizerID: 1}, nil
		},
	}
	svc := NewService(repo, nil)

	_, err := svc.CheckInGuest(context.Background(), organizerPrincipal(1), 3)
	assert.ErrorIs(t, err, common.ErrConflict)
}
