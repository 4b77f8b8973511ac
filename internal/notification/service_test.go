package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/farhanputra/event-management-backend/config"
	"github.com/farhanputra/event-management-backend/internal/auth"
	"github.com/farhanputra/event-management-backend/internal/common"
)

type mockRepo struct {
	Repository
	createFn       func(ctx context.Context, n *Notification) error
	markReadFn     func(ctx context.Context, id, userID uint) error
	tokensByUserFn func(ctx context.Context, userID uint) ([]string, error)
	saveTokenFn    func(ctx context.Context, t *DeviceToken) error
}

func (m *mockRepo) Create(ctx context.Context, n *Notification) error { return m.createFn(ctx, n) }
func (m *mockRepo) MarkRead(ctx context.Context, id, userID uint) error {
	return m.markReadFn(ctx, id, userID)
}
func (m *mockRepo) TokensByUser(ctx context.Context, userID uint) ([]string, error) {
	return m.tokensByUserFn(ctx, userID)
}
func (m *mockRepo) SaveDeviceToken(ctx context.Context, t *DeviceToken) error {
	return m.saveTokenFn(ctx, t)
}

type mockUsers struct {
	auth.Repository
	findByIDFn    func(ctx context.Context, id uint) (*auth.User, error)
	findByEmailFn func(ctx context.Context, email string) (*auth.User, error)
}

func (m *mockUsers) FindByID(ctx context.Context, id uint) (*auth.User, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockUsers) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	return m.findByEmailFn(ctx, email)
}

func TestDispatchAttachesInboxEntryForKnownGuestEmail(t *testing.T) {
	var stored *Notification
	repo := &mockRepo{
		createFn: func(_ context.Context, n *Notification) error {
			stored = n
			return nil
		},
		tokensByUserFn: func(context.Context, uint) ([]string, error) { return nil, nil },
	}
	users := &mockUsers{
		findByEmailFn: func(_ context.Context, email string) (*auth.User, error) {
			assert.Equal(t, "guest@example.com", email)
			return &auth.User{ID: 9, Email: email}, nil
		},
	}
	svc := NewService(repo, users, &config.Config{})

	svc.Dispatch(context.Background(), BusEvent{
		Category: CategoryGuestInvite,
		Email:    "guest@example.com",
		EventID:  3,
		Title:    "You're invited: Launch Party",
		Message:  "RSVP to confirm your spot.",
	})

	if assert.NotNil(t, stored) {
		assert.Equal(t, uint(9), stored.UserID)
		assert.Equal(t, CategoryGuestInvite, stored.Category)
		if assert.NotNil(t, stored.EventID) {
			assert.Equal(t, uint(3), *stored.EventID)
		}
		assert.NotEmpty(t, stored.Payload)
	}
}

func TestDispatchSkipsInboxForUnknownGuest(t *testing.T) {
	created := false
	repo := &mockRepo{
		createFn: func(context.Context, *Notification) error {
			created = true
			return nil
		},
	}
	users := &mockUsers{
		findByEmailFn: func(context.Context, string) (*auth.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(repo, users, &config.Config{})

	svc.Dispatch(context.Background(), BusEvent{
		Category: CategoryGuestInvite,
		Email:    "stranger@example.com",
		Title:    "You're invited",
	})

	assert.False(t, created, "no inbox entry without an account")
}

func TestDispatchResolvesEmailForKnownUser(t *testing.T) {
	looked := false
	repo := &mockRepo{
		createFn:       func(context.Context, *Notification) error { return nil },
		tokensByUserFn: func(context.Context, uint) ([]string, error) { return nil, nil },
	}
	users := &mockUsers{
		findByIDFn: func(_ context.Context, id uint) (*auth.User, error) {
			looked = true
			assert.Equal(t, uint(12), id)
			return &auth.User{ID: 12, Email: "staff@example.com"}, nil
		},
	}
	svc := NewService(repo, users, &config.Config{})

	svc.Dispatch(context.Background(), BusEvent{
		Category: CategoryStaffAssigned,
		UserID:   12,
		EventID:  4,
		Title:    "New staff assignment",
	})

	assert.True(t, looked)
}

func TestMarkReadUnknownNotificationIsNotFound(t *testing.T) {
	repo := &mockRepo{
		markReadFn: func(context.Context, uint, uint) error { return gorm.ErrRecordNotFound },
	}
	svc := NewService(repo, &mockUsers{}, &config.Config{})

	err := svc.MarkRead(context.Background(), 99, 5)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestRegisterDevicePersistsToken(t *testing.T) {
	var saved *DeviceToken
	repo := &mockRepo{
		saveTokenFn: func(_ context.Context, tok *DeviceToken) error {
			saved = tok
			return nil
		},
	}
	svc := NewService(repo, &mockUsers{}, &config.Config{})

	err := svc.RegisterDevice(context.Background(), 7, RegisterDeviceRequest{Token: "fcm-token-abc", DeviceType: "android"})
	assert.NoError(t, err)
	if assert.NotNil(t, saved) {
		assert.Equal(t, uint(7), saved.UserID)
		assert.Equal(t, "fcm-token-abc", saved.Token)
	}
}
