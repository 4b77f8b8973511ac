package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"github.com/farhanputra/event-management-backend/config"
	"github.com/farhanputra/event-management-backend/internal/auth"
	"github.com/farhanputra/event-management-backend/internal/common"
	"github.com/farhanputra/event-management-backend/utils"
)

type Service interface {
	// Producers — satisfy the event and task Notifier interfaces
	GuestInvited(ctx context.Context, eventID uint, eventTitle, guestEmail string)
	StaffAssigned(ctx context.Context, eventID uint, eventTitle string, staffUserID uint)
	VendorAssigned(ctx context.Context, eventID uint, eventTitle string, vendorUserID uint)
	TaskAssigned(ctx context.Context, taskID uint, taskTitle string, assigneeID uint)

	// Dispatch delivers one bus event across the in-app, email, push and
	// realtime channels. The kafka consumer calls it; so does the producer
	// path when the bus is disabled.
	Dispatch(ctx context.Context, ev BusEvent)

	List(ctx context.Context, userID uint, unreadOnly bool, pg common.Pagination) (*common.Page, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, id, userID uint) error
	RegisterDevice(ctx context.Context, userID uint, req RegisterDeviceRequest) error
	RemoveDevice(ctx context.Context, userID uint, token string) error
}

type service struct {
	repo  Repository
	users auth.Repository
	cfg   *config.Config
}

func NewService(repo Repository, users auth.Repository, cfg *config.Config) Service {
	return &service{repo: repo, users: users, cfg: cfg}
}

// publish hands the event to the bus, or dispatches inline when kafka is off
func (s *service) publish(ctx context.Context, key string, ev BusEvent) {
	if utils.KafkaEnabled() {
		utils.PublishEvent(ctx, key, ev)
		return
	}
	s.Dispatch(ctx, ev)
}

// ===========================
// 📣 Producers

func (s *service) GuestInvited(ctx context.Context, eventID uint, eventTitle, guestEmail string) {
	s.publish(ctx, "event:"+strconv.Itoa(int(eventID)), BusEvent{
		Category: CategoryGuestInvite,
		Email:    guestEmail,
		EventID:  eventID,
		Title:    "You're invited: " + eventTitle,
		Message:  fmt.Sprintf("You have been invited to %q. RSVP to confirm your spot.", eventTitle),
	})
}

func (s *service) StaffAssigned(ctx context.Context, eventID uint, eventTitle string, staffUserID uint) {
	s.publish(ctx, "event:"+strconv.Itoa(int(eventID)), BusEvent{
		Category: CategoryStaffAssigned,
		UserID:   staffUserID,
		EventID:  eventID,
		Title:    "New staff assignment",
		Message:  fmt.Sprintf("You have been added to the staff of %q.", eventTitle),
	})
}

func (s *service) VendorAssigned(ctx context.Context, eventID uint, eventTitle string, vendorUserID uint) {
	s.publish(ctx, "event:"+strconv.Itoa(int(eventID)), BusEvent{
		Category: CategoryVendorAssigned,
		UserID:   vendorUserID,
		EventID:  eventID,
		Title:    "New vendor engagement",
		Message:  fmt.Sprintf("You have been engaged as a vendor for %q.", eventTitle),
	})
}

func (s *service) TaskAssigned(ctx context.Context, taskID uint, taskTitle string, assigneeID uint) {
	s.publish(ctx, "task:"+strconv.Itoa(int(taskID)), BusEvent{
		Category: CategoryTaskAssigned,
		UserID:   assigneeID,
		TaskID:   taskID,
		Title:    "New task assigned",
		Message:  fmt.Sprintf("Task %q has been assigned to you.", taskTitle),
	})
}

// ===========================
// 📬 Dispatch — fan out to every channel, each one best effort
func (s *service) Dispatch(ctx context.Context, ev BusEvent) {
	email := ev.Email
	userID := ev.UserID

	if userID == 0 && email != "" {
		// Guests may not have accounts; attach the inbox entry when they do
		if u, err := s.users.FindByEmail(ctx, email); err == nil {
			userID = u.ID
		}
	}
	if email == "" && userID != 0 {
		if u, err := s.users.FindByID(ctx, userID); err == nil {
			email = u.Email
		}
	}

	// In-app inbox
	if userID != 0 {
		payload, _ := json.Marshal(ev)
		var eventID *uint
		if ev.EventID != 0 {
			eventID = &ev.EventID
		}
		n := &Notification{
			UserID:   userID,
			EventID:  eventID,
			Title:    ev.Title,
			Message:  ev.Message,
			Category: ev.Category,
			Payload:  payload,
		}
		if err := s.repo.Create(ctx, n); err != nil {
			log.Printf("⚠️ Failed to store notification for user %d: %v", userID, err)
		}
	}

	// Email
	if email != "" {
		if err := utils.SendEmail(s.cfg, email, ev.Title, ev.Message); err != nil {
			log.Printf("⚠️ Failed to email %s: %v", email, err)
		}
	}

	// Push
	if userID != 0 {
		tokens, err := s.repo.TokensByUser(ctx, userID)
		if err != nil {
			log.Printf("⚠️ Failed to load device tokens for user %d: %v", userID, err)
		}
		for _, token := range tokens {
			if err := utils.SendPush(ctx, token, ev.Title, ev.Message, map[string]string{
				"category": ev.Category,
			}); err != nil {
				log.Printf("⚠️ Push delivery failed: %v", err)
			}
		}
	}

	// Realtime room broadcast
	if ev.EventID != 0 {
		utils.PublishRoom(ctx, fmt.Sprintf("event-%d", ev.EventID), ev)
	}
}

// ===========================
// 📥 Inbox

func (s *service) List(ctx context.Context, userID uint, unreadOnly bool, pg common.Pagination) (*common.Page, error) {
	items, total, err := s.repo.ListByUser(ctx, userID, unreadOnly, pg)
	if err != nil {
		return nil, err
	}
	return common.NewPage(items, total, pg), nil
}

func (s *service) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *service) MarkRead(ctx context.Context, id, userID uint) error {
	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		return common.NotFoundf("notification %d", id)
	}
	return nil
}

func (s *service) RegisterDevice(ctx context.Context, userID uint, req RegisterDeviceRequest) error {
	return s.repo.SaveDeviceToken(ctx, &DeviceToken{
		UserID:     userID,
		Token:      req.Token,
		DeviceType: req.DeviceType,
	})
}

func (s *service) RemoveDevice(ctx context.Context, userID uint, token string) error {
	return s.repo.DeleteDeviceToken(ctx, userID, token)
}
