package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/farhanputra/event-management-backend/config"
	"github.com/farhanputra/event-management-backend/internal/event"
	"github.com/farhanputra/event-management-backend/middleware"
	"github.com/farhanputra/event-management-backend/utils"
)

// ErrDisabled is returned when the AI service integration is switched off
var ErrDisabled = errors.New("AI analysis service is not enabled")

type Service interface {
	AnalyzeEvent(ctx context.Context, p *middleware.Principal, eventID uint) (json.RawMessage, error)
	PredictAttendance(ctx context.Context, p *middleware.Principal, eventID uint) (json.RawMessage, error)
	Recommendations(ctx context.Context, p *middleware.Principal, eventID uint) (json.RawMessage, error)
}

type service struct {
	client *Client
	events event.Service
	cfg    *config.Config
}

func NewService(client *Client, events event.Service, cfg *config.Config) Service {
	return &service{client: client, events: events, cfg: cfg}
}

// eventSnapshot is the payload relayed to the external analysis service
type eventSnapshot struct {
	EventID      uint       `json:"event_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	EventType    string     `json:"event_type"`
	Status       string     `json:"status"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      time.Time  `json:"end_time"`
	Location     string     `json:"location,omitempty"`
	IsPublic     bool       `json:"is_public"`
	MaxAttendees *int       `json:"max_attendees,omitempty"`
	GuestCount   int64      `json:"guest_count"`
	VendorCount  int64      `json:"vendor_count"`
	StaffCount   int64      `json:"staff_count"`
}

func (s *service) AnalyzeEvent(ctx context.Context, p *middleware.Principal, eventID uint) (json.RawMessage, error) {
	return s.analyze(ctx, p, eventID, endpointAnalyze)
}

func (s *service) PredictAttendance(ctx context.Context, p *middleware.Principal, eventID uint) (json.RawMessage, error) {
	return s.analyze(ctx, p, eventID, endpointAttendance)
}

func (s *service) Recommendations(ctx context.Context, p *middleware.Principal, eventID uint) (json.RawMessage, error) {
	return s.analyze(ctx, p, eventID, endpointRecommend)
}

func (s *service) analyze(ctx context.Context, p *middleware.Principal, eventID uint, endpoint string) (json.RawMessage, error) {
	if !s.cfg.AIServiceEnabled || s.cfg.AIServiceBaseURL == "" {
		return nil, ErrDisabled
	}

	// The event service enforces view access before handing the event back
	ev, err := s.events.Get(ctx, p, eventID)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("ai:%s:event:%d", endpoint, eventID)
	var cached json.RawMessage
	if utils.CacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	result, err := s.client.Analyze(ctx, endpoint, eventSnapshot{
		EventID:      ev.ID,
		Title:        ev.Title,
		Description:  ev.Description,
		EventType:    ev.EventType,
		Status:       ev.Status,
		StartTime:    ev.StartTime,
		EndTime:      ev.EndTime,
		Location:     ev.Location,
		IsPublic:     ev.IsPublic,
		MaxAttendees: ev.MaxAttendees,
		GuestCount:   ev.GuestCount,
		VendorCount:  ev.VendorCount,
		StaffCount:   ev.StaffCount,
	})
	if err != nil {
		log.Printf("⚠️ AI %s failed for event %d: %v", endpoint, eventID, err)
		return nil, err
	}

	utils.CacheSet(ctx, cacheKey, result, time.Duration(s.cfg.AICacheTTLSeconds)*time.Second)
	return result, nil
}
