package event

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/farhanputra/event-management-backend/internal/auth"
	"github.com/farhanputra/event-management-backend/internal/authz"
	"github.com/farhanputra/event-management-backend/internal/common"
	"github.com/farhanputra/event-management-backend/middleware"
)

// Notifier receives fire-and-forget notifications about event membership
// changes. The notification package provides the implementation.
type Notifier interface {
	GuestInvited(ctx context.Context, eventID uint, eventTitle, guestEmail string)
	StaffAssigned(ctx context.Context, eventID uint, eventTitle string, staffUserID uint)
	VendorAssigned(ctx context.Context, eventID uint, eventTitle string, vendorUserID uint)
}

type Service interface {
	Create(ctx context.Context, p *middleware.Principal, req CreateEventRequest) (*Event, error)
	Get(ctx context.Context, p *middleware.Principal, id uint) (*Event, error)
	Update(ctx context.Context, p *middleware.Principal, id uint, req UpdateEventRequest) (*Event, error)
	Delete(ctx context.Context, p *middleware.Principal, id uint) error
	List(ctx context.Context, p *middleware.Principal, filters ListFilters, pg common.Pagination) (*common.Page, error)
	SetCoverImage(ctx context.Context, p *middleware.Principal, id uint, url string) (*Event, error)

	// AccessSnapshot is consumed by the budget and task services for their
	// own policy checks.
	AccessSnapshot(ctx context.Context, eventID uint) (authz.EventAccess, error)

	AddGuest(ctx context.Context, p *middleware.Principal, eventID uint, req AddGuestRequest) (*EventGuest, error)
	UpdateGuest(ctx context.Context, p *middleware.Principal, guestID uint, req UpdateGuestRequest) (*EventGuest, error)
	DeleteGuest(ctx context.Context, p *middleware.Principal, guestID uint) error
	ListGuests(ctx context.Context, p *middleware.Principal, eventID uint, pg common.Pagination) (*common.Page, error)
	CheckInGuest(ctx context.Context, p *middleware.Principal, guestID uint) (*EventGuest, error)

	AddVendor(ctx context.Context, p *middleware.Principal, eventID uint, req AddVendorRequest) (*EventVendor, error)
	UpdateVendor(ctx context.Context, p *middleware.Principal, vendorID uint, req UpdateVendorRequest) (*EventVendor, error)
	DeleteVendor(ctx context.Context, p *middleware.Principal, vendorID uint) error
	ListVendors(ctx context.Context, p *middleware.Principal, eventID uint, pg common.Pagination) (*common.Page, error)

	AddStaff(ctx context.Context, p *middleware.Principal, eventID uint, req AddStaffRequest) (*EventStaff, error)
	UpdateStaff(ctx context.Context, p *middleware.Principal, staffID uint, req UpdateStaffRequest) (*EventStaff, error)
	DeleteStaff(ctx context.Context, p *middleware.Principal, staffID uint) error
	ListStaff(ctx context.Context, p *middleware.Principal, eventID uint, pg common.Pagination) (*common.Page, error)
}

type service struct {
	repo     Repository
	notifier Notifier
}

// NewService wires the event service. notifier may be nil in tests.
func NewService(repo Repository, notifier Notifier) Service {
	return &service{repo: repo, notifier: notifier}
}

// accessOf builds the policy snapshot from a fully loaded event
func accessOf(ev *Event) authz.EventAccess {
	access := authz.EventAccess{
		OrganizerID: ev.OrganizerID,
		IsPublic:    ev.IsPublic,
	}
	for _, s := range ev.Staff {
		access.StaffUserIDs = append(access.StaffUserIDs, s.StaffID)
	}
	for _, v := range ev.Vendors {
		access.VendorUserIDs = append(access.VendorUserIDs, v.VendorID)
	}
	for _, g := range ev.Guests {
		access.GuestEmails = append(access.GuestEmails, g.Email)
	}
	return access
}

func validateTimeRange(start, end time.Time) error {
	if !start.Before(end) {
		return common.Validationf("start_time must be before end_time")
	}
	return nil
}

// ===========================
// 🎯 Create Event — any authenticated user becomes the organizer; the draft
// budget is created in the same transaction
func (s *service) Create(ctx context.Context, p *middleware.Principal, req CreateEventRequest) (*Event, error) {
	if err := validateTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	eventType := req.EventType
	if eventType == "" {
		eventType = "other"
	}
	if !ValidEventType(eventType) {
		return nil, common.Validationf("invalid event_type %q", req.EventType)
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	ev := &Event{
		Title:             req.Title,
		Description:       req.Description,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		Timezone:          timezone,
		Location:          req.Location,
		VirtualMeetingURL: req.VirtualMeetingURL,
		MaxAttendees:      req.MaxAttendees,
		IsPublic:          isPublic,
		EventType:         eventType,
		Status:            StatusDraft,
		OrganizerID:       p.UserID,
		VenueID:           req.VenueID,
	}

	if err := s.repo.CreateWithBudget(ctx, ev, p.UserID); err != nil {
		log.Printf("❌ Failed to create event: %v", err)
		return nil, err
	}
	log.Printf("✅ Event %d created by user %d", ev.ID, p.UserID)
	return ev, nil
}

func (s *service) loadEvent(ctx context.Context, id uint) (*Event, error) {
	ev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundf("event %d", id)
		}
		return nil, err
	}
	return ev, nil
}

// ===========================
// 🔍 Get Event — read gate applies
func (s *service) Get(ctx context.Context, p *middleware.Principal, id uint) (*Event, error) {
	ev, err := s.loadEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewEvent(p, accessOf(ev)) {
		return nil, common.Forbiddenf("no access to event %d", id)
	}
	return ev, nil
}

// ===========================
// ✏️ Update Event
func (s *service) Update(ctx context.Context, p *middleware.Principal, id uint, req UpdateEventRequest) (*Event, error) {
	ev, err := s.loadEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanModifyEvent(p, ev.OrganizerID) {
		return nil, common.Forbiddenf("only the organizer or an admin can update this event")
	}

	if req.Title != nil {
		ev.Title = *req.Title
	}
	if req.Description != nil {
		ev.Description = *req.Description
	}
	if req.StartTime != nil {
		ev.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		ev.EndTime = *req.EndTime
	}
	if err := validateTimeRange(ev.StartTime, ev.EndTime); err != nil {
		return nil, err
	}
	if req.Timezone != nil {
		ev.Timezone = *req.Timezone
	}
	if req.Location != nil {
		ev.Location = *req.Location
	}
	if req.VirtualMeetingURL != nil {
		ev.VirtualMeetingURL = *req.VirtualMeetingURL
	}
	if req.MaxAttendees != nil {
		ev.MaxAttendees = req.MaxAttendees
	}
	if req.IsPublic != nil {
		ev.IsPublic = *req.IsPublic
	}
	if req.EventType != nil {
		if !ValidEventType(*req.EventType) {
			return nil, common.Validationf("invalid event_type %q", *req.EventType)
		}
		ev.EventType = *req.EventType
	}
	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return nil, common.Validationf("invalid status %q", *req.Status)
		}
		ev.Status = *req.Status
	}
	if req.VenueID != nil {
		ev.VenueID = req.VenueID
	}

	if err := s.repo.Update(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// ===========================
// 🗑️ Delete Event — hard cascade
func (s *service) Delete(ctx context.Context, p *middleware.Principal, id uint) error {
	ev, err := s.loadEvent(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanModifyEvent(p, ev.OrganizerID) {
		return common.Forbiddenf("only the organizer or an admin can delete this event")
	}

	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		log.Printf("❌ Failed to delete event %d: %v", id, err)
		return err
	}
	log.Printf("🗑️ Event %d deleted by user %d", id, p.UserID)
	return nil
}

// ===========================
// 📋 List Events — implicit scope by role, explicit filters on top
func (s *service) List(ctx context.Context, p *middleware.Principal, filters ListFilters, pg common.Pagination) (*common.Page, error) {
	var scope ListScope
	switch p.Role {
	case auth.RoleAdmin:
		scope.All = true
	case auth.RoleOrganizer:
		scope.OrganizerID = p.UserID
	case auth.RoleStaff:
		scope.StaffUserID = p.UserID
	case auth.RoleVendor:
		scope.VendorUserID = p.UserID
	default:
		scope.GuestEmail = p.Email
	}

	events, total, err := s.repo.List(ctx, scope, filters, pg)
	if err != nil {
		return nil, err
	}
	return common.NewPage(events, total, pg), nil
}

// SetCoverImage records the stored upload URL on the event
func (s *service) SetCoverImage(ctx context.Context, p *middleware.Principal, id uint, url string) (*Event, error) {
	ev, err := s.loadEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanModifyEvent(p, ev.OrganizerID) {
		return nil, common.Forbiddenf("only the organizer or an admin can update this event")
	}

	ev.CoverImage = url
	if err := s.repo.Update(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *service) AccessSnapshot(ctx context.Context, eventID uint) (authz.EventAccess, error) {
	ev, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return authz.EventAccess{}, err
	}
	return accessOf(ev), nil
}

// ===========================
// 👥 Guests

func (s *service) AddGuest(ctx context.Context, p *middleware.Principal, eventID uint, req AddGuestRequest) (*EventGuest, error) {
	ev, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !authz.CanModifyEvent(p, ev.OrganizerID) {
		return nil, common.Forbiddenf("only the organizer or an admin can invite guests")
	}

	email := strings.ToLower(req.Email)
	exists, err := s.repo.GuestEmailExists(ctx, eventID, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.Conflictf("guest %s already invited", email)
	}

	g := &EventGuest{
		EventID:    eventID,
		Email:      email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		RSVPStatus: RSVPPending,
	}
	if err := s.repo.AddGuest(ctx, g); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.GuestInvited(ctx, ev.ID, ev.Title, g.Email)
	}
	return g, nil
}

func (s *service) UpdateGuest(ctx context.Context, p *middleware.Principal, guestID uint, req UpdateGuestRequest) (*EventGuest, error) {
	g, err := s.repo.GetGuest(ctx, guestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundf("guest %d", guestID)
		}
		return nil, err
	}

	ev, err := s.loadEvent(ctx, g.EventID)
	if err != nil {
		return nil, err
	}

	// The invited guest may update their own RSVP; everything else needs the
	// write gate.
	selfRSVP := strings.EqualFold(p.Email, g.Email) &&
		req.FirstName == nil && req.LastName == nil && req.Phone == nil
	if !selfRSVP && !authz.CanModifyEvent(p, ev.OrganizerID) {
		return nil, common.Forbiddenf("only the organizer or an admin can update guests")
	}

	if req.FirstName != nil {
		g.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		g.LastName = *req.LastName
	}
	if req.Phone != nil {
		g.Phone = *req.Phone
	}
	if req.RSVPStatus != nil {
		if !ValidRSVPStatus(*req.RSVPStatus) {
			return nil, common.Validationf("invalid rsvp_status %q", *req.RSVPStatus)
		}
		g.RSVPStatus = *req.RSVPStatus
	}

	if err := s.repo.UpdateGuest(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *service) DeleteGuest(ctx context.Context, p *middleware.Principal, guestID uint) error {
	g, err := s.repo.GetGuest(ctx, guestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.NotFoundf("guest %d", guestID)
		}
		return err
	}

	ev, err := s.loadEvent(ctx, g.EventID)
	if err != nil {
		return err
	}
	if !authz.CanModifyEvent(p, ev.OrganizerID) {
		return common.Forbiddenf("only the organizer or an admin can remove guests")
	}

	return s.repo.DeleteGuest(ctx, guestID)
}

func (s *service) ListGuests(ctx context.Context, p *middleware.Principal, eventID uint, pg common.Pagination) (*common.Page, error) {
	ev, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewEvent(p, accessOf(ev)) {
		return nil, common.Forbiddenf("no access to event %d", eventID)
	}

	guests, total, err := s.repo.ListGuests(ctx, eventID, pg)
	if err != nil {
		return nil, err
	}
	return common.NewPage(guests, total, pg), nil
}

// CheckInGuest stamps the arrival time; organizers, admins and assigned event
// staff may check guests in.
func (s *service) CheckInGuest(ctx context.Context, p *middleware.Principal, guestID uint) (*EventGuest, error) {
	g, err := s.repo.GetGuest(ctx, guestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundf("guest %d", guestID)
		}
		return nil, err
	}

	ev, err := s.loadEvent(ctx, g.EventID)
	if err != nil {
		return nil, err
	}

	access := accessOf(ev)
	isEventStaff := p.Role == auth.RoleStaff && staffMember(access.StaffUserIDs, p.UserID)
	if !authz.CanModifyEvent(p, ev.OrganizerID) && !isEventStaff {
		return nil, common.Forbiddenf("only organizers, admins or event staff can check in guests")
	}

	if g.CheckInTime != nil {
		return nil, common.Conflictf("guest %d already checked in", guestID)
	}

	now := time.Now().UTC()
	g.CheckInTime = &now
	if err := s.repo.UpdateGuest(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func staffMember(ids []uint, id uint) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// ===========================
// 🏪 Vendors

func (s *service) AddVendor(ctx context.Context, p *middleware.Principal, eventID uint, req AddVendorRequest) (*EventVendor, error) {
	ev, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !authz.CanModifyEvent(p, ev.OrganizerID) {
		return nil, common.Forbiddenf("only the organizer or an admin can assign vendors")
	}

	v := &EventVendor{
		EventID:     eventID,
		VendorID:    req.VendorID,
		ServiceType: req.ServiceType,
		Description: req.Description,
		Status:      VendorPending,
		Notes:       req.Notes,
	}
	if err := s.repo.AddVendor(ctx, v); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.VendorAssigned(ctx, ev.ID, ev.Title, v.VendorID)
	}
	return v, nil
}

func (s *service) UpdateVendor(ctx context.Context, p *middleware.Principal, vendorID uint, req UpdateVendorRequest) (*EventVendor, error) {
	v, err := s.repo.GetVendor(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundf("event vendor %d", vendorID)
		}
		return nil, err
	}

	ev, err := s.loadEvent(ctx, v.EventID)
	if err != nil {
		return nil, err
	}

	// A vendor may update the status of their own assignment
	selfStatus := p.UserID == v.VendorID &&
		req.ServiceType == nil && req.Description == nil && req.Notes == nil
	if !selfStatus && !authz.CanModifyEvent(p, ev.OrganizerID) {
		return nil, common.Forbiddenf("only the organizer or an admin can update vendor assignments")
	}

	if req.ServiceType != nil {
		v.ServiceType = *req.ServiceType
	}
	if req.Description != nil {
		v.Description = *req.Description
	}
	if req.Status != nil {
		if !ValidVendorStatus(*req.Status) {
			return nil, common.Validationf("invalid vendor status %q", *req.Status)
		}
		v.Status = *req.Status
	}
	if req.Notes != nil {
		v.Notes = *req.Notes
	}

	if err := s.repo.UpdateVendor(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) DeleteVendor(ctx context.Context, p *middleware.Principal, vendorID uint) error {
	v, err := s.repo.GetVendor(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.NotFoundf("event vendor %d", vendorID)
		}
		return err
	}

	ev, err := s.loadEvent(ctx, v.EventID)
	if err != nil {
		return err
	}
	if !authz.CanModifyEvent(p, ev.OrganizerID) {
		return common.Forbiddenf("only the organizer or an admin can remove vendor assignments")
	}

	return s.repo.DeleteVendor(ctx, vendorID)
}

func (s *service) ListVendors(ctx context.Context, p *middleware.Principal, eventID uint, pg common.Pagination) (*common.Page, error) {
	ev, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewEvent(p, accessOf(ev)) {
		return nil, common.Forbiddenf("no access to event %d", eventID)
	}

	vendors, total, err := s.repo.ListVendors(ctx, eventID, pg)
	if err != nil {
		return nil, err
	}
	return common.NewPage(vendors, total, pg), nil
}

// ===========================
// 🧑‍💼 Staff

func (s *service) AddStaff(ctx context.Context, p *middleware.Principal, eventID uint, req AddStaffRequest) (*EventStaff, error) {
	ev, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !authz.CanModifyEvent(p, ev.OrganizerID) {
		return nil, common.Forbiddenf("only the organizer or an admin can assign staff")
	}

	st := &EventStaff{
		EventID:          eventID,
		StaffID:          req.StaffID,
		Role:             req.Role,
		Responsibilities: req.Responsibilities,
	}
	if err := s.repo.AddStaff(ctx, st); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.StaffAssigned(ctx, ev.ID, ev.Title, st.StaffID)
	}
	return st, nil
}

func (s *service) UpdateStaff(ctx context.Context, p *middleware.Principal, staffID uint, req UpdateStaffRequest) (*EventStaff, error) {
	st, err := s.repo.GetStaff(ctx, staffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundf("event staff %d", staffID)
		}
		return nil, err
	}

	ev, err := s.loadEvent(ctx, st.EventID)
	if err != nil {
		return nil, err
	}
	if !authz.CanModifyEvent(p, ev.OrganizerID) {
		return nil, common.Forbiddenf("only the organizer or an admin can update staff assignments")
	}

	if req.Role != nil {
		st.Role = *req.Role
	}
	if req.Responsibilities != nil {
		st.Responsibilities = *req.Responsibilities
	}

	if err := s.repo.UpdateStaff(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) DeleteStaff(ctx context.Context, p *middleware.Principal, staffID uint) error {
	st, err := s.repo.GetStaff(ctx, staffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.NotFoundf("event staff %d", staffID)
		}
		return err
	}

	ev, err := s.loadEvent(ctx, st.EventID)
	if err != nil {
		return err
	}
	if !authz.CanModifyEvent(p, ev.OrganizerID) {
		return common.Forbiddenf("only the organizer or an admin can remove staff assignments")
	}

	return s.repo.DeleteStaff(ctx, staffID)
}

func (s *service) ListStaff(ctx context.Context, p *middleware.Principal, eventID uint, pg common.Pagination) (*common.Page, error) {
	ev, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewEvent(p, accessOf(ev)) {
		return nil, common.Forbiddenf("no access to event %d", eventID)
	}

	staff, total, err := s.repo.ListStaff(ctx, eventID, pg)
	if err != nil {
		return nil, err
	}
	return common.NewPage(staff, total, pg), nil
}
