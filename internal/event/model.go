package event

import "time"

// ============================
// 🔷 Event type enumeration
var eventTypes = map[string]struct{}{
	"conference": {}, "meeting": {}, "seminar": {}, "workshop": {},
	"social": {}, "virtual": {}, "hybrid": {}, "other": {},
}

func ValidEventType(s string) bool {
	_, ok := eventTypes[s]
	return ok
}

// ============================
// 🔷 Event status enumeration
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// ============================
// 🔷 RSVP / vendor association statuses
const (
	RSVPPending  = "pending"
	RSVPAccepted = "accepted"
	RSVPDeclined = "declined"

	VendorPending   = "pending"
	VendorConfirmed = "confirmed"
	VendorCancelled = "cancelled"
)

func ValidRSVPStatus(s string) bool {
	switch s {
	case RSVPPending, RSVPAccepted, RSVPDeclined:
		return true
	}
	return false
}

func ValidVendorStatus(s string) bool {
	switch s {
	case VendorPending, VendorConfirmed, VendorCancelled:
		return true
	}
	return false
}

// ============================
// 🔷 GORM Event Model — deleting an event hard-cascades every owned collection
type Event struct {
	ID                uint          `gorm:"primaryKey" json:"id"`
	Title             string        `gorm:"type:varchar(200);not null" json:"title"`
	Description       string        `gorm:"type:text" json:"description,omitempty"`
	StartTime         time.Time     `gorm:"not null;index" json:"start_time"`
	EndTime           time.Time     `gorm:"not null;index" json:"end_time"`
	Timezone          string        `gorm:"type:varchar(50);default:'UTC'" json:"timezone"`
	Location          string        `gorm:"type:varchar(200)" json:"location,omitempty"`
	VirtualMeetingURL string        `gorm:"type:varchar(500)" json:"virtual_meeting_url,omitempty"`
	MaxAttendees      *int          `json:"max_attendees,omitempty"`
	IsPublic          bool          `gorm:"default:true;index" json:"is_public"`
	EventType         string        `gorm:"type:varchar(20);not null;default:'other'" json:"event_type"`
	Status            string        `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	CoverImage        string        `gorm:"type:varchar(255)" json:"cover_image,omitempty"`
	OrganizerID       uint          `gorm:"not null;index" json:"organizer_id"`
	VenueID           *uint         `gorm:"index" json:"venue_id,omitempty"`
	Guests            []EventGuest  `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"guests,omitempty"`
	Vendors           []EventVendor `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"vendors,omitempty"`
	Staff             []EventStaff  `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"staff,omitempty"`
	CreatedAt         time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Counts populated on reads, not stored
	GuestCount  int64 `gorm:"-" json:"guest_count"`
	VendorCount int64 `gorm:"-" json:"vendor_count"`
	StaffCount  int64 `gorm:"-" json:"staff_count"`
}

func (Event) TableName() string {
	return "events"
}

// ============================
// 🔷 GORM EventGuest Model — email-keyed so guests need no account
type EventGuest struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	EventID     uint       `gorm:"not null;index" json:"event_id"`
	Email       string     `gorm:"type:varchar(120);not null;index" json:"email"`
	FirstName   string     `gorm:"type:varchar(64);not null" json:"first_name"`
	LastName    string     `gorm:"type:varchar(64);not null" json:"last_name"`
	Phone       string     `gorm:"type:varchar(20)" json:"phone,omitempty"`
	RSVPStatus  string     `gorm:"type:varchar(20);not null;default:'pending'" json:"rsvp_status"`
	CheckInTime *time.Time `json:"check_in_time,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (EventGuest) TableName() string {
	return "event_guests"
}

// ============================
// 🔷 GORM EventVendor Model
type EventVendor struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EventID     uint      `gorm:"not null;index" json:"event_id"`
	VendorID    uint      `gorm:"not null;index" json:"vendor_id"`
	ServiceType string    `gorm:"type:varchar(100);not null" json:"service_type"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (EventVendor) TableName() string {
	return "event_vendors"
}

// ============================
// 🔷 GORM EventStaff Model
type EventStaff struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	EventID          uint      `gorm:"not null;index" json:"event_id"`
	StaffID          uint      `gorm:"not null;index" json:"staff_id"`
	Role             string    `gorm:"type:varchar(100);not null" json:"role"`
	Responsibilities string    `gorm:"type:text" json:"responsibilities,omitempty"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (EventStaff) TableName() string {
	return "event_staff"
}

// ============================
// 🟡 Requests
type CreateEventRequest struct {
	Title             string    `json:"title" binding:"required"`
	Description       string    `json:"description,omitempty"`
	StartTime         time.Time `json:"start_time" binding:"required"`
	EndTime           time.Time `json:"end_time" binding:"required"`
	Timezone          string    `json:"timezone,omitempty"`
	Location          string    `json:"location,omitempty"`
	VirtualMeetingURL string    `json:"virtual_meeting_url,omitempty"`
	MaxAttendees      *int      `json:"max_attendees,omitempty"`
	IsPublic          *bool     `json:"is_public,omitempty"`
	EventType         string    `json:"event_type,omitempty"`
	VenueID           *uint     `json:"venue_id,omitempty"`
}

type UpdateEventRequest struct {
	Title             *string    `json:"title,omitempty"`
	Description       *string    `json:"description,omitempty"`
	StartTime         *time.Time `json:"start_time,omitempty"`
	EndTime           *time.Time `json:"end_time,omitempty"`
	Timezone          *string    `json:"timezone,omitempty"`
	Location          *string    `json:"location,omitempty"`
	VirtualMeetingURL *string    `json:"virtual_meeting_url,omitempty"`
	MaxAttendees      *int       `json:"max_attendees,omitempty"`
	IsPublic          *bool      `json:"is_public,omitempty"`
	EventType         *string    `json:"event_type,omitempty"`
	Status            *string    `json:"status,omitempty"`
	VenueID           *uint      `json:"venue_id,omitempty"`
}

type AddGuestRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone,omitempty"`
}

type UpdateGuestRequest struct {
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	RSVPStatus *string `json:"rsvp_status,omitempty"`
}

type AddVendorRequest struct {
	VendorID    uint   `json:"vendor_id" binding:"required"`
	ServiceType string `json:"service_type" binding:"required"`
	Description string `json:"description,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

type UpdateVendorRequest struct {
	ServiceType *string `json:"service_type,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

type AddStaffRequest struct {
	StaffID          uint   `json:"staff_id" binding:"required"`
	Role             string `json:"role" binding:"required"`
	Responsibilities string `json:"responsibilities,omitempty"`
}

type UpdateStaffRequest struct {
	Role             *string `json:"role,omitempty"`
	Responsibilities *string `json:"responsibilities,omitempty"`
}

// ============================
// 🔍 List Filters — conjunctive; role-implicit scoping is layered on top
type ListFilters struct {
	Search    string
	Status    string
	EventType string
	VenueID   uint
	From      *time.Time
	To        *time.Time
}
