package notification

import (
	"time"

	"gorm.io/datatypes"
)

// ============================
// 🔷 Notification categories
const (
	CategoryGuestInvite    = "guest_invite"
	CategoryStaffAssigned  = "staff_assigned"
	CategoryVendorAssigned = "vendor_assigned"
	CategoryTaskAssigned   = "task_assigned"
	CategoryGeneral        = "general"
)

// ============================
// 🔷 GORM Notification Model — the in-app inbox
type Notification struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	EventID   *uint          `gorm:"index" json:"event_id,omitempty"`
	Title     string         `gorm:"type:varchar(200);not null" json:"title"`
	Message   string         `gorm:"type:text" json:"message"`
	Category  string         `gorm:"type:varchar(30);not null;default:'general';index" json:"category"`
	Payload   datatypes.JSON `gorm:"type:jsonb" json:"payload,omitempty"`
	IsRead    bool           `gorm:"default:false;index" json:"is_read"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// ============================
// 🔷 GORM DeviceToken Model — FCM registration per device
type DeviceToken struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Token      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"token"`
	DeviceType string    `gorm:"type:varchar(20)" json:"device_type,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (DeviceToken) TableName() string {
	return "device_tokens"
}

// BusEvent is the envelope carried on the kafka notification topic
type BusEvent struct {
	Category string `json:"category"`
	UserID   uint   `json:"user_id,omitempty"`
	Email    string `json:"email,omitempty"`
	EventID  uint   `json:"event_id,omitempty"`
	TaskID   uint   `json:"task_id,omitempty"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}

// ============================
// 🟡 Requests
type RegisterDeviceRequest struct {
	Token      string `json:"token" binding:"required"`
	DeviceType string `json:"device_type,omitempty"`
}
