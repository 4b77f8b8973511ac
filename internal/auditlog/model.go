package auditlog

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog records every mutating API action. Details is freeform JSON built
// by the caller (ids, titles, changed fields).
type AuditLog struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uint          `gorm:"index" json:"user_id"` // nullable, e.g. failed login
	EventID   *uint          `gorm:"index" json:"event_id,omitempty"`
	Action    string         `gorm:"size:100;not null;index" json:"action"`
	Details   datatypes.JSON `gorm:"type:jsonb" json:"details"`
	IPAddress string         `gorm:"size:45" json:"ip_address"`
	Status    string         `gorm:"size:20;not null;index" json:"status"` // success/failure
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Filter narrows an audit log listing
type Filter struct {
	UserID   *uint
	EventID  *uint
	Action   string
	Status   string
	FromDate *time.Time
	ToDate   *time.Time
}
