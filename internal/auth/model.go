package auth

import (
	"time"
)

// ============================
// 🔷 Role enumeration — the only values valid in users.role
const (
	RoleOrganizer = "organizer"
	RoleAttendee  = "attendee"
	RoleVendor    = "vendor"
	RoleStaff     = "staff"
	RoleAdmin     = "admin"
)

// ValidRole reports whether s is one of the closed role values
func ValidRole(s string) bool {
	switch s {
	case RoleOrganizer, RoleAttendee, RoleVendor, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// ============================
// 🔷 GORM User Model
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Email         string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	PasswordHash  string    `gorm:"type:varchar(256);not null" json:"-"`
	FirstName     string    `gorm:"type:varchar(64);not null" json:"first_name"`
	LastName      string    `gorm:"type:varchar(64);not null" json:"last_name"`
	Phone         string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Role          string    `gorm:"type:varchar(20);not null;default:'attendee';index" json:"role"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	EmailVerified bool      `gorm:"default:false" json:"email_verified"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// FullName is used in audit details and exports
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// ============================
// 🟡 Register Request
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role,omitempty"` // organizer/attendee/vendor/staff; admin cannot self-register
}

// ============================
// 🟡 Login Request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ============================
// 🟠 Profile Update Request (self-service; role and active flag excluded)
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// ============================
// 🟠 Change Password Request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// TokenPair is returned on login and refresh
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
