package venue

import "time"

// ============================
// 🔷 GORM Venue Model
type Venue struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(120);not null;index" json:"name"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`
	Address      string    `gorm:"type:varchar(255)" json:"address,omitempty"`
	City         string    `gorm:"type:varchar(80);index" json:"city,omitempty"`
	State        string    `gorm:"type:varchar(80)" json:"state,omitempty"`
	Country      string    `gorm:"type:varchar(80);index" json:"country,omitempty"`
	PostalCode   string    `gorm:"type:varchar(20)" json:"postal_code,omitempty"`
	Capacity     int       `gorm:"default:0" json:"capacity"`
	PricePerDay  *float64  `gorm:"type:numeric(12,2)" json:"price_per_day,omitempty"`
	ContactEmail string    `gorm:"type:varchar(120)" json:"contact_email,omitempty"`
	ContactPhone string    `gorm:"type:varchar(20)" json:"contact_phone,omitempty"`
	IsActive     bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Venue) TableName() string {
	return "venues"
}

// ============================
// 🟡 Create Venue Request
type CreateVenueRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description,omitempty"`
	Address      string   `json:"address,omitempty"`
	City         string   `json:"city,omitempty"`
	State        string   `json:"state,omitempty"`
	Country      string   `json:"country,omitempty"`
	PostalCode   string   `json:"postal_code,omitempty"`
	Capacity     int      `json:"capacity,omitempty"`
	PricePerDay  *float64 `json:"price_per_day,omitempty"`
	ContactEmail string   `json:"contact_email,omitempty"`
	ContactPhone string   `json:"contact_phone,omitempty"`
}

// ============================
// 🟠 Update Venue Request — pointers so absent fields stay untouched
type UpdateVenueRequest struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Address      *string  `json:"address,omitempty"`
	City         *string  `json:"city,omitempty"`
	State        *string  `json:"state,omitempty"`
	Country      *string  `json:"country,omitempty"`
	PostalCode   *string  `json:"postal_code,omitempty"`
	Capacity     *int     `json:"capacity,omitempty"`
	PricePerDay  *float64 `json:"price_per_day,omitempty"`
	ContactEmail *string  `json:"contact_email,omitempty"`
	ContactPhone *string  `json:"contact_phone,omitempty"`
}

// ============================
// 🔍 List Filters — conjunctive, unknown query keys are ignored upstream
type ListFilters struct {
	Search      string
	City        string
	Country     string
	MinCapacity int
	// IncludeInactive widens the default is_active=true restriction (admin only)
	IncludeInactive bool
}
