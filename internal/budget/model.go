package budget

import "time"

// ============================
// 🔷 Budget status enumeration
const (
	StatusDraft           = "draft"
	StatusPendingApproval = "pending_approval"
	StatusApproved        = "approved"
	StatusRejected        = "rejected"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPendingApproval, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ============================
// 🔷 Item category enumeration
var itemCategories = map[string]struct{}{
	"venue": {}, "catering": {}, "equipment": {}, "marketing": {},
	"staff": {}, "transportation": {}, "accommodation": {}, "entertainment": {},
	"decorations": {}, "printing": {}, "signage": {}, "technology": {}, "other": {},
}

func ValidCategory(s string) bool {
	_, ok := itemCategories[s]
	return ok
}

// ============================
// 🔷 Payment status enumeration
const (
	PaymentUnpaid  = "unpaid"
	PaymentPartial = "partial"
	PaymentPaid    = "paid"
)

func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentUnpaid, PaymentPartial, PaymentPaid:
		return true
	}
	return false
}

// ============================
// 🔷 GORM Budget Model — exactly one per event; totals are derived, never
// accepted from a client once items exist
type Budget struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	EventID     uint         `gorm:"uniqueIndex;not null" json:"event_id"`
	TotalBudget float64      `gorm:"type:numeric(12,2);not null;default:0" json:"total_budget"`
	ActualSpent float64      `gorm:"type:numeric(12,2);not null;default:0" json:"actual_spent"`
	Status      string       `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	Notes       string       `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy   uint         `gorm:"not null" json:"created_by"`
	ApprovedBy  *uint        `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time   `json:"approved_at,omitempty"`
	Items       []BudgetItem `gorm:"foreignKey:BudgetID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Budget) TableName() string {
	return "budgets"
}

// RemainingBudget is presentation-only, never stored
func (b *Budget) RemainingBudget() float64 {
	return b.TotalBudget - b.ActualSpent
}

// ============================
// 🔷 GORM BudgetItem Model — estimated_cost/actual_cost are derived; a nil
// actual_cost means "not yet incurred", which is distinct from zero cost
type BudgetItem struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	BudgetID          uint       `gorm:"not null;index" json:"budget_id"`
	Category          string     `gorm:"type:varchar(30);not null" json:"category"`
	Description       string     `gorm:"type:varchar(200);not null" json:"description"`
	Quantity          int        `gorm:"not null;default:1" json:"quantity"`
	EstimatedUnitCost float64    `gorm:"type:numeric(10,2);not null" json:"estimated_unit_cost"`
	EstimatedCost     float64    `gorm:"type:numeric(12,2);not null" json:"estimated_cost"`
	ActualUnitCost    *float64   `gorm:"type:numeric(10,2)" json:"actual_unit_cost,omitempty"`
	ActualCost        *float64   `gorm:"type:numeric(12,2)" json:"actual_cost,omitempty"`
	VendorID          *uint      `json:"vendor_id,omitempty"`
	PaymentStatus     string     `gorm:"type:varchar(20);not null;default:'unpaid'" json:"payment_status"`
	DueDate           *time.Time `gorm:"type:date" json:"due_date,omitempty"`
	Notes             string     `gorm:"type:text" json:"notes,omitempty"`
	Expenses          []Expense  `gorm:"foreignKey:BudgetItemID;constraint:OnDelete:CASCADE" json:"expenses,omitempty"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BudgetItem) TableName() string {
	return "budget_items"
}

// ============================
// 🔷 GORM Expense Model — immutable once recorded
type Expense struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BudgetItemID uint      `gorm:"not null;index" json:"budget_item_id"`
	Amount       float64   `gorm:"type:numeric(10,2);not null" json:"amount"`
	DateIncurred time.Time `gorm:"type:date;not null" json:"date_incurred"`
	ReceiptURL   string    `gorm:"type:varchar(255)" json:"receipt_url,omitempty"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`
	CreatedBy    uint      `gorm:"not null" json:"created_by"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Expense) TableName() string {
	return "expenses"
}

// ============================
// 🟡 Requests

// CreateBudgetRequest seeds a new budget. Total is a starting figure only:
// the first item mutation recomputes total_budget from the items and the
// seeded value is overwritten.
type CreateBudgetRequest struct {
	EventID uint    `json:"event_id" binding:"required"`
	Notes   string  `json:"notes,omitempty"`
	Status  string  `json:"status,omitempty"`
	Total   float64 `json:"total_budget,omitempty"`
}

type UpdateBudgetRequest struct {
	Notes  *string `json:"notes,omitempty"`
	Status *string `json:"status,omitempty"`
}

type CreateItemRequest struct {
	Category          string     `json:"category" binding:"required"`
	Description       string     `json:"description" binding:"required"`
	Quantity          int        `json:"quantity,omitempty"`
	EstimatedUnitCost float64    `json:"estimated_unit_cost" binding:"required"`
	ActualUnitCost    *float64   `json:"actual_unit_cost,omitempty"`
	VendorID          *uint      `json:"vendor_id,omitempty"`
	PaymentStatus     string     `json:"payment_status,omitempty"`
	DueDate           *time.Time `json:"due_date,omitempty"`
	Notes             string     `json:"notes,omitempty"`
}

type UpdateItemRequest struct {
	Category          *string    `json:"category,omitempty"`
	Description       *string    `json:"description,omitempty"`
	Quantity          *int       `json:"quantity,omitempty"`
	EstimatedUnitCost *float64   `json:"estimated_unit_cost,omitempty"`
	ActualUnitCost    *float64   `json:"actual_unit_cost,omitempty"`
	VendorID          *uint      `json:"vendor_id,omitempty"`
	PaymentStatus     *string    `json:"payment_status,omitempty"`
	DueDate           *time.Time `json:"due_date,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
}

type CreateExpenseRequest struct {
	Amount       float64    `json:"amount" binding:"required"`
	DateIncurred *time.Time `json:"date_incurred,omitempty"`
	ReceiptURL   string     `json:"receipt_url,omitempty"`
	Description  string     `json:"description,omitempty"`
}

// ============================
// 🔍 List Filters
type ListFilters struct {
	EventID uint
	Status  string
}
