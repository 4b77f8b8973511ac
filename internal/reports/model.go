package reports

import "time"

// BudgetReport is the flattened view of one event budget for export
type BudgetReport struct {
	EventTitle  string
	Status      string
	TotalBudget float64
	ActualSpent float64
	Remaining   float64
	Items       []BudgetItemRow
}

type BudgetItemRow struct {
	Category          string
	Description       string
	Quantity          int
	EstimatedUnitCost float64
	EstimatedCost     float64
	ActualCost        *float64
	PaymentStatus     string
	DueDate           *time.Time
}

// GuestListReport is the flattened guest list of one event for export
type GuestListReport struct {
	EventTitle string
	Guests     []GuestRow
}

type GuestRow struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	RSVPStatus  string
	CheckInTime *time.Time
}
