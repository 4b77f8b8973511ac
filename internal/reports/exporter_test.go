package reports

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBudgetCSVKeepsPendingActualCostBlank(t *testing.T) {
	actual := 120.0
	report := BudgetReport{
		EventTitle:  "Launch Party",
		Status:      "approved",
		TotalBudget: 500,
		ActualSpent: 120,
		Remaining:   380,
		Items: []BudgetItemRow{
			{Category: "catering", Description: "Buffet", Quantity: 3, EstimatedUnitCost: 50, EstimatedCost: 150, PaymentStatus: "unpaid"},
			{Category: "venue", Description: "Hall rental", Quantity: 1, EstimatedUnitCost: 100, EstimatedCost: 100, ActualCost: &actual, PaymentStatus: "paid"},
		},
	}

	data, filename, contentType, err := NewExporter().ExportBudget(FormatCSV, report)
	assert.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.True(t, strings.HasPrefix(filename, "budget_report_"))

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	assert.NoError(t, err)
	if assert.Len(t, rows, 3) {
		assert.Equal(t, "150.00", rows[1][4])
		assert.Equal(t, "", rows[1][5], "pending actual cost stays blank, not zero")
		assert.Equal(t, "120.00", rows[2][5])
	}
}

func TestBudgetExportRejectsUnknownFormat(t *testing.T) {
	_, _, _, err := NewExporter().ExportBudget("docx", BudgetReport{})
	assert.Error(t, err)
}

func TestGuestListCSVIncludesCheckInTimes(t *testing.T) {
	checkedIn := time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)
	report := GuestListReport{
		EventTitle: "Launch Party",
		Guests: []GuestRow{
			{FirstName: "Ana", LastName: "Lima", Email: "ana@example.com", RSVPStatus: "accepted", CheckInTime: &checkedIn},
			{FirstName: "Ben", LastName: "Okafor", Email: "ben@example.com", RSVPStatus: "pending"},
		},
	}

	data, _, _, err := NewExporter().ExportGuestList(FormatCSV, report)
	assert.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	assert.NoError(t, err)
	if assert.Len(t, rows, 3) {
		assert.Equal(t, "2025-06-01 18:30:00", rows[1][5])
		assert.Equal(t, "", rows[2][5])
	}
}

func TestBudgetExcelExportProducesWorkbook(t *testing.T) {
	data, filename, contentType, err := NewExporter().ExportBudget(FormatExcel, BudgetReport{
		EventTitle: "Launch Party",
		Status:     "draft",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, mimeExcel, contentType)
	assert.True(t, strings.HasSuffix(filename, ".xlsx"))
}
