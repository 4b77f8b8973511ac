package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const (
	FormatExcel = "xlsx"
	FormatPDF   = "pdf"
	FormatCSV   = "csv"
)

const (
	mimeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF   = "application/pdf"
	mimeCSV   = "text/csv"
)

// Exporter renders report rows into downloadable documents
type Exporter interface {
	ExportBudget(format string, report BudgetReport) ([]byte, string, string, error)
	ExportGuestList(format string, report GuestListReport) ([]byte, string, string, error)
}

type exporter struct{}

func NewExporter() Exporter {
	return &exporter{}
}

// ============================
// 💰 Budget export

func (e *exporter) ExportBudget(format string, report BudgetReport) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatExcel:
		data, err := e.budgetExcel(report)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("budget_report_%s.xlsx", timestamp), mimeExcel, nil

	case FormatPDF:
		data, err := e.budgetPDF(report)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("budget_report_%s.pdf", timestamp), mimePDF, nil

	case FormatCSV:
		data, err := e.budgetCSV(report)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("budget_report_%s.csv", timestamp), mimeCSV, nil

	default:
		return nil, "", "", fmt.Errorf("unsupported budget export format: %s", format)
	}
}

func (e *exporter) budgetCSV(report BudgetReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	headers := []string{"Category", "Description", "Quantity", "Estimated Unit Cost", "Estimated Cost", "Actual Cost", "Payment Status", "Due Date"}
	if err := w.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range report.Items {
		record := []string{
			r.Category,
			r.Description,
			fmt.Sprint(r.Quantity),
			fmt.Sprintf("%.2f", r.EstimatedUnitCost),
			fmt.Sprintf("%.2f", r.EstimatedCost),
			formatOptionalCost(r.ActualCost),
			r.PaymentStatus,
			formatOptionalDate(r.DueDate),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *exporter) budgetExcel(report BudgetReport) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Budget"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	f.SetCellValue(sheet, "A1", "Event")
	f.SetCellValue(sheet, "B1", report.EventTitle)
	f.SetCellValue(sheet, "A2", "Status")
	f.SetCellValue(sheet, "B2", report.Status)
	f.SetCellValue(sheet, "A3", "Total Budget")
	f.SetCellValue(sheet, "B3", report.TotalBudget)
	f.SetCellValue(sheet, "A4", "Actual Spent")
	f.SetCellValue(sheet, "B4", report.ActualSpent)
	f.SetCellValue(sheet, "A5", "Remaining")
	f.SetCellValue(sheet, "B5", report.Remaining)

	headers := []string{"Category", "Description", "Quantity", "Estimated Unit Cost", "Estimated Cost", "Actual Cost", "Payment Status", "Due Date"}
	headerRow := 7
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range report.Items {
		row := headerRow + 1 + rIdx
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.Category)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Description)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.EstimatedUnitCost)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.EstimatedCost)
		if r.ActualCost != nil {
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), *r.ActualCost)
		}
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.PaymentStatus)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), formatOptionalDate(r.DueDate))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *exporter) budgetPDF(report BudgetReport) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Budget Report: "+report.EventTitle)
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(40, 6, fmt.Sprintf("Status: %s", report.Status))
	pdf.Ln(6)
	pdf.Cell(40, 6, fmt.Sprintf("Total Budget: %.2f   Actual Spent: %.2f   Remaining: %.2f",
		report.TotalBudget, report.ActualSpent, report.Remaining))
	pdf.Ln(10)

	headers := []string{"Category", "Description", "Qty", "Est. Unit", "Estimated", "Actual", "Payment", "Due Date"}
	widths := []float64{35, 75, 15, 25, 25, 25, 30, 30}

	pdf.SetFont("Arial", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, r := range report.Items {
		pdf.CellFormat(widths[0], 6, r.Category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, fmt.Sprint(r.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprintf("%.2f", r.EstimatedUnitCost), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, fmt.Sprintf("%.2f", r.EstimatedCost), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 6, formatOptionalCost(r.ActualCost), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[6], 6, r.PaymentStatus, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[7], 6, formatOptionalDate(r.DueDate), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ============================
// 👥 Guest list export

func (e *exporter) ExportGuestList(format string, report GuestListReport) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatExcel:
		data, err := e.guestListExcel(report)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("guest_list_%s.xlsx", timestamp), mimeExcel, nil

	case FormatCSV:
		data, err := e.guestListCSV(report)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("guest_list_%s.csv", timestamp), mimeCSV, nil

	default:
		return nil, "", "", fmt.Errorf("unsupported guest list export format: %s", format)
	}
}

func (e *exporter) guestListCSV(report GuestListReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	headers := []string{"First Name", "Last Name", "Email", "Phone", "RSVP Status", "Checked In At"}
	if err := w.Write(headers); err != nil {
		return nil, err
	}

	for _, g := range report.Guests {
		record := []string{
			g.FirstName,
			g.LastName,
			g.Email,
			g.Phone,
			g.RSVPStatus,
			formatOptionalTime(g.CheckInTime),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *exporter) guestListExcel(report GuestListReport) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Guests"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	f.SetCellValue(sheet, "A1", "Event")
	f.SetCellValue(sheet, "B1", report.EventTitle)

	headers := []string{"First Name", "Last Name", "Email", "Phone", "RSVP Status", "Checked In At"}
	headerRow := 3
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, g := range report.Guests {
		row := headerRow + 1 + rIdx
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), g.FirstName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), g.LastName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), g.Email)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), g.Phone)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), g.RSVPStatus)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), formatOptionalTime(g.CheckInTime))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func formatOptionalCost(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
