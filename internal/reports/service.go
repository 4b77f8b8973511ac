package reports

import (
	"context"

	"github.com/farhanputra/event-management-backend/internal/authz"
	"github.com/farhanputra/event-management-backend/internal/budget"
	"github.com/farhanputra/event-management-backend/internal/common"
	"github.com/farhanputra/event-management-backend/internal/event"
	"github.com/farhanputra/event-management-backend/middleware"
)

type Service interface {
	BudgetExport(ctx context.Context, p *middleware.Principal, budgetID uint, format string) ([]byte, string, string, error)
	GuestListExport(ctx context.Context, p *middleware.Principal, eventID uint, format string) ([]byte, string, string, error)
}

type service struct {
	budgets  budget.Service
	events   event.Service
	exporter Exporter
}

func NewService(budgets budget.Service, events event.Service, exporter Exporter) Service {
	return &service{budgets: budgets, events: events, exporter: exporter}
}

// BudgetExport renders one budget with its items. The budget service enforces
// view access, so anyone who can read the budget can download it.
func (s *service) BudgetExport(ctx context.Context, p *middleware.Principal, budgetID uint, format string) ([]byte, string, string, error) {
	if format != FormatExcel && format != FormatPDF && format != FormatCSV {
		return nil, "", "", common.Validationf("unsupported export format %q", format)
	}

	b, err := s.budgets.Get(ctx, p, budgetID)
	if err != nil {
		return nil, "", "", err
	}

	ev, err := s.events.Get(ctx, p, b.EventID)
	if err != nil {
		return nil, "", "", err
	}

	report := BudgetReport{
		EventTitle:  ev.Title,
		Status:      b.Status,
		TotalBudget: b.TotalBudget,
		ActualSpent: b.ActualSpent,
		Remaining:   b.RemainingBudget(),
	}
	for _, item := range b.Items {
		report.Items = append(report.Items, BudgetItemRow{
			Category:          item.Category,
			Description:       item.Description,
			Quantity:          item.Quantity,
			EstimatedUnitCost: item.EstimatedUnitCost,
			EstimatedCost:     item.EstimatedCost,
			ActualCost:        item.ActualCost,
			PaymentStatus:     item.PaymentStatus,
			DueDate:           item.DueDate,
		})
	}

	return s.exporter.ExportBudget(format, report)
}

// GuestListExport renders the full guest list of one event. Guest contact
// details are restricted to the organizer, admins, and the event's own staff.
func (s *service) GuestListExport(ctx context.Context, p *middleware.Principal, eventID uint, format string) ([]byte, string, string, error) {
	if format != FormatExcel && format != FormatCSV {
		return nil, "", "", common.Validationf("unsupported export format %q", format)
	}

	access, err := s.events.AccessSnapshot(ctx, eventID)
	if err != nil {
		return nil, "", "", err
	}

	isEventStaff := false
	for _, id := range access.StaffUserIDs {
		if id == p.UserID {
			isEventStaff = true
			break
		}
	}
	if !authz.CanModifyEvent(p, access.OrganizerID) && !isEventStaff {
		return nil, "", "", common.Forbiddenf("you do not have access to this event's guest list")
	}

	ev, err := s.events.Get(ctx, p, eventID)
	if err != nil {
		return nil, "", "", err
	}

	report := GuestListReport{EventTitle: ev.Title}
	for _, g := range ev.Guests {
		report.Guests = append(report.Guests, GuestRow{
			FirstName:   g.FirstName,
			LastName:    g.LastName,
			Email:       g.Email,
			Phone:       g.Phone,
			RSVPStatus:  g.RSVPStatus,
			CheckInTime: g.CheckInTime,
		})
	}

	return s.exporter.ExportGuestList(format, report)
}
