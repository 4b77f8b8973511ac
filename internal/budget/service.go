package budget

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/farhanputra/event-management-backend/internal/auth"
	"github.com/farhanputra/event-management-backend/internal/authz"
	"github.com/farhanputra/event-management-backend/internal/common"
	"github.com/farhanputra/event-management-backend/middleware"
)

// EventSource supplies the membership snapshot for policy checks. The event
// service satisfies it.
type EventSource interface {
	AccessSnapshot(ctx context.Context, eventID uint) (authz.EventAccess, error)
}

type Service interface {
	Create(ctx context.Context, p *middleware.Principal, req CreateBudgetRequest) (*Budget, error)
	Get(ctx context.Context, p *middleware.Principal, id uint) (*Budget, error)
	GetByEvent(ctx context.Context, p *middleware.Principal, eventID uint) (*Budget, error)
	Update(ctx context.Context, p *middleware.Principal, id uint, req UpdateBudgetRequest) (*Budget, error)
	List(ctx context.Context, p *middleware.Principal, filters ListFilters, pg common.Pagination) (*common.Page, error)

	CreateItem(ctx context.Context, p *middleware.Principal, budgetID uint, req CreateItemRequest) (*BudgetItem, error)
	UpdateItem(ctx context.Context, p *middleware.Principal, itemID uint, req UpdateItemRequest) (*BudgetItem, error)
	DeleteItem(ctx context.Context, p *middleware.Principal, itemID uint) error
	ListItems(ctx context.Context, p *middleware.Principal, budgetID uint, pg common.Pagination) (*common.Page, error)

	AddExpense(ctx context.Context, p *middleware.Principal, itemID uint, req CreateExpenseRequest) (*Expense, error)
}

type service struct {
	repo   Repository
	events EventSource
}

func NewService(repo Repository, events EventSource) Service {
	return &service{repo: repo, events: events}
}

// manageGate loads the owning event's snapshot and applies the write rule
func (s *service) manageGate(ctx context.Context, p *middleware.Principal, eventID uint) (authz.EventAccess, error) {
	access, err := s.events.AccessSnapshot(ctx, eventID)
	if err != nil {
		return authz.EventAccess{}, err
	}
	if !authz.CanManageBudget(p, access.OrganizerID) {
		return authz.EventAccess{}, common.Forbiddenf("only the event organizer or an admin can manage this budget")
	}
	return access, nil
}

// ===========================
// 🎯 Create Budget — at most one per event, enforced before insert
func (s *service) Create(ctx context.Context, p *middleware.Principal, req CreateBudgetRequest) (*Budget, error) {
	if _, err := s.manageGate(ctx, p, req.EventID); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEventID(ctx, req.EventID); err == nil {
		return nil, common.Conflictf("event %d already has a budget", req.EventID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = StatusDraft
	}
	if !ValidStatus(status) {
		return nil, common.Validationf("invalid budget status %q", req.Status)
	}

	b := &Budget{
		EventID:   req.EventID,
		Status:    status,
		Notes:     req.Notes,
		CreatedBy: p.UserID,
		// Honored only while the budget has no items; derived from items after
		TotalBudget: req.Total,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		log.Printf("❌ Failed to create budget for event %d: %v", req.EventID, err)
		return nil, err
	}
	return b, nil
}

func (s *service) loadBudget(ctx context.Context, id uint) (*Budget, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundf("budget %d", id)
		}
		return nil, err
	}
	return b, nil
}

// ===========================
// 🔍 Get Budget — read access follows the owning event's read gate
func (s *service) Get(ctx context.Context, p *middleware.Principal, id uint) (*Budget, error) {
	b, err := s.loadBudget(ctx, id)
	if err != nil {
		return nil, err
	}

	access, err := s.events.AccessSnapshot(ctx, b.EventID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewEvent(p, access) {
		return nil, common.Forbiddenf("no access to budget %d", id)
	}
	return b, nil
}

func (s *service) GetByEvent(ctx context.Context, p *middleware.Principal, eventID uint) (*Budget, error) {
	access, err := s.events.AccessSnapshot(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewEvent(p, access) {
		return nil, common.Forbiddenf("no access to event %d", eventID)
	}

	b, err := s.repo.GetByEventID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundf("budget for event %d", eventID)
		}
		return nil, err
	}
	return b, nil
}

// ===========================
// ✏️ Update Budget — notes and status only; totals stay derived
func (s *service) Update(ctx context.Context, p *middleware.Principal, id uint, req UpdateBudgetRequest) (*Budget, error) {
	b, err := s.loadBudget(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.manageGate(ctx, p, b.EventID); err != nil {
		return nil, err
	}

	if req.Notes != nil {
		b.Notes = *req.Notes
	}
	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return nil, common.Validationf("invalid budget status %q", *req.Status)
		}
		if *req.Status == StatusApproved && b.Status != StatusApproved {
			now := time.Now().UTC()
			b.ApprovedBy = &p.UserID
			b.ApprovedAt = &now
		}
		b.Status = *req.Status
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ===========================
// 📋 List Budgets — non-admins only see budgets of events they organize
func (s *service) List(ctx context.Context, p *middleware.Principal, filters ListFilters, pg common.Pagination) (*common.Page, error) {
	scope := ListScope{OrganizerID: p.UserID}
	if p.Role == auth.RoleAdmin {
		scope = ListScope{All: true}
	}

	budgets, total, err := s.repo.List(ctx, scope, filters, pg)
	if err != nil {
		return nil, err
	}
	return common.NewPage(budgets, total, pg), nil
}

// ===========================
// 💰 Items

func (s *service) CreateItem(ctx context.Context, p *middleware.Principal, budgetID uint, req CreateItemRequest) (*BudgetItem, error) {
	b, err := s.loadBudget(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if _, err := s.manageGate(ctx, p, b.EventID); err != nil {
		return nil, err
	}

	if !ValidCategory(req.Category) {
		return nil, common.Validationf("invalid category %q", req.Category)
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, common.Validationf("quantity cannot be negative")
	}
	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = PaymentUnpaid
	}
	if !ValidPaymentStatus(paymentStatus) {
		return nil, common.Validationf("invalid payment_status %q", req.PaymentStatus)
	}

	item := &BudgetItem{
		BudgetID:          budgetID,
		Category:          req.Category,
		Description:       req.Description,
		Quantity:          quantity,
		EstimatedUnitCost: req.EstimatedUnitCost,
		ActualUnitCost:    req.ActualUnitCost,
		VendorID:          req.VendorID,
		PaymentStatus:     paymentStatus,
		DueDate:           req.DueDate,
		Notes:             req.Notes,
	}
	RecomputeItemCosts(item)

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) loadItem(ctx context.Context, itemID uint) (*BudgetItem, *Budget, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, common.NotFoundf("budget item %d", itemID)
		}
		return nil, nil, err
	}
	b, err := s.loadBudget(ctx, item.BudgetID)
	if err != nil {
		return nil, nil, err
	}
	return item, b, nil
}

func (s *service) UpdateItem(ctx context.Context, p *middleware.Principal, itemID uint, req UpdateItemRequest) (*BudgetItem, error) {
	item, b, err := s.loadItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if _, err := s.manageGate(ctx, p, b.EventID); err != nil {
		return nil, err
	}

	if req.Category != nil {
		if !ValidCategory(*req.Category) {
			return nil, common.Validationf("invalid category %q", *req.Category)
		}
		item.Category = *req.Category
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, common.Validationf("quantity cannot be negative")
		}
		item.Quantity = *req.Quantity
	}
	if req.EstimatedUnitCost != nil {
		item.EstimatedUnitCost = *req.EstimatedUnitCost
	}
	if req.ActualUnitCost != nil {
		item.ActualUnitCost = req.ActualUnitCost
	}
	if req.VendorID != nil {
		item.VendorID = req.VendorID
	}
	if req.PaymentStatus != nil {
		if !ValidPaymentStatus(*req.PaymentStatus) {
			return nil, common.Validationf("invalid payment_status %q", *req.PaymentStatus)
		}
		item.PaymentStatus = *req.PaymentStatus
	}
	if req.DueDate != nil {
		item.DueDate = req.DueDate
	}
	if req.Notes != nil {
		item.Notes = *req.Notes
	}

	RecomputeItemCosts(item)

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) DeleteItem(ctx context.Context, p *middleware.Principal, itemID uint) error {
	_, b, err := s.loadItem(ctx, itemID)
	if err != nil {
		return err
	}
	if _, err := s.manageGate(ctx, p, b.EventID); err != nil {
		return err
	}
	return s.repo.DeleteItem(ctx, itemID)
}

func (s *service) ListItems(ctx context.Context, p *middleware.Principal, budgetID uint, pg common.Pagination) (*common.Page, error) {
	b, err := s.loadBudget(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	access, err := s.events.AccessSnapshot(ctx, b.EventID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewEvent(p, access) {
		return nil, common.Forbiddenf("no access to budget %d", budgetID)
	}

	items, total, err := s.repo.ListItems(ctx, budgetID, pg)
	if err != nil {
		return nil, err
	}
	return common.NewPage(items, total, pg), nil
}

// ===========================
// 🧾 Expenses — immutable records against an item
func (s *service) AddExpense(ctx context.Context, p *middleware.Principal, itemID uint, req CreateExpenseRequest) (*Expense, error) {
	_, b, err := s.loadItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if _, err := s.manageGate(ctx, p, b.EventID); err != nil {
		return nil, err
	}

	if req.Amount <= 0 {
		return nil, common.Validationf("amount must be positive")
	}

	incurred := time.Now().UTC()
	if req.DateIncurred != nil {
		incurred = *req.DateIncurred
	}

	e := &Expense{
		BudgetItemID: itemID,
		Amount:       req.Amount,
		DateIncurred: incurred,
		ReceiptURL:   req.ReceiptURL,
		Description:  req.Description,
		CreatedBy:    p.UserID,
	}
	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
