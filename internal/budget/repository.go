package budget

import (
	"context"
	"log"

	"gorm.io/gorm"

	"github.com/farhanputra/event-management-backend/internal/common"
)

// ListScope restricts a budget listing to events the caller organizes.
// All=true (admin) lifts the restriction.
type ListScope struct {
	All         bool
	OrganizerID uint
}

type Repository interface {
	Create(ctx context.Context, b *Budget) error
	GetByID(ctx context.Context, id uint) (*Budget, error)
	GetByEventID(ctx context.Context, eventID uint) (*Budget, error)
	Update(ctx context.Context, b *Budget) error
	List(ctx context.Context, scope ListScope, filters ListFilters, p common.Pagination) ([]Budget, int64, error)

	CreateItem(ctx context.Context, item *BudgetItem) error
	GetItem(ctx context.Context, id uint) (*BudgetItem, error)
	UpdateItem(ctx context.Context, item *BudgetItem) error
	DeleteItem(ctx context.Context, id uint) error
	ListItems(ctx context.Context, budgetID uint, p common.Pagination) ([]BudgetItem, int64, error)

	CreateExpense(ctx context.Context, e *Expense) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, b *Budget) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Budget, error) {
	var b Budget
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("budget_items.id ASC") }).
		Preload("Items.Expenses").
		First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) GetByEventID(ctx context.Context, eventID uint) (*Budget, error) {
	var b Budget
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("budget_items.id ASC") }).
		Where("event_id = ?", eventID).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) Update(ctx context.Context, b *Budget) error {
	return r.db.WithContext(ctx).Omit("Items").Save(b).Error
}

func (r *repository) List(ctx context.Context, scope ListScope, filters ListFilters, p common.Pagination) ([]Budget, int64, error) {
	query := r.db.WithContext(ctx).Model(&Budget{})

	if !scope.All {
		query = query.Joins("JOIN events e ON e.id = budgets.event_id AND e.organizer_id = ?", scope.OrganizerID)
	}
	if filters.EventID != 0 {
		query = query.Where("budgets.event_id = ?", filters.EventID)
	}
	if filters.Status != "" {
		query = query.Where("budgets.status = ?", filters.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var budgets []Budget
	err := query.
		Order("budgets.created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&budgets).Error
	return budgets, total, err
}

// ===========================
// 💰 Items — every mutation recomputes the parent totals in the same
// transaction; a totals failure is logged but never fails the item write

func (r *repository) CreateItem(ctx context.Context, item *BudgetItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		refreshTotals(tx, item.BudgetID)
		return nil
	})
}

func (r *repository) GetItem(ctx context.Context, id uint) (*BudgetItem, error) {
	var item BudgetItem
	err := r.db.WithContext(ctx).
		Preload("Expenses").
		First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) UpdateItem(ctx context.Context, item *BudgetItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Select("*") so nil actual costs are written back as NULL
		if err := tx.Model(item).Select("*").Omit("id", "created_at", "Expenses").Updates(item).Error; err != nil {
			return err
		}
		refreshTotals(tx, item.BudgetID)
		return nil
	})
}

func (r *repository) DeleteItem(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item BudgetItem
		if err := tx.First(&item, id).Error; err != nil {
			return err
		}
		if err := tx.Where("budget_item_id = ?", id).Delete(&Expense{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&BudgetItem{}, id).Error; err != nil {
			return err
		}
		refreshTotals(tx, item.BudgetID)
		return nil
	})
}

func (r *repository) ListItems(ctx context.Context, budgetID uint, p common.Pagination) ([]BudgetItem, int64, error) {
	query := r.db.WithContext(ctx).Model(&BudgetItem{}).Where("budget_id = ?", budgetID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []BudgetItem
	err := query.Order("id ASC").Offset(p.Offset()).Limit(p.Limit()).Find(&items).Error
	return items, total, err
}

func (r *repository) CreateExpense(ctx context.Context, e *Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// refreshTotals recomputes the aggregate totals from the items. Best effort:
// a failure here must not sink the item mutation itself.
func refreshTotals(tx *gorm.DB, budgetID uint) {
	var row struct {
		TotalEstimated float64
		TotalActual    float64
	}
	err := tx.Model(&BudgetItem{}).
		Select("COALESCE(SUM(estimated_cost), 0) AS total_estimated, COALESCE(SUM(actual_cost), 0) AS total_actual").
		Where("budget_id = ?", budgetID).
		Scan(&row).Error
	if err != nil {
		log.Printf("⚠️ Failed to recompute totals for budget %d: %v", budgetID, err)
		return
	}

	err = tx.Model(&Budget{}).
		Where("id = ?", budgetID).
		Updates(map[string]interface{}{
			"total_budget": row.TotalEstimated,
			"actual_spent": row.TotalActual,
		}).Error
	if err != nil {
		log.Printf("⚠️ Failed to persist totals for budget %d: %v", budgetID, err)
	}
}
