package event

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/farhanputra/event-management-backend/internal/budget"
	"github.com/farhanputra/event-management-backend/internal/common"
)

// ListScope carries the role-implicit restriction the service derives from the
// principal. Exactly one field is set.
type ListScope struct {
	All          bool
	OrganizerID  uint
	StaffUserID  uint
	VendorUserID uint
	GuestEmail   string
}

type Repository interface {
	CreateWithBudget(ctx context.Context, ev *Event, createdBy uint) error
	GetByID(ctx context.Context, id uint) (*Event, error)
	Update(ctx context.Context, ev *Event) error
	DeleteCascade(ctx context.Context, id uint) error
	List(ctx context.Context, scope ListScope, filters ListFilters, p common.Pagination) ([]Event, int64, error)

	AddGuest(ctx context.Context, g *EventGuest) error
	GetGuest(ctx context.Context, id uint) (*EventGuest, error)
	GuestEmailExists(ctx context.Context, eventID uint, email string) (bool, error)
	UpdateGuest(ctx context.Context, g *EventGuest) error
	DeleteGuest(ctx context.Context, id uint) error
	ListGuests(ctx context.Context, eventID uint, p common.Pagination) ([]EventGuest, int64, error)

	AddVendor(ctx context.Context, v *EventVendor) error
	GetVendor(ctx context.Context, id uint) (*EventVendor, error)
	UpdateVendor(ctx context.Context, v *EventVendor) error
	DeleteVendor(ctx context.Context, id uint) error
	ListVendors(ctx context.Context, eventID uint, p common.Pagination) ([]EventVendor, int64, error)

	AddStaff(ctx context.Context, s *EventStaff) error
	GetStaff(ctx context.Context, id uint) (*EventStaff, error)
	UpdateStaff(ctx context.Context, s *EventStaff) error
	DeleteStaff(ctx context.Context, id uint) error
	ListStaff(ctx context.Context, eventID uint, p common.Pagination) ([]EventStaff, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ===========================
// 🎯 CreateWithBudget — the event and its draft budget commit atomically
func (r *repository) CreateWithBudget(ctx context.Context, ev *Event, createdBy uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ev).Error; err != nil {
			return err
		}
		b := &budget.Budget{
			EventID:   ev.ID,
			Status:    budget.StatusDraft,
			CreatedBy: createdBy,
		}
		return tx.Create(b).Error
	})
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Event, error) {
	var ev Event
	err := r.db.WithContext(ctx).
		Preload("Guests").
		Preload("Vendors").
		Preload("Staff").
		First(&ev, id).Error
	if err != nil {
		return nil, err
	}
	ev.GuestCount = int64(len(ev.Guests))
	ev.VendorCount = int64(len(ev.Vendors))
	ev.StaffCount = int64(len(ev.Staff))
	return &ev, nil
}

func (r *repository) Update(ctx context.Context, ev *Event) error {
	return r.db.WithContext(ctx).Omit("Guests", "Vendors", "Staff").Save(ev).Error
}

// ===========================
// 🗑️ DeleteCascade — hard delete of the event and everything it owns,
// including rows in tables owned by other packages
func (r *repository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM expenses WHERE budget_item_id IN
			(SELECT bi.id FROM budget_items bi JOIN budgets b ON bi.budget_id = b.id WHERE b.event_id = ?)`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM budget_items WHERE budget_id IN
			(SELECT id FROM budgets WHERE event_id = ?)`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM budgets WHERE event_id = ?`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM task_assignments WHERE task_id IN
			(SELECT id FROM tasks WHERE event_id = ?)`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM tasks WHERE event_id = ?`, id).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&EventGuest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&EventVendor{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&EventStaff{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Event{}, id).Error
	})
}

// ===========================
// 📋 List — conjunctive filters plus the caller's implicit scope
func (r *repository) List(ctx context.Context, scope ListScope, filters ListFilters, p common.Pagination) ([]Event, int64, error) {
	query := r.db.WithContext(ctx).Model(&Event{})

	switch {
	case scope.All:
		// no restriction
	case scope.OrganizerID != 0:
		query = query.Where("organizer_id = ?", scope.OrganizerID)
	case scope.StaffUserID != 0:
		query = query.Joins("JOIN event_staff es ON es.event_id = events.id AND es.staff_id = ?", scope.StaffUserID)
	case scope.VendorUserID != 0:
		query = query.Joins("JOIN event_vendors ev ON ev.event_id = events.id AND ev.vendor_id = ?", scope.VendorUserID)
	case scope.GuestEmail != "":
		query = query.Where(
			"(is_public = ? AND status = ?) OR events.id IN (SELECT event_id FROM event_guests WHERE lower(email) = ?)",
			true, StatusPublished, strings.ToLower(scope.GuestEmail),
		)
	}

	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.EventType != "" {
		query = query.Where("event_type = ?", filters.EventType)
	}
	if filters.VenueID != 0 {
		query = query.Where("venue_id = ?", filters.VenueID)
	}
	if filters.From != nil {
		query = query.Where("start_time >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("start_time <= ?", *filters.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []Event
	err := query.
		Order("start_time DESC").
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}

	if err := r.loadCounts(ctx, events); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// loadCounts fills the association counts for one page of events
func (r *repository) loadCounts(ctx context.Context, events []Event) error {
	if len(events) == 0 {
		return nil
	}

	ids := make([]uint, len(events))
	index := make(map[uint]*Event, len(events))
	for i := range events {
		ids[i] = events[i].ID
		index[events[i].ID] = &events[i]
	}

	type rowCount struct {
		EventID uint
		N       int64
	}
	tables := []struct {
		table string
		apply func(ev *Event, n int64)
	}{
		{"event_guests", func(ev *Event, n int64) { ev.GuestCount = n }},
		{"event_vendors", func(ev *Event, n int64) { ev.VendorCount = n }},
		{"event_staff", func(ev *Event, n int64) { ev.StaffCount = n }},
	}

	for _, t := range tables {
		var rows []rowCount
		err := r.db.WithContext(ctx).
			Table(t.table).
			Select("event_id, count(*) as n").
			Where("event_id IN ?", ids).
			Group("event_id").
			Scan(&rows).Error
		if err != nil {
			return err
		}
		for _, row := range rows {
			if ev, ok := index[row.EventID]; ok {
				t.apply(ev, row.N)
			}
		}
	}
	return nil
}

// ===========================
// 👥 Guest association

func (r *repository) AddGuest(ctx context.Context, g *EventGuest) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *repository) GetGuest(ctx context.Context, id uint) (*EventGuest, error) {
	var g EventGuest
	if err := r.db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *repository) GuestEmailExists(ctx context.Context, eventID uint, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&EventGuest{}).
		Where("event_id = ? AND lower(email) = ?", eventID, strings.ToLower(email)).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) UpdateGuest(ctx context.Context, g *EventGuest) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *repository) DeleteGuest(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&EventGuest{}, id).Error
}

func (r *repository) ListGuests(ctx context.Context, eventID uint, p common.Pagination) ([]EventGuest, int64, error) {
	query := r.db.WithContext(ctx).Model(&EventGuest{}).Where("event_id = ?", eventID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var guests []EventGuest
	err := query.Order("created_at ASC").Offset(p.Offset()).Limit(p.Limit()).Find(&guests).Error
	return guests, total, err
}

// ===========================
// 🏪 Vendor association

func (r *repository) AddVendor(ctx context.Context, v *EventVendor) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) GetVendor(ctx context.Context, id uint) (*EventVendor, error) {
	var v EventVendor
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repository) UpdateVendor(ctx context.Context, v *EventVendor) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *repository) DeleteVendor(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&EventVendor{}, id).Error
}

func (r *repository) ListVendors(ctx context.Context, eventID uint, p common.Pagination) ([]EventVendor, int64, error) {
	query := r.db.WithContext(ctx).Model(&EventVendor{}).Where("event_id = ?", eventID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vendors []EventVendor
	err := query.Order("created_at ASC").Offset(p.Offset()).Limit(p.Limit()).Find(&vendors).Error
	return vendors, total, err
}

// ===========================
// 🧑‍💼 Staff association

func (r *repository) AddStaff(ctx context.Context, s *EventStaff) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) GetStaff(ctx context.Context, id uint) (*EventStaff, error) {
	var s EventStaff
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) UpdateStaff(ctx context.Context, s *EventStaff) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) DeleteStaff(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&EventStaff{}, id).Error
}

func (r *repository) ListStaff(ctx context.Context, eventID uint, p common.Pagination) ([]EventStaff, int64, error) {
	query := r.db.WithContext(ctx).Model(&EventStaff{}).Where("event_id = ?", eventID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var staff []EventStaff
	err := query.Order("created_at ASC").Offset(p.Offset()).Limit(p.Limit()).Find(&staff).Error
	return staff, total, err
}
