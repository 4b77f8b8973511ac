package venue

import (
	"context"

	"gorm.io/gorm"

	"github.com/farhanputra/event-management-backend/internal/common"
)

type Repository interface {
	Create(ctx context.Context, v *Venue) error
	GetByID(ctx context.Context, id uint) (*Venue, error)
	Update(ctx context.Context, v *Venue) error
	List(ctx context.Context, filters ListFilters, p common.Pagination) ([]Venue, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, v *Venue) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Venue, error) {
	var v Venue
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repository) Update(ctx context.Context, v *Venue) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *repository) List(ctx context.Context, filters ListFilters, p common.Pagination) ([]Venue, int64, error) {
	query := r.db.WithContext(ctx).Model(&Venue{})

	if !filters.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}
	if filters.City != "" {
		query = query.Where("city ILIKE ?", filters.City)
	}
	if filters.Country != "" {
		query = query.Where("country ILIKE ?", filters.Country)
	}
	if filters.MinCapacity > 0 {
		query = query.Where("capacity >= ?", filters.MinCapacity)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var venues []Venue
	err := query.
		Order("name ASC").
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&venues).Error
	return venues, total, err
}
