package user

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/farhanputra/event-management-backend/internal/auth"
	"github.com/farhanputra/event-management-backend/internal/common"
)

// ListFilters narrow the user directory; conjunctive as everywhere else
type ListFilters struct {
	Role            string
	Search          string
	IncludeInactive bool
}

type Repository interface {
	Create(ctx context.Context, u *auth.User) error
	GetByID(ctx context.Context, id uint) (*auth.User, error)
	Update(ctx context.Context, u *auth.User) error
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filters ListFilters, p common.Pagination) ([]auth.User, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *auth.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*auth.User, error) {
	var u auth.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) Update(ctx context.Context, u *auth.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&auth.User{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) List(ctx context.Context, filters ListFilters, p common.Pagination) ([]auth.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&auth.User{})

	if !filters.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if filters.Role != "" {
		query = query.Where("role = ?", filters.Role)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []auth.User
	err := query.
		Order("last_name ASC, first_name ASC").
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&users).Error
	return users, total, err
}
