package notification

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/farhanputra/event-management-backend/internal/common"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID uint, unreadOnly bool, p common.Pagination) ([]Notification, int64, error)
	MarkRead(ctx context.Context, id, userID uint) error
	CountUnread(ctx context.Context, userID uint) (int64, error)

	SaveDeviceToken(ctx context.Context, t *DeviceToken) error
	DeleteDeviceToken(ctx context.Context, userID uint, token string) error
	TokensByUser(ctx context.Context, userID uint) ([]string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) ListByUser(ctx context.Context, userID uint, unreadOnly bool, p common.Pagination) ([]Notification, int64, error) {
	query := r.db.WithContext(ctx).Model(&Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []Notification
	err := query.
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&items).Error
	return items, total, err
}

func (r *repository) MarkRead(ctx context.Context, id, userID uint) error {
	result := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *repository) SaveDeviceToken(ctx context.Context, t *DeviceToken) error {
	// Re-registering the same token moves it to the current user
	return r.db.WithContext(ctx).
		Where("token = ?", t.Token).
		Assign(map[string]interface{}{"user_id": t.UserID, "device_type": t.DeviceType}).
		FirstOrCreate(t).Error
}

func (r *repository) DeleteDeviceToken(ctx context.Context, userID uint, token string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		Delete(&DeviceToken{}).Error
}

func (r *repository) TokensByUser(ctx context.Context, userID uint) ([]string, error) {
	var tokens []string
	err := r.db.WithContext(ctx).
		Model(&DeviceToken{}).
		Where("user_id = ?", userID).
		Pluck("token", &tokens).Error
	return tokens, err
}
