package task

import (
	"context"

	"gorm.io/gorm"

	"github.com/farhanputra/event-management-backend/internal/common"
)

// priorityRank maps the closed priority enumeration to a sortable weight so
// "priority descending" means severity, not alphabetical order.
const priorityRank = `CASE priority
	WHEN 'critical' THEN 4
	WHEN 'high' THEN 3
	WHEN 'medium' THEN 2
	ELSE 1 END`

// ListScope restricts a listing to tasks assigned to the caller unless lifted
type ListScope struct {
	All        bool
	AssigneeID uint
}

type Repository interface {
	Create(ctx context.Context, t *Task) error
	GetByID(ctx context.Context, id uint) (*Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, scope ListScope, filters ListFilters, p common.Pagination) ([]Task, int64, error)

	AddAssignment(ctx context.Context, a *TaskAssignment) error
	AssignmentExists(ctx context.Context, taskID, assigneeID uint) (bool, error)
	CompleteAssignment(ctx context.Context, taskID, assigneeID uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Task, error) {
	var t Task
	err := r.db.WithContext(ctx).
		Preload("Assignments").
		First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) Update(ctx context.Context, t *Task) error {
	return r.db.WithContext(ctx).Omit("Assignments").Save(t).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&TaskAssignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Task{}, id).Error
	})
}

// ===========================
// 📋 List — due_date ascending with nulls last, then priority severity,
// then newest first
func (r *repository) List(ctx context.Context, scope ListScope, filters ListFilters, p common.Pagination) ([]Task, int64, error) {
	query := r.db.WithContext(ctx).Model(&Task{})

	if !scope.All {
		query = query.
			Joins("JOIN task_assignments ta ON ta.task_id = tasks.id AND ta.assignee_id = ?", scope.AssigneeID)
	}
	if filters.EventID != 0 {
		query = query.Where("tasks.event_id = ?", filters.EventID)
	}
	if filters.Status != "" {
		query = query.Where("tasks.status = ?", filters.Status)
	}
	if filters.Priority != "" {
		query = query.Where("tasks.priority = ?", filters.Priority)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("tasks.title ILIKE ? OR tasks.description ILIKE ?", like, like)
	}
	if filters.DueBefore != nil {
		query = query.Where("tasks.due_date <= ?", *filters.DueBefore)
	}
	if filters.DueAfter != nil {
		query = query.Where("tasks.due_date >= ?", *filters.DueAfter)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []Task
	err := query.
		Order("tasks.due_date ASC NULLS LAST").
		Order(priorityRank + " DESC").
		Order("tasks.created_at DESC").
		Preload("Assignments").
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&tasks).Error
	return tasks, total, err
}

// ===========================
// 👥 Assignments

func (r *repository) AddAssignment(ctx context.Context, a *TaskAssignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) AssignmentExists(ctx context.Context, taskID, assigneeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&TaskAssignment{}).
		Where("task_id = ? AND assignee_id = ?", taskID, assigneeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CompleteAssignment(ctx context.Context, taskID, assigneeID uint) error {
	return r.db.WithContext(ctx).
		Model(&TaskAssignment{}).
		Where("task_id = ? AND assignee_id = ? AND completed_at IS NULL", taskID, assigneeID).
		Update("completed_at", gorm.Expr("NOW()")).Error
}
