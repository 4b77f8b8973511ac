package task

import "time"

// ============================
// 🔷 Task status enumeration
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusBlocked    = "blocked"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted, StatusCancelled, StatusBlocked:
		return true
	}
	return false
}

// ============================
// 🔷 Priority enumeration — ordering rank lives in the repository query
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

func ValidPriority(s string) bool {
	switch s {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// ============================
// 🔷 GORM Task Model
type Task struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	EventID     uint             `gorm:"not null;index" json:"event_id"`
	Title       string           `gorm:"type:varchar(200);not null" json:"title"`
	Description string           `gorm:"type:text" json:"description,omitempty"`
	Status      string           `gorm:"type:varchar(20);not null;default:'todo';index" json:"status"`
	Priority    string           `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	DueDate     *time.Time       `gorm:"index" json:"due_date,omitempty"`
	CreatedBy   uint             `gorm:"not null;index" json:"created_by"`
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"assignments,omitempty"`
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

// ============================
// 🔷 GORM TaskAssignment Model
type TaskAssignment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	TaskID      uint       `gorm:"not null;index" json:"task_id"`
	AssigneeID  uint       `gorm:"not null;index" json:"assignee_id"`
	AssignedBy  uint       `gorm:"not null" json:"assigned_by"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (TaskAssignment) TableName() string {
	return "task_assignments"
}

// ============================
// 🟡 Requests
type CreateTaskRequest struct {
	EventID     uint       `json:"event_id" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	AssigneeIDs []uint     `json:"assignee_ids,omitempty"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type AssignRequest struct {
	AssigneeID uint `json:"assignee_id" binding:"required"`
}

// ============================
// 🔍 List Filters
type ListFilters struct {
	EventID   uint
	Status    string
	Priority  string
	Search    string
	DueBefore *time.Time
	DueAfter  *time.Time
}
