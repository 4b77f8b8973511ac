package task

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/farhanputra/event-management-backend/internal/auth"
	"github.com/farhanputra/event-management-backend/internal/authz"
	"github.com/farhanputra/event-management-backend/internal/common"
	"github.com/farhanputra/event-management-backend/middleware"
)

// EventSource supplies the owning event's membership snapshot
type EventSource interface {
	AccessSnapshot(ctx context.Context, eventID uint) (authz.EventAccess, error)
}

// Notifier receives fire-and-forget task notifications
type Notifier interface {
	TaskAssigned(ctx context.Context, taskID uint, taskTitle string, assigneeID uint)
}

type Service interface {
	Create(ctx context.Context, p *middleware.Principal, req CreateTaskRequest) (*Task, error)
	Get(ctx context.Context, p *middleware.Principal, id uint) (*Task, error)
	Update(ctx context.Context, p *middleware.Principal, id uint, req UpdateTaskRequest) (*Task, error)
	Delete(ctx context.Context, p *middleware.Principal, id uint) error
	List(ctx context.Context, p *middleware.Principal, filters ListFilters, pg common.Pagination) (*common.Page, error)
	Assign(ctx context.Context, p *middleware.Principal, id uint, req AssignRequest) (*Task, error)
	Complete(ctx context.Context, p *middleware.Principal, id uint) (*Task, error)
}

type service struct {
	repo     Repository
	events   EventSource
	notifier Notifier
}

// NewService wires the task service. notifier may be nil in tests.
func NewService(repo Repository, events EventSource, notifier Notifier) Service {
	return &service{repo: repo, events: events, notifier: notifier}
}

// ===========================
// 🎯 Create Task — any authenticated user; creator is recorded. The event
// only has to exist, membership is not required.
func (s *service) Create(ctx context.Context, p *middleware.Principal, req CreateTaskRequest) (*Task, error) {
	if _, err := s.events.AccessSnapshot(ctx, req.EventID); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !ValidPriority(priority) {
		return nil, common.Validationf("invalid priority %q", req.Priority)
	}

	t := &Task{
		EventID:     req.EventID,
		Title:       req.Title,
		Description: req.Description,
		Status:      StatusTodo,
		Priority:    priority,
		DueDate:     req.DueDate,
		CreatedBy:   p.UserID,
	}
	for _, assigneeID := range req.AssigneeIDs {
		t.Assignments = append(t.Assignments, TaskAssignment{
			AssigneeID: assigneeID,
			AssignedBy: p.UserID,
		})
	}

	if err := s.repo.Create(ctx, t); err != nil {
		log.Printf("❌ Failed to create task for event %d: %v", req.EventID, err)
		return nil, err
	}

	if s.notifier != nil {
		for _, a := range t.Assignments {
			s.notifier.TaskAssigned(ctx, t.ID, t.Title, a.AssigneeID)
		}
	}
	return t, nil
}

func (s *service) loadTask(ctx context.Context, id uint) (*Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundf("task %d", id)
		}
		return nil, err
	}
	return t, nil
}

// ===========================
// 🔍 Get Task — readable by anyone who can view the owning event
func (s *service) Get(ctx context.Context, p *middleware.Principal, id uint) (*Task, error) {
	t, err := s.loadTask(ctx, id)
	if err != nil {
		return nil, err
	}

	access, err := s.events.AccessSnapshot(ctx, t.EventID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewEvent(p, access) {
		return nil, common.Forbiddenf("no access to task %d", id)
	}
	return t, nil
}

// ===========================
// ✏️ Update Task — creator, organizer role or admin
func (s *service) Update(ctx context.Context, p *middleware.Principal, id uint, req UpdateTaskRequest) (*Task, error) {
	t, err := s.loadTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanModifyTask(p, t.CreatedBy) {
		return nil, common.Forbiddenf("only the task creator, an organizer or an admin can update this task")
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return nil, common.Validationf("invalid status %q", *req.Status)
		}
		t.Status = *req.Status
	}
	if req.Priority != nil {
		if !ValidPriority(*req.Priority) {
			return nil, common.Validationf("invalid priority %q", *req.Priority)
		}
		t.Priority = *req.Priority
	}
	if req.DueDate != nil {
		t.DueDate = req.DueDate
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ===========================
// 🗑️ Delete Task — assignments go with it
func (s *service) Delete(ctx context.Context, p *middleware.Principal, id uint) error {
	t, err := s.loadTask(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanModifyTask(p, t.CreatedBy) {
		return common.Forbiddenf("only the task creator, an organizer or an admin can delete this task")
	}
	return s.repo.Delete(ctx, id)
}

// ===========================
// 📋 List Tasks — non-admin/organizer callers only see their own assignments
func (s *service) List(ctx context.Context, p *middleware.Principal, filters ListFilters, pg common.Pagination) (*common.Page, error) {
	scope := ListScope{AssigneeID: p.UserID}
	if p.Role == auth.RoleAdmin || p.Role == auth.RoleOrganizer {
		scope = ListScope{All: true}
	}

	tasks, total, err := s.repo.List(ctx, scope, filters, pg)
	if err != nil {
		return nil, err
	}
	return common.NewPage(tasks, total, pg), nil
}

// ===========================
// 👥 Assign — creator, organizer role or admin; one assignment per user
func (s *service) Assign(ctx context.Context, p *middleware.Principal, id uint, req AssignRequest) (*Task, error) {
	t, err := s.loadTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanModifyTask(p, t.CreatedBy) {
		return nil, common.Forbiddenf("only the task creator, an organizer or an admin can assign this task")
	}

	exists, err := s.repo.AssignmentExists(ctx, id, req.AssigneeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.Conflictf("user %d is already assigned to task %d", req.AssigneeID, id)
	}

	a := &TaskAssignment{TaskID: id, AssigneeID: req.AssigneeID, AssignedBy: p.UserID}
	if err := s.repo.AddAssignment(ctx, a); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.TaskAssigned(ctx, t.ID, t.Title, req.AssigneeID)
	}
	return s.loadTask(ctx, id)
}

// ===========================
// ✅ Complete — the assignee themselves or the task's creator
func (s *service) Complete(ctx context.Context, p *middleware.Principal, id uint) (*Task, error) {
	t, err := s.loadTask(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := p.UserID == t.CreatedBy
	isAssignee := false
	for _, a := range t.Assignments {
		if a.AssigneeID == p.UserID {
			isAssignee = true
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, common.Forbiddenf("only an assignee or the task creator can complete this task")
	}

	if isAssignee {
		if err := s.repo.CompleteAssignment(ctx, id, p.UserID); err != nil {
			return nil, err
		}
	}

	if t.Status != StatusCompleted {
		t.Status = StatusCompleted
		if err := s.repo.Update(ctx, t); err != nil {
			return nil, err
		}
	}
	return s.loadTask(ctx, id)
}
