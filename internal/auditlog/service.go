package auditlog

import (
	"context"
	"encoding/json"
	"log"

	"github.com/farhanputra/event-management-backend/internal/common"
)

type Service interface {
	// LogAction is best effort: audit failures are logged, never surfaced
	LogAction(ctx context.Context, userID, eventID *uint, action string, details map[string]interface{}, ip, status string)
	List(ctx context.Context, filter Filter, pg common.Pagination) (*common.Page, error)
	Get(ctx context.Context, id uint) (*AuditLog, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ===========================
// 📝 LogAction
func (s *service) LogAction(ctx context.Context, userID, eventID *uint, action string, details map[string]interface{}, ip, status string) {
	if details == nil {
		details = map[string]interface{}{}
	}
	payload, err := json.Marshal(details)
	if err != nil {
		payload = []byte("{}")
	}

	entry := &AuditLog{
		UserID:    userID,
		EventID:   eventID,
		Action:    action,
		Details:   payload,
		IPAddress: ip,
		Status:    status,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		log.Printf("⚠️ Failed to write audit log %q: %v", action, err)
	}
}

func (s *service) List(ctx context.Context, filter Filter, pg common.Pagination) (*common.Page, error) {
	entries, total, err := s.repo.GetByFilter(ctx, filter, pg)
	if err != nil {
		return nil, err
	}
	return common.NewPage(entries, total, pg), nil
}

func (s *service) Get(ctx context.Context, id uint) (*AuditLog, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, common.NotFoundf("audit log %d", id)
	}
	return entry, nil
}
