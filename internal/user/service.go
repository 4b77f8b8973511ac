package user

import (
	"context"
	"errors"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/farhanputra/event-management-backend/internal/auth"
	"github.com/farhanputra/event-management-backend/internal/common"
	"github.com/farhanputra/event-management-backend/middleware"
)

// ============================
// 🟡 Requests
type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role,omitempty"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Role      *string `json:"role,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

type Service interface {
	Create(ctx context.Context, p *middleware.Principal, req CreateUserRequest) (*auth.User, error)
	Get(ctx context.Context, p *middleware.Principal, id uint) (*auth.User, error)
	Update(ctx context.Context, p *middleware.Principal, id uint, req UpdateUserRequest) (*auth.User, error)
	Deactivate(ctx context.Context, p *middleware.Principal, id uint) error
	List(ctx context.Context, p *middleware.Principal, filters ListFilters, pg common.Pagination) (*common.Page, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func elevated(p *middleware.Principal) bool {
	return p.Role == auth.RoleAdmin || p.Role == auth.RoleOrganizer
}

// ===========================
// 🎯 Create User — admin or organizer; only an admin can mint another admin
func (s *service) Create(ctx context.Context, p *middleware.Principal, req CreateUserRequest) (*auth.User, error) {
	if !elevated(p) {
		return nil, common.Forbiddenf("only admins and organizers can create users")
	}

	role := strings.ToLower(req.Role)
	if role == "" {
		role = auth.RoleAttendee
	}
	if !auth.ValidRole(role) {
		return nil, common.Validationf("invalid role %q", req.Role)
	}
	if role == auth.RoleAdmin && p.Role != auth.RoleAdmin {
		return nil, common.Forbiddenf("only an admin can assign the admin role")
	}

	email := strings.ToLower(req.Email)
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.Conflictf("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &auth.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		log.Printf("❌ Failed to create user %s: %v", email, err)
		return nil, err
	}
	return u, nil
}

func (s *service) loadUser(ctx context.Context, id uint) (*auth.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundf("user %d", id)
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Get(ctx context.Context, p *middleware.Principal, id uint) (*auth.User, error) {
	if !elevated(p) && p.UserID != id {
		return nil, common.Forbiddenf("no access to user %d", id)
	}
	return s.loadUser(ctx, id)
}

// ===========================
// ✏️ Update User — self-update covers profile fields; role/active changes and
// updates of other users require admin
func (s *service) Update(ctx context.Context, p *middleware.Principal, id uint, req UpdateUserRequest) (*auth.User, error) {
	isSelf := p.UserID == id
	if !isSelf && p.Role != auth.RoleAdmin {
		return nil, common.Forbiddenf("only an admin can update another user")
	}
	if (req.Role != nil || req.IsActive != nil) && p.Role != auth.RoleAdmin {
		return nil, common.Forbiddenf("only an admin can change role or active status")
	}

	u, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.Role != nil {
		role := strings.ToLower(*req.Role)
		if !auth.ValidRole(role) {
			return nil, common.Validationf("invalid role %q", *req.Role)
		}
		u.Role = role
	}
	if req.IsActive != nil {
		if isSelf && !*req.IsActive {
			return nil, common.Forbiddenf("cannot deactivate your own account")
		}
		u.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ===========================
// 🗑️ Deactivate — soft delete; the row and its references survive
func (s *service) Deactivate(ctx context.Context, p *middleware.Principal, id uint) error {
	if p.Role != auth.RoleAdmin {
		return common.Forbiddenf("only an admin can deactivate users")
	}
	if p.UserID == id {
		return common.Forbiddenf("cannot deactivate your own account")
	}

	u, err := s.loadUser(ctx, id)
	if err != nil {
		return err
	}

	u.IsActive = false
	if err := s.repo.Update(ctx, u); err != nil {
		return err
	}
	log.Printf("🗑️ User %d deactivated by admin %d", id, p.UserID)
	return nil
}

// ===========================
// 📋 List Users — admin or organizer
func (s *service) List(ctx context.Context, p *middleware.Principal, filters ListFilters, pg common.Pagination) (*common.Page, error) {
	if !elevated(p) {
		return nil, common.Forbiddenf("only admins and organizers can list users")
	}
	if p.Role != auth.RoleAdmin {
		filters.IncludeInactive = false
	}

	users, total, err := s.repo.List(ctx, filters, pg)
	if err != nil {
		return nil, err
	}
	return common.NewPage(users, total, pg), nil
}
