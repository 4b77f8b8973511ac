package venue

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

type Service interface {
	Create(ctx context.Context, p *middleware.Principal, req CreateVenueRequest) (*Venue, error)
	GetByID(ctx context.Context, id uint) (*Venue, error)
	Update(ctx context.Context, p *middleware.Principal, id uint, req UpdateVenueRequest) (*Venue, error)
	Deactivate(ctx context.Context, p *middleware.Principal, id uint) error
	List(ctx context.Context, p *middleware.Principal, filters ListFilters, pg common.Pagination) (*common.Page, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ===========================
// 🎯 Create Venue
func (s *service) Create(ctx context.Context, p *middleware.Principal, req CreateVenueRequest) (*Venue, error) {
	if !authz.CanManageVenue(p) {
		return nil, common.Forbiddenf("only admins and organizers can create venues")
	}
	if req.Capacity < 0 {
		return nil, common.Validationf("capacity cannot be negative")
	}

	v := &Venue{
		Name:         req.Name,
		Description:  req.Description,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		Country:      req.Country,
		PostalCode:   req.PostalCode,
		Capacity:     req.Capacity,
		PricePerDay:  req.PricePerDay,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		log.Printf("❌ Failed to create venue: %v", err)
		return nil, err
	}
	return v, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*Venue, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundf("venue %d", id)
		}
		return nil, err
	}
	return v, nil
}

// ===========================
// ✏️ Update Venue
func (s *service) Update(ctx context.Context, p *middleware.Principal, id uint, req UpdateVenueRequest) (*Venue, error) {
	if !authz.CanManageVenue(p) {
		return nil, common.Forbiddenf("only admins and organizers can update venues")
	}

	v, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		v.Name = *req.Name
	}
	if req.Description != nil {
		v.Description = *req.Description
	}
	if req.Address != nil {
		v.Address = *req.Address
	}
	if req.City != nil {
		v.City = *req.City
	}
	if req.State != nil {
		v.State = *req.State
	}
	if req.Country != nil {
		v.Country = *req.Country
	}
	if req.PostalCode != nil {
		v.PostalCode = *req.PostalCode
	}
	if req.Capacity != nil {
		if *req.Capacity < 0 {
			return nil, common.Validationf("capacity cannot be negative")
		}
		v.Capacity = *req.Capacity
	}
	if req.PricePerDay != nil {
		v.PricePerDay = req.PricePerDay
	}
	if req.ContactEmail != nil {
		v.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		v.ContactPhone = *req.ContactPhone
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// ===========================
// 🗑️ Deactivate Venue — soft delete, the row and its references survive
func (s *service) Deactivate(ctx context.Context, p *middleware.Principal, id uint) error {
	if !authz.CanDeactivateVenue(p) {
		return common.Forbiddenf("only admins can deactivate venues")
	}

	v, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	v.IsActive = false
	if err := s.repo.Update(ctx, v); err != nil {
		return err
	}
	log.Printf("🗑️ Venue %d deactivated by user %d", id, p.UserID)
	return nil
}

// ===========================
// 📋 List Venues
func (s *service) List(ctx context.Context, p *middleware.Principal, filters ListFilters, pg common.Pagination) (*common.Page, error) {
	// Only admins may see deactivated venues
	if p.Role != auth.RoleAdmin {
		filters.IncludeInactive = false
	}

	venues, total, err := s.repo.List(ctx, filters, pg)
	if err != nil {
		return nil, err
	}
	return common.NewPage(venues, total, pg), nil
}
