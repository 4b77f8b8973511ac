package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/farhanputra/event-management-backend/config"
	"github.com/farhanputra/event-management-backend/internal/common"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*TokenPair, *User, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	ChangePassword(ctx context.Context, userID uint, req ChangePasswordRequest) error
	UpdateProfile(ctx context.Context, userID uint, req UpdateProfileRequest) (*User, error)
	GetUserByID(ctx context.Context, id uint) (*User, error)
}

type service struct {
	repo          Repository
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(repo Repository, cfg *config.Config) Service {
	return &service{
		repo:          repo,
		accessSecret:  cfg.JWTAccessSecret,
		refreshSecret: cfg.JWTRefreshSecret,
		accessTTL:     time.Duration(cfg.JWTAccessTTLHours) * time.Hour,
		refreshTTL:    time.Duration(cfg.JWTRefreshTTLHours) * time.Hour,
	}
}

// ===========================
// 🎯 Register
func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	role := strings.ToLower(req.Role)
	if role == "" {
		role = RoleAttendee
	}
	if !ValidRole(role) {
		return nil, common.Validationf("invalid role %q", req.Role)
	}
	// Admin accounts are provisioned by an existing admin, never self-registered
	if role == RoleAdmin {
		return nil, common.Forbiddenf("admin accounts cannot self-register")
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

	user := &User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Role:         role,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ===========================
// 🔐 Login
func (s *service) Login(ctx context.Context, req LoginRequest) (*TokenPair, *User, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, common.Forbiddenf("invalid credentials")
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, common.Forbiddenf("invalid credentials")
	}

	if !user.IsActive {
		return nil, nil, common.Forbiddenf("account is deactivated")
	}

	accessToken, err := s.generateToken(user, s.accessSecret, s.accessTTL, "access")
	if err != nil {
		return nil, nil, err
	}
	refreshToken, err := s.generateToken(user, s.refreshSecret, s.refreshTTL, "refresh")
	if err != nil {
		return nil, nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, user, nil
}

// ===========================
// ♻️ Refresh — exchanges a valid refresh token for a new access token
func (s *service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.refreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", common.Forbiddenf("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["type"] != "refresh" {
		return "", common.Forbiddenf("invalid refresh token")
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return "", common.Forbiddenf("invalid refresh token")
	}

	user, err := s.repo.FindByID(ctx, uint(userIDFloat))
	if err != nil {
		return "", common.Forbiddenf("user not found")
	}
	if !user.IsActive {
		return "", common.Forbiddenf("account is deactivated")
	}

	return s.generateToken(user, s.accessSecret, s.accessTTL, "access")
}

// ===========================
// 🔑 Change Password
func (s *service) ChangePassword(ctx context.Context, userID uint, req ChangePasswordRequest) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return common.NotFoundf("user %d", userID)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return common.Forbiddenf("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	return s.repo.Update(ctx, user)
}

// ===========================
// 👤 Update Profile — self-service fields only, never role or active flag
func (s *service) UpdateProfile(ctx context.Context, userID uint, req UpdateProfileRequest) (*User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, common.NotFoundf("user %d", userID)
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) GetUserByID(ctx context.Context, id uint) (*User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundf("user %d", id)
		}
		return nil, err
	}
	return user, nil
}

func (s *service) generateToken(user *User, secret string, ttl time.Duration, tokenType string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"email":   user.Email,
		"type":    tokenType,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
