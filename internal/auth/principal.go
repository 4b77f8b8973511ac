package auth

import (
	"context"

	"github.com/farhanputra/event-management-backend/middleware"
)

// PrincipalLookup adapts the user repository into the middleware's lookup
// contract so the middleware package does not depend on the User model.
func PrincipalLookup(repo Repository) middleware.UserLookup {
	return func(ctx context.Context, userID uint) (*middleware.Principal, error) {
		user, err := repo.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &middleware.Principal{
			UserID:   user.ID,
			Email:    user.Email,
			Role:     user.Role,
			FullName: user.FullName(),
			IsActive: user.IsActive,
		}, nil
	}
}
