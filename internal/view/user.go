package view

import (
	"context"

	"pressroom/internal/identity"
	"pressroom/internal/models"
)

// UserSource lists admin users. *service.AdminUserService satisfies it.
type UserSource interface {
	All(ctx context.Context) ([]models.User, error)
}

// AdminUserHelper exposes the signed-in admin and the admin roster to
// templates.
type AdminUserHelper struct {
	users UserSource
}

// NewAdminUserHelper creates an AdminUserHelper.
func NewAdminUserHelper(users UserSource) *AdminUserHelper {
	return &AdminUserHelper{users: users}
}

// Current returns the identity of the signed-in user, if the request has one.
func (h *AdminUserHelper) Current(ctx context.Context) (identity.Identity, bool) {
	return identity.FromContext(ctx)
}

// All returns every admin user.
func (h *AdminUserHelper) All(ctx context.Context) ([]models.User, error) {
	return h.users.All(ctx)
}
