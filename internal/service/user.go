package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"pressroom/internal/models"
)

// UserDirectory is the admin user persistence the service needs.
// *store.UserStore satisfies it.
type UserDirectory interface {
	List(ctx context.Context) ([]models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	CheckPassword(user *models.User, password string) bool
	RecordLogin(ctx context.Context, userID uuid.UUID) error
}

// AdminUserService exposes admin accounts to the rest of the application.
type AdminUserService struct {
	users UserDirectory
}

// NewAdminUserService creates an AdminUserService.
func NewAdminUserService(users UserDirectory) *AdminUserService {
	return &AdminUserService{users: users}
}

// All returns every admin user.
func (s *AdminUserService) All(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// Login checks the credentials and records the login. It returns
// ErrUserNotFound for an unknown email and ErrPasswordMismatch for a wrong
// password.
func (s *AdminUserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !s.users.CheckPassword(user, password) {
		return nil, ErrPasswordMismatch
	}

	if err := s.users.RecordLogin(ctx, user.ID); err != nil {
		// Login time is best effort.
		slog.Warn("record login failed", "user_id", user.ID, "error", err)
	}
	return user, nil
}
