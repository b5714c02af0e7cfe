package user

import (
	"context"

	userRepo "portflow/database/repository/user"
	auditSvc "portflow/services/audit"

	"portflow/models"
)

// RegisterInput carries a new account request.
type RegisterInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateInput carries profile mutations. Zero-valued fields are left untouched.
type UpdateInput struct {
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

// UserService manages accounts and token-based sessions.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*models.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	// Refresh rotates the refresh token and issues a fresh access token.
	Refresh(ctx context.Context, refreshToken string) (*models.AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, actor models.Actor, id string, input UpdateInput) (*models.User, error)
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo  userRepo.UserRepository
	Audit auditSvc.Recorder
}
