package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	userRepo "portflow/database/repository/user"
	"portflow/models"
	"portflow/utils"

	"golang.org/x/crypto/bcrypt"
)

// GetUser retrieves one account with the password hash stripped.
func (s *DefaultUserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, utils.NotFoundError("user %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	u.PasswordHash = ""
	return u, nil
}

// ListUsers retrieves all accounts, password hashes stripped.
func (s *DefaultUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// UpdateUser applies profile changes. Ownership is enforced at the route
// layer; the service trusts the given actor.
func (s *DefaultUserService) UpdateUser(ctx context.Context, actor models.Actor, id string, input UpdateInput) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, utils.NotFoundError("user %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if input.FullName != "" {
		u.FullName = input.FullName
	}
	if input.Password != "" {
		if err := verifyPasswordComplexity(input.Password); err != nil {
			return nil, err
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		u.PasswordHash = string(hashed)
	}
	u.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	s.Audit.Record(ctx, actor, "USER", u.ID, models.ActionUpdated, "updated account profile")
	u.PasswordHash = ""
	return u, nil
}
