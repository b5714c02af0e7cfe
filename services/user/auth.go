package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"time"

	"portflow/config"
	userRepo "portflow/database/repository/user"
	"portflow/models"
	"portflow/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var validRoles = map[string]bool{
	models.RoleAdmin:    true,
	models.RoleOperator: true,
	models.RoleCarrier:  true,
	models.RoleDriver:   true,
}

// verifyPasswordComplexity checks minimum length and character classes.
func verifyPasswordComplexity(pw string) error {
	if len(pw) < 8 {
		return utils.ValidationError("password must be at least 8 characters long")
	}
	if !regexp.MustCompile(`[A-Za-z]`).MatchString(pw) {
		return utils.ValidationError("password must include at least one letter")
	}
	if !regexp.MustCompile(`[0-9]`).MatchString(pw) {
		return utils.ValidationError("password must include at least one number")
	}
	return nil
}

// Register creates an account, issues tokens and records the session.
func (s *DefaultUserService) Register(ctx context.Context, input RegisterInput) (*models.AuthResponse, error) {
	if input.FullName == "" {
		return nil, utils.ValidationError("full name is required")
	}
	if !emailPattern.MatchString(input.Email) {
		return nil, utils.ValidationError("a valid email is required")
	}
	if !validRoles[input.Role] {
		return nil, utils.ValidationError("unknown role %q", input.Role)
	}
	if err := verifyPasswordComplexity(input.Password); err != nil {
		return nil, err
	}

	if existing, err := s.Repo.GetByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, utils.ValidationError("a user with this email already exists")
	} else if err != nil && !errors.Is(err, userRepo.ErrNotFound) {
		utils.GetLogger().Error("Failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	now := time.Now().UTC()
	u := &models.User{
		ID:           uuid.New().String(),
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: string(hashed),
		Role:         input.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		utils.GetLogger().Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	s.Audit.Record(ctx, models.Actor{Type: models.ActorUser, ID: u.ID}, "USER", u.ID,
		models.ActionCreated, fmt.Sprintf("registered account %s (%s)", u.Email, u.Role))
	return s.issueTokens(ctx, u)
}

// Login verifies credentials and starts a session.
func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, utils.ForbiddenError("invalid email or password")
		}
		utils.GetLogger().Error("Failed to fetch user for authentication", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, utils.ForbiddenError("invalid email or password")
	}
	return s.issueTokens(ctx, u)
}

// Refresh exchanges a live refresh token for a new token pair. The old
// refresh token is revoked in the same step so each one is single-use.
func (s *DefaultUserService) Refresh(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	key := utils.RefreshTokenPrefix + utils.HashToken(refreshToken)
	authCache := utils.GetAuthCacheClient()
	userID, err := authCache.Get(ctx, key).Result()
	if err != nil {
		return nil, utils.ForbiddenError("invalid or expired refresh token")
	}
	if err := authCache.Del(ctx, key).Err(); err != nil {
		utils.GetLogger().Warn("Failed to revoke rotated refresh token", zap.Error(err))
	}

	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, utils.ForbiddenError("invalid or expired refresh token")
	}
	return s.issueTokens(ctx, u)
}

// Logout revokes the refresh token. Already-expired tokens are a no-op.
func (s *DefaultUserService) Logout(ctx context.Context, refreshToken string) error {
	key := utils.RefreshTokenPrefix + utils.HashToken(refreshToken)
	if err := utils.GetAuthCacheClient().Del(ctx, key).Err(); err != nil {
		utils.GetLogger().Warn("Failed to revoke refresh token on logout", zap.Error(err))
	}
	return nil
}

// issueTokens generates the access/refresh pair and stores the refresh
// token hash in Redis keyed to the user.
func (s *DefaultUserService) issueTokens(ctx context.Context, u *models.User) (*models.AuthResponse, error) {
	accessTTL := time.Duration(config.AppConfig.AccessTokenTTLMin) * time.Minute
	access, err := utils.GenerateToken(u.ID, u.Email, u.Role, accessTTL)
	if err != nil {
		utils.GetLogger().Error("Failed to generate access token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	refresh, err := newRefreshToken()
	if err != nil {
		utils.GetLogger().Error("Failed to generate refresh token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	refreshTTL := time.Duration(config.AppConfig.RefreshTokenTTLHrs) * time.Hour
	key := utils.RefreshTokenPrefix + utils.HashToken(refresh)
	if err := utils.GetAuthCacheClient().Set(ctx, key, u.ID, refreshTTL).Err(); err != nil {
		utils.GetLogger().Error("Failed to store refresh token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	resp := &models.AuthResponse{AccessToken: access, RefreshToken: refresh, User: *u}
	resp.User.PasswordHash = ""
	return resp, nil
}

func newRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
