package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"curanest/models"
	"curanest/utils"
)

// Register creates a new account. The password is bcrypt-hashed and never
// stored in the clear.
func (s *DefaultUserService) Register(input models.User) (*models.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || input.Password == "" || input.Name == "" {
		return nil, utils.NewValidationError("name, email and password are required")
	}
	if input.Role == "" {
		input.Role = models.RolePatient
	}
	if !models.ValidRole(input.Role) {
		return nil, utils.NewValidationError(fmt.Sprintf("unknown role %q", input.Role))
	}

	existing, err := s.Repo.GetByEmail(input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return nil, utils.NewConflictError("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := models.User{
		ID:           uuid.New().String(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: string(hash),
		Role:         input.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(&user); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	utils.GetLogger().Info("account registered",
		zap.String("userID", user.ID), zap.String("role", user.Role))
	return &user, nil
}

// Authenticate verifies credentials and issues a signed token. The token's
// hash is persisted on the account and cached for the auth middleware.
func (s *DefaultUserService) Authenticate(email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch account: %w", err)
	}
	if user == nil {
		return nil, "", utils.NewForbiddenError("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", utils.NewForbiddenError("invalid email or password")
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, utils.AuthTokenDuration)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}
	tokenHash := utils.HashToken(token)
	if err := s.Repo.SetTokenHash(user.ID, tokenHash); err != nil {
		return nil, "", fmt.Errorf("failed to store token hash: %w", err)
	}
	if s.AuthCache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		cacheKey := utils.AuthCachePrefix + user.ID
		if err := s.AuthCache.Set(ctx, cacheKey, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("failed to cache auth token", zap.Error(err))
		}
	}
	user.TokenHash = tokenHash
	return user, token, nil
}

// GetUserByID fetches an account by id.
func (s *DefaultUserService) GetUserByID(id string) (*models.User, error) {
	user, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	if user == nil {
		return nil, utils.NewNotFoundError("user not found")
	}
	return user, nil
}

// RevokeAuthToken invalidates the account's current token.
func (s *DefaultUserService) RevokeAuthToken(id string) error {
	if err := s.Repo.SetTokenHash(id, ""); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	if s.AuthCache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.AuthCache.Del(ctx, utils.AuthCachePrefix+id).Err(); err != nil {
			utils.GetLogger().Warn("failed to drop cached auth token", zap.Error(err))
		}
	}
	return nil
}
