package user

import (
	"github.com/go-redis/redis/v8"

	userRepo "curanest/database/repository/user"
	"curanest/models"
)

// UserService defines account registration, authentication and lookup.
type UserService interface {
	Register(input models.User) (*models.User, error)
	Authenticate(email, password string) (*models.User, string, error)
	GetUserByID(id string) (*models.User, error)
	RevokeAuthToken(id string) error
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo userRepo.UserRepository
	// AuthCache holds token hashes for fast middleware checks. Optional; a
	// nil client falls back to repository lookups only.
	AuthCache *redis.Client
}
