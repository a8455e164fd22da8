package userRepo

import "curanest/models"

// UserRepository defines methods for user data access. Lookup methods return
// (nil, nil) when no record matches; errors are reserved for infrastructure
// failures.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(email string) (*models.User, error)
	// GetAll retrieves all users, optionally filtered by role.
	GetAll(role string) ([]models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update modifies an existing user record.
	Update(user *models.User) error
	// SetTokenHash stores the hash of the user's current auth token.
	SetTokenHash(id, tokenHash string) error
	// Delete removes a user record by its ID.
	Delete(id string) error
	// CountByRole returns the number of users holding the given role;
	// an empty role counts all users.
	CountByRole(role string) (int64, error)
}
