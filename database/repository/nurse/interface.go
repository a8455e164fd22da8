package nurseRepo

import "curanest/models"

// NurseRepository defines methods for nurse profile data access. Lookup
// methods return (nil, nil) when no record matches; errors are reserved for
// infrastructure failures.
//
// TotalEarnings is deliberately absent from this interface: the earnings
// ledger is mutated only through the settlement repository's transactional
// writes.
type NurseRepository interface {
	// Create inserts a new nurse profile.
	Create(profile *models.NurseProfile) error
	// GetByID retrieves a profile by its profile id.
	GetByID(id string) (*models.NurseProfile, error)
	// GetByUserID retrieves the profile owned by the given user.
	GetByUserID(userID string) (*models.NurseProfile, error)
	// Update modifies an existing profile.
	Update(profile *models.NurseProfile) error
	// UpdateAvailability replaces the stored weekly availability.
	UpdateAvailability(userID string, availability models.WeeklyAvailability) error
	// SetApproved flips the admin approval flag.
	SetApproved(id string, approved bool) error
	// Delete removes a profile by its profile id.
	Delete(id string) error
	// ListApproved returns approved profiles matching the filter.
	ListApproved(filter models.NurseFilter) ([]models.NurseProfile, error)
	// ListPending returns profiles awaiting admin approval.
	ListPending() ([]models.NurseProfile, error)
}
