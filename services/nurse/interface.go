package nurse

import (
	nurseRepo "curanest/database/repository/nurse"
	userRepo "curanest/database/repository/user"
	"curanest/models"
)

// NurseService manages nurse profiles and their weekly availability.
type NurseService interface {
	CreateProfile(userID string, input models.NurseProfileInput) (*models.NurseProfile, error)
	GetProfileByUserID(userID string) (*models.NurseProfile, error)
	UpdateProfile(userID string, input models.NurseProfileInput) (*models.NurseProfile, error)
	UpdateAvailability(userID string, payload map[string][]int) (*models.NurseProfile, error)
	AvailabilityByProfileID(profileID string) (models.WeeklyAvailability, error)
	ApproveProfile(profileID string) error
	RejectProfile(profileID string) error
	ApprovedNurses(filter models.NurseFilter) ([]models.NurseProfile, error)
	PendingProfiles() ([]models.NurseProfile, error)
}

// DefaultNurseService implements NurseService.
type DefaultNurseService struct {
	Repo     nurseRepo.NurseRepository
	UserRepo userRepo.UserRepository
}
