package nurse

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"curanest/models"
	"curanest/utils"
)

// CreateProfile creates the nurse's profile. Only accounts with role NURSE
// may own one, and only one per account. New profiles start unapproved and
// invisible to patients until an admin approves them.
func (s *DefaultNurseService) CreateProfile(userID string, input models.NurseProfileInput) (*models.NurseProfile, error) {
	user, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	if user == nil || user.Role != models.RoleNurse {
		return nil, utils.NewForbiddenError("only users with role NURSE can create a profile")
	}

	existing, err := s.Repo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}
	if existing != nil {
		return nil, utils.NewConflictError("profile already exists for this nurse")
	}
	if input.HourlyRate <= 0 {
		return nil, utils.NewValidationError("hourly rate must be positive")
	}

	now := time.Now()
	profile := models.NurseProfile{
		ID:             uuid.New().String(),
		UserID:         userID,
		Specialization: input.Specialization,
		HourlyRate:     input.HourlyRate,
		Location:       input.Location,
		Bio:            input.Bio,
		Approved:       false,
		Availability:   models.WeeklyAvailability{}.Normalize(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.Create(&profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	utils.GetLogger().Info("nurse profile created",
		zap.String("profileID", profile.ID), zap.String("userID", userID))
	return &profile, nil
}

// GetProfileByUserID returns the nurse's own profile.
func (s *DefaultNurseService) GetProfileByUserID(userID string) (*models.NurseProfile, error) {
	profile, err := s.Repo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	if profile == nil {
		return nil, utils.NewNotFoundError("profile not found")
	}
	return profile, nil
}

// UpdateProfile modifies the caller-editable profile fields.
func (s *DefaultNurseService) UpdateProfile(userID string, input models.NurseProfileInput) (*models.NurseProfile, error) {
	profile, err := s.GetProfileByUserID(userID)
	if err != nil {
		return nil, err
	}
	if input.HourlyRate < 0 {
		return nil, utils.NewValidationError("hourly rate must not be negative")
	}
	if input.Specialization != nil {
		profile.Specialization = input.Specialization
	}
	if input.HourlyRate > 0 {
		profile.HourlyRate = input.HourlyRate
	}
	if input.Location != "" {
		profile.Location = input.Location
	}
	if input.Bio != "" {
		profile.Bio = input.Bio
	}
	profile.UpdatedAt = time.Now()
	if err := s.Repo.Update(profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

// UpdateAvailability validates the submitted weekly schedule strictly, then
// stores its normalized form. Unknown days or out-of-range hours in the
// payload are rejected rather than silently coerced.
func (s *DefaultNurseService) UpdateAvailability(userID string, payload map[string][]int) (*models.NurseProfile, error) {
	if payload == nil {
		return nil, utils.NewValidationError("availability payload is required")
	}
	for day, hours := range payload {
		if !models.ValidDayLabel(day) {
			return nil, utils.NewValidationError(fmt.Sprintf("invalid day: %s", day))
		}
		for _, h := range hours {
			if !models.ValidBookableHour(h) {
				return nil, utils.NewValidationError(fmt.Sprintf("invalid hour %d in %s", h, day))
			}
		}
	}

	profile, err := s.GetProfileByUserID(userID)
	if err != nil {
		return nil, err
	}
	normalized := models.WeeklyAvailability(payload).Normalize()
	if err := s.Repo.UpdateAvailability(userID, normalized); err != nil {
		return nil, fmt.Errorf("failed to store availability: %w", err)
	}
	profile.Availability = normalized
	return profile, nil
}

// AvailabilityByProfileID exposes a nurse's schedule publicly. The result is
// always the full normalized seven-day shape, regardless of what is stored.
func (s *DefaultNurseService) AvailabilityByProfileID(profileID string) (models.WeeklyAvailability, error) {
	profile, err := s.Repo.GetByID(profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	if profile == nil {
		return nil, utils.NewNotFoundError("profile not found")
	}
	return profile.Availability.Normalize(), nil
}

// ApproveProfile marks the profile visible and bookable.
func (s *DefaultNurseService) ApproveProfile(profileID string) error {
	if err := s.requireProfile(profileID); err != nil {
		return err
	}
	if err := s.Repo.SetApproved(profileID, true); err != nil {
		return fmt.Errorf("failed to approve profile: %w", err)
	}
	return nil
}

// RejectProfile removes a pending profile.
func (s *DefaultNurseService) RejectProfile(profileID string) error {
	if err := s.requireProfile(profileID); err != nil {
		return err
	}
	if err := s.Repo.Delete(profileID); err != nil {
		return fmt.Errorf("failed to reject profile: %w", err)
	}
	return nil
}

// ApprovedNurses lists bookable nurses for patients, with optional filters.
func (s *DefaultNurseService) ApprovedNurses(filter models.NurseFilter) ([]models.NurseProfile, error) {
	profiles, err := s.Repo.ListApproved(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved nurses: %w", err)
	}
	return profiles, nil
}

// PendingProfiles lists profiles awaiting admin review.
func (s *DefaultNurseService) PendingProfiles() ([]models.NurseProfile, error) {
	profiles, err := s.Repo.ListPending()
	if err != nil {
		return nil, fmt.Errorf("failed to list pending profiles: %w", err)
	}
	return profiles, nil
}

func (s *DefaultNurseService) requireProfile(profileID string) error {
	profile, err := s.Repo.GetByID(profileID)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}
	if profile == nil {
		return utils.NewNotFoundError("profile not found")
	}
	return nil
}
