package review

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"curanest/models"
	"curanest/utils"
)

// Create records a review after verifying the patient actually completed a
// booking with the nurse and has not reviewed them before.
func (s *DefaultReviewService) Create(patientID, nurseProfileID string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, utils.NewValidationError("rating must be between 1 and 5")
	}

	profile, err := s.NurseRepo.GetByID(nurseProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nurse profile: %w", err)
	}
	if profile == nil {
		return nil, utils.NewNotFoundError("nurse profile not found")
	}

	bookings, err := s.Bookings.ListByPatient(patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	completed := false
	for _, b := range bookings {
		if b.NurseID == profile.UserID && b.Status == models.BookingCompleted {
			completed = true
			break
		}
	}
	if !completed {
		return nil, utils.NewInvalidStateError("no completed booking with this nurse")
	}

	exists, err := s.Repo.ExistsForPair(patientID, nurseProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if exists {
		return nil, utils.NewConflictError("nurse already reviewed")
	}

	review := models.Review{
		ID:             uuid.New().String(),
		PatientID:      patientID,
		NurseProfileID: nurseProfileID,
		Rating:         rating,
		Comment:        comment,
		CreatedAt:      time.Now(),
	}
	if err := s.Repo.Create(&review); err != nil {
		return nil, fmt.Errorf("failed to persist review: %w", err)
	}

	utils.GetLogger().Info("review created",
		zap.String("patientID", patientID),
		zap.String("nurseProfileID", nurseProfileID),
		zap.Int("rating", rating))
	return &review, nil
}

func (s *DefaultReviewService) ListByNurse(nurseProfileID string) ([]models.Review, error) {
	return s.Repo.ListByNurse(nurseProfileID)
}

func (s *DefaultReviewService) RatingSummary(nurseProfileID string) (models.RatingSummary, error) {
	return s.Repo.RatingSummary(nurseProfileID)
}
