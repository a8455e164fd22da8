package reviewRepo

import "curanest/models"

// ReviewRepository defines methods for review data access.
type ReviewRepository interface {
	// Create inserts a new review.
	Create(review *models.Review) error
	// ExistsForPair reports whether the patient already reviewed the nurse.
	ExistsForPair(patientID, nurseProfileID string) (bool, error)
	// ListByNurse returns the nurse's reviews, newest first.
	ListByNurse(nurseProfileID string) ([]models.Review, error)
	// RatingSummary aggregates the nurse's average rating and review count.
	RatingSummary(nurseProfileID string) (models.RatingSummary, error)
}
