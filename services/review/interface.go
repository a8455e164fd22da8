package review

import (
	bookingRepo "curanest/database/repository/booking"
	nurseRepo "curanest/database/repository/nurse"
	reviewRepo "curanest/database/repository/review"
	"curanest/models"
)

// ReviewService manages patient reviews of nurses. A patient may leave one
// review per nurse, and only after completing a booking with that nurse.
type ReviewService interface {
	Create(patientID, nurseProfileID string, rating int, comment string) (*models.Review, error)
	ListByNurse(nurseProfileID string) ([]models.Review, error)
	RatingSummary(nurseProfileID string) (models.RatingSummary, error)
}

// DefaultReviewService implements ReviewService.
type DefaultReviewService struct {
	Repo      reviewRepo.ReviewRepository
	NurseRepo nurseRepo.NurseRepository
	Bookings  bookingRepo.BookingRepository
}
