package review

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curanest/models"
	"curanest/utils"
)

type fakeReviewRepo struct {
	reviews []models.Review
}

func (r *fakeReviewRepo) Create(review *models.Review) error {
	r.reviews = append(r.reviews, *review)
	return nil
}
func (r *fakeReviewRepo) ExistsForPair(patientID, nurseProfileID string) (bool, error) {
	for _, rv := range r.reviews {
		if rv.PatientID == patientID && rv.NurseProfileID == nurseProfileID {
			return true, nil
		}
	}
	return false, nil
}
func (r *fakeReviewRepo) ListByNurse(nurseProfileID string) ([]models.Review, error) {
	var out []models.Review
	for _, rv := range r.reviews {
		if rv.NurseProfileID == nurseProfileID {
			out = append(out, rv)
		}
	}
	return out, nil
}
func (r *fakeReviewRepo) RatingSummary(nurseProfileID string) (models.RatingSummary, error) {
	var sum, n int
	for _, rv := range r.reviews {
		if rv.NurseProfileID == nurseProfileID {
			sum += rv.Rating
			n++
		}
	}
	if n == 0 {
		return models.RatingSummary{}, nil
	}
	return models.RatingSummary{AverageRating: float64(sum) / float64(n), TotalReviews: n}, nil
}

type fakeNurseRepo struct {
	profiles map[string]*models.NurseProfile
}

func (r *fakeNurseRepo) Create(p *models.NurseProfile) error             { return nil }
func (r *fakeNurseRepo) GetByID(id string) (*models.NurseProfile, error) { return r.profiles[id], nil }
func (r *fakeNurseRepo) GetByUserID(userID string) (*models.NurseProfile, error) {
	return nil, nil
}
func (r *fakeNurseRepo) Update(p *models.NurseProfile) error { return nil }
func (r *fakeNurseRepo) UpdateAvailability(userID string, availability models.WeeklyAvailability) error {
	return nil
}
func (r *fakeNurseRepo) SetApproved(id string, approved bool) error { return nil }
func (r *fakeNurseRepo) Delete(id string) error                     { return nil }
func (r *fakeNurseRepo) ListApproved(filter models.NurseFilter) ([]models.NurseProfile, error) {
	return nil, nil
}
func (r *fakeNurseRepo) ListPending() ([]models.NurseProfile, error) { return nil, nil }

type fakeBookingRepo struct {
	bookings []models.Booking
}

func (r *fakeBookingRepo) InsertIfSlotFree(ctx context.Context, booking *models.Booking) error {
	return nil
}
func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) { return nil, nil }
func (r *fakeBookingRepo) ActiveStartingBefore(nurseID string, end time.Time) ([]models.Booking, error) {
	return nil, nil
}
func (r *fakeBookingRepo) UpdateStatus(id, status string) error { return nil }
func (r *fakeBookingRepo) ListByPatient(patientID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.PatientID == patientID {
			out = append(out, b)
		}
	}
	return out, nil
}
func (r *fakeBookingRepo) ListByNurse(nurseID string) ([]models.Booking, error) { return nil, nil }
func (r *fakeBookingRepo) CountByStatus(status string) (int64, error)           { return 0, nil }

func newTestService(bookings ...models.Booking) *DefaultReviewService {
	return &DefaultReviewService{
		Repo: &fakeReviewRepo{},
		NurseRepo: &fakeNurseRepo{profiles: map[string]*models.NurseProfile{
			"profile-1": {ID: "profile-1", UserID: "nurse-1"},
		}},
		Bookings: &fakeBookingRepo{bookings: bookings},
	}
}

func TestCreateReview(t *testing.T) {
	svc := newTestService(models.Booking{
		ID: "b1", PatientID: "patient-1", NurseID: "nurse-1", Status: models.BookingCompleted,
	})

	review, err := svc.Create("patient-1", "profile-1", 5, "very attentive")
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)

	summary, err := svc.RatingSummary("profile-1")
	require.NoError(t, err)
	assert.Equal(t, 5.0, summary.AverageRating)
	assert.Equal(t, 1, summary.TotalReviews)

	// One review per (patient, nurse) pair.
	_, err = svc.Create("patient-1", "profile-1", 4, "")
	assert.True(t, utils.HasCode(err, utils.CodeConflict))
}

func TestCreateReviewRequiresCompletedBooking(t *testing.T) {
	svc := newTestService(models.Booking{
		ID: "b1", PatientID: "patient-1", NurseID: "nurse-1", Status: models.BookingConfirmed,
	})

	_, err := svc.Create("patient-1", "profile-1", 5, "")
	assert.True(t, utils.HasCode(err, utils.CodeInvalidState))

	// No booking at all.
	_, err = svc.Create("patient-2", "profile-1", 5, "")
	assert.True(t, utils.HasCode(err, utils.CodeInvalidState))
}

func TestCreateReviewValidation(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create("patient-1", "profile-1", 0, "")
	assert.True(t, utils.HasCode(err, utils.CodeValidation))

	_, err = svc.Create("patient-1", "profile-1", 6, "")
	assert.True(t, utils.HasCode(err, utils.CodeValidation))

	_, err = svc.Create("patient-1", "missing", 3, "")
	assert.True(t, utils.HasCode(err, utils.CodeNotFound))
}
