package payment

import (
	"context"
	"time"

	"curanest/models"
	"curanest/utils"
)

// In-memory fakes mirroring the Mongo repositories' contracts: lookups return
// (nil, nil) on a miss, settlement transitions are gated on current status.

type fakePaymentRepo struct {
	payments map[string]*models.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*models.Payment)}
}

func (r *fakePaymentRepo) Create(p *models.Payment) error { r.payments[p.ID] = p; return nil }
func (r *fakePaymentRepo) GetByProviderPaymentID(ref string) (*models.Payment, error) {
	for _, p := range r.payments {
		if p.ProviderPaymentID == ref {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakePaymentRepo) GetByBookingID(bookingID string) (*models.Payment, error) {
	for _, p := range r.payments {
		if p.BookingID == bookingID {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakePaymentRepo) GetSuccessfulByBookingID(bookingID string) (*models.Payment, error) {
	for _, p := range r.payments {
		if p.BookingID == bookingID && p.Status == models.PaymentSuccess {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakePaymentRepo) Reissue(id, ref string, amount float64) error {
	p := r.payments[id]
	if p == nil || (p.Status != models.PaymentPending && p.Status != models.PaymentFailed) {
		return nil
	}
	p.ProviderPaymentID = ref
	p.Amount = amount
	p.Status = models.PaymentPending
	return nil
}
func (r *fakePaymentRepo) SetStatus(id, status string) error {
	if p := r.payments[id]; p != nil {
		p.Status = status
	}
	return nil
}
func (r *fakePaymentRepo) TotalSettledAmount() (float64, error) {
	var total float64
	for _, p := range r.payments {
		if p.Status == models.PaymentSuccess {
			total += p.Amount
		}
	}
	return total, nil
}

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
}

func newFakeBookingRepo(bookings ...*models.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *fakeBookingRepo) InsertIfSlotFree(ctx context.Context, booking *models.Booking) error {
	r.bookings[booking.ID] = booking
	return nil
}
func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) { return r.bookings[id], nil }
func (r *fakeBookingRepo) ActiveStartingBefore(nurseID string, end time.Time) ([]models.Booking, error) {
	return nil, nil
}
func (r *fakeBookingRepo) UpdateStatus(id, status string) error {
	if b := r.bookings[id]; b != nil {
		b.Status = status
	}
	return nil
}
func (r *fakeBookingRepo) ListByPatient(patientID string) ([]models.Booking, error) {
	return nil, nil
}
func (r *fakeBookingRepo) ListByNurse(nurseID string) ([]models.Booking, error) { return nil, nil }
func (r *fakeBookingRepo) CountByStatus(status string) (int64, error)           { return 0, nil }

type fakeNurseRepo struct {
	profiles map[string]*models.NurseProfile
}

func newFakeNurseRepo(profiles ...*models.NurseProfile) *fakeNurseRepo {
	r := &fakeNurseRepo{profiles: make(map[string]*models.NurseProfile)}
	for _, p := range profiles {
		r.profiles[p.ID] = p
	}
	return r
}

func (r *fakeNurseRepo) Create(p *models.NurseProfile) error { r.profiles[p.ID] = p; return nil }
func (r *fakeNurseRepo) GetByID(id string) (*models.NurseProfile, error) {
	return r.profiles[id], nil
}
func (r *fakeNurseRepo) GetByUserID(userID string) (*models.NurseProfile, error) {
	for _, p := range r.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
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

type fakeSettlement struct {
	payments *fakePaymentRepo
	bookings *fakeBookingRepo
	nurses   *fakeNurseRepo
	confirms int
	refunds  int
}

func (s *fakeSettlement) ConfirmPayment(ctx context.Context, paymentID, bookingID, profileID string, amount float64) error {
	p := s.payments.payments[paymentID]
	if p == nil {
		return utils.NewNotFoundError("payment not found")
	}
	if p.Status != models.PaymentPending && p.Status != models.PaymentFailed {
		return nil
	}
	s.confirms++
	p.Status = models.PaymentSuccess
	_ = s.bookings.UpdateStatus(bookingID, models.BookingConfirmed)
	if profile := s.nurses.profiles[profileID]; profile != nil {
		profile.TotalEarnings += amount
	}
	return nil
}

func (s *fakeSettlement) RefundPayment(ctx context.Context, paymentID, bookingID, profileID string, amount float64) error {
	p := s.payments.payments[paymentID]
	if p == nil || p.Status != models.PaymentSuccess {
		return utils.NewInvalidStateError("payment is not settled")
	}
	s.refunds++
	now := time.Now()
	p.Status = models.PaymentRefunded
	p.RefundAmount = amount
	p.RefundedAt = &now
	_ = s.bookings.UpdateStatus(bookingID, models.BookingCancelled)
	if profile := s.nurses.profiles[profileID]; profile != nil {
		profile.TotalEarnings -= amount
	}
	return nil
}
