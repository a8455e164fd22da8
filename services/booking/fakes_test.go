package booking

import (
	"context"
	"sync"
	"time"

	"curanest/models"
	"curanest/utils"
)

// In-memory repository fakes. They mirror the Mongo implementations'
// contracts: lookups return (nil, nil) on a miss, and InsertIfSlotFree
// re-checks overlap before inserting.

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) { return r.users[id], nil }
func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) GetAll(role string) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if role == "" || u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}
func (r *fakeUserRepo) Create(u *models.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) Update(u *models.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) SetTokenHash(id, hash string) error {
	if u := r.users[id]; u != nil {
		u.TokenHash = hash
	}
	return nil
}
func (r *fakeUserRepo) Delete(id string) error { delete(r.users, id); return nil }
func (r *fakeUserRepo) CountByRole(role string) (int64, error) {
	var n int64
	for _, u := range r.users {
		if role == "" || u.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeNurseRepo struct {
	profiles map[string]*models.NurseProfile // keyed by profile id
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
func (r *fakeNurseRepo) Update(p *models.NurseProfile) error { r.profiles[p.ID] = p; return nil }
func (r *fakeNurseRepo) UpdateAvailability(userID string, availability models.WeeklyAvailability) error {
	p, _ := r.GetByUserID(userID)
	if p != nil {
		p.Availability = availability
	}
	return nil
}
func (r *fakeNurseRepo) SetApproved(id string, approved bool) error {
	if p := r.profiles[id]; p != nil {
		p.Approved = approved
	}
	return nil
}
func (r *fakeNurseRepo) Delete(id string) error { delete(r.profiles, id); return nil }
func (r *fakeNurseRepo) ListApproved(filter models.NurseFilter) ([]models.NurseProfile, error) {
	var out []models.NurseProfile
	for _, p := range r.profiles {
		if p.Approved {
			out = append(out, *p)
		}
	}
	return out, nil
}
func (r *fakeNurseRepo) ListPending() ([]models.NurseProfile, error) {
	var out []models.NurseProfile
	for _, p := range r.profiles {
		if !p.Approved {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
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
	r.mu.Lock()
	defer r.mu.Unlock()
	end := booking.End()
	for _, b := range r.bookings {
		if b.NurseID != booking.NurseID {
			continue
		}
		if b.Status != models.BookingPendingPayment && b.Status != models.BookingConfirmed {
			continue
		}
		if b.ScheduledAt.Before(end) && b.End().After(booking.ScheduledAt) {
			return utils.NewConflictError("nurse already booked for this time slot")
		}
	}
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bookings[id], nil
}

func (r *fakeBookingRepo) ActiveStartingBefore(nurseID string, end time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.NurseID != nurseID || !b.ScheduledAt.Before(end) {
			continue
		}
		if b.Status == models.BookingPendingPayment || b.Status == models.BookingConfirmed {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatus(id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b := r.bookings[id]; b != nil {
		b.Status = status
	}
	return nil
}

func (r *fakeBookingRepo) ListByPatient(patientID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.PatientID == patientID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByNurse(nurseID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.NurseID == nurseID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CountByStatus(status string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if status == "" || b.Status == status {
			n++
		}
	}
	return n, nil
}

type fakePaymentRepo struct {
	payments map[string]*models.Payment // keyed by payment id
}

func newFakePaymentRepo(payments ...*models.Payment) *fakePaymentRepo {
	r := &fakePaymentRepo{payments: make(map[string]*models.Payment)}
	for _, p := range payments {
		r.payments[p.ID] = p
	}
	return r
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

// fakeSettlement applies the same three-way transition the Mongo settlement
// repository performs transactionally, against the in-memory fakes.
type fakeSettlement struct {
	payments *fakePaymentRepo
	bookings *fakeBookingRepo
	nurses   *fakeNurseRepo
}

func (s *fakeSettlement) ConfirmPayment(ctx context.Context, paymentID, bookingID, profileID string, amount float64) error {
	p := s.payments.payments[paymentID]
	if p == nil || (p.Status != models.PaymentPending && p.Status != models.PaymentFailed) {
		return nil
	}
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
		return nil
	}
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
