package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"curanest/models"
	"curanest/utils"
)

// Create validates the requested slot against the nurse's availability and
// active bookings, then inserts a booking in PENDING_PAYMENT. Creation for a
// given nurse is serialized (in-process lock) and the overlap check is
// re-validated inside the insert transaction, so concurrent requests cannot
// double-book a slot.
func (s *DefaultBookingService) Create(patientID string, input models.CreateBookingInput) (*models.Booking, error) {
	if input.DurationMinutes <= 0 {
		return nil, utils.NewValidationError("duration must be a positive number of minutes")
	}
	start, err := time.Parse(time.RFC3339, input.ScheduledAt)
	if err != nil {
		return nil, utils.NewValidationError("invalid scheduledAt; expected an RFC 3339 timestamp")
	}
	start = start.Local()

	nurse, err := s.UserRepo.GetByID(input.NurseID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nurse: %w", err)
	}
	if nurse == nil || nurse.Role != models.RoleNurse {
		return nil, utils.NewNotFoundError("nurse not found")
	}
	profile, err := s.NurseRepo.GetByUserID(input.NurseID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nurse profile: %w", err)
	}
	if profile == nil || !profile.Approved {
		return nil, utils.NewInvalidStateError("nurse is not approved")
	}

	lock := s.locks.forNurse(input.NurseID)
	lock.Lock()
	defer lock.Unlock()

	end := start.Add(time.Duration(input.DurationMinutes) * time.Minute)
	active, err := s.Repo.ActiveStartingBefore(input.NurseID, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing bookings: %w", err)
	}
	if err := ValidateSlot(profile.Availability.Normalize(), active, start, input.DurationMinutes); err != nil {
		return nil, err
	}

	booking := models.Booking{
		ID:              uuid.New().String(),
		PatientID:       patientID,
		NurseID:         input.NurseID,
		ScheduledAt:     start,
		DurationMinutes: input.DurationMinutes,
		Status:          models.BookingPendingPayment,
		CreatedAt:       time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Repo.InsertIfSlotFree(ctx, &booking); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("booking created",
		zap.String("bookingID", booking.ID),
		zap.String("nurseID", booking.NurseID),
		zap.Time("scheduledAt", booking.ScheduledAt))
	return &booking, nil
}

// Cancel moves a booking to CANCELLED. Only the patient or the nurse on the
// booking may cancel, and only from PENDING_PAYMENT or CONFIRMED. A settled
// payment is reversed in the same transaction that writes the status: the
// payment becomes REFUNDED and the nurse's earnings drop by its amount.
func (s *DefaultBookingService) Cancel(bookingID, callerID string) (*models.Booking, error) {
	booking, err := s.requireBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.PatientID != callerID && booking.NurseID != callerID {
		return nil, utils.NewForbiddenError("you can only cancel your own bookings")
	}
	return s.cancel(booking)
}

// UpdateStatus is the administrative transition. It is routed through the
// same lifecycle rules as the settlement paths rather than writing the
// status blindly: completing requires a confirmed booking, and cancelling
// reuses the refund-aware cancellation (without the standing check).
func (s *DefaultBookingService) UpdateStatus(bookingID, status string) (*models.Booking, error) {
	if !models.ValidBookingStatus(status) {
		return nil, utils.NewValidationError(fmt.Sprintf("unknown booking status %q", status))
	}
	booking, err := s.requireBooking(bookingID)
	if err != nil {
		return nil, err
	}

	switch status {
	case models.BookingCompleted:
		if booking.Status != models.BookingConfirmed {
			return nil, utils.NewInvalidStateError("only confirmed bookings can be completed")
		}
		if err := s.Repo.UpdateStatus(booking.ID, models.BookingCompleted); err != nil {
			return nil, fmt.Errorf("failed to complete booking: %w", err)
		}
		booking.Status = models.BookingCompleted
		return booking, nil
	case models.BookingCancelled:
		return s.cancel(booking)
	default:
		// PENDING_PAYMENT exists only at creation; CONFIRMED only via
		// settlement success.
		return nil, utils.NewInvalidStateError(fmt.Sprintf("cannot transition a booking to %s directly", status))
	}
}

// ListForPatient returns the patient's bookings.
func (s *DefaultBookingService) ListForPatient(patientID string) ([]models.Booking, error) {
	bookings, err := s.Repo.ListByPatient(patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// ListForNurse returns the bookings held against the nurse.
func (s *DefaultBookingService) ListForNurse(nurseID string) ([]models.Booking, error) {
	bookings, err := s.Repo.ListByNurse(nurseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (s *DefaultBookingService) cancel(booking *models.Booking) (*models.Booking, error) {
	if booking.Status != models.BookingPendingPayment && booking.Status != models.BookingConfirmed {
		return nil, utils.NewInvalidStateError(fmt.Sprintf("a %s booking cannot be cancelled", booking.Status))
	}

	payment, err := s.Payments.GetByBookingID(booking.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment: %w", err)
	}

	if payment != nil && payment.Status == models.PaymentSuccess {
		profile, err := s.NurseRepo.GetByUserID(booking.NurseID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch nurse profile: %w", err)
		}
		if profile == nil {
			return nil, utils.NewNotFoundError("nurse profile not found")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Settlement.RefundPayment(ctx, payment.ID, booking.ID, profile.ID, payment.Amount); err != nil {
			return nil, fmt.Errorf("failed to reverse payment: %w", err)
		}
		utils.GetLogger().Info("booking cancelled with refund",
			zap.String("bookingID", booking.ID),
			zap.Float64("refundAmount", payment.Amount))
	} else {
		if err := s.Repo.UpdateStatus(booking.ID, models.BookingCancelled); err != nil {
			return nil, fmt.Errorf("failed to cancel booking: %w", err)
		}
		utils.GetLogger().Info("booking cancelled", zap.String("bookingID", booking.ID))
	}

	booking.Status = models.BookingCancelled
	return booking, nil
}

func (s *DefaultBookingService) requireBooking(bookingID string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if booking == nil {
		return nil, utils.NewNotFoundError("booking not found")
	}
	return booking, nil
}
