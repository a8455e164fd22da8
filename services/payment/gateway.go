package payment

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"curanest/cron"
	"curanest/models"
	"curanest/utils"
)

const mockProvider = "mock_gateway"

// CreateIntent issues a payment intent for a booking awaiting payment. The
// amount is fixed here as hourlyRate * (durationMinutes / 60), rounded to two
// decimals, and must clear the gateway minimum before anything is persisted.
// A booking with an unsettled prior payment gets that payment re-keyed and
// re-priced instead of a second row, keeping the booking/payment relation 1:1.
func (s *DefaultPaymentService) CreateIntent(bookingID string) (*models.PaymentIntent, error) {
	booking, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if booking == nil {
		return nil, utils.NewNotFoundError("booking not found")
	}
	if booking.Status != models.BookingPendingPayment {
		return nil, utils.NewInvalidStateError("booking is not pending payment")
	}

	profile, err := s.NurseRepo.GetByUserID(booking.NurseID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nurse profile: %w", err)
	}
	if profile == nil {
		return nil, utils.NewNotFoundError("nurse profile not found")
	}

	amount := math.Round(profile.HourlyRate*float64(booking.DurationMinutes)/60*100) / 100
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < models.MinPaymentAmount {
		return nil, utils.NewValidationError("payment calculation error")
	}

	ref := "mock_pi_" + uuid.New().String()
	clientSecret := ref + "_secret_" + uuid.New().String()

	existing, err := s.Payments.GetByBookingID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing payment: %w", err)
	}
	switch {
	case existing == nil:
		now := time.Now()
		p := models.Payment{
			ID:                uuid.New().String(),
			BookingID:         booking.ID,
			Amount:            amount,
			Currency:          s.Currency,
			Provider:          mockProvider,
			ProviderPaymentID: ref,
			Status:            models.PaymentPending,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := s.Payments.Create(&p); err != nil {
			return nil, fmt.Errorf("failed to persist payment: %w", err)
		}
	case existing.Status == models.PaymentPending || existing.Status == models.PaymentFailed:
		if err := s.Payments.Reissue(existing.ID, ref, amount); err != nil {
			return nil, fmt.Errorf("failed to reissue payment: %w", err)
		}
	default:
		return nil, utils.NewInvalidStateError("booking already has a settled payment")
	}

	utils.GetLogger().Info("payment intent created",
		zap.String("bookingID", bookingID),
		zap.String("providerPaymentID", ref),
		zap.Float64("amount", amount))

	return &models.PaymentIntent{
		ProviderPaymentID: ref,
		ClientSecret:      clientSecret,
		Amount:            amount,
		Currency:          s.Currency,
		MockPayment:       true,
	}, nil
}

// HandleNotification consumes a settlement notification. It is idempotent: a
// repeated event for the same external reference finds the payment already
// past the transition and changes nothing.
func (s *DefaultPaymentService) HandleNotification(eventType, providerPaymentID string) error {
	switch eventType {
	case EventPaymentSucceeded:
		return s.settleSuccess(providerPaymentID)
	case EventPaymentFailed:
		return s.settleFailure(providerPaymentID)
	default:
		utils.GetLogger().Warn("unhandled settlement event",
			zap.String("eventType", eventType),
			zap.String("providerPaymentID", providerPaymentID))
		return nil
	}
}

func (s *DefaultPaymentService) settleSuccess(providerPaymentID string) error {
	payment, err := s.Payments.GetByProviderPaymentID(providerPaymentID)
	if err != nil {
		return fmt.Errorf("failed to fetch payment: %w", err)
	}
	if payment == nil {
		return utils.NewNotFoundError("payment not found")
	}
	if payment.Status == models.PaymentSuccess || payment.Status == models.PaymentRefunded {
		// Duplicate notification; the transition already happened.
		utils.GetLogger().Info("duplicate settlement notification ignored",
			zap.String("providerPaymentID", providerPaymentID))
		return nil
	}

	booking, err := s.Bookings.GetByID(payment.BookingID)
	if err != nil {
		return fmt.Errorf("failed to fetch booking: %w", err)
	}
	if booking == nil {
		return utils.NewNotFoundError("booking not found")
	}
	profile, err := s.NurseRepo.GetByUserID(booking.NurseID)
	if err != nil {
		return fmt.Errorf("failed to fetch nurse profile: %w", err)
	}
	if profile == nil {
		return utils.NewNotFoundError("nurse profile not found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Settlement.ConfirmPayment(ctx, payment.ID, booking.ID, profile.ID, payment.Amount); err != nil {
		return fmt.Errorf("settlement failed: %w", err)
	}

	utils.GetLogger().Info("payment settled",
		zap.String("bookingID", booking.ID),
		zap.String("providerPaymentID", providerPaymentID),
		zap.Float64("amount", payment.Amount))

	booking.Status = models.BookingConfirmed
	if err := cron.EnqueueBookingReminder(s.Reminders, *booking); err != nil {
		utils.GetLogger().Warn("failed to enqueue booking reminder", zap.Error(err))
	}
	return nil
}

func (s *DefaultPaymentService) settleFailure(providerPaymentID string) error {
	payment, err := s.Payments.GetByProviderPaymentID(providerPaymentID)
	if err != nil {
		return fmt.Errorf("failed to fetch payment: %w", err)
	}
	if payment == nil {
		return utils.NewNotFoundError("payment not found")
	}
	if payment.Status != models.PaymentPending {
		// Failure reports only apply to an open attempt.
		return nil
	}
	if err := s.Payments.SetStatus(payment.ID, models.PaymentFailed); err != nil {
		return fmt.Errorf("failed to record payment failure: %w", err)
	}
	utils.GetLogger().Info("payment failed",
		zap.String("providerPaymentID", providerPaymentID))
	return nil
}

// Refund reverses the booking's settled payment: the payment becomes
// REFUNDED with the full original amount, the nurse's earnings drop by that
// amount, and the booking is cancelled, all in one transaction.
func (s *DefaultPaymentService) Refund(bookingID, reason string) (*models.RefundResult, error) {
	if reason == "" {
		reason = "Booking cancelled"
	}
	payment, err := s.Payments.GetSuccessfulByBookingID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment: %w", err)
	}
	if payment == nil {
		any, err := s.Payments.GetByBookingID(bookingID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch payment: %w", err)
		}
		if any != nil && any.Status == models.PaymentRefunded {
			return nil, utils.NewInvalidStateError("payment already refunded")
		}
		return nil, utils.NewNotFoundError("no successful payment found for this booking")
	}

	booking, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if booking == nil {
		return nil, utils.NewNotFoundError("booking not found")
	}
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
		return nil, fmt.Errorf("refund failed: %w", err)
	}

	utils.GetLogger().Info("payment refunded",
		zap.String("bookingID", bookingID),
		zap.Float64("refundAmount", payment.Amount),
		zap.String("reason", reason))

	return &models.RefundResult{
		RefundAmount: payment.Amount,
		Message:      fmt.Sprintf("Refund of %.2f processed successfully", payment.Amount),
		Reason:       reason,
	}, nil
}

// Process simulates client-side payment processing against the mock gateway.
// The outcome is chosen by the caller (default succeeded); the simulated
// processing delay elapses before any state is read or written.
func (s *DefaultPaymentService) Process(clientSecret, outcome string) (*ProcessResult, error) {
	ref, _, found := strings.Cut(clientSecret, "_secret_")
	if !found || ref == "" {
		return nil, utils.NewValidationError("malformed client secret")
	}
	if outcome == "" {
		outcome = OutcomeSucceeded
	}
	if outcome != OutcomeSucceeded && outcome != OutcomeFailed {
		return nil, utils.NewValidationError(fmt.Sprintf("unknown outcome %q", outcome))
	}

	payment, err := s.Payments.GetByProviderPaymentID(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment: %w", err)
	}
	if payment == nil {
		return nil, utils.NewNotFoundError("payment not found")
	}

	// Simulated gateway latency; nothing is held across it.
	time.Sleep(s.ProcessingDelay)

	if outcome == OutcomeFailed {
		if err := s.HandleNotification(EventPaymentFailed, ref); err != nil {
			return nil, err
		}
		return nil, utils.NewInvalidStateError("payment failed - insufficient funds or card declined")
	}

	if err := s.HandleNotification(EventPaymentSucceeded, ref); err != nil {
		return nil, err
	}
	return &ProcessResult{
		Success:           true,
		Message:           "Payment processed successfully",
		ProviderPaymentID: ref,
	}, nil
}
