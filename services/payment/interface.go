package payment

import (
	"time"

	"github.com/hibiken/asynq"

	bookingRepo "curanest/database/repository/booking"
	nurseRepo "curanest/database/repository/nurse"
	paymentRepo "curanest/database/repository/payment"
	settlementRepo "curanest/database/repository/settlement"
	"curanest/models"
)

// Webhook event types posted by the mock gateway.
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
)

// Settlement outcomes a caller may request from the mock processor.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
)

// ProcessResult reports the outcome of mock payment processing.
type ProcessResult struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	ProviderPaymentID string `json:"paymentIntentId"`
}

// PaymentService is the mock settlement gateway: it issues payment intents,
// consumes settlement notifications and drives the refund flow. Settlement
// success and refund land atomically across payment, booking and earnings.
type PaymentService interface {
	CreateIntent(bookingID string) (*models.PaymentIntent, error)
	HandleNotification(eventType, providerPaymentID string) error
	Refund(bookingID, reason string) (*models.RefundResult, error)
	Process(clientSecret, outcome string) (*ProcessResult, error)
}

// DefaultPaymentService implements PaymentService.
type DefaultPaymentService struct {
	Payments   paymentRepo.PaymentRepository
	Bookings   bookingRepo.BookingRepository
	NurseRepo  nurseRepo.NurseRepository
	Settlement settlementRepo.SettlementRepository

	// Currency stamped on new payments, e.g. "INR".
	Currency string
	// ProcessingDelay simulates gateway latency in Process. It elapses
	// before any state is touched; no lock or transaction spans it.
	ProcessingDelay time.Duration
	// Reminders enqueues booking reminders after settlement success.
	// Optional; nil disables reminders.
	Reminders *asynq.Client
}
