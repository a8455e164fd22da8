package paymentRepo

import "curanest/models"

// PaymentRepository defines methods for payment data access. Lookup methods
// return (nil, nil) when no record matches; errors are reserved for
// infrastructure failures.
//
// Status transitions that must be atomic with booking and earnings writes
// (settlement success, refund) live in the settlement repository, not here.
type PaymentRepository interface {
	// Create inserts a new payment record.
	Create(payment *models.Payment) error
	// GetByProviderPaymentID retrieves a payment by its external reference.
	GetByProviderPaymentID(ref string) (*models.Payment, error)
	// GetByBookingID retrieves the payment tied to a booking.
	GetByBookingID(bookingID string) (*models.Payment, error)
	// GetSuccessfulByBookingID retrieves the booking's payment only if its
	// status is SUCCESS.
	GetSuccessfulByBookingID(bookingID string) (*models.Payment, error)
	// Reissue re-keys a non-final payment with a fresh external reference and
	// amount, resetting it to PENDING.
	Reissue(id, providerPaymentID string, amount float64) error
	// SetStatus writes a new settlement status.
	SetStatus(id, status string) error
	// TotalSettledAmount sums the amounts of all SUCCESS payments.
	TotalSettledAmount() (float64, error)
}
