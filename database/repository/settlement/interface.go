package settlementRepo

import "context"

// SettlementRepository owns the multi-document transitions that must land as
// one atomic unit: payment status, booking status and the nurse's earnings
// balance. It is the ONLY code path that mutates TotalEarnings. Each method
// is gated on the payment's current status inside the transaction, so a
// repeated call for the same payment matches nothing and changes nothing.
type SettlementRepository interface {
	// ConfirmPayment applies a successful settlement: payment -> SUCCESS,
	// booking -> CONFIRMED, earnings += amount.
	ConfirmPayment(ctx context.Context, paymentID, bookingID, profileID string, amount float64) error
	// RefundPayment reverses a settled payment: payment -> REFUNDED (with
	// refund timestamp and full refund amount), booking -> CANCELLED,
	// earnings -= amount.
	RefundPayment(ctx context.Context, paymentID, bookingID, profileID string, amount float64) error
}
