package models

import "time"

// Payment settlement states.
const (
	PaymentPending  = "PENDING"
	PaymentSuccess  = "SUCCESS"
	PaymentFailed   = "FAILED"
	PaymentRefunded = "REFUNDED"
)

// MinPaymentAmount is the smallest amount the mock gateway accepts.
const MinPaymentAmount = 1.0

// Payment is one settlement attempt tied to exactly one booking. The amount
// is fixed at intent creation as hourlyRate * (durationMinutes / 60), rounded
// to two decimals. ProviderPaymentID is the external reference correlating
// asynchronous settlement notifications with this record.
type Payment struct {
	ID                string     `bson:"id" json:"id"`
	BookingID         string     `bson:"bookingId" json:"bookingId"`
	Amount            float64    `bson:"amount" json:"amount"`
	Currency          string     `bson:"currency" json:"currency"`
	Provider          string     `bson:"provider" json:"provider"`
	ProviderPaymentID string     `bson:"providerPaymentId" json:"providerPaymentId"`
	Status            string     `bson:"status" json:"status"`
	RefundAmount      float64    `bson:"refundAmount,omitempty" json:"refundAmount,omitempty"`
	RefundedAt        *time.Time `bson:"refundedAt,omitempty" json:"refundedAt,omitempty"`
	CreatedAt         time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// PaymentIntent is returned to the caller after intent creation. The client
// secret is what the (mock) client-side flow hands back for processing.
type PaymentIntent struct {
	ProviderPaymentID string  `json:"providerPaymentId"`
	ClientSecret      string  `json:"clientSecret"`
	Amount            float64 `json:"amount"`
	Currency          string  `json:"currency"`
	MockPayment       bool    `json:"mockPayment"`
}

// RefundResult confirms a processed refund.
type RefundResult struct {
	RefundAmount float64 `json:"refundAmount"`
	Message      string  `json:"message"`
	Reason       string  `json:"reason"`
}

// WebhookEvent is the settlement notification payload the mock gateway posts.
type WebhookEvent struct {
	EventType         string `json:"eventType"`
	ProviderPaymentID string `json:"paymentIntentId"`
}
