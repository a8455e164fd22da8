package models

import "time"

// Booking lifecycle states. A booking starts in PENDING_PAYMENT; settlement
// success moves it to CONFIRMED; an administrative transition closes it as
// COMPLETED; CANCELLED is reachable from PENDING_PAYMENT or CONFIRMED.
const (
	BookingPendingPayment = "PENDING_PAYMENT"
	BookingConfirmed      = "CONFIRMED"
	BookingCompleted      = "COMPLETED"
	BookingCancelled      = "CANCELLED"
)

// ActiveBookingStatuses are the states that hold a nurse's time slot. Two
// bookings in these states may never overlap for the same nurse.
var ActiveBookingStatuses = []string{BookingPendingPayment, BookingConfirmed}

// Booking is one scheduled engagement between exactly one patient and one
// nurse. NurseID references the nurse's user id, not the profile id.
type Booking struct {
	ID              string    `bson:"id" json:"id"`
	PatientID       string    `bson:"patientId" json:"patientId"`
	NurseID         string    `bson:"nurseId" json:"nurseId"`
	ScheduledAt     time.Time `bson:"scheduledAt" json:"scheduledAt"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`
	Status          string    `bson:"status" json:"status"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}

// End returns the exclusive end instant of the booking's [start, end) slot.
func (b Booking) End() time.Time {
	return b.ScheduledAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// ValidBookingStatus reports whether s is a recognized lifecycle state.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingPendingPayment, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// CreateBookingInput is the request body for creating a booking.
type CreateBookingInput struct {
	NurseID         string `json:"nurseId" binding:"required"`
	ScheduledAt     string `json:"scheduledAt" binding:"required"`
	DurationMinutes int    `json:"durationMinutes" binding:"required"`
}
