package bookingRepo

import (
	"context"
	"time"

	"curanest/models"
)

// BookingRepository defines methods for booking data access. Lookup methods
// return (nil, nil) when no record matches; errors are reserved for
// infrastructure failures, except InsertIfSlotFree which returns a conflict
// service error when the slot is already held.
type BookingRepository interface {
	// InsertIfSlotFree inserts the booking only if no active booking of the
	// same nurse overlaps its [scheduledAt, scheduledAt+duration) interval.
	// The overlap re-check and the insert run in one transaction.
	InsertIfSlotFree(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(id string) (*models.Booking, error)
	// ActiveStartingBefore returns the nurse's bookings in an active status
	// (PENDING_PAYMENT or CONFIRMED) whose scheduledAt is strictly before end.
	ActiveStartingBefore(nurseID string, end time.Time) ([]models.Booking, error)
	// UpdateStatus writes a new lifecycle status.
	UpdateStatus(id, status string) error
	// ListByPatient returns all bookings made by the patient.
	ListByPatient(patientID string) ([]models.Booking, error)
	// ListByNurse returns all bookings held against the nurse.
	ListByNurse(nurseID string) ([]models.Booking, error)
	// CountByStatus returns the number of bookings in the given status;
	// an empty status counts all bookings.
	CountByStatus(status string) (int64, error)
}
