package booking

import (
	bookingRepo "curanest/database/repository/booking"
	nurseRepo "curanest/database/repository/nurse"
	paymentRepo "curanest/database/repository/payment"
	settlementRepo "curanest/database/repository/settlement"
	userRepo "curanest/database/repository/user"
	"curanest/models"
)

// BookingService owns the booking lifecycle: slot-validated creation,
// cancellation (with refund when the payment already settled) and the
// administrative transitions.
type BookingService interface {
	Create(patientID string, input models.CreateBookingInput) (*models.Booking, error)
	Cancel(bookingID, callerID string) (*models.Booking, error)
	UpdateStatus(bookingID, status string) (*models.Booking, error)
	ListForPatient(patientID string) ([]models.Booking, error)
	ListForNurse(nurseID string) ([]models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo       bookingRepo.BookingRepository
	UserRepo   userRepo.UserRepository
	NurseRepo  nurseRepo.NurseRepository
	Payments   paymentRepo.PaymentRepository
	Settlement settlementRepo.SettlementRepository

	locks nurseLocks
}
