package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bookingRepo "curanest/database/repository/booking"
	paymentRepo "curanest/database/repository/payment"
	userRepo "curanest/database/repository/user"
	"curanest/models"
	"curanest/utils"
)

// Admin handlers read counts straight from the repositories; everything that
// mutates state goes through the services. Wired in main.
var (
	AdminUserRepo    userRepo.UserRepository
	AdminBookingRepo bookingRepo.BookingRepository
	AdminPaymentRepo paymentRepo.PaymentRepository
)

// ListPendingNursesHandler returns nurse profiles awaiting approval.
func ListPendingNursesHandler(c *gin.Context) {
	profiles, err := NurseService.PendingProfiles()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// ApproveNurseHandler approves a pending nurse profile.
func ApproveNurseHandler(c *gin.Context) {
	if err := NurseService.ApproveProfile(c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Nurse approved"})
}

// RejectNurseHandler rejects a nurse profile, removing its approval.
func RejectNurseHandler(c *gin.Context) {
	if err := NurseService.RejectProfile(c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Nurse rejected"})
}

// ListUsersHandler returns all accounts, optionally filtered by role.
func ListUsersHandler(c *gin.Context) {
	users, err := AdminUserRepo.GetAll(c.Query("role"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// OverrideBookingStatusHandler transitions a booking's status. The request is
// validated against the lifecycle state machine; an admin cannot force an
// illegal transition.
func OverrideBookingStatusHandler(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: status is required"})
		return
	}

	booking, err := BookingService.UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// PlatformStatsHandler reports headline platform counters.
func PlatformStatsHandler(c *gin.Context) {
	patients, err := AdminUserRepo.CountByRole(models.RolePatient)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	nurses, err := AdminUserRepo.CountByRole(models.RoleNurse)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	totalBookings, err := AdminBookingRepo.CountByStatus("")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	confirmed, err := AdminBookingRepo.CountByStatus(models.BookingConfirmed)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	completed, err := AdminBookingRepo.CountByStatus(models.BookingCompleted)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	settled, err := AdminPaymentRepo.TotalSettledAmount()
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"patients":          patients,
		"nurses":            nurses,
		"totalBookings":     totalBookings,
		"confirmedBookings": confirmed,
		"completedBookings": completed,
		"totalSettled":      settled,
	})
}
