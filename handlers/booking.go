package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"curanest/models"
	bookingService "curanest/services/booking"
	"curanest/utils"
)

// BookingService is wired in main before the router starts serving.
var BookingService bookingService.BookingService

// CreateBookingHandler books a slot with a nurse for the caller.
func CreateBookingHandler(c *gin.Context) {
	logger := getLogger(c)

	var input models.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Error("Invalid booking request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	booking, err := BookingService.Create(callerID(c), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// CancelBookingHandler cancels a booking on behalf of its patient or nurse,
// refunding any settled payment.
func CancelBookingHandler(c *gin.Context) {
	booking, err := BookingService.Cancel(c.Param("id"), callerID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ListMyBookingsHandler returns the caller's bookings as a patient.
func ListMyBookingsHandler(c *gin.Context) {
	bookings, err := BookingService.ListForPatient(callerID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ListNurseBookingsHandler returns the caller's bookings as a nurse.
func ListNurseBookingsHandler(c *gin.Context) {
	bookings, err := BookingService.ListForNurse(callerID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// CompleteBookingHandler marks a confirmed booking as completed. Only the
// booking's nurse may call it.
func CompleteBookingHandler(c *gin.Context) {
	bookingID := c.Param("id")

	bookings, err := BookingService.ListForNurse(callerID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	owned := false
	for _, b := range bookings {
		if b.ID == bookingID {
			owned = true
			break
		}
	}
	if !owned {
		utils.RespondError(c, utils.NewForbiddenError("not your booking"))
		return
	}

	booking, err := BookingService.UpdateStatus(bookingID, models.BookingCompleted)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
