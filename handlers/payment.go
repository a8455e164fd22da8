package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"curanest/models"
	paymentService "curanest/services/payment"
	"curanest/utils"
)

// PaymentService is wired in main before the router starts serving.
var PaymentService paymentService.PaymentService

// CreatePaymentIntentHandler issues a payment intent for a pending booking.
func CreatePaymentIntentHandler(c *gin.Context) {
	var req struct {
		BookingID string `json:"bookingId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.BookingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: bookingId is required"})
		return
	}

	intent, err := PaymentService.CreateIntent(req.BookingID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, intent)
}

// ProcessPaymentHandler runs the mock client-side processing flow. Outcome
// defaults to a successful settlement.
func ProcessPaymentHandler(c *gin.Context) {
	var req struct {
		ClientSecret string `json:"clientSecret"`
		Outcome      string `json:"outcome"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ClientSecret == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: clientSecret is required"})
		return
	}

	result, err := PaymentService.Process(req.ClientSecret, req.Outcome)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RefundPaymentHandler reverses a booking's settled payment. Only a party to
// the booking (or an admin) may trigger it.
func RefundPaymentHandler(c *gin.Context) {
	var req struct {
		BookingID string `json:"bookingId"`
		Reason    string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.BookingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: bookingId is required"})
		return
	}

	booking, err := AdminBookingRepo.GetByID(req.BookingID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if booking == nil {
		utils.RespondError(c, utils.NewNotFoundError("booking not found"))
		return
	}
	caller := callerID(c)
	if role, _ := c.Get("role"); role != models.RoleAdmin &&
		booking.PatientID != caller && booking.NurseID != caller {
		utils.RespondError(c, utils.NewForbiddenError("you can only refund your own bookings"))
		return
	}

	result, err := PaymentService.Refund(req.BookingID, req.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PaymentWebhookHandler consumes settlement notifications from the gateway.
func PaymentWebhookHandler(c *gin.Context) {
	logger := getLogger(c)

	var event models.WebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		logger.Error("Invalid webhook payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
		return
	}

	if err := PaymentService.HandleNotification(event.EventType, event.ProviderPaymentID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
