package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"curanest/models"
	nurseService "curanest/services/nurse"
	reviewService "curanest/services/review"
	"curanest/utils"
)

// NurseService and ReviewService are wired in main before the router starts serving.
var (
	NurseService  nurseService.NurseService
	ReviewService reviewService.ReviewService
)

// CreateNurseProfileHandler creates the caller's nurse profile.
func CreateNurseProfileHandler(c *gin.Context) {
	logger := getLogger(c)

	var input models.NurseProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Error("Invalid nurse profile request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	profile, err := NurseService.CreateProfile(callerID(c), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// GetMyNurseProfileHandler returns the caller's nurse profile.
func GetMyNurseProfileHandler(c *gin.Context) {
	profile, err := NurseService.GetProfileByUserID(callerID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateNurseProfileHandler updates the caller's nurse profile.
func UpdateNurseProfileHandler(c *gin.Context) {
	var input models.NurseProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	profile, err := NurseService.UpdateProfile(callerID(c), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateAvailabilityHandler replaces the caller's weekly availability.
func UpdateAvailabilityHandler(c *gin.Context) {
	logger := getLogger(c)

	var payload map[string][]int
	if err := c.ShouldBindJSON(&payload); err != nil {
		logger.Error("Invalid availability payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	profile, err := NurseService.UpdateAvailability(callerID(c), payload)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ListNursesHandler returns approved nurses, optionally filtered.
func ListNursesHandler(c *gin.Context) {
	var filter models.NurseFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter: " + err.Error()})
		return
	}

	nurses, err := NurseService.ApprovedNurses(filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nurses)
}

// GetNurseAvailabilityHandler returns a nurse's normalized weekly availability.
func GetNurseAvailabilityHandler(c *gin.Context) {
	availability, err := NurseService.AvailabilityByProfileID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, availability)
}

// CreateReviewHandler records the caller's review of a nurse.
func CreateReviewHandler(c *gin.Context) {
	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	review, err := ReviewService.Create(callerID(c), c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// ListReviewsHandler returns a nurse's reviews with their rating summary.
func ListReviewsHandler(c *gin.Context) {
	nurseProfileID := c.Param("id")
	reviews, err := ReviewService.ListByNurse(nurseProfileID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	summary, err := ReviewService.RatingSummary(nurseProfileID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "summary": summary})
}
