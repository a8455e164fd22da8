package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"curanest/models"
	userService "curanest/services/user"
	"curanest/utils"
)

// UserService is wired in main before the router starts serving.
var UserService userService.UserService

// RegisterHandler handles account registration.
func RegisterHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.User
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	registered, err := UserService.Register(req)
	if err != nil {
		logger.Error("User registration failed", zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, registered)
}

// LoginHandler authenticates a user and returns a bearer token.
func LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	user, token, err := UserService.Authenticate(req.Email, req.Password)
	if err != nil {
		logger.Warn("Login failed", zap.String("email", req.Email))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// LogoutHandler revokes the caller's current token.
func LogoutHandler(c *gin.Context) {
	if err := UserService.RevokeAuthToken(callerID(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// MeHandler returns the authenticated user's account.
func MeHandler(c *gin.Context) {
	user, err := UserService.GetUserByID(callerID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
