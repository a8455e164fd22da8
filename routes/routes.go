package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	userRepo "curanest/database/repository/user"
	"curanest/handlers"
	"curanest/middleware"
	"curanest/models"
)

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(r *gin.Engine, users userRepo.UserRepository) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", handlers.RegisterHandler)
		api.POST("/login", handlers.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(users))
		api.POST("/logout", handlers.LogoutHandler)
		api.GET("/me", handlers.MeHandler)
	}
}

// RegisterNurseRoutes registers nurse discovery and profile endpoints.
func RegisterNurseRoutes(r *gin.Engine, users userRepo.UserRepository) {
	api := r.Group("/api/nurses")
	{
		// Public discovery endpoints.
		api.GET("", handlers.ListNursesHandler)
		api.GET("/:id/availability", handlers.GetNurseAvailabilityHandler)
		api.GET("/:id/reviews", handlers.ListReviewsHandler)

		authed := api.Group("")
		authed.Use(middleware.JWTAuthMiddleware(users))
		authed.POST("/:id/reviews", middleware.RequireRole(models.RolePatient), handlers.CreateReviewHandler)

		// Profile management is restricted to nurse accounts.
		nurseOnly := authed.Group("")
		nurseOnly.Use(middleware.RequireRole(models.RoleNurse))
		nurseOnly.POST("/profile", handlers.CreateNurseProfileHandler)
		nurseOnly.GET("/profile", handlers.GetMyNurseProfileHandler)
		nurseOnly.PUT("/profile", handlers.UpdateNurseProfileHandler)
		nurseOnly.PUT("/profile/availability", handlers.UpdateAvailabilityHandler)
		nurseOnly.GET("/bookings", handlers.ListNurseBookingsHandler)
		nurseOnly.PATCH("/bookings/:id/complete", handlers.CompleteBookingHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, users userRepo.UserRepository) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware(users))
		api.POST("", middleware.RequireRole(models.RolePatient), handlers.CreateBookingHandler)
		api.GET("", middleware.RequireRole(models.RolePatient), handlers.ListMyBookingsHandler)
		api.DELETE("/:id", handlers.CancelBookingHandler)
	}
}

// RegisterPaymentRoutes sets up the mock settlement gateway endpoints. The
// webhook stays unauthenticated; real gateways call it without a user token.
func RegisterPaymentRoutes(r *gin.Engine, users userRepo.UserRepository) {
	api := r.Group("/api/payments")
	{
		api.POST("/webhook", handlers.PaymentWebhookHandler)

		authed := api.Group("")
		authed.Use(middleware.JWTAuthMiddleware(users))
		authed.POST("/refund", handlers.RefundPaymentHandler)

		patient := authed.Group("")
		patient.Use(middleware.RequireRole(models.RolePatient))
		patient.POST("/intent", handlers.CreatePaymentIntentHandler)
		patient.POST("/process", handlers.ProcessPaymentHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, users userRepo.UserRepository) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthMiddleware(users), middleware.RequireRole(models.RoleAdmin))
		api.GET("/users", handlers.ListUsersHandler)
		api.GET("/nurses/pending", handlers.ListPendingNursesHandler)
		api.PATCH("/nurses/:id/approve", handlers.ApproveNurseHandler)
		api.PATCH("/nurses/:id/reject", handlers.RejectNurseHandler)
		api.PATCH("/bookings/:id/status", handlers.OverrideBookingStatusHandler)
		api.GET("/stats", handlers.PlatformStatsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm CuraNest"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, users userRepo.UserRepository) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, users)
	RegisterNurseRoutes(r, users)
	RegisterBookingRoutes(r, users)
	RegisterPaymentRoutes(r, users)
	RegisterAdminRoutes(r, users)
	RegisterHealthRoute(r)
}
