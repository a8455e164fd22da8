package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"curanest/config"
	"curanest/cron"
	"curanest/database"
	bookingRepoPkg "curanest/database/repository/booking"
	nurseRepoPkg "curanest/database/repository/nurse"
	paymentRepoPkg "curanest/database/repository/payment"
	reviewRepoPkg "curanest/database/repository/review"
	settlementRepoPkg "curanest/database/repository/settlement"
	userRepoPkg "curanest/database/repository/user"
	"curanest/handlers"
	"curanest/middleware"
	"curanest/routes"
	bookingSvc "curanest/services/booking"
	nurseSvc "curanest/services/nurse"
	paymentSvc "curanest/services/payment"
	reviewSvc "curanest/services/review"
	userSvc "curanest/services/user"
	"curanest/utils"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	nurseRepo := nurseRepoPkg.NewMongoNurseRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo()
	settlementRepo := settlementRepoPkg.NewMongoSettlementRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()

	// services.
	handlers.UserService = &userSvc.DefaultUserService{
		Repo:      userRepo,
		AuthCache: utils.GetAuthCacheClient(),
	}
	handlers.NurseService = &nurseSvc.DefaultNurseService{
		Repo:     nurseRepo,
		UserRepo: userRepo,
	}
	handlers.BookingService = &bookingSvc.DefaultBookingService{
		Repo:       bookingRepo,
		UserRepo:   userRepo,
		NurseRepo:  nurseRepo,
		Payments:   paymentRepo,
		Settlement: settlementRepo,
	}
	handlers.PaymentService = &paymentSvc.DefaultPaymentService{
		Payments:        paymentRepo,
		Bookings:        bookingRepo,
		NurseRepo:       nurseRepo,
		Settlement:      settlementRepo,
		Currency:        config.AppConfig.PaymentCurrency,
		ProcessingDelay: time.Duration(config.AppConfig.MockProcessingDelayMs) * time.Millisecond,
		Reminders:       cron.NewReminderClient(),
	}
	handlers.ReviewService = &reviewSvc.DefaultReviewService{
		Repo:      reviewRepo,
		NurseRepo: nurseRepo,
		Bookings:  bookingRepo,
	}
	handlers.AdminUserRepo = userRepo
	handlers.AdminBookingRepo = bookingRepo
	handlers.AdminPaymentRepo = paymentRepo

	// Register routes.
	routes.RegisterRoutes(router, userRepo)

	// Booking reminder worker.
	cron.InitReminderWorker()

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
