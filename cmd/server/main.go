package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"clinic-appointment-backend/internal/config"
	"clinic-appointment-backend/internal/database"
	"clinic-appointment-backend/internal/handler"
	"clinic-appointment-backend/internal/middleware"
	"clinic-appointment-backend/internal/models"
	"clinic-appointment-backend/internal/repository"
	"clinic-appointment-backend/internal/service"
	"clinic-appointment-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	log.Println("Configuration loaded successfully")

	// 2. Initialize JWT utilities with config
	utils.InitJWT(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// 3. Initialize database connection (migrates and seeds)
	db := database.Connect(cfg)

	// 4. Initialize repositories
	userRepo := repository.NewUserRepo(db)
	specializationRepo := repository.NewSpecializationRepo(db)
	doctorRepo := repository.NewDoctorRepo(db)
	recordRepo := repository.NewMedicalRecordRepo(db)
	appointmentRepo := repository.NewAppointmentRepo(db)
	scheduleRepo := repository.NewScheduleRepo(db)
	reviewRepo := repository.NewReviewRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	// 5. Initialize services
	authService := service.NewAuthService(userRepo, recordRepo, auditRepo)
	bookingService := service.NewBookingService(appointmentRepo, userRepo, doctorRepo, scheduleRepo, auditRepo)
	appointmentService := service.NewAppointmentService(appointmentRepo, doctorRepo, auditRepo)
	doctorService := service.NewDoctorService(doctorRepo, specializationRepo)
	scheduleService := service.NewScheduleService(scheduleRepo, doctorRepo, auditRepo)
	reviewService := service.NewReviewService(reviewRepo, appointmentRepo, doctorRepo, auditRepo)
	recordService := service.NewMedicalRecordService(recordRepo)
	sweeper := service.NewSweeperService(appointmentRepo, auditRepo, cfg.Worker.SweepInterval, cfg.Worker.PendingCancelTTL)

	// 6. Start background sweeper in goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweeper.Start(ctx)

	// 7. Setup Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// 8. Setup Gin router
	r := gin.Default()

	// Apply CORS middleware
	r.Use(middleware.CORS(cfg))

	// 9. Register handlers
	authHandler := handler.NewAuthHandler(authService)
	appointmentHandler := handler.NewAppointmentHandler(bookingService, appointmentService)
	doctorHandler := handler.NewDoctorHandler(doctorService, scheduleService, reviewService)
	scheduleHandler := handler.NewScheduleHandler(scheduleService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	recordHandler := handler.NewMedicalRecordHandler(recordService)

	// 10. Define routes
	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "clinic-appointment-backend",
		})
	})

	// Auth routes (public)
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
	}

	// Doctor directory (public)
	r.GET("/specializations", doctorHandler.ListSpecializations)
	doctors := r.Group("/doctors")
	{
		doctors.GET("", doctorHandler.ListDoctors)
		doctors.GET("/:id", doctorHandler.GetDoctor)
		doctors.GET("/:id/schedule", doctorHandler.GetDoctorSchedule)
		doctors.GET("/:id/reviews", doctorHandler.GetDoctorReviews)
	}

	// Appointment routes (authenticated)
	appointments := r.Group("/appointments")
	appointments.Use(middleware.AuthMiddleware())
	{
		appointments.POST("", middleware.RequireRole(models.RolePatient), appointmentHandler.Create)
		appointments.GET("", appointmentHandler.List)
		appointments.POST("/:id/cancel", middleware.RequireRole(models.RolePatient, models.RoleAdmin), appointmentHandler.Cancel)
		appointments.POST("/:id/cancel-request", middleware.RequireRole(models.RolePatient), appointmentHandler.RequestCancel)
		appointments.POST("/:id/cancel-confirm", middleware.RequireRole(models.RoleDoctor, models.RoleAdmin), appointmentHandler.ConfirmCancel)
		appointments.POST("/:id/complete", middleware.RequireRole(models.RoleDoctor), appointmentHandler.Complete)
	}

	// Medical record routes (authenticated)
	records := r.Group("/medical-records")
	records.Use(middleware.AuthMiddleware())
	{
		records.GET("/me", middleware.RequireRole(models.RolePatient), recordHandler.GetOwn)
		records.PUT("/me", middleware.RequireRole(models.RolePatient), recordHandler.UpdateOwn)
		records.GET("/:id", middleware.RequireRole(models.RoleDoctor, models.RoleAdmin), recordHandler.GetForPatient)
	}

	// Review routes (authenticated)
	reviews := r.Group("/reviews")
	reviews.Use(middleware.AuthMiddleware())
	{
		reviews.POST("", middleware.RequireRole(models.RolePatient), reviewHandler.Create)
		reviews.GET("/pending", middleware.RequireAdmin(), reviewHandler.ListPending)
		reviews.POST("/:id/approve", middleware.RequireAdmin(), reviewHandler.Approve)
	}

	// Admin schedule manager
	schedules := r.Group("/schedules")
	schedules.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
	{
		schedules.GET("", scheduleHandler.List)
		schedules.POST("", scheduleHandler.Create)
		schedules.PUT("/:id", scheduleHandler.Update)
		schedules.DELETE("/:id", scheduleHandler.Delete)
		schedules.PATCH("/:id/active", scheduleHandler.SetActive)
	}

	// 11. Setup graceful shutdown
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Cancel background sweeper context
	cancel()
	log.Println("Server exited")
}
