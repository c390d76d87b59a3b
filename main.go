package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/loanpilot/cache"
	"github.com/yourusername/loanpilot/config"
	"github.com/yourusername/loanpilot/handlers"
	"github.com/yourusername/loanpilot/ledger"
	"github.com/yourusername/loanpilot/middleware"
	"github.com/yourusername/loanpilot/notify"
	"github.com/yourusername/loanpilot/reminder"
	"github.com/yourusername/loanpilot/store"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	st := store.New(db)
	ldg := ledger.New(st)

	var notifier notify.Notifier = notify.Noop{}
	if cfg.SMTPHost != "" {
		notifier = notify.NewEmailNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, st.Notifications())
	}

	var cc cache.Cache = cache.NewMemory()
	if cfg.RedisAddr != "" {
		cc = cache.NewRedis(cfg.RedisAddr)
	}

	// Daily reminder scan, driven by an explicit scheduler rather than
	// an in-process cron.
	scheduler := reminder.New(ldg, st, notifier, 24*time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go scheduler.Run(ctx)

	// Setup router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "loanpilot-api",
		})
	})

	authHandler := handlers.NewAuthHandler(db, cfg)
	clientHandler := handlers.NewClientHandler(db, ldg)
	paymentHandler := handlers.NewPaymentHandler(db, ldg)
	bookingHandler := handlers.NewBookingHandler(db)
	userHandler := handlers.NewUserHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db, cc)
	importHandler := handlers.NewImportHandler(db, ldg)
	reminderHandler := handlers.NewReminderHandler(db, scheduler)
	reviewHandler := handlers.NewReviewHandler(db)

	api := router.Group("/api/v1")
	{
		// Public endpoints
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)
		api.POST("/bookings", bookingHandler.Create)
		api.GET("/bookings/available-slots", bookingHandler.AvailableSlots)
		api.POST("/contact", bookingHandler.CreateInquiry)
		api.POST("/reviews", reviewHandler.Create)
		api.GET("/reviews", reviewHandler.ListApproved)
		api.POST("/payments/stripe/webhook", paymentHandler.StripeWebhook)

		// Authenticated endpoints
		private := api.Group("")
		private.Use(middleware.JwtAuthMiddleware(cfg))
		{
			private.POST("/clients", clientHandler.Create)
			private.GET("/clients", clientHandler.List)
			private.GET("/clients/:id", clientHandler.Get)
			private.PUT("/clients/:id", clientHandler.Update)
			private.DELETE("/clients/:id", middleware.RequireRole("admin"), clientHandler.Delete)

			private.POST("/payments/manual", paymentHandler.RecordManual)
			private.GET("/payments/client/:clientId", paymentHandler.ClientPayments)

			private.GET("/bookings", middleware.RequireRole("admin"), bookingHandler.List)
			private.PATCH("/bookings/:id/status", middleware.RequireRole("admin"), bookingHandler.UpdateStatus)
			private.POST("/availability", middleware.RequireRole("admin"), bookingHandler.SetAvailability)
			private.GET("/contact", middleware.RequireRole("admin"), bookingHandler.ListInquiries)
			private.PATCH("/contact/:id/status", middleware.RequireRole("admin"), bookingHandler.UpdateInquiryStatus)

			private.GET("/reviews/admin", middleware.RequireRole("admin"), reviewHandler.ListAll)
			private.PUT("/reviews/:id", middleware.RequireRole("admin"), reviewHandler.UpdateStatus)
			private.DELETE("/reviews/:id", middleware.RequireRole("admin"), reviewHandler.Delete)

			private.GET("/users", middleware.RequireRole("admin"), userHandler.List)
			private.POST("/users", middleware.RequireRole("admin"), userHandler.Create)
			private.PUT("/users/:id", middleware.RequireRole("admin"), userHandler.Update)
			private.DELETE("/users/:id", middleware.RequireRole("admin"), userHandler.Delete)

			private.GET("/dashboard/admin/summary", middleware.RequireRole("admin"), dashboardHandler.AdminSummary)
			private.GET("/dashboard/staff/summary", dashboardHandler.StaffSummary)

			private.GET("/import/template", importHandler.Template)
			private.POST("/import/csv", middleware.RequireRole("admin"), importHandler.ImportCSV)

			private.GET("/reminders/logs", reminderHandler.Logs)
			private.POST("/reminders/trigger", reminderHandler.Trigger)
			private.POST("/reminders/log", reminderHandler.LogManual)
		}
	}

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting LoanPilot API server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
