package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"decor-booking-server/config"
	"decor-booking-server/database"
	"decor-booking-server/jobs"
	"decor-booking-server/middleware"
	"decor-booking-server/models"
	"decor-booking-server/routes"
	ws "decor-booking-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Seed the starter catalog on first boot
	if err := database.SeedServices(); err != nil {
		log.Printf("❌ Catalog seeding failed: %v", err)
	}

	// Set Gin mode
	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security headers (must be first)
	router.Use(middleware.SecurityHeadersMiddleware())

	// Input validation
	router.Use(middleware.InputValidationMiddleware())

	// Rate limiting
	router.Use(middleware.RateLimitMiddleware())

	// CORS
	router.Use(middleware.CORSMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Decor Booking Server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Notification hub
	hub := ws.NewHub()
	go hub.Run()
	routes.InitBookingNotifier(hub)

	notificationHandler := ws.NewNotificationHandler(hub)
	router.GET("/api/v1/ws/notifications", notificationHandler.HandleConnection)

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth routes (no authentication required) - with strict rate limiting
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterAuthRoutes(authRoutes)

		// Service catalog (public reads, admin writes)
		serviceRoutes := api.Group("/services")
		routes.RegisterServiceRoutes(serviceRoutes)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			userRoutes := protected.Group("/users")
			routes.RegisterUserRoutes(userRoutes)

			bookingRoutes := protected.Group("/bookings")
			routes.RegisterBookingRoutes(bookingRoutes)

			decoratorRoutes := protected.Group("/decorators")
			routes.RegisterDecoratorRoutes(decoratorRoutes)
			routes.RegisterDecoratorMediaRoutes(decoratorRoutes)

			routes.RegisterPaymentRoutes(protected)

			transactionRoutes := protected.Group("/transactions")
			routes.RegisterTransactionRoutes(transactionRoutes)

			analyticsRoutes := protected.Group("/analytics")
			analyticsRoutes.Use(middleware.RequireRoles(models.RoleAdmin))
			routes.RegisterAnalyticsRoutes(analyticsRoutes)
		}
	}

	// Start background jobs
	cleanupJob := jobs.NewCleanupJob()
	cleanupJob.Start()
	defer cleanupJob.Stop()

	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
