package main

import (
	"log"
	"os"
	"time"

	"reactcheckin/database"
	"reactcheckin/handlers"
	"reactcheckin/handlers/admin"
	"reactcheckin/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Validate critical environment variables
	validateEnvironment()

	// Initialize database (runs migrations and seeds quotes/settings)
	database.InitDB()

	// Initialize handler services
	handlers.InitHandlers()
	admin.InitAdminHandlers()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    1 * 1024 * 1024, // 1MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.RateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimitMiddleware())
	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/login", handlers.Login)

	// User routes
	userGroup := api.Group("/users")
	userGroup.Use(middleware.AuthMiddleware)
	userGroup.Get("/me", handlers.GetCurrentUser)

	// Check-in routes
	checkinGroup := api.Group("/checkins")
	checkinGroup.Use(middleware.AuthMiddleware)
	checkinGroup.Post("/", handlers.CreateCheckIn)
	checkinGroup.Get("/", handlers.GetCheckIns)
	checkinGroup.Get("/today", handlers.GetTodayCheckIns)

	// Journal routes
	journalGroup := api.Group("/journal")
	journalGroup.Use(middleware.AuthMiddleware)
	journalGroup.Post("/", handlers.CreateJournalEntry)
	journalGroup.Get("/", handlers.GetJournalEntries)

	// Quote tile routes
	tileGroup := api.Group("/tiles")
	tileGroup.Use(middleware.AuthMiddleware)
	tileGroup.Get("/", handlers.GetTileStatus)
	tileGroup.Post("/flip", handlers.FlipTile)
	tileGroup.Post("/reset", handlers.ResetTiles)

	api.Get("/quotes", middleware.AuthMiddleware, handlers.GetQuotes)

	// Message routes
	messageGroup := api.Group("/messages")
	messageGroup.Use(middleware.AuthMiddleware)
	messageGroup.Post("/", handlers.SendMessage)
	messageGroup.Get("/", handlers.GetMessages)
	messageGroup.Post("/:id/read", handlers.MarkMessageRead)

	// Settings snapshot (read-only; mutation is director-only under /admin)
	api.Get("/settings", middleware.AuthMiddleware, handlers.GetSettings)

	// Analytics routes (teachers and the director)
	analyticsGroup := api.Group("/analytics")
	analyticsGroup.Use(middleware.AuthMiddleware, middleware.RequireStaff)
	analyticsGroup.Get("/houses", handlers.GetHousePoints)
	analyticsGroup.Get("/classes", handlers.GetClassPoints)
	analyticsGroup.Get("/moods", handlers.GetMoodSummary)
	analyticsGroup.Get("/participation", handlers.GetParticipation)

	// Director admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthMiddleware, middleware.RequireDirector)
	adminGroup.Get("/users", admin.GetUsers)
	adminGroup.Get("/users/:id", admin.GetUser)
	adminGroup.Put("/users/:id", admin.UpdateUser)
	adminGroup.Delete("/users/:id", admin.DeleteUser)
	adminGroup.Put("/settings/:key", admin.SetSetting)
	adminGroup.Get("/quotes", admin.GetQuotes)
	adminGroup.Put("/quotes/:index", admin.UpdateQuote)
	adminGroup.Post("/purge/students", admin.PurgeStudents)

	// Live message notifications
	app.Use("/ws", middleware.AuthMiddleware, handlers.WebSocketUpgrade)
	app.Get("/ws", handlers.NotificationSocket)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🔐 JWT Secret configured: %v", os.Getenv("JWT_SECRET") != "")

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
