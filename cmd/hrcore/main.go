package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nuevas-energias/hrcore/internal/config"
	"github.com/nuevas-energias/hrcore/internal/database"
	"github.com/nuevas-energias/hrcore/internal/handlers"
	"github.com/nuevas-energias/hrcore/internal/mail"
	"github.com/nuevas-energias/hrcore/internal/middleware"
	"github.com/nuevas-energias/hrcore/internal/services"
	slacknotify "github.com/nuevas-energias/hrcore/internal/slack"
	"gorm.io/gorm/logger"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading it (this is fine if using environment variables): %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting HR incident back office...")

	if cfg.AdminPassword == "" {
		log.Fatalf("ADMIN_PASSWORD is not set")
	}

	// Initialize database connection
	if err := database.Connect(cfg.DatabaseURL, logger.Warn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Printf("Database connection established")

	db := database.GetDB()

	// Run database migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Seed the admin account
	passwordHash, err := middleware.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}
	if err := database.EnsureAdminUser(db, cfg.AdminUsername, passwordHash); err != nil {
		log.Fatalf("Failed to ensure admin user: %v", err)
	}
	log.Printf("Admin account ensured for user: %s", cfg.AdminUsername)

	// Seed the incident catalog from file, if one is present
	entries, err := database.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Printf("Warning: Failed to load incident catalog from %s: %v", cfg.CatalogPath, err)
	} else if len(entries) > 0 {
		if err := database.SeedIncidentTypes(db, entries); err != nil {
			log.Printf("Warning: Failed to seed incident types: %v", err)
		} else {
			log.Printf("Incident catalog seeded from %s (%d entries)", cfg.CatalogPath, len(entries))
		}
	}

	// Initialize JWT authentication middleware
	jwtAuthMiddleware := middleware.NewJWTAuthMiddleware(&middleware.JWTAuthConfig{
		JWTSecret:      cfg.JWTSecret,
		JWTExpiryHours: cfg.JWTExpiryHours,
		SkipPaths: []string{
			"/health",
			"/auth/login",
		},
	}, db)
	log.Printf("JWT authentication enabled")

	// Initialize services
	notificationService := services.NewNotificationService(db, cfg.PortalURL)
	incidentService := services.NewIncidentService(db, notificationService)
	statementService := services.NewStatementService(db)
	employeeService := services.NewEmployeeService(db)

	// Wire optional notification channels
	if mailer := mail.NewMailer(cfg.MailAPIKey, cfg.MailBaseURL, cfg.MailFromEmail, cfg.MailFromName); mailer != nil {
		notificationService.SetEmailSender(mailer)
		log.Printf("Email delivery enabled (from %s)", cfg.MailFromEmail)
	} else {
		log.Printf("Email delivery disabled (MAIL_API_KEY / MAIL_FROM_EMAIL not set)")
	}

	if notifier := slacknotify.NewNotifier(cfg.SlackBotToken, cfg.SlackHRChannel); notifier != nil {
		notificationService.SetChannelPoster(notifier)
		log.Printf("Slack ops channel enabled (%s)", cfg.SlackHRChannel)
	} else {
		log.Printf("Slack ops channel disabled (SLACK_BOT_TOKEN / SLACK_HR_CHANNEL not set)")
	}

	// Live notification stream
	notificationWSHandler := handlers.NewNotificationWSHandler()
	notificationService.SetBroadcaster(notificationWSHandler)

	// Initialize handlers
	httpHandler := handlers.NewHTTPHandler()
	apiHandler := handlers.NewAPIHandler(incidentService, statementService, employeeService, notificationService)
	authHandler := handlers.NewAuthHandler(jwtAuthMiddleware, employeeService, cfg.JWTExpiryHours)

	// Set up HTTP server routes
	mux := http.NewServeMux()
	httpHandler.SetupRoutes(mux)
	apiHandler.SetupRoutes(mux)
	authHandler.SetupRoutes(mux)
	notificationWSHandler.SetupRoutes(mux)

	// Wrap all routes: CORS first, then request id, then JWT authentication
	corsMiddleware := middleware.NewCORSMiddleware() // Allow all origins
	handler := corsMiddleware.Wrap(middleware.RequestIDMiddleware(jwtAuthMiddleware.Wrap(mux)))

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: handler,
	}

	go func() {
		log.Printf("Starting HTTP server on port %d", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	log.Printf("Health check endpoint: http://localhost:%d/health", cfg.HTTPPort)
	log.Printf("API base URL: http://localhost:%d/api", cfg.HTTPPort)

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Received shutdown signal, cleaning up...")
	if err := httpServer.Close(); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}
	if err := database.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
	log.Println("Shutdown complete")
}
