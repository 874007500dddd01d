package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/showcall/showcall-backend/internal/config"
	"github.com/showcall/showcall-backend/internal/database"
	"github.com/showcall/showcall-backend/internal/handlers"
	"github.com/showcall/showcall-backend/internal/logging"
	"github.com/showcall/showcall-backend/internal/middleware"
	"github.com/showcall/showcall-backend/internal/realtime"
	"github.com/showcall/showcall-backend/internal/routes"
	"github.com/showcall/showcall-backend/internal/services"
	"github.com/showcall/showcall-backend/internal/storage"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Object storage and the realtime change feed
	store := storage.NewDiskStore(cfg.StorageBasePath, cfg.StorageBaseURL)
	hub := realtime.NewHub()

	// Services
	activityService := services.NewActivityService(database.DB)
	authService := services.NewAuthService(database.DB, cfg, activityService)
	userService := services.NewUserService(database.DB, store, activityService)
	roleService := services.NewRoleService(database.DB, activityService)
	calendarService := services.NewCalendarService(database.DB, hub)
	talentService := services.NewTalentService(database.DB, store, hub)
	businessService := services.NewBusinessService(database.DB)

	// Reset tokens are delivered out of band. Until an SMTP sender exists the
	// token is surfaced on the operator log stream.
	resetSink := handlers.ResetTokenSink(func(email, token string) {
		slog.Info("password reset token issued", "email", email, "token", token)
	})

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, userService, resetSink)
	userHandler := handlers.NewUserHandler(userService, roleService, authService)
	calendarHandler := handlers.NewCalendarHandler(calendarService)
	talentHandler := handlers.NewTalentHandler(talentService)
	businessHandler := handlers.NewBusinessHandler(businessService)
	productHandler := handlers.NewProductHandler(database.DB, hub)
	contentHandler := handlers.NewContentHandler(database.DB, hub)
	activityHandler := handlers.NewActivityHandler(activityService)
	exportHandler := handlers.NewExportHandler(activityService)
	healthHandler := handlers.NewHealthHandler()
	realtimeHandler := handlers.NewRealtimeHandler(hub)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    8 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Uploaded files are served statically off the disk store
	app.Static(cfg.StorageBaseURL, cfg.StorageBasePath)

	// Routes
	routes.Setup(app, cfg, database.DB,
		authHandler, userHandler, calendarHandler, talentHandler, businessHandler,
		productHandler, contentHandler, activityHandler, exportHandler,
		healthHandler, realtimeHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
