package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/emergency"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/wizard"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	stdout := logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	done := make(chan struct{})

	// Profile store
	st, err := openStore(cfg, stdout, done)
	if err != nil {
		slog.Error("store init failed", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	slog.Info("store ready", "backend", st.backend.Name())

	// Wizard drafts
	drafts, closeDrafts, err := openDrafts(cfg, done)
	if err != nil {
		slog.Error("draft store init failed", "backend", cfg.DraftBackend, "error", err)
		os.Exit(1)
	}

	// Services
	wizards := wizard.NewService(drafts, st.backend)
	resolver := emergency.NewResolver(st.backend, st.backend)
	catalog := services.NewCatalogService(st.backend)
	checkout := services.NewCheckoutService(catalog, st.backend, cfg.CheckoutKeyID, cfg.CheckoutCurrency)
	admin := services.NewAdminService(st.backend, st.backend)
	dashboard := services.NewDashboardService(st.backend, cfg.PublicOrigin)

	// Handlers
	h := routes.Handlers{
		Health:    handlers.NewHealthHandler(st.backend),
		Legal:     handlers.NewLegalHandler(cfg.SupportEmail),
		Profile:   handlers.NewProfileHandler(wizards, dashboard, st.backend),
		Emergency: handlers.NewEmergencyHandler(resolver),
		QR:        handlers.NewQRHandler(cfg.PublicOrigin),
		Dashboard: handlers.NewDashboardHandler(dashboard),
		Catalog:   handlers.NewCatalogHandler(catalog),
		Checkout:  handlers.NewCheckoutHandler(checkout),
		Admin:     handlers.NewAdminHandler(admin, checkout),
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(routes.AppConfig(customErrorHandler))

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "no-referrer")
		return c.Next()
	})
	app.Use(middleware.ActiveSlug())

	routes.Setup(app, cfg, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "store", cfg.StoreBackend, "drafts", cfg.DraftBackend)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(done)
	if st.pgLogs != nil {
		st.pgLogs.Stop()
	}
	sentry.Flush(2 * time.Second)

	if err := closeDrafts(); err != nil {
		slog.Error("draft store close error", "error", err)
	}
	if err := st.backend.Close(); err != nil {
		slog.Error("store close error", "error", err)
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

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
