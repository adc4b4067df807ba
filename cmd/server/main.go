package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"transaction-analytics/internal/config"
	"transaction-analytics/internal/database"
	"transaction-analytics/internal/handlers"
	custommiddleware "transaction-analytics/internal/middleware"
	"transaction-analytics/internal/repositories"
	"transaction-analytics/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	db, err := database.Initialize(cfg)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err.Error())
		os.Exit(1)
	}

	// Repositories
	transactionRepo := repositories.NewTransactionRepository(db)
	accountRepo := repositories.NewAccountRepository(db)
	cardRepo := repositories.NewCardRepository(db)

	// Services
	metrics := services.NewPrometheusMetrics()
	analyticsService := services.NewAnalyticsService(transactionRepo, metrics)
	sampleDataGenerator := services.NewSampleDataGenerator(transactionRepo, accountRepo, cardRepo)

	// Handlers
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	devHandler := handlers.NewDevHandler(sampleDataGenerator)
	healthHandler := handlers.NewHealthCheckHandler(db)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = custommiddleware.CustomHTTPErrorHandler

	e.Use(custommiddleware.RequestID())
	e.Use(custommiddleware.PanicRecovery())
	e.Use(custommiddleware.RateLimiterWithConfig(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	analyticsGroup := api.Group("/analytics", custommiddleware.RequireAuth(&cfg.JWT))
	analyticsGroup.GET("", analyticsHandler.GetAnalytics)
	analyticsGroup.GET("/summary", analyticsHandler.GetSummary)

	// Sample data seeding is never exposed outside development
	if cfg.IsDevelopment() {
		devGroup := api.Group("/dev", custommiddleware.RequireAuth(&cfg.JWT))
		devGroup.POST("/seed", devHandler.SeedSampleData)
	}

	go func() {
		addr := ":" + cfg.Server.Port
		slog.Info("Starting server", "addr", addr, "environment", cfg.Server.Environment)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			slog.Error("Server stopped", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("Server exited")
}
