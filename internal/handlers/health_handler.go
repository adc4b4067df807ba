package handlers

import (
	"net/http"
	"time"

	"transaction-analytics/internal/errors"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// HealthCheckHandler handles the health check endpoint
type HealthCheckHandler struct {
	db *gorm.DB
}

// NewHealthCheckHandler creates a new health check handler
func NewHealthCheckHandler(db *gorm.DB) *HealthCheckHandler {
	return &HealthCheckHandler{db: db}
}

// HealthCheck reports API and database connectivity status
//
// Method: GET /health
// Authentication: None
//
// Success Response: 200 OK with status and server time
// Error Response: 503 when the database is unreachable
func (h *HealthCheckHandler) HealthCheck(c echo.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return h.sendUnavailable(c)
	}

	if err := sqlDB.Ping(); err != nil {
		return h.sendUnavailable(c)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthCheckHandler) sendUnavailable(c echo.Context) error {
	errorResponse := errors.NewErrorResponse(
		errors.SystemServiceUnavailable,
		getTraceID(c),
		errors.WithDetails("Database connection failed"),
	)
	return c.JSON(http.StatusServiceUnavailable, errorResponse)
}
