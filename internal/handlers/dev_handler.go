package handlers

import (
	"net/http"

	"transaction-analytics/internal/dto"
	"transaction-analytics/internal/errors"
	"transaction-analytics/internal/services"

	"github.com/labstack/echo/v4"
)

// DevHandler handles development-only endpoints
// These endpoints should only be available in development environments
type DevHandler struct {
	generator services.SampleDataGeneratorInterface
}

// NewDevHandler creates a new development handler
func NewDevHandler(generator services.SampleDataGeneratorInterface) *DevHandler {
	return &DevHandler{generator: generator}
}

// SeedSampleData populates the authenticated user with sample accounts,
// cards and transactions
//
// Method: POST /api/v1/dev/seed
// Authentication: Required
// Environment: Development only
//
// Body (optional):
//   - months: Months of history to generate (default: 6, max: 36)
//   - transaction_count: Number of transactions to generate (default: 500, max: 10000)
//
// Success Response: 200 OK with created entity counts
//
// Error Responses:
//   - 400: Invalid body parameters
//   - 401: Unauthorized
//   - 500: Internal server error
func (h *DevHandler) SeedSampleData(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.SeedRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("malformed request body"))
	}
	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	result, err := h.generator.SeedUserData(userID, req.Months, req.TransactionCount)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    result,
		Message: "sample data generated successfully",
	})
}
