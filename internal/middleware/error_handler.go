package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"transaction-analytics/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var apiErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "api_errors_total",
		Help: "Total number of API errors by code, endpoint, and status",
	},
	[]string{"code", "endpoint", "status"},
)

// errorCodeByStatus translates bare echo.HTTPError statuses into
// catalogue codes for errors raised outside the handlers (routing,
// body limits, method checks).
var errorCodeByStatus = map[int]errors.ErrorCode{
	http.StatusBadRequest:          errors.ValidationGeneral,
	http.StatusUnauthorized:        errors.AuthMissingToken,
	http.StatusForbidden:           errors.AuthInsufficientPermission,
	http.StatusNotFound:            errors.TransactionNotFound,
	http.StatusMethodNotAllowed:    errors.ValidationGeneral,
	http.StatusUnprocessableEntity: errors.ValidationGeneral,
	http.StatusTooManyRequests:     errors.SystemRateLimitExceeded,
	http.StatusServiceUnavailable:  errors.SystemServiceUnavailable,
	http.StatusInternalServerError: errors.SystemInternalError,
}

// CustomHTTPErrorHandler is the echo-level error sink: anything a
// handler returns (or echo raises internally) ends up here and leaves
// as a catalogue-coded JSON envelope.
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	traceID := GetTraceID(c)
	if traceID == "" {
		traceID = "unknown"
	}

	response, status := buildErrorResponse(err, traceID)

	level := slog.LevelWarn
	if status >= 500 {
		level = slog.LevelError
	}
	slog.Log(c.Request().Context(), level, "HTTP error occurred",
		"trace_id", traceID,
		"error_code", response.Error.Code,
		"status", status,
		"message", response.Error.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"error", err.Error(),
	)

	apiErrorsTotal.WithLabelValues(response.Error.Code, c.Path(), fmt.Sprintf("%d", status)).Inc()

	if sendErr := c.JSON(status, response); sendErr != nil {
		slog.Error("Failed to send error response",
			"trace_id", traceID,
			"error", sendErr.Error(),
		)
	}
}

func buildErrorResponse(err error, traceID string) (*errors.ErrorResponse, int) {
	switch e := err.(type) {
	case *echo.HTTPError:
		code, ok := errorCodeByStatus[e.Code]
		if !ok {
			code = errors.SystemInternalError
		}
		response := errors.NewErrorResponse(code, traceID,
			errors.WithMessage(fmt.Sprintf("%v", e.Message)))
		return response, e.Code

	case validator.ValidationErrors:
		fieldErrors := make(map[string]string, len(e))
		for _, fieldErr := range e {
			fieldErrors[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return errors.NewValidationError(fieldErrors, traceID), http.StatusBadRequest

	default:
		response, _ := errors.WrapSystemError(err, traceID)
		return response, response.GetHTTPStatus()
	}
}

// validationMessage renders a field error for the tags the request
// DTOs actually use.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "date_string":
		return "must be a date in YYYY-MM-DD format"
	case "amount_string":
		return "must be a positive decimal amount"
	case "transaction_type":
		return "must be a valid transaction type"
	case "analytics_type":
		return "must be a valid analytics type"
	case "visualization_type":
		return "must be a valid visualization type"
	case "distribution_variable":
		return "must be a valid distribution variable"
	default:
		return fmt.Sprintf("failed validation for '%s'", fe.Tag())
	}
}
