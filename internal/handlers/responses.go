package handlers

import (
	"net/http"

	"transaction-analytics/internal/errors"

	"github.com/labstack/echo/v4"
)

// Handlers never call echo.NewHTTPError or c.JSON directly for failures.
// Client and business errors go through SendError with a catalogue code;
// anything internal goes through SendSystemError so the raw error text
// stays out of the response body.

// TraceIDContextKey is where the request ID middleware stores the trace ID.
const TraceIDContextKey = "trace_id"

// SuccessResponse is the envelope for 2xx payloads.
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorResponse re-exports the coded error envelope for callers that
// decode handler output.
type ErrorResponse = errors.ErrorResponse

func getTraceID(c echo.Context) string {
	if traceID, ok := c.Get(TraceIDContextKey).(string); ok {
		return traceID
	}
	return ""
}

// SendError writes the coded error envelope for code, using the HTTP
// status the catalogue assigns to it.
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	response := errors.NewErrorResponse(code, getTraceID(c), opts...)
	return c.JSON(response.GetHTTPStatus(), response)
}

// SendSystemError answers with the generic SYSTEM_001 envelope. The
// underlying error is the caller's to log.
func SendSystemError(c echo.Context, err error) error {
	response, _ := errors.WrapSystemError(err, getTraceID(c))
	return c.JSON(http.StatusInternalServerError, response)
}
