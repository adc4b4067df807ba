package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"transaction-analytics/internal/errors"

	"github.com/labstack/echo/v4"
)

// PanicRecovery converts handler panics into SYSTEM_001 responses. The
// panic value and stack stay in the server log; the client only sees
// the coded envelope.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				traceID := GetTraceID(c)
				if traceID == "" {
					traceID = "unknown"
				}

				slog.Error("Panic recovered",
					"trace_id", traceID,
					"panic", fmt.Sprintf("%v", r),
					"stack_trace", string(debug.Stack()),
					"path", c.Request().URL.Path,
					"method", c.Request().Method,
				)

				response := errors.NewErrorResponse(errors.SystemInternalError, traceID)
				if err := c.JSON(http.StatusInternalServerError, response); err != nil {
					slog.Error("Failed to send panic recovery response",
						"trace_id", traceID,
						"error", err.Error(),
					)
				}
			}()

			return next(c)
		}
	}
}
