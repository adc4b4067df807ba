package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// TraceIDHeader carries the trace ID on requests and responses.
	TraceIDHeader = "X-Trace-ID"
	// TraceIDContextKey is where the trace ID lives in the echo context.
	TraceIDContextKey = "trace_id"
)

// RequestID assigns every request a trace ID. An ID supplied by the
// caller is kept so upstream proxies can correlate logs; otherwise a
// fresh UUID is minted. The ID is stored in the context and echoed on
// the response header.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(TraceIDHeader)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			c.Set(TraceIDContextKey, traceID)
			c.Response().Header().Set(TraceIDHeader, traceID)
			return next(c)
		}
	}
}

// GetTraceID returns the request's trace ID, or "" outside the
// RequestID middleware.
func GetTraceID(c echo.Context) string {
	if traceID, ok := c.Get(TraceIDContextKey).(string); ok {
		return traceID
	}
	return ""
}
