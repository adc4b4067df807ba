package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
)

// ErrorResponse is the JSON error envelope every endpoint returns.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the code, message and trace ID of one error.
type ErrorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	TraceID string   `json:"trace_id"`
}

// ErrorOption mutates a response under construction.
type ErrorOption func(*ErrorResponse)

// WithDetails attaches detail lines to the response.
func WithDetails(details ...string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Error.Details = details
	}
}

// WithMessage replaces the code's default message.
func WithMessage(message string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Error.Message = message
	}
}

func newResponse(code ErrorCode, traceID string, details []string) *ErrorResponse {
	if details == nil {
		details = []string{}
	}
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    string(code),
			Message: GetErrorMessage(code),
			Details: details,
			TraceID: traceID,
		},
	}
}

// NewErrorResponse builds a response for an error code with optional
// overrides.
func NewErrorResponse(code ErrorCode, traceID string, opts ...ErrorOption) *ErrorResponse {
	response := newResponse(code, traceID, nil)
	for _, opt := range opts {
		opt(response)
	}
	return response
}

// NewValidationError builds a VALIDATION_001 response from per-field
// messages. Fields are sorted so the detail order is stable.
func NewValidationError(fieldErrors map[string]string, traceID string) *ErrorResponse {
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	details := make([]string, 0, len(fields))
	for _, field := range fields {
		details = append(details, fmt.Sprintf("%s: %s", field, fieldErrors[field]))
	}
	return newResponse(ValidationGeneral, traceID, details)
}

// NewValidationErrorFromList builds a VALIDATION_001 response from
// pre-formatted detail lines.
func NewValidationErrorFromList(details []string, traceID string) *ErrorResponse {
	return newResponse(ValidationGeneral, traceID, details)
}

// WrapSystemError hides an internal error behind SYSTEM_001. The
// original error is handed back for server-side logging only.
func WrapSystemError(err error, traceID string) (*ErrorResponse, error) {
	return newResponse(SystemInternalError, traceID, nil), err
}

// WrapDatabaseError hides a storage error behind SYSTEM_002.
func WrapDatabaseError(err error, traceID string) (*ErrorResponse, error) {
	return newResponse(SystemDatabaseError, traceID, nil), err
}

// ToJSON serializes the response.
func (er *ErrorResponse) ToJSON() ([]byte, error) {
	return json.Marshal(er)
}

// httpStatusByCode maps each registered code to its HTTP status.
// Unsupported-mode analytics codes map to 422: the request is well
// formed but names a mode the engine does not implement.
var httpStatusByCode = map[ErrorCode]int{
	ValidationGeneral:         http.StatusBadRequest,
	ValidationRequiredField:   http.StatusBadRequest,
	ValidationInvalidFormat:   http.StatusBadRequest,
	ValidationOutOfRange:      http.StatusBadRequest,
	ValidationInvalidDate:     http.StatusBadRequest,
	ValidationInvalidAmount:   http.StatusBadRequest,
	AnalyticsInvalidDateRange: http.StatusBadRequest,

	AuthInvalidCredentials: http.StatusUnauthorized,
	AuthMissingToken:       http.StatusUnauthorized,
	AuthExpiredToken:       http.StatusUnauthorized,
	AuthInvalidTokenFormat: http.StatusUnauthorized,

	AuthInsufficientPermission: http.StatusForbidden,

	TransactionNotFound: http.StatusNotFound,
	AccountNotFound:     http.StatusNotFound,

	AnalyticsUnknownType:         http.StatusUnprocessableEntity,
	AnalyticsUnsupportedChart:    http.StatusUnprocessableEntity,
	AnalyticsUnknownComparison:   http.StatusUnprocessableEntity,
	AnalyticsUnknownDistribution: http.StatusUnprocessableEntity,
	TransactionInvalidType:       http.StatusUnprocessableEntity,

	SystemRateLimitExceeded:  http.StatusTooManyRequests,
	SystemServiceUnavailable: http.StatusServiceUnavailable,
	SystemInternalError:      http.StatusInternalServerError,
	SystemDatabaseError:      http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for a code; unknown codes are
// treated as internal errors.
func GetHTTPStatus(code ErrorCode) int {
	if status, ok := httpStatusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// GetHTTPStatus returns the HTTP status for the response's code.
func (er *ErrorResponse) GetHTTPStatus() int {
	return GetHTTPStatus(ErrorCode(er.Error.Code))
}

// IsClientError reports whether the response maps to a 4xx status.
func (er *ErrorResponse) IsClientError() bool {
	status := er.GetHTTPStatus()
	return status >= 400 && status < 500
}

// IsServerError reports whether the response maps to a 5xx status.
func (er *ErrorResponse) IsServerError() bool {
	return er.GetHTTPStatus() >= 500
}

func (er *ErrorResponse) String() string {
	return fmt.Sprintf("[%s] %s (trace: %s)", er.Error.Code, er.Error.Message, er.Error.TraceID)
}
