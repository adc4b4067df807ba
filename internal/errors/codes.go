package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials     ErrorCode = "AUTH_001"
	AuthMissingToken           ErrorCode = "AUTH_002"
	AuthExpiredToken           ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat     ErrorCode = "AUTH_004"
	AuthInsufficientPermission ErrorCode = "AUTH_005"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidDate   ErrorCode = "VALIDATION_005"
	ValidationInvalidAmount ErrorCode = "VALIDATION_006"
)

// Analytics error codes (ANALYTICS_*)
const (
	AnalyticsUnknownType          ErrorCode = "ANALYTICS_001"
	AnalyticsUnsupportedChart     ErrorCode = "ANALYTICS_002"
	AnalyticsUnknownComparison    ErrorCode = "ANALYTICS_003"
	AnalyticsUnknownDistribution  ErrorCode = "ANALYTICS_004"
	AnalyticsInvalidDateRange     ErrorCode = "ANALYTICS_005"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionNotFound    ErrorCode = "TRANSACTION_001"
	TransactionInvalidType ErrorCode = "TRANSACTION_002"
)

// Account error codes (ACCOUNT_*)
const (
	AccountNotFound ErrorCode = "ACCOUNT_001"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthInvalidCredentials:     "Invalid credentials",
	AuthMissingToken:           "Authorization token is required",
	AuthExpiredToken:           "Authorization token has expired",
	AuthInvalidTokenFormat:     "Invalid authorization token format",
	AuthInsufficientPermission: "Insufficient permissions to access this resource",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",
	ValidationInvalidDate:   "Invalid date format or range",
	ValidationInvalidAmount: "Invalid amount value",

	// Analytics errors
	AnalyticsUnknownType:         "Unknown analytics type",
	AnalyticsUnsupportedChart:    "Unsupported visualization type",
	AnalyticsUnknownComparison:   "Unknown comparison type",
	AnalyticsUnknownDistribution: "Unknown distribution variable",
	AnalyticsInvalidDateRange:    "Start date must not be after end date",

	// Transaction errors
	TransactionNotFound:    "Transaction not found",
	TransactionInvalidType: "Invalid transaction type",

	// Account errors
	AccountNotFound: "Account not found",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
