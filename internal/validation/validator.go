package validation

import (
	"reflect"
	"strings"
	"time"

	"transaction-analytics/internal/analytics"
	"transaction-analytics/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("analytics_type", validateAnalyticsType)
	_ = v.RegisterValidation("visualization_type", validateVisualizationType)
	_ = v.RegisterValidation("distribution_variable", validateDistributionVariable)
	_ = v.RegisterValidation("date_string", validateDateString)
	_ = v.RegisterValidation("amount_string", validateAmountString)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

// validateTransactionType validates that transaction type is one of the allowed types
func validateTransactionType(fl validator.FieldLevel) bool {
	return models.IsValidTransactionType(fl.Field().String())
}

// validateAnalyticsType validates the analytics mode name
func validateAnalyticsType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "spending_trends", "income_analysis", "transaction_analysis",
		"comparison_analysis", "distribution_analysis":
		return true
	default:
		return false
	}
}

// validateVisualizationType validates the chart type name
func validateVisualizationType(fl validator.FieldLevel) bool {
	return analytics.IsValidVisualizationType(fl.Field().String())
}

// validateDistributionVariable validates the distribution bucketing variable
func validateDistributionVariable(fl validator.FieldLevel) bool {
	return analytics.IsValidDistributionVariable(fl.Field().String())
}

// validateDateString validates a calendar date in YYYY-MM-DD form
func validateDateString(fl validator.FieldLevel) bool {
	_, err := time.Parse(analytics.DateKeyFormat, fl.Field().String())
	return err == nil
}

// validateAmountString validates a decimal amount string greater than zero
func validateAmountString(fl validator.FieldLevel) bool {
	amount, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return amount.GreaterThan(decimal.Zero)
}
