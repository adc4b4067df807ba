package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionFilters contains the optional predicate fields for
// transaction queries. Absent fields mean "no constraint".
type TransactionFilters struct {
	StartDate    *time.Time
	EndDate      *time.Time
	Type         string
	Category     string
	MerchantName string
	Source       string
	MinAmount    *decimal.Decimal
	MaxAmount    *decimal.Decimal
}

// HasDateRange reports whether both explicit interval bounds are set.
func (f TransactionFilters) HasDateRange() bool {
	return f.StartDate != nil && f.EndDate != nil
}

// Applied returns the non-empty filters as a map, used to echo the
// applied predicate back in response metadata.
func (f TransactionFilters) Applied() map[string]interface{} {
	applied := make(map[string]interface{})

	if f.StartDate != nil {
		applied["start_date"] = f.StartDate.Format("2006-01-02")
	}
	if f.EndDate != nil {
		applied["end_date"] = f.EndDate.Format("2006-01-02")
	}
	if f.Type != "" {
		applied["transaction_type"] = f.Type
	}
	if f.Category != "" {
		applied["category"] = f.Category
	}
	if f.MerchantName != "" {
		applied["merchant"] = f.MerchantName
	}
	if f.Source != "" {
		applied["source"] = f.Source
	}
	if f.MinAmount != nil {
		applied["min_amount"] = f.MinAmount.String()
	}
	if f.MaxAmount != nil {
		applied["max_amount"] = f.MaxAmount.String()
	}

	return applied
}
