package dto

import (
	"time"

	"transaction-analytics/internal/analytics"
	"transaction-analytics/internal/models"
)

// Analytics type names accepted by the orchestrator.
const (
	AnalyticsSpendingTrends       = "spending_trends"
	AnalyticsIncomeAnalysis       = "income_analysis"
	AnalyticsTransactionAnalysis  = "transaction_analysis"
	AnalyticsComparisonAnalysis   = "comparison_analysis"
	AnalyticsDistributionAnalysis = "distribution_analysis"
)

// Comparison sub-types for comparison_analysis.
const (
	ComparisonYearOverYear    = "year_over_year"
	ComparisonIncomeVsExpense = "income_vs_expense"
	ComparisonCategory        = "category_comparison"
)

// AnalyticsRequest is the raw query-string binding for the analytics
// endpoint. Field-level parsing into AnalyticsParams happens in the
// handler.
type AnalyticsRequest struct {
	AnalyticsType        string `query:"analytics_type" validate:"required"`
	VisualizationType    string `query:"visualization_type" validate:"required"`
	ComparisonType       string `query:"comparison_type"`
	DistributionVariable string `query:"distribution_variable"`
	Period               string `query:"period"`
	Year                 int    `query:"year" validate:"omitempty,min=1900,max=2200"`
	StartDate            string `query:"start_date" validate:"omitempty,date_string"`
	EndDate              string `query:"end_date" validate:"omitempty,date_string"`
	TransactionType      string `query:"transaction_type" validate:"omitempty,transaction_type"`
	Category             string `query:"category"`
	Merchant             string `query:"merchant"`
	Source               string `query:"source"`
	MinAmount            string `query:"min_amount" validate:"omitempty,amount_string"`
	MaxAmount            string `query:"max_amount" validate:"omitempty,amount_string"`
}

// AnalyticsParams is the parsed, typed analytics query handed to the
// orchestrator service.
type AnalyticsParams struct {
	AnalyticsType        string
	VisualizationType    string
	ComparisonType       string
	DistributionVariable string
	Period               string
	Year                 int
	Filters              models.TransactionFilters
}

// ComparisonArm is one named comparison total.
type ComparisonArm struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// ComparisonSummary is the summary variant for comparison analytics.
type ComparisonSummary struct {
	ComparisonData   []ComparisonArm `json:"comparison_data"`
	PercentageChange float64         `json:"percentage_change"`
}

// AnalyticsMetadata describes how a response was produced.
type AnalyticsMetadata struct {
	GeneratedAt          string                 `json:"generated_at"`
	AppliedFilters       map[string]interface{} `json:"applied_filters"`
	StartDate            string                 `json:"start_date,omitempty"`
	EndDate              string                 `json:"end_date,omitempty"`
	Granularity          string                 `json:"granularity,omitempty"`
	ComparisonType       string                 `json:"comparison_type,omitempty"`
	DistributionVariable string                 `json:"distribution_variable,omitempty"`
}

// AnalyticsResponse is the assembled analytics report. Data is always
// present; exactly one of Summary (trend and distribution modes) or
// Comparison (comparison mode) is set.
type AnalyticsResponse struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Data        analytics.Payload  `json:"data"`
	Summary     *analytics.Summary `json:"summary,omitempty"`
	Comparison  *ComparisonSummary `json:"comparison,omitempty"`
	Metadata    AnalyticsMetadata  `json:"metadata"`
}

// SummaryResponse wraps the scalar summary endpoint output.
type SummaryResponse struct {
	Summary     analytics.Summary      `json:"summary"`
	GeneratedAt time.Time              `json:"generated_at"`
	Filters     map[string]interface{} `json:"applied_filters"`
}

// SeedRequest configures dev-only sample data generation.
type SeedRequest struct {
	Months           int `json:"months" validate:"omitempty,min=1,max=36"`
	TransactionCount int `json:"transaction_count" validate:"omitempty,min=1,max=10000"`
}

// SeedResponse reports what the seeder created.
type SeedResponse struct {
	AccountsCreated     int `json:"accounts_created"`
	CardsCreated        int `json:"cards_created"`
	TransactionsCreated int `json:"transactions_created"`
}
