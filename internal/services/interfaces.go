package services

import (
	"time"

	"transaction-analytics/internal/analytics"
	"transaction-analytics/internal/dto"
	"transaction-analytics/internal/models"

	"github.com/google/uuid"
)

// AnalyticsServiceInterface is the orchestrator entry point: it resolves
// an analytics type to a pipeline (date range -> repository ->
// aggregation -> formatting) and assembles the response.
type AnalyticsServiceInterface interface {
	// GetAnalytics generates the report for an analytics type,
	// visualization type and filter set.
	GetAnalytics(userID uuid.UUID, params *dto.AnalyticsParams) (*dto.AnalyticsResponse, error)

	// GetSummary computes scalar summary statistics for a filtered
	// transaction set.
	GetSummary(userID uuid.UUID, filters models.TransactionFilters) (*analytics.Summary, error)
}

// SampleDataGeneratorInterface generates realistic transaction data for
// development environments.
type SampleDataGeneratorInterface interface {
	SeedUserData(userID uuid.UUID, months, transactionCount int) (*dto.SeedResponse, error)
}

// MetricsRecorderInterface records operational metrics.
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
}
