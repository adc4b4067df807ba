package handlers

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"transaction-analytics/internal/analytics"
	"transaction-analytics/internal/dto"
	"transaction-analytics/internal/errors"
	"transaction-analytics/internal/models"
	"transaction-analytics/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// AnalyticsHandler handles analytics report endpoints
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServiceInterface
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService services.AnalyticsServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetAnalytics generates an analytics report for the authenticated user
//
// Method: GET /api/v1/analytics
// Authentication: Required
//
// Query parameters:
//   - analytics_type: spending_trends | income_analysis | transaction_analysis |
//     comparison_analysis | distribution_analysis (required)
//   - visualization_type: line_chart | bar_chart | pie_chart | table (required)
//   - comparison_type: year_over_year | income_vs_expense | category_comparison
//     (required for comparison_analysis)
//   - distribution_variable: category | amount_range | time_of_day | day_of_week
//     (required for distribution_analysis)
//   - period: named relative period such as this_month or last_3_months
//   - year: four digit year, used by year scoped reports
//   - start_date / end_date: explicit range, YYYY-MM-DD
//   - transaction_type, category, merchant, source, min_amount, max_amount: filters
//
// Success Response: 200 OK with the report payload, summary and metadata
//
// Error Responses:
//   - 400: Malformed parameters or inverted date range
//   - 401: Unauthorized
//   - 422: Unknown analytics mode, comparison type or distribution variable
//   - 500: Internal server error
func (h *AnalyticsHandler) GetAnalytics(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.AnalyticsRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("malformed query parameters"))
	}
	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	params, err := parseAnalyticsParams(&req)
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	response, err := h.analyticsService.GetAnalytics(userID, params)
	if err != nil {
		return h.sendAnalyticsError(c, err)
	}

	return c.JSON(http.StatusOK, response)
}

// GetSummary returns scalar summary statistics for a filtered transaction set
//
// Method: GET /api/v1/analytics/summary
// Authentication: Required
//
// Query parameters: same filter set as GET /api/v1/analytics
//
// Success Response: 200 OK with totals, average, change percentage and count
func (h *AnalyticsHandler) GetSummary(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	filters, err := parseAnalyticsFilters(
		c.QueryParam("start_date"),
		c.QueryParam("end_date"),
		c.QueryParam("transaction_type"),
		c.QueryParam("category"),
		c.QueryParam("merchant"),
		c.QueryParam("source"),
		c.QueryParam("min_amount"),
		c.QueryParam("max_amount"),
	)
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	summary, err := h.analyticsService.GetSummary(userID, filters)
	if err != nil {
		return h.sendAnalyticsError(c, err)
	}

	return c.JSON(http.StatusOK, dto.SummaryResponse{
		Summary:     *summary,
		GeneratedAt: time.Now().UTC(),
		Filters:     filters.Applied(),
	})
}

// sendAnalyticsError maps service sentinel errors onto API error codes
func (h *AnalyticsHandler) sendAnalyticsError(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, services.ErrUnknownAnalyticsType):
		return SendError(c, errors.AnalyticsUnknownType, errors.WithDetails(err.Error()))
	case stderrors.Is(err, analytics.ErrUnsupportedVisualization):
		return SendError(c, errors.AnalyticsUnsupportedChart, errors.WithDetails(err.Error()))
	case stderrors.Is(err, services.ErrUnknownComparisonType):
		return SendError(c, errors.AnalyticsUnknownComparison, errors.WithDetails(err.Error()))
	case stderrors.Is(err, analytics.ErrUnknownDistributionVariable):
		return SendError(c, errors.AnalyticsUnknownDistribution, errors.WithDetails(err.Error()))
	case stderrors.Is(err, analytics.ErrInvalidInterval):
		return SendError(c, errors.AnalyticsInvalidDateRange)
	default:
		return SendSystemError(c, err)
	}
}

// parseAnalyticsParams converts the raw request into typed parameters
func parseAnalyticsParams(req *dto.AnalyticsRequest) (*dto.AnalyticsParams, error) {
	filters, err := parseAnalyticsFilters(
		req.StartDate,
		req.EndDate,
		req.TransactionType,
		req.Category,
		req.Merchant,
		req.Source,
		req.MinAmount,
		req.MaxAmount,
	)
	if err != nil {
		return nil, err
	}

	return &dto.AnalyticsParams{
		AnalyticsType:        req.AnalyticsType,
		VisualizationType:    req.VisualizationType,
		ComparisonType:       req.ComparisonType,
		DistributionVariable: req.DistributionVariable,
		Period:               req.Period,
		Year:                 req.Year,
		Filters:              filters,
	}, nil
}

// parseAnalyticsFilters parses and validates the shared filter parameters
func parseAnalyticsFilters(startDateStr, endDateStr, txnType, category, merchant, source, minAmountStr, maxAmountStr string) (models.TransactionFilters, error) {
	var filters models.TransactionFilters

	if startDateStr != "" {
		startDate, err := time.Parse("2006-01-02", startDateStr)
		if err != nil {
			return filters, fmt.Errorf("invalid start_date format, use YYYY-MM-DD")
		}
		filters.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse("2006-01-02", endDateStr)
		if err != nil {
			return filters, fmt.Errorf("invalid end_date format, use YYYY-MM-DD")
		}
		filters.EndDate = &endDate
	}

	if filters.StartDate != nil && filters.EndDate != nil && filters.StartDate.After(*filters.EndDate) {
		return filters, fmt.Errorf("start_date must not be after end_date")
	}

	if txnType != "" {
		if !models.IsValidTransactionType(txnType) {
			return filters, fmt.Errorf("invalid transaction_type, must be one of debit, credit, transfer, payment")
		}
		filters.Type = txnType
	}

	if category != "" {
		filters.Category = category
	}

	if merchant != "" {
		filters.MerchantName = merchant
	}

	if source != "" {
		filters.Source = source
	}

	if minAmountStr != "" {
		minAmount, err := decimal.NewFromString(minAmountStr)
		if err != nil {
			return filters, fmt.Errorf("invalid min_amount format")
		}
		filters.MinAmount = &minAmount
	}

	if maxAmountStr != "" {
		maxAmount, err := decimal.NewFromString(maxAmountStr)
		if err != nil {
			return filters, fmt.Errorf("invalid max_amount format")
		}
		filters.MaxAmount = &maxAmount
	}

	return filters, nil
}
