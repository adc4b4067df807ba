package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"transaction-analytics/internal/analytics"
	"transaction-analytics/internal/dto"
	"transaction-analytics/internal/models"
	"transaction-analytics/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrUnknownAnalyticsType  = errors.New("unknown analytics type")
	ErrUnknownComparisonType = errors.New("unknown comparison type")
)

// Comparison arm names for income_vs_expense and category_comparison.
const (
	armIncome         = "Income"
	armExpenses       = "Expenses"
	armCurrentPeriod  = "Current Period"
	armPreviousPeriod = "Previous Period"
)

type analyticsService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	resolver        *analytics.RangeResolver
	metrics         MetricsRecorderInterface
	now             func() time.Time
}

// NewAnalyticsService creates the analytics orchestrator.
func NewAnalyticsService(transactionRepo repositories.TransactionRepositoryInterface, metrics MetricsRecorderInterface) AnalyticsServiceInterface {
	return &analyticsService{
		transactionRepo: transactionRepo,
		resolver:        analytics.NewRangeResolver(),
		metrics:         metrics,
		now:             time.Now,
	}
}

// NewAnalyticsServiceAt creates the orchestrator with a fixed clock so
// relative period arithmetic is reproducible in tests.
func NewAnalyticsServiceAt(transactionRepo repositories.TransactionRepositoryInterface, metrics MetricsRecorderInterface, now func() time.Time) AnalyticsServiceInterface {
	return &analyticsService{
		transactionRepo: transactionRepo,
		resolver:        analytics.NewRangeResolverAt(now),
		metrics:         metrics,
		now:             now,
	}
}

// trendMode captures how the three trend analytics differ: the default
// type filter, the accumulated measure and the pie-chart grouping.
type trendMode struct {
	title        string
	description  string
	subject      string
	typeFilter   string
	measure      analytics.Measure
	pieBreakdown func([]models.Transaction, analytics.Measure) analytics.Result
}

func (s *analyticsService) GetAnalytics(userID uuid.UUID, params *dto.AnalyticsParams) (*dto.AnalyticsResponse, error) {
	if userID == uuid.Nil {
		return nil, errors.New("user ID is required")
	}

	started := s.now()
	response, err := s.dispatch(userID, params)
	if err != nil {
		s.metrics.IncrementCounter("analytics.request", map[string]string{
			"type":   params.AnalyticsType,
			"status": "failed",
		})
		return nil, err
	}

	s.metrics.IncrementCounter("analytics.request", map[string]string{
		"type":   params.AnalyticsType,
		"status": "success",
	})
	s.metrics.RecordProcessingTime("analytics.compute", s.now().Sub(started))

	slog.Info("analytics generated",
		"user_id", userID,
		"analytics_type", params.AnalyticsType,
		"visualization_type", params.VisualizationType)

	return response, nil
}

func (s *analyticsService) dispatch(userID uuid.UUID, params *dto.AnalyticsParams) (*dto.AnalyticsResponse, error) {
	if !analytics.IsValidVisualizationType(params.VisualizationType) {
		return nil, fmt.Errorf("%w: %q", analytics.ErrUnsupportedVisualization, params.VisualizationType)
	}

	switch params.AnalyticsType {
	case dto.AnalyticsSpendingTrends:
		return s.trendReport(userID, params, trendMode{
			title:        "Spending Trends",
			description:  "Spending over time",
			subject:      "Spending",
			typeFilter:   models.TransactionTypeDebit,
			measure:      analytics.MeasureAmount,
			pieBreakdown: analytics.AggregateByCategory,
		})

	case dto.AnalyticsIncomeAnalysis:
		return s.trendReport(userID, params, trendMode{
			title:        "Income Analysis",
			description:  "Income over time",
			subject:      "Income",
			typeFilter:   models.TransactionTypeCredit,
			measure:      analytics.MeasureAmount,
			pieBreakdown: analytics.AggregateBySource,
		})

	case dto.AnalyticsTransactionAnalysis:
		return s.trendReport(userID, params, trendMode{
			title:        "Transaction Analysis",
			description:  "Transaction activity over time",
			subject:      "Transactions",
			measure:      analytics.MeasureCount,
			pieBreakdown: analytics.AggregateByCategory,
		})

	case dto.AnalyticsComparisonAnalysis:
		return s.comparisonReport(userID, params)

	case dto.AnalyticsDistributionAnalysis:
		return s.distributionReport(userID, params)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAnalyticsType, params.AnalyticsType)
	}
}

// trendReport is the shared pipeline for spending_trends,
// income_analysis and transaction_analysis.
func (s *analyticsService) trendReport(userID uuid.UUID, params *dto.AnalyticsParams, mode trendMode) (*dto.AnalyticsResponse, error) {
	interval := s.resolver.Resolve(params.Filters, params.Period, params.Year)

	filters := params.Filters
	if filters.Type == "" {
		filters.Type = mode.typeFilter
	}

	transactions, err := s.fetch(userID, filters, interval)
	if err != nil {
		return nil, err
	}

	plan, err := analytics.PlanBuckets(interval)
	if err != nil {
		return nil, err
	}

	visualization := analytics.VisualizationType(params.VisualizationType)

	var payload analytics.Payload
	switch visualization {
	case analytics.VisualizationTable:
		payload = analytics.FormatTransactionTable(transactions)
	case analytics.VisualizationPieChart:
		breakdown := mode.pieBreakdown(transactions, mode.measure)
		payload, err = analytics.Format(breakdown, analytics.FormatContext{
			Measure: mode.measure,
			Subject: mode.subject,
		}, visualization)
	default:
		series := analytics.AggregateTimeSeries(transactions, plan, mode.measure)
		payload, err = analytics.Format(series, analytics.FormatContext{
			Measure:     mode.measure,
			Granularity: plan.Granularity,
			Subject:     mode.subject,
		}, visualization)
	}
	if err != nil {
		return nil, err
	}

	summary := analytics.Summarize(transactions)

	return &dto.AnalyticsResponse{
		Title:       mode.title,
		Description: fmt.Sprintf("%s from %s to %s", mode.description, interval.StartKey(), interval.EndKey()),
		Data:        payload,
		Summary:     &summary,
		Metadata:    s.metadata(filters, interval, params, string(plan.Granularity)),
	}, nil
}

func (s *analyticsService) comparisonReport(userID uuid.UUID, params *dto.AnalyticsParams) (*dto.AnalyticsResponse, error) {
	switch params.ComparisonType {
	case dto.ComparisonYearOverYear:
		return s.yearOverYear(userID, params)
	case dto.ComparisonIncomeVsExpense:
		return s.incomeVsExpense(userID, params)
	case dto.ComparisonCategory:
		return s.categoryComparison(userID, params)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownComparisonType, params.ComparisonType)
	}
}

// yearOverYear compares the selected year against the year before it,
// month by month. Both arms share a Jan..Dec key axis.
func (s *analyticsService) yearOverYear(userID uuid.UUID, params *dto.AnalyticsParams) (*dto.AnalyticsResponse, error) {
	currentYear := params.Year
	if currentYear == 0 {
		currentYear = s.now().Year()
	}
	years := []int{currentYear, currentYear - 1}

	filters := params.Filters
	if filters.Type == "" {
		filters.Type = models.TransactionTypeDebit
	}

	series := make([]analytics.Series, 0, len(years))
	arms := make([]dto.ComparisonArm, 0, len(years))
	for _, year := range years {
		interval := analytics.YearInterval(year)

		transactions, err := s.fetch(userID, filters, interval)
		if err != nil {
			return nil, err
		}

		plan, err := analytics.PlanBuckets(interval)
		if err != nil {
			return nil, err
		}

		monthly := analytics.AggregateTimeSeries(transactions, plan, analytics.MeasureAmount)
		arm := analytics.Series{Name: strconv.Itoa(year), Points: relabelMonths(monthly)}
		series = append(series, arm)
		arms = append(arms, dto.ComparisonArm{
			Name:  arm.Name,
			Total: arm.Total().Round(2).InexactFloat64(),
		})
	}

	payload, err := analytics.FormatSeries(series, analytics.FormatContext{
		Measure:     analytics.MeasureAmount,
		Granularity: analytics.GranularityMonth,
		Subject:     "Spending",
	}, analytics.VisualizationType(params.VisualizationType), true)
	if err != nil {
		return nil, err
	}

	change := analytics.PercentageChange(series[1].Total(), series[0].Total())

	interval := analytics.YearInterval(currentYear)
	return &dto.AnalyticsResponse{
		Title:       "Year over Year Comparison",
		Description: fmt.Sprintf("Spending comparison between %d and %d", currentYear, currentYear-1),
		Data:        payload,
		Comparison: &dto.ComparisonSummary{
			ComparisonData:   arms,
			PercentageChange: change,
		},
		Metadata: s.metadata(filters, interval, params, ""),
	}, nil
}

// incomeVsExpense splits one period's transactions into income and
// expense arms over a shared bucket plan.
func (s *analyticsService) incomeVsExpense(userID uuid.UUID, params *dto.AnalyticsParams) (*dto.AnalyticsResponse, error) {
	interval := s.resolver.Resolve(params.Filters, params.Period, params.Year)

	transactions, err := s.fetch(userID, params.Filters, interval)
	if err != nil {
		return nil, err
	}

	plan, err := analytics.PlanBuckets(interval)
	if err != nil {
		return nil, err
	}

	var income, expenses []models.Transaction
	for i := range transactions {
		txn := transactions[i]
		switch {
		case txn.IsIncome():
			income = append(income, txn)
		case txn.IsExpense():
			expenses = append(expenses, txn)
		}
	}

	series := []analytics.Series{
		{Name: armIncome, Points: analytics.AggregateTimeSeries(income, plan, analytics.MeasureAmount)},
		{Name: armExpenses, Points: analytics.AggregateTimeSeries(expenses, plan, analytics.MeasureAmount)},
	}

	payload, err := analytics.FormatSeries(series, analytics.FormatContext{
		Measure:     analytics.MeasureAmount,
		Granularity: plan.Granularity,
	}, analytics.VisualizationType(params.VisualizationType), false)
	if err != nil {
		return nil, err
	}

	incomeTotal := series[0].Total()
	expenseTotal := series[1].Total()

	return &dto.AnalyticsResponse{
		Title:       "Income vs Expenses",
		Description: fmt.Sprintf("Income against expenses from %s to %s", interval.StartKey(), interval.EndKey()),
		Data:        payload,
		Comparison: &dto.ComparisonSummary{
			ComparisonData: []dto.ComparisonArm{
				{Name: armIncome, Total: incomeTotal.Round(2).InexactFloat64()},
				{Name: armExpenses, Total: expenseTotal.Round(2).InexactFloat64()},
			},
			PercentageChange: analytics.PercentageChange(expenseTotal, incomeTotal),
		},
		Metadata: s.metadata(params.Filters, interval, params, string(plan.Granularity)),
	}, nil
}

// categoryComparison compares the selected period's category breakdown
// against the immediately preceding period of equal length. Arms are
// category-keyed, so no key alignment is forced.
func (s *analyticsService) categoryComparison(userID uuid.UUID, params *dto.AnalyticsParams) (*dto.AnalyticsResponse, error) {
	current := s.resolver.Resolve(params.Filters, params.Period, params.Year)
	previous := analytics.PrecedingInterval(current)

	filters := params.Filters
	if filters.Type == "" {
		filters.Type = models.TransactionTypeDebit
	}

	series := make([]analytics.Series, 0, 2)
	arms := make([]dto.ComparisonArm, 0, 2)
	for _, window := range []struct {
		name     string
		interval analytics.DateInterval
	}{
		{armCurrentPeriod, current},
		{armPreviousPeriod, previous},
	} {
		transactions, err := s.fetch(userID, filters, window.interval)
		if err != nil {
			return nil, err
		}

		arm := analytics.Series{
			Name:   window.name,
			Points: analytics.AggregateByCategory(transactions, analytics.MeasureAmount),
		}
		series = append(series, arm)
		arms = append(arms, dto.ComparisonArm{
			Name:  arm.Name,
			Total: arm.Total().Round(2).InexactFloat64(),
		})
	}

	payload, err := analytics.FormatSeries(series, analytics.FormatContext{
		Measure: analytics.MeasureAmount,
	}, analytics.VisualizationType(params.VisualizationType), true)
	if err != nil {
		return nil, err
	}

	return &dto.AnalyticsResponse{
		Title:       "Category Comparison",
		Description: fmt.Sprintf("Category spending for %s to %s against the preceding period", current.StartKey(), current.EndKey()),
		Data:        payload,
		Comparison: &dto.ComparisonSummary{
			ComparisonData:   arms,
			PercentageChange: analytics.PercentageChange(series[1].Total(), series[0].Total()),
		},
		Metadata: s.metadata(filters, current, params, ""),
	}, nil
}

func (s *analyticsService) distributionReport(userID uuid.UUID, params *dto.AnalyticsParams) (*dto.AnalyticsResponse, error) {
	if !analytics.IsValidDistributionVariable(params.DistributionVariable) {
		return nil, fmt.Errorf("%w: %q", analytics.ErrUnknownDistributionVariable, params.DistributionVariable)
	}
	variable := analytics.DistributionVariable(params.DistributionVariable)

	interval := s.resolver.Resolve(params.Filters, params.Period, params.Year)

	transactions, err := s.fetch(userID, params.Filters, interval)
	if err != nil {
		return nil, err
	}

	result, err := analytics.AggregateDistribution(transactions, variable)
	if err != nil {
		return nil, err
	}

	payload, err := analytics.Format(result, analytics.FormatContext{
		Measure: analytics.MeasureAmount,
		Subject: distributionSubject(variable),
	}, analytics.VisualizationType(params.VisualizationType))
	if err != nil {
		return nil, err
	}

	summary := analytics.Summarize(transactions)

	return &dto.AnalyticsResponse{
		Title:       "Spending Distribution",
		Description: fmt.Sprintf("Distribution by %s from %s to %s", distributionSubject(variable), interval.StartKey(), interval.EndKey()),
		Data:        payload,
		Summary:     &summary,
		Metadata:    s.metadata(params.Filters, interval, params, ""),
	}, nil
}

func (s *analyticsService) GetSummary(userID uuid.UUID, filters models.TransactionFilters) (*analytics.Summary, error) {
	if userID == uuid.Nil {
		return nil, errors.New("user ID is required")
	}

	interval := s.resolver.Resolve(filters, "", 0)

	transactions, err := s.fetch(userID, filters, interval)
	if err != nil {
		return nil, err
	}

	summary := analytics.Summarize(transactions)
	return &summary, nil
}

// fetch queries the owned transaction snapshot for an interval. The end
// bound is stretched to the end of its day so timestamped records on
// the final day are included.
func (s *analyticsService) fetch(userID uuid.UUID, filters models.TransactionFilters, interval analytics.DateInterval) ([]models.Transaction, error) {
	start := interval.Start
	end := interval.End.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	filters.StartDate = &start
	filters.EndDate = &end

	transactions, err := s.transactionRepo.QueryTransactions(userID, filters)
	if err != nil {
		slog.Error("failed to query transactions for analytics",
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	return transactions, nil
}

func (s *analyticsService) metadata(filters models.TransactionFilters, interval analytics.DateInterval, params *dto.AnalyticsParams, granularity string) dto.AnalyticsMetadata {
	return dto.AnalyticsMetadata{
		GeneratedAt:          s.now().UTC().Format(time.RFC3339),
		AppliedFilters:       filters.Applied(),
		StartDate:            interval.StartKey(),
		EndDate:              interval.EndKey(),
		Granularity:          granularity,
		ComparisonType:       params.ComparisonType,
		DistributionVariable: params.DistributionVariable,
	}
}

// relabelMonths replaces monthly bucket keys with month names so
// year-over-year arms share a Jan..Dec axis.
func relabelMonths(monthly analytics.Result) analytics.Result {
	relabeled := make(analytics.Result, 0, len(monthly))
	for _, p := range monthly {
		if t, err := time.Parse(analytics.DateKeyFormat, p.Key); err == nil {
			p.Key = t.Format("Jan")
		}
		relabeled = append(relabeled, p)
	}
	return relabeled
}

func distributionSubject(variable analytics.DistributionVariable) string {
	switch variable {
	case analytics.DistributionByAmountRange:
		return "amount range"
	case analytics.DistributionByTimeOfDay:
		return "time of day"
	case analytics.DistributionByDayOfWeek:
		return "day of week"
	default:
		return "category"
	}
}
