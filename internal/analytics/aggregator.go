package analytics

import (
	"errors"
	"sort"

	"transaction-analytics/internal/models"

	"github.com/shopspring/decimal"
)

// DistributionVariable selects the bucketing rule for distribution
// analytics.
type DistributionVariable string

const (
	DistributionByCategory    DistributionVariable = "category"
	DistributionByAmountRange DistributionVariable = "amount_range"
	DistributionByTimeOfDay   DistributionVariable = "time_of_day"
	DistributionByDayOfWeek   DistributionVariable = "day_of_week"
)

var ErrUnknownDistributionVariable = errors.New("unknown distribution variable")

// AmountBand is one half-open amount range [Min, Max). A nil Max means
// unbounded. Bands are matched first-match-wins in declaration order.
type AmountBand struct {
	Label string
	Min   decimal.Decimal
	Max   *decimal.Decimal
}

func bounded(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// DefaultAmountBands are the four standard amount ranges.
var DefaultAmountBands = []AmountBand{
	{Label: "Small (0-1,000)", Min: decimal.Zero, Max: bounded(1000)},
	{Label: "Medium (1,000-5,000)", Min: decimal.NewFromInt(1000), Max: bounded(5000)},
	{Label: "Large (5,000-10,000)", Min: decimal.NewFromInt(5000), Max: bounded(10000)},
	{Label: "Very Large (10,000+)", Min: decimal.NewFromInt(10000)},
}

// timeOfDayBands are fixed clock-hour bands; Night wraps past midnight.
var timeOfDayBands = []struct {
	Label      string
	From, To   int // [From, To) in clock hours
	WrapsRound bool
}{
	{Label: "Morning (6am-12pm)", From: 6, To: 12},
	{Label: "Afternoon (12pm-5pm)", From: 12, To: 17},
	{Label: "Evening (5pm-9pm)", From: 17, To: 21},
	{Label: "Night (9pm-6am)", From: 21, To: 6, WrapsRound: true},
}

// dayOfWeekLabels follow time.Weekday ordering (Sunday first).
var dayOfWeekLabels = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// measureValue returns a transaction's contribution under a measure.
func measureValue(txn *models.Transaction, measure Measure) decimal.Decimal {
	if measure == MeasureCount {
		return decimal.NewFromInt(1)
	}
	return txn.Amount
}

// AggregateTimeSeries buckets transactions over a plan's keys and
// accumulates the measure per bucket. Every planned key appears in the
// result, zero-valued when no transaction falls into it. A transaction
// whose bucket key is outside the plan (its date lies outside the
// planned interval) is silently excluded; that is a boundary condition,
// not an error.
func AggregateTimeSeries(transactions []models.Transaction, plan BucketPlan, measure Measure) Result {
	totals := make(map[string]decimal.Decimal, len(plan.Keys))
	for _, key := range plan.Keys {
		totals[key] = decimal.Zero
	}

	for i := range transactions {
		txn := &transactions[i]
		key := BucketKey(txn.TransactionDate, plan.Granularity)
		current, ok := totals[key]
		if !ok {
			continue
		}
		totals[key] = current.Add(measureValue(txn, measure))
	}

	result := make(Result, 0, len(plan.Keys))
	for _, key := range plan.Keys {
		result = append(result, Point{Key: key, Value: totals[key]})
	}
	return result
}

// AggregateByCategory groups by category (Uncategorized when absent)
// and accumulates the measure, sorted by descending value. Only
// observed categories appear; an empty input yields an empty result.
func AggregateByCategory(transactions []models.Transaction, measure Measure) Result {
	return aggregateByLabel(transactions, measure, (*models.Transaction).CategoryLabel)
}

// AggregateBySource groups by source (Other when absent), sorted by
// descending value.
func AggregateBySource(transactions []models.Transaction, measure Measure) Result {
	return aggregateByLabel(transactions, measure, (*models.Transaction).SourceLabel)
}

func aggregateByLabel(transactions []models.Transaction, measure Measure, label func(*models.Transaction) string) Result {
	totals := make(map[string]decimal.Decimal)
	order := make([]string, 0)

	for i := range transactions {
		txn := &transactions[i]
		key := label(txn)
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] = totals[key].Add(measureValue(txn, measure))
	}

	result := make(Result, 0, len(order))
	for _, key := range order {
		result = append(result, Point{Key: key, Value: totals[key]})
	}
	sortByValueDesc(result)
	return result
}

// AggregateDistribution buckets transactions by the given variable and
// reports summed amounts per bucket. Category and amount-range results
// are sorted by descending value for display; time-of-day and
// day-of-week preserve their predefined band order. Band-based
// variables pre-seed every band, so empty bands report zero.
func AggregateDistribution(transactions []models.Transaction, variable DistributionVariable) (Result, error) {
	switch variable {
	case DistributionByCategory:
		return AggregateByCategory(transactions, MeasureAmount), nil
	case DistributionByAmountRange:
		result := aggregateAmountRanges(transactions, DefaultAmountBands)
		sortByValueDesc(result)
		return result, nil
	case DistributionByTimeOfDay:
		return aggregateTimeOfDay(transactions), nil
	case DistributionByDayOfWeek:
		return aggregateDayOfWeek(transactions), nil
	default:
		return nil, ErrUnknownDistributionVariable
	}
}

// AggregateAmountRanges buckets by a caller-supplied ordered band list,
// first match wins. Exposed for configurable min/max bands; the default
// bands are DefaultAmountBands.
func AggregateAmountRanges(transactions []models.Transaction, bands []AmountBand) Result {
	return aggregateAmountRanges(transactions, bands)
}

func aggregateAmountRanges(transactions []models.Transaction, bands []AmountBand) Result {
	result := make(Result, len(bands))
	for i, band := range bands {
		result[i] = Point{Key: band.Label, Value: decimal.Zero}
	}

	for i := range transactions {
		txn := &transactions[i]
		for j, band := range bands {
			if txn.Amount.LessThan(band.Min) {
				continue
			}
			if band.Max != nil && txn.Amount.GreaterThanOrEqual(*band.Max) {
				continue
			}
			result[j].Value = result[j].Value.Add(txn.Amount)
			break
		}
	}
	return result
}

func aggregateTimeOfDay(transactions []models.Transaction) Result {
	result := make(Result, len(timeOfDayBands))
	for i, band := range timeOfDayBands {
		result[i] = Point{Key: band.Label, Value: decimal.Zero}
	}

	for i := range transactions {
		txn := &transactions[i]
		hour := txn.TransactionDate.Hour()
		for j, band := range timeOfDayBands {
			var match bool
			if band.WrapsRound {
				match = hour >= band.From || hour < band.To
			} else {
				match = hour >= band.From && hour < band.To
			}
			if match {
				result[j].Value = result[j].Value.Add(txn.Amount)
				break
			}
		}
	}
	return result
}

func aggregateDayOfWeek(transactions []models.Transaction) Result {
	result := make(Result, len(dayOfWeekLabels))
	for i, label := range dayOfWeekLabels {
		result[i] = Point{Key: label, Value: decimal.Zero}
	}

	for i := range transactions {
		txn := &transactions[i]
		result[int(txn.TransactionDate.Weekday())].Value =
			result[int(txn.TransactionDate.Weekday())].Value.Add(txn.Amount)
	}
	return result
}

func sortByValueDesc(result Result) {
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Value.GreaterThan(result[j].Value)
	})
}

// IsValidDistributionVariable checks a distribution variable name.
func IsValidDistributionVariable(variable string) bool {
	switch DistributionVariable(variable) {
	case DistributionByCategory, DistributionByAmountRange, DistributionByTimeOfDay, DistributionByDayOfWeek:
		return true
	default:
		return false
	}
}
