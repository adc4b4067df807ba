// Package analytics implements the transaction aggregation engine:
// date-range resolution, adaptive time bucketing, per-mode aggregation,
// scalar summaries and chart payload formatting. Everything in this
// package is a pure, stateless computation over an in-memory transaction
// snapshot; callers fetch the snapshot from a repository first.
package analytics

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// DateKeyFormat is the canonical bucket key layout. Zero-padded
// YYYY-MM-DD keys make lexicographic order equal chronological order.
const DateKeyFormat = "2006-01-02"

// Granularity is the bucket size chosen adaptively from the span of the
// requested date range.
type Granularity string

const (
	GranularityDay     Granularity = "day"
	GranularityWeek    Granularity = "week"
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
)

// Label returns the series-name prefix for the granularity,
// e.g. "Weekly" in "Weekly Spending".
func (g Granularity) Label() string {
	switch g {
	case GranularityDay:
		return "Daily"
	case GranularityWeek:
		return "Weekly"
	case GranularityMonth:
		return "Monthly"
	case GranularityQuarter:
		return "Quarterly"
	default:
		return ""
	}
}

// Measure selects what a bucket accumulates.
type Measure string

const (
	MeasureAmount Measure = "sum_amount"
	MeasureCount  Measure = "count"
)

var ErrInvalidInterval = errors.New("interval start date must not be after end date")

// DateInterval is an inclusive calendar-date interval. Time-of-day is
// normalized away before use.
type DateInterval struct {
	Start time.Time
	End   time.Time
}

// NewDateInterval builds a normalized interval from two timestamps.
func NewDateInterval(start, end time.Time) DateInterval {
	return DateInterval{Start: DateOf(start), End: DateOf(end)}
}

// Validate enforces the start <= end invariant.
func (i DateInterval) Validate() error {
	if i.Start.After(i.End) {
		return ErrInvalidInterval
	}
	return nil
}

// Days returns the inclusive span of the interval in days.
func (i DateInterval) Days() int {
	return int(i.End.Sub(i.Start).Hours()/24) + 1
}

// StartKey and EndKey return the interval bounds as canonical date strings.
func (i DateInterval) StartKey() string { return i.Start.Format(DateKeyFormat) }
func (i DateInterval) EndKey() string   { return i.End.Format(DateKeyFormat) }

// DateOf strips time-of-day, leaving a UTC calendar date.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Point is one aggregated key/value pair.
type Point struct {
	Key   string
	Value decimal.Decimal
}

// Result is an ordered aggregation: bucket-keyed for time series,
// label-keyed for categorical breakdowns.
type Result []Point

// Total sums the values of all points.
func (r Result) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range r {
		total = total.Add(p.Value)
	}
	return total
}

// NonZero returns only the points with a non-zero value, preserving order.
func (r Result) NonZero() Result {
	filtered := make(Result, 0, len(r))
	for _, p := range r {
		if !p.Value.IsZero() {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Series is one named comparison arm.
type Series struct {
	Name   string
	Points Result
}

// Total sums the series' points.
func (s Series) Total() decimal.Decimal {
	return s.Points.Total()
}
