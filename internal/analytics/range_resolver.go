package analytics

import (
	"strings"
	"time"

	"transaction-analytics/internal/models"
)

// Named periods accepted by ResolveDateRange. Free-text entities arrive
// in both snake_case and spaced spellings; both are normalized.
const (
	PeriodThisMonth   = "this_month"
	PeriodLastMonth   = "last_month"
	PeriodThisQuarter = "this_quarter"
	PeriodLastQuarter = "last_quarter"
	PeriodThisYear    = "this_year"
	PeriodLastYear    = "last_year"
	PeriodLast3Months = "last_3_months"
	PeriodLast6Months = "last_6_months"
)

// defaultRangeDays is the fallback lookback window when nothing else
// resolves a range.
const defaultRangeDays = 30

// RangeResolver turns filters plus optional period/year entities into a
// concrete date interval. The clock is injected so period arithmetic is
// testable.
type RangeResolver struct {
	now func() time.Time
}

// NewRangeResolver creates a resolver on the real clock.
func NewRangeResolver() *RangeResolver {
	return &RangeResolver{now: time.Now}
}

// NewRangeResolverAt creates a resolver with a fixed clock, for tests
// and reproducible period arithmetic.
func NewRangeResolverAt(now func() time.Time) *RangeResolver {
	return &RangeResolver{now: now}
}

// Resolve applies the precedence rules: explicit filter dates win, then
// a named period, then an explicit year, then the default 30-day
// lookback. It always returns a valid interval and never fails on
// missing input.
func (r *RangeResolver) Resolve(filters models.TransactionFilters, namedPeriod string, year int) DateInterval {
	if filters.HasDateRange() {
		return NewDateInterval(*filters.StartDate, *filters.EndDate)
	}

	if namedPeriod != "" {
		if interval, ok := r.resolveNamedPeriod(namedPeriod); ok {
			return interval
		}
	}

	if year > 0 {
		return YearInterval(year)
	}

	today := DateOf(r.now())
	return DateInterval{Start: today.AddDate(0, 0, -defaultRangeDays), End: today}
}

// YearInterval is the full calendar year [Jan 1, Dec 31].
func YearInterval(year int) DateInterval {
	return DateInterval{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// PrecedingInterval returns the interval of equal length immediately
// before the given one, used as the "previous period" comparison arm.
func PrecedingInterval(interval DateInterval) DateInterval {
	length := interval.Days()
	end := interval.Start.AddDate(0, 0, -1)
	return DateInterval{Start: end.AddDate(0, 0, -(length - 1)), End: end}
}

func (r *RangeResolver) resolveNamedPeriod(period string) (DateInterval, bool) {
	today := DateOf(r.now())
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	switch normalizePeriod(period) {
	case PeriodThisMonth:
		return DateInterval{Start: monthStart, End: monthStart.AddDate(0, 1, -1)}, true

	case PeriodLastMonth:
		start := monthStart.AddDate(0, -1, 0)
		return DateInterval{Start: start, End: monthStart.AddDate(0, 0, -1)}, true

	case PeriodThisQuarter:
		start := quarterStart(today)
		return DateInterval{Start: start, End: start.AddDate(0, 3, -1)}, true

	case PeriodLastQuarter:
		// Rolls back across the year boundary when the current
		// quarter is Q1.
		start := quarterStart(today).AddDate(0, -3, 0)
		return DateInterval{Start: start, End: start.AddDate(0, 3, -1)}, true

	case PeriodThisYear:
		return YearInterval(today.Year()), true

	case PeriodLastYear:
		return YearInterval(today.Year() - 1), true

	case PeriodLast3Months:
		return DateInterval{Start: today.AddDate(0, -3, 0), End: today}, true

	case PeriodLast6Months:
		return DateInterval{Start: today.AddDate(0, -6, 0), End: today}, true
	}

	return DateInterval{}, false
}

func normalizePeriod(period string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(period)), " ", "_")
}
