package analytics

import (
	"testing"
	"time"

	"transaction-analytics/internal/models"

	"github.com/stretchr/testify/assert"
)

func resolverAt(year int, month time.Month, day int) *RangeResolver {
	return NewRangeResolverAt(func() time.Time {
		return time.Date(year, month, day, 10, 30, 0, 0, time.UTC)
	})
}

func TestResolve_ExplicitDatesWinOverPeriod(t *testing.T) {
	resolver := resolverAt(2024, time.June, 15)

	start := date(2024, time.January, 10)
	end := date(2024, time.February, 20)
	filters := models.TransactionFilters{StartDate: &start, EndDate: &end}

	interval := resolver.Resolve(filters, PeriodThisMonth, 2022)

	assert.Equal(t, date(2024, time.January, 10), interval.Start)
	assert.Equal(t, date(2024, time.February, 20), interval.End)
}

func TestResolve_NamedPeriods(t *testing.T) {
	resolver := resolverAt(2024, time.June, 15)

	testCases := []struct {
		period string
		start  time.Time
		end    time.Time
	}{
		{PeriodThisMonth, date(2024, time.June, 1), date(2024, time.June, 30)},
		{PeriodLastMonth, date(2024, time.May, 1), date(2024, time.May, 31)},
		{PeriodThisQuarter, date(2024, time.April, 1), date(2024, time.June, 30)},
		{PeriodLastQuarter, date(2024, time.January, 1), date(2024, time.March, 31)},
		{PeriodThisYear, date(2024, time.January, 1), date(2024, time.December, 31)},
		{PeriodLastYear, date(2023, time.January, 1), date(2023, time.December, 31)},
		{PeriodLast3Months, date(2024, time.March, 15), date(2024, time.June, 15)},
		{PeriodLast6Months, date(2023, time.December, 15), date(2024, time.June, 15)},
	}

	for _, tc := range testCases {
		t.Run(tc.period, func(t *testing.T) {
			interval := resolver.Resolve(models.TransactionFilters{}, tc.period, 0)
			assert.Equal(t, tc.start, interval.Start)
			assert.Equal(t, tc.end, interval.End)
		})
	}
}

func TestResolve_PeriodSpellingIsNormalized(t *testing.T) {
	resolver := resolverAt(2024, time.June, 15)

	interval := resolver.Resolve(models.TransactionFilters{}, "  This Month ", 0)

	assert.Equal(t, date(2024, time.June, 1), interval.Start)
	assert.Equal(t, date(2024, time.June, 30), interval.End)
}

func TestResolve_LastQuarterAcrossYearBoundary(t *testing.T) {
	resolver := resolverAt(2024, time.February, 10)

	interval := resolver.Resolve(models.TransactionFilters{}, PeriodLastQuarter, 0)

	assert.Equal(t, date(2023, time.October, 1), interval.Start)
	assert.Equal(t, date(2023, time.December, 31), interval.End)
}

func TestResolve_YearFallback(t *testing.T) {
	resolver := resolverAt(2024, time.June, 15)

	interval := resolver.Resolve(models.TransactionFilters{}, "", 2022)

	assert.Equal(t, date(2022, time.January, 1), interval.Start)
	assert.Equal(t, date(2022, time.December, 31), interval.End)
}

func TestResolve_DefaultLookback(t *testing.T) {
	resolver := resolverAt(2024, time.June, 15)

	interval := resolver.Resolve(models.TransactionFilters{}, "", 0)

	assert.Equal(t, date(2024, time.May, 16), interval.Start)
	assert.Equal(t, date(2024, time.June, 15), interval.End)
}

func TestResolve_UnknownPeriodFallsThrough(t *testing.T) {
	resolver := resolverAt(2024, time.June, 15)

	interval := resolver.Resolve(models.TransactionFilters{}, "fortnight", 0)

	assert.Equal(t, date(2024, time.May, 16), interval.Start)
	assert.Equal(t, date(2024, time.June, 15), interval.End)
}

func TestPrecedingInterval_EqualLength(t *testing.T) {
	interval := DateInterval{Start: date(2024, time.February, 1), End: date(2024, time.February, 29)}

	preceding := PrecedingInterval(interval)

	assert.Equal(t, date(2024, time.January, 3), preceding.Start)
	assert.Equal(t, date(2024, time.January, 31), preceding.End)
	assert.Equal(t, interval.Days(), preceding.Days())
}

func TestPrecedingInterval_SingleDay(t *testing.T) {
	interval := DateInterval{Start: date(2024, time.March, 1), End: date(2024, time.March, 1)}

	preceding := PrecedingInterval(interval)

	assert.Equal(t, date(2024, time.February, 29), preceding.Start)
	assert.Equal(t, date(2024, time.February, 29), preceding.End)
}

func TestYearInterval(t *testing.T) {
	interval := YearInterval(2023)

	assert.Equal(t, date(2023, time.January, 1), interval.Start)
	assert.Equal(t, date(2023, time.December, 31), interval.End)
	assert.Equal(t, 365, interval.Days())
}
