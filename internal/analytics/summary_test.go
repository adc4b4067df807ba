package analytics

import (
	"testing"
	"time"

	"transaction-analytics/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSummarize_EmptySet(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, Summary{}, summary)
}

func TestSummarize_SingleTransaction(t *testing.T) {
	summary := Summarize([]models.Transaction{
		txnOn(date(2024, time.January, 1), 99.99),
	})

	assert.Equal(t, 99.99, summary.TotalAmount)
	assert.Equal(t, 99.99, summary.AverageAmount)
	assert.Equal(t, 0.0, summary.ChangePercentage)
	assert.Equal(t, 1, summary.TransactionCount)
}

func TestSummarize_RoundsToTwoDecimals(t *testing.T) {
	summary := Summarize([]models.Transaction{
		txnOn(date(2024, time.January, 1), 10.555),
		txnOn(date(2024, time.January, 2), 10.555),
	})

	assert.Equal(t, 21.11, summary.TotalAmount)
	assert.Equal(t, 10.56, summary.AverageAmount)
	assert.Equal(t, 2, summary.TransactionCount)
}

func TestSummarize_ChangeComparesChronologicalHalves(t *testing.T) {
	// First half sums 200, second half 300, regardless of input order.
	summary := Summarize([]models.Transaction{
		txnOn(date(2024, time.January, 4), 150),
		txnOn(date(2024, time.January, 1), 100),
		txnOn(date(2024, time.January, 3), 150),
		txnOn(date(2024, time.January, 2), 100),
	})

	assert.Equal(t, 50.0, summary.ChangePercentage)
}

func TestSummarize_OddCountSplitsAtFloorMidpoint(t *testing.T) {
	// mid = 1: first half is only the earliest transaction.
	summary := Summarize([]models.Transaction{
		txnOn(date(2024, time.January, 1), 100),
		txnOn(date(2024, time.January, 2), 100),
		txnOn(date(2024, time.January, 3), 100),
	})

	assert.Equal(t, 100.0, summary.ChangePercentage)
}

func TestSummarize_ZeroFirstHalfReportsZeroChange(t *testing.T) {
	summary := Summarize([]models.Transaction{
		{Amount: decimal.Zero, TransactionDate: date(2024, time.January, 1)},
		txnOn(date(2024, time.January, 2), 500),
	})

	assert.Equal(t, 0.0, summary.ChangePercentage)
}

func TestSummarize_ChangeRoundsToOneDecimal(t *testing.T) {
	summary := Summarize([]models.Transaction{
		txnOn(date(2024, time.January, 1), 300),
		txnOn(date(2024, time.January, 2), 400),
	})

	assert.Equal(t, 33.3, summary.ChangePercentage)
}

func TestPercentageChange(t *testing.T) {
	testCases := []struct {
		name     string
		oldValue decimal.Decimal
		newValue decimal.Decimal
		expected float64
	}{
		{"growth", decimal.NewFromInt(100), decimal.NewFromInt(150), 50},
		{"decline", decimal.NewFromInt(200), decimal.NewFromInt(100), -50},
		{"unchanged", decimal.NewFromInt(75), decimal.NewFromInt(75), 0},
		{"zero old with growth reports the sentinel", decimal.Zero, decimal.NewFromInt(10), 100},
		{"zero old and zero new", decimal.Zero, decimal.Zero, 0},
		{"rounds to one decimal", decimal.NewFromInt(300), decimal.NewFromInt(400), 33.3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PercentageChange(tc.oldValue, tc.newValue))
		})
	}
}
