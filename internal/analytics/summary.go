package analytics

import (
	"sort"

	"transaction-analytics/internal/models"

	"github.com/shopspring/decimal"
)

// Summary holds the scalar statistics computed over a transaction set.
type Summary struct {
	TotalAmount      float64 `json:"total_amount"`
	AverageAmount    float64 `json:"average_amount"`
	ChangePercentage float64 `json:"change_percentage"`
	TransactionCount int     `json:"transaction_count"`
}

// Summarize computes total, average and period-over-period change for a
// transaction set. Amounts are rounded to 2 decimal places, the change
// percentage to 1. An empty set yields all zeros.
func Summarize(transactions []models.Transaction) Summary {
	count := len(transactions)
	if count == 0 {
		return Summary{}
	}

	total := decimal.Zero
	for i := range transactions {
		total = total.Add(transactions[i].Amount)
	}
	average := total.Div(decimal.NewFromInt(int64(count)))

	return Summary{
		TotalAmount:      total.Round(2).InexactFloat64(),
		AverageAmount:    average.Round(2).InexactFloat64(),
		ChangePercentage: changePercentage(transactions),
		TransactionCount: count,
	}
}

// changePercentage sorts chronologically, splits at floor(n/2) (the
// first half may be one element smaller) and compares the two halves'
// sums. A zero first-half sum reports zero to avoid dividing by zero.
func changePercentage(transactions []models.Transaction) float64 {
	if len(transactions) < 2 {
		return 0
	}

	ordered := make([]models.Transaction, len(transactions))
	copy(ordered, transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TransactionDate.Before(ordered[j].TransactionDate)
	})

	mid := len(ordered) / 2
	firstHalf := decimal.Zero
	for i := 0; i < mid; i++ {
		firstHalf = firstHalf.Add(ordered[i].Amount)
	}
	secondHalf := decimal.Zero
	for i := mid; i < len(ordered); i++ {
		secondHalf = secondHalf.Add(ordered[i].Amount)
	}

	if firstHalf.IsZero() {
		return 0
	}

	change := secondHalf.Sub(firstHalf).Div(firstHalf).Mul(decimal.NewFromInt(100))
	return change.Round(1).InexactFloat64()
}

// PercentageChange is the two-arm comparison helper. When the old value
// is zero it reports 100 for any growth and 0 otherwise; that is a
// defined sentinel, not an error.
func PercentageChange(oldValue, newValue decimal.Decimal) float64 {
	if oldValue.IsZero() {
		if newValue.GreaterThan(decimal.Zero) {
			return 100
		}
		return 0
	}

	change := newValue.Sub(oldValue).Div(oldValue).Mul(decimal.NewFromInt(100))
	return change.Round(1).InexactFloat64()
}
