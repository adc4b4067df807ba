package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeDebit    = "debit"
	TransactionTypeCredit   = "credit"
	TransactionTypeTransfer = "transfer"
	TransactionTypePayment  = "payment"

	// CategoryUncategorized is the default label for transactions
	// without a category in category-keyed aggregations.
	CategoryUncategorized = "Uncategorized"

	// SourceOther is the default label for transactions without a
	// source in source-keyed aggregations.
	SourceOther = "Other"
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidAmount          = errors.New("transaction amount must be positive")
	ErrMissingAccountLink     = errors.New("transaction must reference an account or a card")
)

// Transaction is an immutable financial record. The analytics subsystem
// treats it as read-only input; ownership is resolved transitively
// through FromAccountID/ToAccountID/CardID membership in a user's
// accounts and cards.
type Transaction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	FromAccountID   *uuid.UUID      `gorm:"type:uuid;index" json:"from_account_id,omitempty"`
	ToAccountID     *uuid.UUID      `gorm:"type:uuid;index" json:"to_account_id,omitempty"`
	CardID          *uuid.UUID      `gorm:"type:uuid;index" json:"card_id,omitempty"`
	TransactionType string          `gorm:"type:varchar(20);not null" json:"transaction_type"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description     string          `gorm:"type:text" json:"description"`
	Category        string          `gorm:"type:varchar(50);index" json:"category,omitempty"`
	MerchantName    string          `gorm:"type:varchar(255)" json:"merchant_name,omitempty"`
	Source          string          `gorm:"type:varchar(100)" json:"source,omitempty"`
	TransactionDate time.Time       `gorm:"not null;index" json:"transaction_date"`
	CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	now := time.Now()
	if t.TransactionDate.IsZero() {
		t.TransactionDate = now
	}

	// Set timestamps if not already set (for tests)
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if !IsValidTransactionType(t.TransactionType) {
		return ErrInvalidTransactionType
	}
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if t.FromAccountID == nil && t.ToAccountID == nil && t.CardID == nil {
		return ErrMissingAccountLink
	}
	return nil
}

// IsExpense reports whether the transaction represents money leaving the
// user (spending analytics input).
func (t *Transaction) IsExpense() bool {
	return t.TransactionType == TransactionTypeDebit || t.TransactionType == TransactionTypePayment
}

// IsIncome reports whether the transaction represents money received.
func (t *Transaction) IsIncome() bool {
	return t.TransactionType == TransactionTypeCredit
}

// CategoryLabel returns the category, or the Uncategorized default.
func (t *Transaction) CategoryLabel() string {
	if t.Category == "" {
		return CategoryUncategorized
	}
	return t.Category
}

// SourceLabel returns the source, or the Other default.
func (t *Transaction) SourceLabel() string {
	if t.Source == "" {
		return SourceOther
	}
	return t.Source
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(transactionType string) bool {
	switch transactionType {
	case TransactionTypeDebit, TransactionTypeCredit, TransactionTypeTransfer, TransactionTypePayment:
		return true
	default:
		return false
	}
}
