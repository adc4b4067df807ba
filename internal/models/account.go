package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	AccountTypeChecking = "checking"
	AccountTypeSavings  = "savings"
	AccountTypeCredit   = "credit"

	AccountStatusActive   = "active"
	AccountStatusInactive = "inactive"
	AccountStatusClosed   = "closed"
)

var (
	ErrInvalidAccountType   = errors.New("invalid account type")
	ErrInvalidAccountStatus = errors.New("invalid account status")
	ErrAccountMissingOwner  = errors.New("account requires an owning user")
)

// Account is one of the two ownership anchors for transactions; a
// transaction posted from or to an account belongs to that account's
// user.
type Account struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AccountNumber string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"account_number"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountType   string          `gorm:"type:varchar(20);not null" json:"account_type"`
	Balance       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	Status        string          `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`

	User  User   `gorm:"foreignKey:UserID" json:"-"`
	Cards []Card `gorm:"foreignKey:AccountID" json:"-"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = AccountStatusActive
	}
	if a.Currency == "" {
		a.Currency = "USD"
	}

	// Fixtures may supply their own timestamps
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	return a.Validate()
}

func (a *Account) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return a.Validate()
}

func (a *Account) Validate() error {
	if a.UserID == uuid.Nil {
		return ErrAccountMissingOwner
	}
	if !IsValidAccountType(a.AccountType) {
		return ErrInvalidAccountType
	}
	if !IsValidAccountStatus(a.Status) {
		return ErrInvalidAccountStatus
	}
	return nil
}

func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

func (a *Account) TableName() string {
	return "accounts"
}

func IsValidAccountType(accountType string) bool {
	switch accountType {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCredit:
		return true
	}
	return false
}

func IsValidAccountStatus(status string) bool {
	switch status {
	case AccountStatusActive, AccountStatusInactive, AccountStatusClosed:
		return true
	}
	return false
}
