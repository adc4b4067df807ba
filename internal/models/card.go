package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CardTypeDebit  = "debit"
	CardTypeCredit = "credit"

	CardStatusActive  = "active"
	CardStatusBlocked = "blocked"
	CardStatusExpired = "expired"
)

var (
	ErrInvalidCardType   = errors.New("invalid card type")
	ErrInvalidCardStatus = errors.New("invalid card status")
)

// Card represents a payment card linked to a user's account. Card-present
// transactions reference the card rather than an account directly.
type Card struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"account_id"`
	MaskedNumber string         `gorm:"type:varchar(19);not null" json:"masked_number"`
	CardType     string         `gorm:"type:varchar(20);not null" json:"card_type"`
	Status       string         `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	ExpiresAt    time.Time      `gorm:"not null" json:"expires_at"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	// Associations
	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate hook for Card
func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	if c.Status == "" {
		c.Status = CardStatusActive
	}

	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	return c.Validate()
}

// BeforeUpdate hook for Card
func (c *Card) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return c.Validate()
}

// Validate validates the card fields
func (c *Card) Validate() error {
	if c.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}
	if c.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}
	if c.CardType != CardTypeDebit && c.CardType != CardTypeCredit {
		return ErrInvalidCardType
	}
	switch c.Status {
	case CardStatusActive, CardStatusBlocked, CardStatusExpired:
	default:
		return ErrInvalidCardStatus
	}
	return nil
}

// TableName returns the table name for Card
func (c *Card) TableName() string {
	return "cards"
}
