package models

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidRole  = errors.New("invalid user role")
)

// User is the ownership root: transactions belong to a user transitively
// through that user's accounts and cards.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Email     string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FirstName string         `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string         `gorm:"type:varchar(100);not null" json:"last_name"`
	Role      string         `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Accounts []Account `gorm:"foreignKey:UserID" json:"-"`
	Cards    []Card    `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	if u.Role == "" {
		u.Role = RoleCustomer
	}

	// Fixtures may supply their own timestamps
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	return u.Validate()
}

func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return u.Validate()
}

func (u *User) Validate() error {
	if !emailRegex.MatchString(u.Email) {
		return ErrInvalidEmail
	}
	if u.Role != RoleCustomer && u.Role != RoleAdmin {
		return ErrInvalidRole
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) TableName() string {
	return "users"
}
