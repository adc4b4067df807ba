package repositories

import (
	"errors"
	"fmt"

	"transaction-analytics/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound = errors.New("account not found")
)

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepositoryInterface {
	return &accountRepository{db: db}
}

func (r *accountRepository) GetByID(id uuid.UUID) (*models.Account, error) {
	account := &models.Account{ID: id}
	if err := r.db.First(account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// GetByUserID lists a user's accounts, oldest first, which keeps the
// sample generator's account reuse deterministic.
func (r *accountRepository) GetByUserID(userID uuid.UUID) ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to get accounts for user: %w", err)
	}
	return accounts, nil
}

func (r *accountRepository) Create(account *models.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}
