package repositories

import (
	"transaction-analytics/internal/models"

	"github.com/google/uuid"
)

// TransactionRepositoryInterface defines the read-side transaction
// queries consumed by the analytics engine, plus the write operations
// used by dev seeding. QueryTransactions resolves ownership: a
// transaction belongs to a user when its from/to account or card is
// owned by that user.
type TransactionRepositoryInterface interface {
	QueryTransactions(userID uuid.UUID, filters models.TransactionFilters) ([]models.Transaction, error)
	GetByID(id uuid.UUID) (*models.Transaction, error)
	Create(transaction *models.Transaction) error
	CreateBatch(transactions []models.Transaction) error
}

// AccountRepositoryInterface defines account lookups for ownership
// resolution and seeding.
type AccountRepositoryInterface interface {
	GetByID(id uuid.UUID) (*models.Account, error)
	GetByUserID(userID uuid.UUID) ([]models.Account, error)
	Create(account *models.Account) error
}

// CardRepositoryInterface defines card lookups for ownership resolution
// and seeding.
type CardRepositoryInterface interface {
	GetByUserID(userID uuid.UUID) ([]models.Card, error)
	Create(card *models.Card) error
}
