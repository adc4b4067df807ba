package repositories

import (
	"errors"
	"fmt"

	"transaction-analytics/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// QueryTransactions returns the snapshot of transactions owned by the
// user, matching the filter predicate, ordered chronologically.
// Ownership is transitive: the transaction's from/to account or card
// must belong to the user.
func (r *transactionRepository) QueryTransactions(userID uuid.UUID, filters models.TransactionFilters) ([]models.Transaction, error) {
	accountIDs, cardIDs, err := r.ownedEntityIDs(userID)
	if err != nil {
		return nil, err
	}

	if len(accountIDs) == 0 && len(cardIDs) == 0 {
		return []models.Transaction{}, nil
	}

	query := r.db.Model(&models.Transaction{}).
		Where("from_account_id IN ? OR to_account_id IN ? OR card_id IN ?", accountIDs, accountIDs, cardIDs)

	query = applyFilters(query, filters)

	var transactions []models.Transaction
	if err := query.Order("transaction_date ASC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	return transactions, nil
}

// GetByID retrieves a transaction by ID
func (r *transactionRepository) GetByID(id uuid.UUID) (*models.Transaction, error) {
	transaction := &models.Transaction{ID: id}
	if err := r.db.First(transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return transaction, nil
}

// Create creates a new transaction
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// CreateBatch creates multiple transactions in a single database transaction
func (r *transactionRepository) CreateBatch(transactions []models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transactions).Error; err != nil {
			return fmt.Errorf("failed to create batch transactions: %w", err)
		}
		return nil
	})
}

// ownedEntityIDs resolves the user's account and card ID sets.
func (r *transactionRepository) ownedEntityIDs(userID uuid.UUID) ([]uuid.UUID, []uuid.UUID, error) {
	var accountIDs []uuid.UUID
	if err := r.db.Model(&models.Account{}).
		Where("user_id = ?", userID).
		Pluck("id", &accountIDs).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to resolve user accounts: %w", err)
	}

	var cardIDs []uuid.UUID
	if err := r.db.Model(&models.Card{}).
		Where("user_id = ?", userID).
		Pluck("id", &cardIDs).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to resolve user cards: %w", err)
	}

	return accountIDs, cardIDs, nil
}

// applyFilters appends the optional predicate fields to the query.
func applyFilters(query *gorm.DB, filters models.TransactionFilters) *gorm.DB {
	if filters.StartDate != nil {
		query = query.Where("transaction_date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("transaction_date <= ?", *filters.EndDate)
	}
	if filters.Type != "" {
		query = query.Where("transaction_type = ?", filters.Type)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.MerchantName != "" {
		query = query.Where("LOWER(merchant_name) LIKE LOWER(?)", "%"+filters.MerchantName+"%")
	}
	if filters.Source != "" {
		query = query.Where("source = ?", filters.Source)
	}
	if filters.MinAmount != nil {
		query = query.Where("amount >= ?", *filters.MinAmount)
	}
	if filters.MaxAmount != nil {
		query = query.Where("amount <= ?", *filters.MaxAmount)
	}
	return query
}
