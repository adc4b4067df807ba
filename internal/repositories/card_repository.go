package repositories

import (
	"fmt"

	"transaction-analytics/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// cardRepository implements CardRepositoryInterface
type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new card repository
func NewCardRepository(db *gorm.DB) CardRepositoryInterface {
	return &cardRepository{
		db: db,
	}
}

// GetByUserID retrieves all cards owned by a user
func (r *cardRepository) GetByUserID(userID uuid.UUID) ([]models.Card, error) {
	var cards []models.Card
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to get cards for user: %w", err)
	}
	return cards, nil
}

// Create creates a new card
func (r *cardRepository) Create(card *models.Card) error {
	if err := r.db.Create(card).Error; err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}
