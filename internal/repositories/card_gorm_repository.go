package repositories

import (
	"context"
	"errors"
	"fmt"

	"cherishedwords/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCardRepository is a GORM implementation of CardRepository.
type GORMCardRepository struct {
	db *gorm.DB
}

// NewGORMCardRepository creates a new instance of GORMCardRepository.
func NewGORMCardRepository(db *gorm.DB) *GORMCardRepository {
	return &GORMCardRepository{
		db: db,
	}
}

// FindByUser returns the cards owned by userID in creation order.
func (r *GORMCardRepository) FindByUser(ctx context.Context, userID string) ([]models.Card, error) {
	cards := make([]models.Card, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get cards for user %s: %w", userID, err)
	}
	return cards, nil
}

// GetByID retrieves a single card owned by userID.
func (r *GORMCardRepository) GetByID(ctx context.Context, userID, id string) (*models.Card, error) {
	var card models.Card
	if err := r.db.WithContext(ctx).First(&card, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("card with ID %s: %w", id, ErrCardNotFound)
		}
		return nil, fmt.Errorf("failed to get card by ID %s: %w", id, err)
	}
	return &card, nil
}

// Create stores a new card and assigns its ID.
func (r *GORMCardRepository) Create(ctx context.Context, card *models.Card) error {
	if card.ID == "" {
		card.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(card).Error; err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

// Delete removes a card owned by userID.
func (r *GORMCardRepository) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Card{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete card: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("card with ID %s: %w", id, ErrCardNotFound)
	}
	return nil
}
