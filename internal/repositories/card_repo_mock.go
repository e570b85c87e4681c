package repositories

import (
	"context"
	"fmt"
	"sync"

	"cherishedwords/internal/models"

	"github.com/google/uuid"
)

// MockCardRepository is an in-memory implementation of CardRepository.
// It keeps insertion order so FindByUser matches the GORM ordering.
type MockCardRepository struct {
	cards map[string]models.Card
	order []string
	mu    sync.RWMutex
}

// NewMockCardRepository creates a new instance of MockCardRepository.
func NewMockCardRepository() *MockCardRepository {
	return &MockCardRepository{
		cards: make(map[string]models.Card),
	}
}

// FindByUser returns the cards owned by userID.
func (r *MockCardRepository) FindByUser(_ context.Context, userID string) ([]models.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cards := make([]models.Card, 0)
	for _, id := range r.order {
		if c := r.cards[id]; c.UserID == userID {
			cards = append(cards, c)
		}
	}
	return cards, nil
}

// GetByID returns a card owned by userID.
func (r *MockCardRepository) GetByID(_ context.Context, userID, id string) (*models.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	card, ok := r.cards[id]
	if !ok || card.UserID != userID {
		return nil, fmt.Errorf("card with ID %s: %w", id, ErrCardNotFound)
	}
	return &card, nil
}

// Create adds a new card.
func (r *MockCardRepository) Create(_ context.Context, card *models.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if card.ID == "" {
		card.ID = uuid.New().String()
	}
	if _, exists := r.cards[card.ID]; exists {
		return fmt.Errorf("card with ID %s already exists", card.ID)
	}
	r.cards[card.ID] = *card
	r.order = append(r.order, card.ID)
	return nil
}

// Delete removes a card owned by userID.
func (r *MockCardRepository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	card, ok := r.cards[id]
	if !ok || card.UserID != userID {
		return fmt.Errorf("card with ID %s: %w", id, ErrCardNotFound)
	}
	delete(r.cards, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
