package repositories

import (
	"context"
	"errors"

	"cherishedwords/internal/models"
)

// ErrCardNotFound is returned when a card does not exist for the requesting user.
var ErrCardNotFound = errors.New("card not found")

// CardRepository defines the interface for card data access. Every method is
// scoped to the owning user.
type CardRepository interface {
	FindByUser(ctx context.Context, userID string) ([]models.Card, error)
	GetByID(ctx context.Context, userID, id string) (*models.Card, error)
	Create(ctx context.Context, card *models.Card) error
	Delete(ctx context.Context, userID, id string) error
}
