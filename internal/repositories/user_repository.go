package repositories

import (
	"context"
	"errors"

	"cherishedwords/internal/models"
)

// ErrUserNotFound is returned when no account matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
