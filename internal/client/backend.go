package client

import (
	"context"

	"cherishedwords/internal/models"
)

// Identity is an established session of the identity provider.
type Identity struct {
	UserID string
	Email  string
	Token  string
}

// IdentityProvider signs users in and up.
type IdentityProvider interface {
	// SignIn fails with ErrInvalidCredentials.
	SignIn(ctx context.Context, email, password string) (Identity, error)
	// SignUp fails with ErrEmailInUse or ErrWeakPassword.
	SignUp(ctx context.Context, email, password string) (Identity, error)
}

// DocumentStore persists cards on behalf of an identity.
type DocumentStore interface {
	// Query returns the cards whose user id equals owner.UserID.
	Query(ctx context.Context, owner Identity) ([]models.Card, error)
	// Insert stores card and returns the id assigned to it.
	Insert(ctx context.Context, owner Identity, card models.Card) (string, error)
	// Delete removes a card; a missing card yields ErrNotFound.
	Delete(ctx context.Context, owner Identity, cardID string) error
}
