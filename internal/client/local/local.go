// Package local connects the client state container to the backend services
// in-process, without HTTP in between.
package local

import (
	"context"
	"errors"

	"cherishedwords/internal/client"
	"cherishedwords/internal/models"
	"cherishedwords/internal/repositories"
	"cherishedwords/internal/services"
)

// Backend implements client.IdentityProvider and client.DocumentStore on top
// of the services.
type Backend struct {
	auth  *services.AuthService
	cards *services.CardService
}

// NewBackend creates a new Backend.
func NewBackend(auth *services.AuthService, cards *services.CardService) *Backend {
	return &Backend{auth: auth, cards: cards}
}

func identity(user *models.User, token string) client.Identity {
	return client.Identity{UserID: user.ID, Email: user.Email, Token: token}
}

// SignIn implements client.IdentityProvider.
func (b *Backend) SignIn(ctx context.Context, email, password string) (client.Identity, error) {
	user, token, err := b.auth.SignIn(ctx, email, password)
	if err != nil {
		return client.Identity{}, translate(err)
	}
	return identity(user, token), nil
}

// SignUp implements client.IdentityProvider.
func (b *Backend) SignUp(ctx context.Context, email, password string) (client.Identity, error) {
	user, token, err := b.auth.SignUp(ctx, email, password)
	if err != nil {
		return client.Identity{}, translate(err)
	}
	return identity(user, token), nil
}

// Query implements client.DocumentStore.
func (b *Backend) Query(ctx context.Context, owner client.Identity) ([]models.Card, error) {
	return b.cards.ListCards(ctx, owner.UserID)
}

// Insert implements client.DocumentStore.
func (b *Backend) Insert(ctx context.Context, owner client.Identity, card models.Card) (string, error) {
	draft := models.CardDraft{
		Recipient: card.Recipient,
		Creator:   card.Creator,
		Message:   card.Message,
		Password:  card.Password,
	}
	created, err := b.cards.CreateCard(ctx, owner.UserID, draft, card.CreatedAt)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

// Delete implements client.DocumentStore.
func (b *Backend) Delete(ctx context.Context, owner client.Identity, cardID string) error {
	return translate(b.cards.DeleteCard(ctx, owner.UserID, cardID))
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, services.ErrInvalidCredentials):
		return client.ErrInvalidCredentials
	case errors.Is(err, services.ErrEmailInUse):
		return client.ErrEmailInUse
	case errors.Is(err, services.ErrWeakPassword):
		return client.ErrWeakPassword
	case errors.Is(err, repositories.ErrCardNotFound):
		return client.ErrNotFound
	}
	return err
}
