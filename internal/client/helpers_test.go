package client_test

import (
	"context"
	"testing"
	"time"

	"cherishedwords/internal/client"
	"cherishedwords/internal/client/local"
	"cherishedwords/internal/models"
	"cherishedwords/internal/repositories"
	"cherishedwords/internal/services"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	backend *local.Backend
	cards   *repositories.MockCardRepository
	log     *logrus.Logger
	hook    *test.Hook
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	cards := repositories.NewMockCardRepository()
	auth := services.NewAuthService(repositories.NewMockUserRepository(), "test_jwt_secret", time.Hour, log)
	backend := local.NewBackend(auth, services.NewCardService(cards, nil, log))
	return &fixture{backend: backend, cards: cards, log: log, hook: hook}
}

// newApp returns an app wired to the in-process backend.
func (f *fixture) newApp() *client.App {
	return client.NewApp(f.backend, f.backend, f.log)
}

// account creates an account and returns its identity.
func (f *fixture) account(t *testing.T, email string) client.Identity {
	t.Helper()
	id, err := f.backend.SignUp(context.Background(), email, "password123")
	require.NoError(t, err)
	return id
}

// seed stores a card for owner directly in the repository.
func (f *fixture) seed(t *testing.T, owner client.Identity, recipient, password string) models.Card {
	t.Helper()
	c := models.Card{
		Recipient: recipient,
		Creator:   models.CreatorBoyfriend,
		Message:   "to " + recipient,
		Password:  password,
		UserID:    owner.UserID,
		CreatedAt: models.FormatTimestamp(time.Now()),
	}
	require.NoError(t, f.cards.Create(context.Background(), &c))
	return c
}

func draft(recipient string) models.CardDraft {
	return models.CardDraft{
		Recipient: recipient,
		Creator:   models.CreatorGirlfriend,
		Message:   "Happy anniversary",
		Password:  "forever",
	}
}

// MockStore is a mock implementation of client.DocumentStore
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Query(ctx context.Context, owner client.Identity) ([]models.Card, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Card), args.Error(1)
}

func (m *MockStore) Insert(ctx context.Context, owner client.Identity, card models.Card) (string, error) {
	args := m.Called(ctx, owner, card)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Delete(ctx context.Context, owner client.Identity, cardID string) error {
	args := m.Called(ctx, owner, cardID)
	return args.Error(0)
}

// gatedStore answers Query with a result computed before it blocks, which
// lets tests complete other operations while a stale fetch is in flight.
type gatedStore struct {
	client.DocumentStore
	queried chan struct{}
	release chan struct{}
}

func newGatedStore(inner client.DocumentStore) *gatedStore {
	return &gatedStore{
		DocumentStore: inner,
		queried:       make(chan struct{}, 1),
		release:       make(chan struct{}),
	}
}

func (g *gatedStore) Query(ctx context.Context, owner client.Identity) ([]models.Card, error) {
	cards, err := g.DocumentStore.Query(ctx, owner)
	g.queried <- struct{}{}
	<-g.release
	return cards, err
}
