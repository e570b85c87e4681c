package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"cherishedwords/internal/models"
	"cherishedwords/internal/repositories"
	"cherishedwords/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCardRepository is a mock implementation of repositories.CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) FindByUser(ctx context.Context, userID string) ([]models.Card, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Card), args.Error(1)
}

func (m *MockCardRepository) GetByID(ctx context.Context, userID, id string) (*models.Card, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockCardRepository) Create(ctx context.Context, card *models.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishCardEvent(event services.CardEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func validDraft() models.CardDraft {
	return models.CardDraft{
		Recipient: "Ana",
		Creator:   models.CreatorGirlfriend,
		Message:   "Happy anniversary",
		Password:  "forever",
	}
}

func TestCardService_ListCards(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockCardRepository)
	service := services.NewCardService(mockRepo, nil, quietLogger())

	expected := []models.Card{{ID: "1", UserID: "alice", Recipient: "Bob"}}
	mockRepo.On("FindByUser", ctx, "alice").Return(expected, nil).Once()

	cards, err := service.ListCards(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, expected, cards)
	mockRepo.AssertExpectations(t)
}

func TestCardService_CreateCard(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockCardRepository)
	publisher := new(MockPublisher)
	service := services.NewCardService(mockRepo, publisher, quietLogger())

	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Card")).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Card).ID = "card-1"
	}).Return(nil).Once()
	publisher.On("PublishCardEvent", mock.MatchedBy(func(e services.CardEvent) bool {
		return e.Type == services.EventCardCreated && e.CardID == "card-1" && e.UserID == "alice"
	})).Return(nil).Once()

	card, err := service.CreateCard(ctx, "alice", validDraft(), "")
	require.NoError(t, err)
	assert.Equal(t, "card-1", card.ID)
	assert.Equal(t, "alice", card.UserID)
	assert.Equal(t, "Ana", card.Recipient)
	assert.NotEmpty(t, card.CreatedAt)
	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCardService_CreateCardKeepsClientTimestamp(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockCardRepository)
	service := services.NewCardService(mockRepo, nil, quietLogger())

	mockRepo.On("Create", ctx, mock.MatchedBy(func(c *models.Card) bool {
		return c.CreatedAt == "2024-02-14T08:30:00.000Z"
	})).Return(nil).Once()

	_, err := service.CreateCard(ctx, "alice", validDraft(), "2024-02-14T08:30:00.000Z")
	require.NoError(t, err)

	_, err = service.CreateCard(ctx, "alice", validDraft(), "yesterday")
	assert.ErrorIs(t, err, services.ErrInvalidCard)
	mockRepo.AssertExpectations(t)
}

func TestCardService_CreateCardValidation(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockCardRepository)
	service := services.NewCardService(mockRepo, nil, quietLogger())

	cases := map[string]func(d *models.CardDraft){
		"empty message":   func(d *models.CardDraft) { d.Message = "" },
		"empty recipient": func(d *models.CardDraft) { d.Recipient = "" },
		"empty password":  func(d *models.CardDraft) { d.Password = "" },
		"unknown creator": func(d *models.CardDraft) { d.Creator = "friend" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			draft := validDraft()
			mutate(&draft)
			_, err := service.CreateCard(ctx, "alice", draft, "")
			assert.ErrorIs(t, err, services.ErrInvalidCard)
		})
	}
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCardService_CreateCardPublishFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockCardRepository)
	publisher := new(MockPublisher)
	service := services.NewCardService(mockRepo, publisher, quietLogger())

	mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
	publisher.On("PublishCardEvent", mock.Anything).Return(errors.New("broker down")).Once()

	_, err := service.CreateCard(ctx, "alice", validDraft(), "")
	assert.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestCardService_DeleteCard(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockCardRepository)
	publisher := new(MockPublisher)
	service := services.NewCardService(mockRepo, publisher, quietLogger())

	mockRepo.On("Delete", ctx, "alice", "card-1").Return(nil).Once()
	publisher.On("PublishCardEvent", services.CardEvent{Type: services.EventCardDeleted, CardID: "card-1", UserID: "alice"}).Return(nil).Once()
	require.NoError(t, service.DeleteCard(ctx, "alice", "card-1"))

	mockRepo.On("Delete", ctx, "alice", "card-9").Return(fmt.Errorf("card with ID card-9: %w", repositories.ErrCardNotFound)).Once()
	err := service.DeleteCard(ctx, "alice", "card-9")
	assert.ErrorIs(t, err, repositories.ErrCardNotFound)

	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}
