package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cherishedwords/internal/models"
	"cherishedwords/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// ErrInvalidCard wraps validation failures of a card draft.
var ErrInvalidCard = errors.New("invalid card")

// CardService is the document store for cards. Every operation is scoped to
// the calling user.
type CardService struct {
	repo      repositories.CardRepository
	publisher EventPublisher
	validate  *validator.Validate
	log       logrus.FieldLogger
	now       func() time.Time
}

// NewCardService creates a new CardService. publisher may be nil, in which case
// no events are published.
func NewCardService(repo repositories.CardRepository, publisher EventPublisher, log logrus.FieldLogger) *CardService {
	return &CardService{
		repo:      repo,
		publisher: publisher,
		validate:  validator.New(),
		log:       log,
		now:       time.Now,
	}
}

// ListCards returns the cards of userID in creation order.
func (s *CardService) ListCards(ctx context.Context, userID string) ([]models.Card, error) {
	return s.repo.FindByUser(ctx, userID)
}

// CreateCard validates the draft and stores it for userID. createdAt may be
// empty, in which case the current time is used.
func (s *CardService) CreateCard(ctx context.Context, userID string, draft models.CardDraft, createdAt string) (*models.Card, error) {
	if err := s.validate.Struct(draft); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCard, err)
	}

	card := models.NewCard(draft, userID, s.now())
	if createdAt != "" {
		if _, err := time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("%w: created_at is not ISO-8601: %v", ErrInvalidCard, err)
		}
		card.CreatedAt = createdAt
	}

	if err := s.repo.Create(ctx, &card); err != nil {
		return nil, fmt.Errorf("failed to create card in repository: %w", err)
	}

	s.publish(CardEvent{
		Type:      EventCardCreated,
		CardID:    card.ID,
		UserID:    card.UserID,
		Creator:   string(card.Creator),
		CreatedAt: card.CreatedAt,
	})
	return &card, nil
}

// DeleteCard removes a card of userID. It returns repositories.ErrCardNotFound
// when the card does not exist or belongs to someone else.
func (s *CardService) DeleteCard(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.publish(CardEvent{Type: EventCardDeleted, CardID: id, UserID: userID})
	return nil
}

func (s *CardService) publish(event CardEvent) {
	if s.publisher == nil {
		return
	}
	entry := s.log.WithFields(logrus.Fields{"event": event.Type, "card_id": event.CardID})
	if err := s.publisher.PublishCardEvent(event); err != nil {
		entry.WithError(err).Warn("failed to publish card event")
		return
	}
	entry.Debug("published card event")
}
