package services

// Routing keys of the card events.
const (
	EventCardCreated = "card.created"
	EventCardDeleted = "card.deleted"
)

// CardEvent is the payload published when a card is created or deleted. It
// never carries the card message or password.
type CardEvent struct {
	Type      string `json:"type"`
	CardID    string `json:"card_id"`
	UserID    string `json:"user_id"`
	Creator   string `json:"creator,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// EventPublisher delivers card events to a message broker.
type EventPublisher interface {
	PublishCardEvent(event CardEvent) error
}
