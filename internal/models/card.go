package models

import (
	"fmt"
	"time"
)

// Creator identifies which partner wrote a card. It only selects the card theme.
type Creator string

const (
	CreatorGirlfriend Creator = "girlfriend"
	CreatorBoyfriend  Creator = "boyfriend"
)

// TimestampLayout is the ISO-8601 layout used for Card.CreatedAt. It is fixed
// width, so timestamps sort lexicographically.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Valid reports whether c is one of the known creators.
func (c Creator) Valid() bool {
	return c == CreatorGirlfriend || c == CreatorBoyfriend
}

// ParseCreator converts user input into a Creator.
func ParseCreator(s string) (Creator, error) {
	c := Creator(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown creator %q (want %q or %q)", s, CreatorGirlfriend, CreatorBoyfriend)
	}
	return c, nil
}

// Card is a single love letter. Password and Message never change after creation.
type Card struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Recipient string  `json:"recipient" gorm:"type:varchar(200);not null"`
	Creator   Creator `json:"creator" gorm:"type:varchar(16);not null"`
	Message   string  `json:"message" gorm:"type:text;not null"`
	Password  string  `json:"password" gorm:"type:varchar(255);not null"` // plaintext, compared client-side
	UserID    string  `json:"user_id" gorm:"index;type:varchar(36);not null"`
	CreatedAt string  `json:"created_at" gorm:"type:varchar(32);not null"`
}

// CardDraft holds the user-supplied fields of a card before it is persisted.
type CardDraft struct {
	Recipient string  `json:"recipient" validate:"required,max=200"`
	Creator   Creator `json:"creator" validate:"required,oneof=girlfriend boyfriend"`
	Message   string  `json:"message" validate:"required"`
	Password  string  `json:"password" validate:"required"`
}

// NewCard builds a card owned by userID from a draft. The id is left empty for
// the persistence layer to assign.
func NewCard(draft CardDraft, userID string, now time.Time) Card {
	return Card{
		Recipient: draft.Recipient,
		Creator:   draft.Creator,
		Message:   draft.Message,
		Password:  draft.Password,
		UserID:    userID,
		CreatedAt: FormatTimestamp(now),
	}
}

// FormatTimestamp renders t in TimestampLayout (UTC).
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
