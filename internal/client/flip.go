package client

import "cherishedwords/internal/models"

// FlipState holds the revealed flag of every card, keyed by card id. Cards
// start locked. It is never persisted.
type FlipState struct {
	revealed map[string]bool
}

// NewFlipState returns a flip state with every card locked.
func NewFlipState() *FlipState {
	return &FlipState{revealed: make(map[string]bool)}
}

// Revealed reports whether the card with id is revealed.
func (f *FlipState) Revealed(id string) bool {
	return f.revealed[id]
}

// Unlock reveals card when input equals its password exactly. On mismatch the
// card stays locked and ErrWrongPassword is returned.
func (f *FlipState) Unlock(card models.Card, input string) error {
	if input != card.Password {
		return ErrWrongPassword
	}
	f.revealed[card.ID] = true
	return nil
}

// FlipBack locks a revealed card again. It reports false for locked cards.
func (f *FlipState) FlipBack(id string) bool {
	if !f.revealed[id] {
		return false
	}
	delete(f.revealed, id)
	return true
}

// Forget drops the state of one card.
func (f *FlipState) Forget(id string) {
	delete(f.revealed, id)
}

// Reset locks every card.
func (f *FlipState) Reset() {
	f.revealed = make(map[string]bool)
}
