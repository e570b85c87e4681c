package client

import "cherishedwords/internal/models"

// CardView is a card as the gallery shows it.
type CardView struct {
	Card     models.Card
	Revealed bool
}

// Snapshot is an immutable copy of everything the views render.
type Snapshot struct {
	SignedIn       bool
	Email          string
	AuthMode       AuthMode
	CreateFormOpen bool
	Form           CardForm
	Cards          []CardView
	Notice         string
}

// Snapshot captures the current state for rendering.
func (a *App) Snapshot() Snapshot {
	id, signedIn := a.session.Current()

	a.mu.Lock()
	defer a.mu.Unlock()

	snap := Snapshot{
		SignedIn: signedIn,
		Email:    id.Email,
		AuthMode: a.authMode,
		Notice:   a.notice,
	}
	if !signedIn {
		return snap
	}

	snap.CreateFormOpen = a.formOpen
	snap.Form = a.form
	snap.Cards = make([]CardView, 0, len(a.cards))
	for _, c := range a.cards {
		snap.Cards = append(snap.Cards, CardView{Card: c, Revealed: a.flips.Revealed(c.ID)})
	}
	return snap
}
