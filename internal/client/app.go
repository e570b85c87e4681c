package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cherishedwords/internal/models"

	"github.com/sirupsen/logrus"
)

// App is the application state container of the client. It owns the session,
// the card store, the flip state and the creation form. Every mutation goes
// through App.update, so completions of concurrent requests are applied one
// at a time.
type App struct {
	auth    IdentityProvider
	docs    DocumentStore
	log     logrus.FieldLogger
	now     func() time.Time
	session *Session

	mu sync.Mutex
	// epoch changes with every identity change; results of requests issued
	// under an older epoch are dropped.
	epoch uint64
	// seq counts appends to and removals from the store; added and removed
	// map card id to the seq of that change.
	seq      uint64
	added    map[string]uint64
	removed  map[string]uint64
	cards    []models.Card
	flips    *FlipState
	form     CardForm
	formOpen bool
	authMode AuthMode
	notice   string
}

// Option customises an App.
type Option func(*App)

// WithClock overrides the clock used for card timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// NewApp creates the state container. log receives the errors that are not
// shown to the user, such as failed fetches.
func NewApp(auth IdentityProvider, docs DocumentStore, log logrus.FieldLogger, opts ...Option) *App {
	a := &App{
		auth:     auth,
		docs:     docs,
		log:      log,
		now:      time.Now,
		session:  NewSession(),
		added:    make(map[string]uint64),
		removed:  make(map[string]uint64),
		flips:    NewFlipState(),
		form:     NewCardForm(),
		authMode: AuthModeSignIn,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.session.OnChange(a.onSessionChange)
	return a
}

// Session exposes the session state.
func (a *App) Session() *Session {
	return a.session
}

func (a *App) update(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn()
}

// onSessionChange resets everything scoped to the previous identity.
func (a *App) onSessionChange(_ Identity, _ bool) {
	a.update(func() {
		a.epoch++
		a.seq = 0
		a.added = make(map[string]uint64)
		a.removed = make(map[string]uint64)
		a.cards = nil
		a.flips.Reset()
		a.form = NewCardForm()
		a.formOpen = false
	})
}

func (a *App) currentEpoch() (epoch, seq uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.epoch, a.seq
}

// SetAuthMode switches the sign-in surface between signing in and signing up.
func (a *App) SetAuthMode(mode AuthMode) {
	a.update(func() { a.authMode = mode })
}

// Authenticate submits the sign-in surface in its current mode.
func (a *App) Authenticate(ctx context.Context, email, password string) error {
	a.mu.Lock()
	mode := a.authMode
	a.mu.Unlock()

	if mode == AuthModeSignUp {
		return a.SignUp(ctx, email, password)
	}
	return a.SignIn(ctx, email, password)
}

// SignIn authenticates against the identity provider and, on success,
// establishes the session and loads its cards.
func (a *App) SignIn(ctx context.Context, email, password string) error {
	id, err := a.auth.SignIn(ctx, email, password)
	if err != nil {
		return a.authFailed(err)
	}
	a.Establish(ctx, id)
	return nil
}

// SignUp creates an account and signs into it.
func (a *App) SignUp(ctx context.Context, email, password string) error {
	id, err := a.auth.SignUp(ctx, email, password)
	if err != nil {
		return a.authFailed(err)
	}
	a.Establish(ctx, id)
	return nil
}

func (a *App) authFailed(err error) error {
	err = fmt.Errorf("%w: %w", ErrAuthentication, err)
	a.update(func() { a.notice = err.Error() })
	return err
}

// Establish makes id the current identity. When the identity actually
// changed, the card store is repopulated for it.
func (a *App) Establish(ctx context.Context, id Identity) {
	a.update(func() { a.notice = "" })
	if a.session.Establish(id) {
		a.log.WithField("user_id", id.UserID).Info("session established")
		a.FetchAll(ctx)
	}
}

// SignOut clears the session together with the cards, flip state and form.
func (a *App) SignOut() {
	if a.session.Clear() {
		a.log.Info("session cleared")
	}
}

// FetchAll replaces the store with the current identity's cards. A failure is
// only logged; the store keeps its previous contents.
func (a *App) FetchAll(ctx context.Context) {
	// Read the epoch before the identity: an identity change in between then
	// shows up as an epoch mismatch when the result is applied.
	epoch, seq := a.currentEpoch()
	id, ok := a.session.Current()
	if !ok {
		return
	}
	entry := a.log.WithField("user_id", id.UserID)

	fetched, err := a.docs.Query(ctx, id)
	if err != nil {
		entry.WithError(err).Error("error fetching cards")
		return
	}

	a.update(func() {
		if a.epoch != epoch {
			entry.Debug("dropping cards fetched for a previous session")
			return
		}

		cards := make([]models.Card, 0, len(fetched))
		seen := make(map[string]bool, len(fetched))
		for _, c := range fetched {
			if c.UserID != id.UserID {
				entry.WithField("card_id", c.ID).Warn("dropping card owned by another user")
				continue
			}
			if c.ID == "" || seen[c.ID] {
				continue
			}
			// Removed while the query was in flight.
			if a.removed[c.ID] > seq {
				continue
			}
			seen[c.ID] = true
			cards = append(cards, c)
		}
		// Cards added while the query was in flight may be missing from it.
		for _, c := range a.cards {
			if a.added[c.ID] > seq && !seen[c.ID] {
				seen[c.ID] = true
				cards = append(cards, c)
			}
		}

		a.cards = cards
		a.flips.Reset()
	})
}

// AddCard persists a new card for the current identity and appends it to the
// store. The store is left untouched when validation or persistence fails.
func (a *App) AddCard(ctx context.Context, draft models.CardDraft) (models.Card, error) {
	epoch, _ := a.currentEpoch()
	id, ok := a.session.Current()
	if !ok {
		return models.Card{}, ErrNotSignedIn
	}
	if err := validateDraft(draft); err != nil {
		return models.Card{}, err
	}
	card := models.NewCard(draft, id.UserID, a.now())

	cardID, err := a.docs.Insert(ctx, id, card)
	if err == nil && cardID == "" {
		err = errors.New("store assigned no id")
	}
	if err != nil {
		a.log.WithError(err).WithField("user_id", id.UserID).Error("error adding card")
		return models.Card{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	card.ID = cardID

	a.update(func() {
		if a.epoch != epoch || a.indexOf(card.ID) >= 0 {
			return
		}
		a.seq++
		a.added[card.ID] = a.seq
		a.cards = append(a.cards, card)
	})
	return card, nil
}

// RemoveCard deletes a card from the store and from persistence. Removing an
// unknown id is a no-op.
func (a *App) RemoveCard(ctx context.Context, cardID string) error {
	epoch, _ := a.currentEpoch()
	id, ok := a.session.Current()
	if !ok {
		return ErrNotSignedIn
	}

	if err := a.docs.Delete(ctx, id, cardID); err != nil && !errors.Is(err, ErrNotFound) {
		a.log.WithError(err).WithField("card_id", cardID).Error("error deleting card")
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	a.update(func() {
		if a.epoch != epoch {
			return
		}
		if i := a.indexOf(cardID); i >= 0 {
			a.cards = append(a.cards[:i:i], a.cards[i+1:]...)
		}
		a.seq++
		a.removed[cardID] = a.seq
		delete(a.added, cardID)
		a.flips.Forget(cardID)
	})
	return nil
}

// indexOf must be called with a.mu held.
func (a *App) indexOf(cardID string) int {
	for i, c := range a.cards {
		if c.ID == cardID {
			return i
		}
	}
	return -1
}

// Cards returns a copy of the store in display order.
func (a *App) Cards() []models.Card {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.Card(nil), a.cards...)
}

// Unlock reveals a card when password matches it exactly. A mismatch keeps
// the card locked and sets a user-visible notice.
func (a *App) Unlock(cardID, password string) error {
	var err error
	a.update(func() {
		i := a.indexOf(cardID)
		if i < 0 {
			err = ErrCardNotFound
			return
		}
		err = a.flips.Unlock(a.cards[i], password)
		if err != nil {
			a.notice = err.Error()
		} else {
			a.notice = ""
		}
	})
	return err
}

// FlipBack returns a revealed card to locked. It is a no-op for locked cards.
func (a *App) FlipBack(cardID string) bool {
	var flipped bool
	a.update(func() { flipped = a.flips.FlipBack(cardID) })
	return flipped
}

// Revealed reports the flip state of a card.
func (a *App) Revealed(cardID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.flips.Revealed(cardID)
}

// ToggleCreateForm shows or hides the creation surface.
func (a *App) ToggleCreateForm() {
	a.update(func() { a.formOpen = !a.formOpen })
}

// CloseCreateForm hides the creation surface without clearing the form.
func (a *App) CloseCreateForm() {
	a.update(func() { a.formOpen = false })
}

// EditForm applies fn to the creation form.
func (a *App) EditForm(fn func(f *CardForm)) {
	a.update(func() { fn(&a.form) })
}

// Form returns the current creation form.
func (a *App) Form() CardForm {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.form
}

// SubmitForm validates the creation form and adds the card. On success the
// form is reset and the creation surface closed; on failure the form is kept
// so the user can retry.
func (a *App) SubmitForm(ctx context.Context) (models.Card, error) {
	form := a.Form()
	if err := form.Validate(); err != nil {
		a.update(func() { a.notice = err.Error() })
		return models.Card{}, err
	}

	card, err := a.AddCard(ctx, form.Draft())
	if err != nil {
		a.update(func() { a.notice = "Failed to add card: " + err.Error() })
		return models.Card{}, err
	}

	a.update(func() {
		a.form = NewCardForm()
		a.formOpen = false
		a.notice = ""
	})
	return card, nil
}

// DismissNotice clears the user-visible notice.
func (a *App) DismissNotice() {
	a.update(func() { a.notice = "" })
}
