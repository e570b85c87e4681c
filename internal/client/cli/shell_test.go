package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"cherishedwords/internal/client"
	"cherishedwords/internal/client/cli"
	"cherishedwords/internal/client/local"
	"cherishedwords/internal/client/view"
	"cherishedwords/internal/logging"
	"cherishedwords/internal/repositories"
	"cherishedwords/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *client.App {
	log := logging.Discard()
	backend := local.NewBackend(
		services.NewAuthService(repositories.NewMockUserRepository(), "test_jwt_secret", time.Hour, log),
		services.NewCardService(repositories.NewMockCardRepository(), nil, log),
	)
	return client.NewApp(backend, backend, log)
}

func run(t *testing.T, app *client.App, lines ...string) string {
	t.Helper()
	renderer, err := view.New(false)
	require.NoError(t, err)

	var out bytes.Buffer
	shell := cli.NewShell(app, renderer, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	require.NoError(t, shell.Run(context.Background()))
	return out.String()
}

func TestShellWritesAndUnlocksCard(t *testing.T) {
	app := newApp()
	out := run(t, app,
		"signup ana@example.com",
		"password123",
		"create",
		"form to Ben",
		"form from boyfriend",
		"form message",
		"Happy anniversary,",
		"my love",
		"",
		"form password forever",
		"form submit",
		"exit",
	)

	assert.Contains(t, out, "ana@example.com")
	assert.Contains(t, out, "To Ben, from your boyfriend")
	assert.Contains(t, out, "Bye!")
	assert.Contains(t, out, "sealed. `unlock")

	cards := app.Cards()
	require.Len(t, cards, 1)
	assert.Equal(t, "Happy anniversary,\nmy love", cards[0].Message)

	id := cards[0].ID
	out = run(t, app,
		"unlock "+id,
		"Forever",
		"unlock "+id,
		"forever",
	)
	assert.Contains(t, out, client.ErrWrongPassword.Error())
	assert.Contains(t, out, "Happy anniversary,")
	assert.True(t, app.Revealed(id))

	out = run(t, app, "flip "+id, "delete "+id)
	assert.False(t, app.Revealed(id))
	assert.Empty(t, app.Cards())
	assert.Contains(t, out, "No cards yet")
}

func TestShellRejectsIncompleteForm(t *testing.T) {
	app := newApp()
	out := run(t, app,
		"signup ana@example.com",
		"password123",
		"form to Ben",
		"form submit",
	)

	assert.Contains(t, out, "card is incomplete")
	assert.Empty(t, app.Cards())
	assert.True(t, app.Snapshot().CreateFormOpen)
}

func TestShellSignedOut(t *testing.T) {
	app := newApp()
	out := run(t, app,
		"help",
		"create",
		"signin ana@example.com",
		"password123",
		"mode signup",
		"bogus",
	)

	assert.Contains(t, out, "signin <email>")
	assert.Contains(t, out, client.ErrNotSignedIn.Error())
	assert.Contains(t, out, "invalid email or password")
	assert.Contains(t, out, "Create an account")
	assert.Contains(t, out, "Unknown command: bogus")
	assert.False(t, app.Snapshot().SignedIn)
}

func TestShellSignOut(t *testing.T) {
	app := newApp()
	run(t, app,
		"signup ana@example.com",
		"password123",
		"form to Ben",
		"form message hi",
		"form password pw",
		"form submit",
		"signout",
	)
	assert.False(t, app.Snapshot().SignedIn)
	assert.Empty(t, app.Cards())
}

func TestShellKeepsInlineValuesVerbatim(t *testing.T) {
	app := newApp()
	run(t, app,
		"signup ana@example.com",
		"password123",
		"form to Ben",
		"form message hold  me   close ",
		"form password our  song ",
		"form submit",
	)

	cards := app.Cards()
	require.Len(t, cards, 1)
	assert.Equal(t, "our  song ", cards[0].Password)
	assert.Equal(t, "hold  me   close ", cards[0].Message)

	run(t, app, "unlock "+cards[0].ID, "our song")
	assert.False(t, app.Revealed(cards[0].ID))

	run(t, app, "unlock "+cards[0].ID, "our  song ")
	assert.True(t, app.Revealed(cards[0].ID))
}
