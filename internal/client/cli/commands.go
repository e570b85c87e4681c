package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cherishedwords/internal/client"
	"cherishedwords/internal/models"
)

var errUsage = errors.New("wrong number of arguments")

func (s *Shell) mode(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: mode signin|signup", errUsage)
	}
	switch client.AuthMode(args[0]) {
	case client.AuthModeSignIn:
		s.app.SetAuthMode(client.AuthModeSignIn)
	case client.AuthModeSignUp:
		s.app.SetAuthMode(client.AuthModeSignUp)
	default:
		return fmt.Errorf("unknown mode %q", args[0])
	}
	return nil
}

func (s *Shell) authenticate(ctx context.Context, mode client.AuthMode, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: %s <email>", errUsage, mode)
	}
	password, err := s.secret("Password")
	if err != nil {
		return err
	}
	s.app.SetAuthMode(mode)
	return s.app.Authenticate(ctx, args[0], password)
}

// form edits one field. value is the raw text after the field name.
func (s *Shell) form(ctx context.Context, args []string, value string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: form <field> [value] | form submit | form cancel", errUsage)
	}
	field := args[0]

	switch field {
	case "submit":
		_, err := s.app.SubmitForm(ctx)
		return err
	case "cancel":
		s.app.CloseCreateForm()
		return nil
	}

	if !s.app.Snapshot().CreateFormOpen {
		s.app.ToggleCreateForm()
	}

	switch field {
	case "recipient", "to":
		s.app.EditForm(func(f *client.CardForm) { f.Recipient = value })
	case "creator", "from":
		creator, err := models.ParseCreator(strings.TrimSpace(value))
		if err != nil {
			return err
		}
		s.app.EditForm(func(f *client.CardForm) { f.Creator = creator })
	case "message":
		if value == "" {
			var err error
			if value, err = GetMultiline(s.in, "Message", s.out); err != nil {
				return err
			}
		}
		s.app.EditForm(func(f *client.CardForm) { f.Message = value })
	case "password":
		if value == "" {
			var err error
			if value, err = s.secret("Card password"); err != nil {
				return err
			}
		}
		s.app.EditForm(func(f *client.CardForm) { f.Password = value })
	default:
		return fmt.Errorf("unknown form field %q", field)
	}
	return nil
}

func (s *Shell) unlock(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: unlock <id>", errUsage)
	}
	password, err := s.secret("Enter password")
	if err != nil {
		return err
	}
	return s.app.Unlock(args[0], password)
}

func (s *Shell) flip(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: flip <id>", errUsage)
	}
	if !s.app.FlipBack(args[0]) {
		return fmt.Errorf("card %s is not unlocked", args[0])
	}
	return nil
}

func (s *Shell) delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: delete <id>", errUsage)
	}
	return s.app.RemoveCard(ctx, args[0])
}
