package client

import (
	"strings"

	"cherishedwords/internal/models"

	"github.com/go-playground/validator/v10"
)

// AuthMode selects what the sign-in surface submits.
type AuthMode string

const (
	AuthModeSignIn AuthMode = "signin"
	AuthModeSignUp AuthMode = "signup"
)

// CardForm is the transient state of the card creation surface.
type CardForm struct {
	Recipient string
	Creator   models.Creator
	Message   string
	Password  string
}

// NewCardForm returns an empty form. The creator defaults to girlfriend.
func NewCardForm() CardForm {
	return CardForm{Creator: models.CreatorGirlfriend}
}

// Draft converts the form into a card draft.
func (f CardForm) Draft() models.CardDraft {
	return models.CardDraft{
		Recipient: f.Recipient,
		Creator:   f.Creator,
		Message:   f.Message,
		Password:  f.Password,
	}
}

// Validate reports the fields that prevent submission.
func (f CardForm) Validate() error {
	return validateDraft(f.Draft())
}

var draftValidator = validator.New()

func validateDraft(d models.CardDraft) error {
	err := draftValidator.Struct(d)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &ValidationError{Fields: []string{err.Error()}}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return &ValidationError{Fields: fields}
}
