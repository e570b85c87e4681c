// Package remote connects the client state container to the backend over its
// HTTP API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"cherishedwords/internal/client"
	"cherishedwords/internal/config"
	"cherishedwords/internal/handlers"
	"cherishedwords/internal/middleware"
	"cherishedwords/internal/models"
)

const apiPrefix = "/api/v1"

// StatusError is a non-2xx answer of the backend.
type StatusError struct {
	Status  int
	Code    string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d", e.Status)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// Unwrap maps the answer onto the client error taxonomy.
func (e *StatusError) Unwrap() error {
	switch e.Code {
	case handlers.CodeInvalidCredentials:
		return client.ErrInvalidCredentials
	case handlers.CodeEmailInUse:
		return client.ErrEmailInUse
	case handlers.CodeWeakPassword:
		return client.ErrWeakPassword
	case handlers.CodeValidation:
		return client.ErrValidation
	case handlers.CodeNotFound:
		return client.ErrNotFound
	}
	switch e.Status {
	case http.StatusUnauthorized:
		return client.ErrInvalidCredentials
	case http.StatusConflict:
		return client.ErrEmailInUse
	case http.StatusNotFound:
		return client.ErrNotFound
	}
	return nil
}

// Backend implements client.IdentityProvider and client.DocumentStore against
// the HTTP API.
type Backend struct {
	endpoint  string
	projectID string
	apiKey    string
	http      *http.Client
}

// NewBackend creates a Backend for cfg. httpClient may be nil.
func NewBackend(cfg config.ClientConfig, httpClient *http.Client) *Backend {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Backend{
		endpoint:  strings.TrimRight(cfg.Endpoint, "/"),
		projectID: cfg.ProjectID,
		apiKey:    cfg.APIKey,
		http:      httpClient,
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

type createCardRequest struct {
	models.CardDraft
	CreatedAt string `json:"created_at"`
}

type errorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Error   string `json:"error"`
}

// SignIn implements client.IdentityProvider.
func (b *Backend) SignIn(ctx context.Context, email, password string) (client.Identity, error) {
	return b.authenticate(ctx, "/auth/signin", email, password)
}

// SignUp implements client.IdentityProvider.
func (b *Backend) SignUp(ctx context.Context, email, password string) (client.Identity, error) {
	return b.authenticate(ctx, "/auth/signup", email, password)
}

func (b *Backend) authenticate(ctx context.Context, path, email, password string) (client.Identity, error) {
	var resp sessionResponse
	err := b.do(ctx, http.MethodPost, path, "", credentials{Email: email, Password: password}, &resp)
	if err != nil {
		return client.Identity{}, err
	}
	return client.Identity{UserID: resp.User.ID, Email: resp.User.Email, Token: resp.Token}, nil
}

// Query implements client.DocumentStore.
func (b *Backend) Query(ctx context.Context, owner client.Identity) ([]models.Card, error) {
	var cards []models.Card
	if err := b.do(ctx, http.MethodGet, "/cards", owner.Token, nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// Insert implements client.DocumentStore.
func (b *Backend) Insert(ctx context.Context, owner client.Identity, card models.Card) (string, error) {
	req := createCardRequest{
		CardDraft: models.CardDraft{
			Recipient: card.Recipient,
			Creator:   card.Creator,
			Message:   card.Message,
			Password:  card.Password,
		},
		CreatedAt: card.CreatedAt,
	}
	var created models.Card
	if err := b.do(ctx, http.MethodPost, "/cards", owner.Token, req, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// Delete implements client.DocumentStore.
func (b *Backend) Delete(ctx context.Context, owner client.Identity, cardID string) error {
	return b.do(ctx, http.MethodDelete, "/cards/"+url.PathEscape(cardID), owner.Token, nil, nil)
}

func (b *Backend) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.endpoint+apiPrefix+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(middleware.HeaderProjectID, b.projectID)
	req.Header.Set(middleware.HeaderAPIKey, b.apiKey)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	statusErr := &StatusError{Status: resp.StatusCode}
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		statusErr.Message = http.StatusText(resp.StatusCode)
		return statusErr
	}
	statusErr.Code = body.Code
	switch {
	case body.Message != "" && body.Error != "":
		statusErr.Message = body.Message + ": " + body.Error
	case body.Message != "":
		statusErr.Message = body.Message
	default:
		statusErr.Message = body.Error
	}
	return statusErr
}
