package handlers

import (
	"errors"

	"cherishedwords/internal/middleware"
	"cherishedwords/internal/models"
	"cherishedwords/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
	log         logrus.FieldLogger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
		log:         log,
	}
}

// RegisterRoutes registers the public authentication routes. requireAuth
// guards the routes that need a session.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/signup", h.HandleSignUp)
	authRoutes.Post("/signin", h.HandleSignIn)
	authRoutes.Get("/me", requireAuth, h.HandleMe)
}

// CredentialsRequest is the request body of sign-up and sign-in.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse is returned by a successful sign-up or sign-in.
type SessionResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
	Token   string       `json:"token"`
}

func (h *AuthHandler) parseCredentials(c *fiber.Ctx) (*CredentialsRequest, error) {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		h.log.WithError(err).Debug("error parsing credentials body")
		return nil, invalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return nil, validationFailed(c, err)
	}
	return &req, nil
}

// HandleSignUp registers a new account.
func (h *AuthHandler) HandleSignUp(c *fiber.Ctx) error {
	req, respErr := h.parseCredentials(c)
	if req == nil {
		return respErr
	}

	user, token, err := h.authService.SignUp(c.UserContext(), req.Email, req.Password)
	switch {
	case errors.Is(err, services.ErrEmailInUse):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Registration failed",
			"code":    CodeEmailInUse,
			"error":   services.ErrEmailInUse.Error(),
		})
	case errors.Is(err, services.ErrWeakPassword):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Registration failed",
			"code":    CodeWeakPassword,
			"error":   services.ErrWeakPassword.Error(),
		})
	case err != nil:
		h.log.WithError(err).Error("error registering user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not register user",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(SessionResponse{
		Message: "User registered successfully",
		User:    user,
		Token:   token,
	})
}

// HandleSignIn authenticates an account and issues a JWT token.
func (h *AuthHandler) HandleSignIn(c *fiber.Ctx) error {
	req, respErr := h.parseCredentials(c)
	if req == nil {
		return respErr
	}

	user, token, err := h.authService.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		h.log.WithField("email", req.Email).Info("sign-in rejected")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
			"code":    CodeInvalidCredentials,
			"error":   services.ErrInvalidCredentials.Error(),
		})
	}

	return c.JSON(SessionResponse{
		Message: "Login successful",
		User:    user,
		Token:   token,
	})
}

// HandleMe returns the account of the current session.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	user, err := h.authService.CurrentUser(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Session user no longer exists",
		})
	}
	return c.JSON(fiber.Map{"user": user})
}
