package middleware

import (
	"crypto/subtle"
	"strings"

	"cherishedwords/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Locals keys set by AuthRequired.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
)

// Headers identifying the calling project.
const (
	HeaderProjectID = "X-Project-ID"
	HeaderAPIKey    = "X-API-Key"
)

// ProjectKeyRequired rejects requests that do not carry the configured
// project identifier and API key.
func ProjectKeyRequired(projectID, apiKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(HeaderProjectID) != projectID ||
			subtle.ConstantTimeCompare([]byte(c.Get(HeaderAPIKey)), []byte(apiKey)) != 1 {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Unknown project or API key",
			})
		}
		return c.Next()
	}
}

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(authService *services.AuthService, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.WithError(err).WithField("path", c.Path()).Debug("JWT validation failed")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		c.Locals(LocalUserID, claims["user_id"])
		c.Locals(LocalEmail, claims["email"])
		return c.Next()
	}
}

// UserID returns the authenticated user of the request, or "" when
// AuthRequired did not run.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}
