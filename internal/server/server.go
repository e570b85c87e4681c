package server

import (
	"time"

	"cherishedwords/internal/handlers"
	"cherishedwords/internal/middleware"
	"cherishedwords/internal/repositories"
	"cherishedwords/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

// Options configures NewApp.
type Options struct {
	ProjectID string
	APIKey    string
	JWTSecret string
	TokenTTL  time.Duration
	// AccessLog enables Fiber's request logger.
	AccessLog bool
}

// Deps are the collaborators NewApp wires together.
type Deps struct {
	Users     repositories.UserRepository
	Cards     repositories.CardRepository
	Publisher services.EventPublisher // may be nil
	Log       logrus.FieldLogger
}

// NewApp builds the Fiber application serving the identity and card APIs.
func NewApp(opts Options, deps Deps) (*fiber.App, *services.AuthService) {
	authService := services.NewAuthService(deps.Users, opts.JWTSecret, opts.TokenTTL, deps.Log)
	cardService := services.NewCardService(deps.Cards, deps.Publisher, deps.Log)

	authHandler := handlers.NewAuthHandler(authService, deps.Log)
	cardHandler := handlers.NewCardHandler(cardService, deps.Log)

	app := fiber.New(fiber.Config{
		AppName:               "cherishedwords",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	apiV1 := app.Group("/api/v1", middleware.ProjectKeyRequired(opts.ProjectID, opts.APIKey))
	requireAuth := middleware.AuthRequired(authService, deps.Log)

	authHandler.RegisterRoutes(apiV1, requireAuth)
	cardHandler.RegisterRoutes(apiV1, requireAuth)

	return app, authService
}
