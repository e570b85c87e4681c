package handlers

import (
	"errors"
	"fmt"

	"cherishedwords/internal/middleware"
	"cherishedwords/internal/models"
	"cherishedwords/internal/repositories"
	"cherishedwords/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// CardHandler handles HTTP requests for cards.
type CardHandler struct {
	service *services.CardService
	log     logrus.FieldLogger
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(service *services.CardService, log logrus.FieldLogger) *CardHandler {
	return &CardHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the card routes behind requireAuth.
func (h *CardHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	cardRoutes := router.Group("/cards", requireAuth)
	cardRoutes.Get("/", h.HandleListCards)
	cardRoutes.Post("/", h.HandleCreateCard)
	cardRoutes.Delete("/:id", h.HandleDeleteCard)
}

// CreateCardRequest is the body of POST /cards.
type CreateCardRequest struct {
	models.CardDraft
	CreatedAt string `json:"created_at"`
}

// HandleListCards returns the caller's cards.
func (h *CardHandler) HandleListCards(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	cards, err := h.service.ListCards(c.UserContext(), userID)
	if err != nil {
		h.log.WithError(err).WithField("user_id", userID).Error("error listing cards")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve cards",
			"error":   err.Error(),
		})
	}
	return c.JSON(cards)
}

// HandleCreateCard stores a new card for the caller.
func (h *CardHandler) HandleCreateCard(c *fiber.Ctx) error {
	var req CreateCardRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	userID := middleware.UserID(c)
	card, err := h.service.CreateCard(c.UserContext(), userID, req.CardDraft, req.CreatedAt)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCard) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"code":    CodeValidation,
				"error":   err.Error(),
			})
		}
		h.log.WithError(err).WithField("user_id", userID).Error("error creating card")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create card",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(card)
}

// HandleDeleteCard deletes one of the caller's cards.
func (h *CardHandler) HandleDeleteCard(c *fiber.Ctx) error {
	cardID := c.Params("id")
	userID := middleware.UserID(c)

	err := h.service.DeleteCard(c.UserContext(), userID, cardID)
	if errors.Is(err, repositories.ErrCardNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Card with ID %s not found", cardID),
			"code":    CodeNotFound,
		})
	}
	if err != nil {
		h.log.WithError(err).WithField("card_id", cardID).Error("error deleting card")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete card",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Card %s deleted successfully", cardID),
	})
}
