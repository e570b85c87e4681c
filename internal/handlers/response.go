package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Machine-readable error codes sent in the "code" field of error responses.
const (
	CodeInvalidCredentials = "invalid_credentials"
	CodeEmailInUse         = "email_in_use"
	CodeWeakPassword       = "weak_password"
	CodeValidation         = "validation_failed"
	CodeNotFound           = "not_found"
)

// validationFailed renders validator errors as a field -> message map.
func validationFailed(c *fiber.Ctx, err error) error {
	errorMessages := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	} else {
		errorMessages["_"] = err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"code":    CodeValidation,
		"errors":  errorMessages,
	})
}

func invalidBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}
