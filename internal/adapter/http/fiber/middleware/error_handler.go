package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/evplan/internal/domain"
)

// ErrorHandler maps the domain error taxonomy to HTTP statuses: rejected
// configurations are 422, unknown scopes 404, everything else 500.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var cfgErr *domain.ConfigurationError
		var scopeErr *domain.ScopeNotFoundError
		var fiberErr *fiber.Error

		switch {
		case errors.As(err, &cfgErr):
			code = fiber.StatusUnprocessableEntity
		case errors.As(err, &scopeErr):
			code = fiber.StatusNotFound
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
		}

		if code == fiber.StatusInternalServerError {
			log.Error("Internal Server Error", zap.Error(err), zap.String("path", c.Path()))
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
