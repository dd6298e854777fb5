package serverutils

import (
	"errors"

	"foodiebot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors returned by controllers into the
// uniform JSON envelope with a meaningful status code.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError

		var validationErr *ValidationError
		switch {
		case errors.As(err, &validationErr):
			status = fiber.StatusBadRequest
		case errors.Is(err, service.ErrProductNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, service.ErrCatalogUnavailable):
			status = fiber.StatusServiceUnavailable
		}

		return ctx.Status(status).JSON(ErrorResponse(err.Error()))
	}
}
