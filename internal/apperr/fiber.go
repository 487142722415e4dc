package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler resolves errors returned by handlers into the response shape
// used across the API. Internal and upstream causes are logged, never echoed.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *Error
	if errors.As(err, &appErr) {
		if appErr.Kind == KindInternal || appErr.Kind == KindUpstream {
			log.Error().Err(appErr.Err).
				Str("path", c.Path()).
				Str("method", c.Method()).
				Msg(appErr.Message)
		}
		return c.Status(appErr.Kind.Status()).JSON(fiber.Map{
			"success": false,
			"message": appErr.Message,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"success": false,
			"message": fiberErr.Message,
		})
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "internal server error",
	})
}
