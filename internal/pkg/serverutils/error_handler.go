package serverutils

import (
	"ai-learning-be/internal/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts tagged service errors into transport
// status codes. Anything untagged is treated as an internal error.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		return ctx.Status(statusOf(err)).JSON(ErrorResponse(err.Error()))
	}
}

func statusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return fiber.StatusBadRequest
	case apperr.KindNotFound, apperr.KindAnswerNotFound:
		return fiber.StatusNotFound
	case apperr.KindInsufficientContent:
		return fiber.StatusUnprocessableEntity
	case apperr.KindUpstream, apperr.KindMalformedOutput:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
