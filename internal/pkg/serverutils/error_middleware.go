package serverutils

import (
	"errors"

	"ikigai-interview-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware translates service errors into the HTTP error
// envelope. It runs after the handler so controllers can just return errors.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return ctx.Status(apperror.HTTPStatus(appErr.Kind)).JSON(ErrorBody{
				Success: false,
				Message: appErr.Message,
				Code:    string(appErr.Kind),
				Details: appErr.Details,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorBody{
				Success: false,
				Message: fiberErr.Message,
				Code:    string(apperror.KindInternal),
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorBody{
			Success: false,
			Message: "internal server error",
			Code:    string(apperror.KindInternal),
		})
	}
}
