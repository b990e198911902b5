package serverutils

import (
	"errors"

	"adminboard-be/internal/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps domain errors returned from handlers onto HTTP
// status codes. Validation and not-found are surfaced with their message;
// storage errors return 503 so callers know to retry with backoff.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			status := fiber.StatusInternalServerError
			switch appErr.Kind {
			case apperrors.KindValidation:
				status = fiber.StatusBadRequest
			case apperrors.KindNotFound:
				status = fiber.StatusNotFound
			case apperrors.KindStorage, apperrors.KindDirectoryUnavailable:
				status = fiber.StatusServiceUnavailable
			}
			return ctx.Status(status).JSON(ErrorResponse(status, appErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
	}
}
