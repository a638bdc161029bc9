package handlers

import (
	"errors"

	"catalog/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const internalErrorMessage = "internal server error"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

// ErrorHandler maps errors returned by handlers onto status codes. Domain
// errors keep their message; anything unexpected becomes a generic 500 and is
// logged with its detail.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := internalErrorMessage

		var fiberErr *fiber.Error
		switch {
		case errors.Is(err, apperror.ErrNotFound):
			status, message = fiber.StatusNotFound, err.Error()
		case errors.Is(err, apperror.ErrBadRequest):
			status, message = fiber.StatusBadRequest, err.Error()
		case errors.As(err, &fiberErr):
			status, message = fiberErr.Code, fiberErr.Message
		default:
			log.Error("unhandled request error",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		return c.Status(status).JSON(ErrorResponse{Message: message})
	}
}
