package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/merchant-backoffice/internal/pkg/apperr"
	"github.com/wichananm65/merchant-backoffice/internal/pkg/logger"
)

// opError tags an error with the handler operation that produced it.
type opError struct {
	op  string
	err error
}

func (e *opError) Error() string { return e.op + ": " + e.err.Error() }

func (e *opError) Unwrap() error { return e.err }

func fail(op string, err error) error {
	return &opError{op: op, err: err}
}

// ErrorHandler renders every error as {"message": ...}. Internal errors are
// logged with their operation tag and never shown to the caller.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
		}

		status := apperr.Status(err)
		if status == fiber.StatusInternalServerError {
			op := "unknown"
			var oe *opError
			if errors.As(err, &oe) {
				op = oe.op
			}
			log.Error("request failed", "op", op, "method", c.Method(), "path", c.Path(), "error", err)
		}
		return c.Status(status).JSON(fiber.Map{"message": apperr.PublicMessage(err)})
	}
}

func badRequest(message string) error {
	return apperr.Validation(message)
}
