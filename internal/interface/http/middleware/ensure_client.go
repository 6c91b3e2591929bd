package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/pkg/apperr"
	"github.com/wichananm65/merchant-backoffice/internal/usecase"
)

const clientKey = "client"

// EnsureClient creates the caller's client row on first touch and stores it
// in c.Locals for the next handler.
func EnsureClient(clients usecase.ClientUsecase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := IdentityFromCtx(c)
		if err != nil {
			return err
		}
		client, err := clients.Ensure(c.UserContext(), identity)
		if err != nil {
			return err
		}
		c.Locals(clientKey, client)
		return c.Next()
	}
}

// ClientFromCtx returns the client stored by EnsureClient.
func ClientFromCtx(c *fiber.Ctx) (*entity.Client, error) {
	client, ok := c.Locals(clientKey).(*entity.Client)
	if !ok || client == nil {
		return nil, apperr.ErrUnauthenticated
	}
	return client, nil
}
