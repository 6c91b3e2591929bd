package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/merchant-backoffice/internal/interface/http/middleware"
	"github.com/wichananm65/merchant-backoffice/internal/usecase"
)

// ClientHandler serves the merchant's own account views.
type ClientHandler struct {
	clients usecase.ClientUsecase
}

func NewClientHandler(clients usecase.ClientUsecase) *ClientHandler {
	return &ClientHandler{clients: clients}
}

func (h *ClientHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/dashboard", h.dashboard)
}

func (h *ClientHandler) dashboard(c *fiber.Ctx) error {
	identity, err := middleware.IdentityFromCtx(c)
	if err != nil {
		return err
	}
	stats, err := h.clients.Dashboard(c.UserContext(), identity)
	if err != nil {
		return fail("DASHBOARD_GET", err)
	}
	return c.JSON(stats)
}
