package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/merchant-backoffice/internal/interface/http/middleware"
	"github.com/wichananm65/merchant-backoffice/internal/interface/presenter"
	"github.com/wichananm65/merchant-backoffice/internal/usecase"
)

// ChatQueryHandler lists the questions customers asked through the chat integration.
type ChatQueryHandler struct {
	queries   usecase.ChatQueryUsecase
	presenter *presenter.ChatQueryPresenter
}

func NewChatQueryHandler(queries usecase.ChatQueryUsecase, presenter *presenter.ChatQueryPresenter) *ChatQueryHandler {
	return &ChatQueryHandler{queries: queries, presenter: presenter}
}

func (h *ChatQueryHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/queries", h.list)
}

func (h *ChatQueryHandler) list(c *fiber.Ctx) error {
	externalID, err := middleware.ExternalID(c)
	if err != nil {
		return err
	}
	queries, err := h.queries.List(c.UserContext(), externalID)
	if err != nil {
		return fail("QUERIES_GET", err)
	}
	return c.JSON(h.presenter.ToList(queries))
}
