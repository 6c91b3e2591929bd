package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/interface/http/middleware"
	"github.com/wichananm65/merchant-backoffice/internal/usecase"
)

// ProductHandler serves products and their AI context.
type ProductHandler struct {
	products usecase.ProductUsecase
	contexts usecase.ProductContextUsecase
}

func NewProductHandler(products usecase.ProductUsecase, contexts usecase.ProductContextUsecase) *ProductHandler {
	return &ProductHandler{products: products, contexts: contexts}
}

func (h *ProductHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/products", h.create)
	r.Get("/products", h.list)
	r.Get("/products/:productId", h.get)
	r.Patch("/products/:productId", h.patch)
	r.Delete("/products/:productId", h.delete)
	r.Get("/products/:productId/context", h.getContext)
	r.Post("/products/:productId/context", h.saveContext)
}

type createProductRequest struct {
	Name        string              `json:"name"`
	Description *string             `json:"description"`
	Price       decimal.NullDecimal `json:"price"`
	ImageURL    *string             `json:"imageUrl"`
	CategoryID  string              `json:"categoryId"`
}

type patchProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"imageUrl"`
	CategoryID  *string          `json:"categoryId"`
}

type saveContextRequest struct {
	Content string `json:"content"`
}

func (h *ProductHandler) create(c *fiber.Ctx) error {
	externalID, err := middleware.ExternalID(c)
	if err != nil {
		return err
	}
	var req createProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid json body")
	}

	p, err := h.products.Create(c.UserContext(), externalID, entity.ProductCreate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return fail("PRODUCTS_POST", err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *ProductHandler) list(c *fiber.Ctx) error {
	externalID, err := middleware.ExternalID(c)
	if err != nil {
		return err
	}
	products, err := h.products.List(c.UserContext(), externalID)
	if err != nil {
		return fail("PRODUCTS_GET", err)
	}
	return c.JSON(products)
}

func (h *ProductHandler) get(c *fiber.Ctx) error {
	externalID, err := middleware.ExternalID(c)
	if err != nil {
		return err
	}
	p, err := h.products.Get(c.UserContext(), externalID, c.Params("productId"))
	if err != nil {
		return fail("PRODUCT_GET", err)
	}
	return c.JSON(p)
}

func (h *ProductHandler) patch(c *fiber.Ctx) error {
	externalID, err := middleware.ExternalID(c)
	if err != nil {
		return err
	}
	var req patchProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid json body")
	}

	p, err := h.products.Patch(c.UserContext(), externalID, c.Params("productId"), entity.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return fail("PRODUCT_PATCH", err)
	}
	return c.JSON(p)
}

func (h *ProductHandler) delete(c *fiber.Ctx) error {
	externalID, err := middleware.ExternalID(c)
	if err != nil {
		return err
	}
	if err := h.products.Delete(c.UserContext(), externalID, c.Params("productId")); err != nil {
		return fail("PRODUCT_DELETE", err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

func (h *ProductHandler) getContext(c *fiber.Ctx) error {
	externalID, err := middleware.ExternalID(c)
	if err != nil {
		return err
	}
	pc, err := h.contexts.Get(c.UserContext(), externalID, c.Params("productId"))
	if err != nil {
		return fail("PRODUCT_CONTEXT_GET", err)
	}
	return c.JSON(pc)
}

func (h *ProductHandler) saveContext(c *fiber.Ctx) error {
	externalID, err := middleware.ExternalID(c)
	if err != nil {
		return err
	}
	var req saveContextRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid json body")
	}

	pc, err := h.contexts.Save(c.UserContext(), externalID, c.Params("productId"), req.Content)
	if err != nil {
		return fail("PRODUCT_CONTEXT_POST", err)
	}
	return c.JSON(pc)
}
