package handler

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/interface/http/middleware"
	"github.com/wichananm65/merchant-backoffice/internal/usecase"
)

// CatalogHandler serves catalogs and their categories.
type CatalogHandler struct {
	catalogs usecase.CatalogUsecase
}

func NewCatalogHandler(catalogs usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalogs: catalogs}
}

const catalogCreateKey = "catalogCreate"

// RegisterRoutes mounts the catalog routes. The body is validated before
// ensureClient, so a rejected first catalog creates no client row.
func (h *CatalogHandler) RegisterRoutes(r fiber.Router, ensureClient fiber.Handler) {
	r.Post("/catalogs", h.parseCreate, ensureClient, h.create)
	r.Get("/catalogs", h.list)
	r.Get("/catalogs/:catalogId", h.get)
	r.Patch("/catalogs/:catalogId", h.patch)
	r.Delete("/catalogs/:catalogId", h.delete)
	r.Get("/categories/:categoryId", h.getCategory)
}

type createCatalogRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Categories  []string `json:"categories"`
}

// patchCatalogRequest keeps description raw so an explicit null can be told
// apart from an absent field.
type patchCatalogRequest struct {
	Name                *string                 `json:"name"`
	Description         json.RawMessage         `json:"description"`
	CategoryIDsToDelete []string                `json:"categoryIdsToDelete"`
	CategoriesToUpdate  []entity.CategoryRename `json:"categoriesToUpdate"`
	CategoriesToCreate  []entity.CategoryName   `json:"categoriesToCreate"`
}

func (r patchCatalogRequest) toPatch() (entity.CatalogPatch, error) {
	patch := entity.CatalogPatch{
		Name:                r.Name,
		CategoryIDsToDelete: r.CategoryIDsToDelete,
		CategoriesToUpdate:  r.CategoriesToUpdate,
		CategoriesToCreate:  r.CategoriesToCreate,
	}
	if len(r.Description) > 0 {
		patch.DescriptionSet = true
		if err := json.Unmarshal(r.Description, &patch.Description); err != nil {
			return entity.CatalogPatch{}, badRequest("description must be a string or null")
		}
	}
	return patch, nil
}

func (h *CatalogHandler) parseCreate(c *fiber.Ctx) error {
	if _, err := middleware.ExternalID(c); err != nil {
		return err
	}
	var req createCatalogRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid json body")
	}
	input, err := usecase.NormalizeCatalogCreate(entity.CatalogCreate{
		Name:        req.Name,
		Description: req.Description,
		Categories:  req.Categories,
	})
	if err != nil {
		return fail("CATALOGS_POST", err)
	}
	c.Locals(catalogCreateKey, input)
	return c.Next()
}

func (h *CatalogHandler) create(c *fiber.Ctx) error {
	client, err := middleware.ClientFromCtx(c)
	if err != nil {
		return err
	}
	input, ok := c.Locals(catalogCreateKey).(entity.CatalogCreate)
	if !ok {
		return badRequest("invalid json body")
	}

	cat, err := h.catalogs.Create(c.UserContext(), client.ID, input)
	if err != nil {
		return fail("CATALOGS_POST", err)
	}
	return c.Status(fiber.StatusCreated).JSON(cat)
}

func (h *CatalogHandler) list(c *fiber.Ctx) error {
	externalID, err := middleware.ExternalID(c)
	if err != nil {
		return err
	}
	catalogs, err := h.catalogs.List(c.UserContext(), externalID)
	if err != nil {
		return fail("CATALOGS_GET", err)
	}
	return c.JSON(catalogs)
}

func (h *CatalogHandler) get(c *fiber.Ctx) error {
	externalID, err := middleware.ExternalID(c)
	if err != nil {
		return err
	}
	cat, err := h.catalogs.Get(c.UserContext(), externalID, c.Params("catalogId"))
	if err != nil {
		return fail("CATALOG_GET", err)
	}
	return c.JSON(cat)
}

func (h *CatalogHandler) patch(c *fiber.Ctx) error {
	externalID, err := middleware.ExternalID(c)
	if err != nil {
		return err
	}
	var req patchCatalogRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid json body")
	}
	patch, err := req.toPatch()
	if err != nil {
		return err
	}

	cat, err := h.catalogs.Patch(c.UserContext(), externalID, c.Params("catalogId"), patch)
	if err != nil {
		return fail("CATALOG_PATCH", err)
	}
	return c.JSON(cat)
}

func (h *CatalogHandler) delete(c *fiber.Ctx) error {
	externalID, err := middleware.ExternalID(c)
	if err != nil {
		return err
	}
	if err := h.catalogs.Delete(c.UserContext(), externalID, c.Params("catalogId")); err != nil {
		return fail("CATALOG_DELETE", err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

func (h *CatalogHandler) getCategory(c *fiber.Ctx) error {
	externalID, err := middleware.ExternalID(c)
	if err != nil {
		return err
	}
	cat, err := h.catalogs.GetCategory(c.UserContext(), externalID, c.Params("categoryId"))
	if err != nil {
		return fail("CATEGORY_GET", err)
	}
	return c.JSON(cat)
}
