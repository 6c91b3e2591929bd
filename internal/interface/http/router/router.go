package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/wichananm65/merchant-backoffice/internal/interface/http/handler"
	"github.com/wichananm65/merchant-backoffice/internal/interface/http/middleware"
	"github.com/wichananm65/merchant-backoffice/internal/interface/presenter"
	"github.com/wichananm65/merchant-backoffice/internal/pkg/logger"
	"github.com/wichananm65/merchant-backoffice/internal/usecase"
)

// Deps is everything the HTTP layer needs. Auth must put a *jwt.Token under
// middleware.TokenKey; production uses middleware.Identity.
type Deps struct {
	Clients      usecase.ClientUsecase
	Catalogs     usecase.CatalogUsecase
	Products     usecase.ProductUsecase
	Contexts     usecase.ProductContextUsecase
	Queries      usecase.ChatQueryUsecase
	Auth         fiber.Handler
	Logger       *logger.Logger
	AllowOrigins string
}

// New builds the Fiber application with every route mounted.
func New(d Deps) *fiber.App {
	log := d.Logger
	if log == nil {
		log = logger.Nop()
	}
	origins := d.AllowOrigins
	if origins == "" {
		origins = "*"
	}

	app := fiber.New(fiber.Config{
		AppName:               "backoffice",
		DisableStartupMessage: true,
		Immutable:             true,
		ErrorHandler:          handler.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	if d.Auth != nil {
		api.Use(d.Auth)
	}
	handler.NewClientHandler(d.Clients).RegisterRoutes(api)
	handler.NewCatalogHandler(d.Catalogs).RegisterRoutes(api, middleware.EnsureClient(d.Clients))
	handler.NewProductHandler(d.Products, d.Contexts).RegisterRoutes(api)
	handler.NewChatQueryHandler(d.Queries, presenter.NewChatQueryPresenter()).RegisterRoutes(api)

	return app
}
