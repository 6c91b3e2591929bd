package main

import (
	"context"
	"database/sql"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/spf13/cobra"

	"github.com/wichananm65/merchant-backoffice/internal/infrastructure/config"
	"github.com/wichananm65/merchant-backoffice/internal/infrastructure/database"
	"github.com/wichananm65/merchant-backoffice/internal/infrastructure/database/postgres"
	"github.com/wichananm65/merchant-backoffice/internal/interface/http/middleware"
	"github.com/wichananm65/merchant-backoffice/internal/interface/http/router"
	"github.com/wichananm65/merchant-backoffice/internal/pkg/logger"
	"github.com/wichananm65/merchant-backoffice/internal/usecase"
)

func newServeCmd() *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.ValidateServe(); err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx := context.Background()
			db, err := database.Open(ctx, cfg.DatabaseURL, cfg.MaxOpenConns)
			if err != nil {
				return err
			}
			if !skipMigrate {
				if err := database.Migrate(ctx, db); err != nil {
					db.Close()
					return err
				}
			}

			os.Exit(serve(cfg, db, log))
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not create the schema on startup")
	return cmd
}

// serve blocks until a shutdown signal, or until the listener fails, and
// returns the process exit code.
func serve(cfg config.Config, db *sql.DB, log *logger.Logger) int {
	clients := usecase.NewClientService(postgres.NewClientRepository(db))
	owner := usecase.NewOwnershipResolver(postgres.NewOwnershipRepository(db))

	app := router.New(router.Deps{
		Clients:      clients,
		Catalogs:     usecase.NewCatalogService(postgres.NewCatalogRepository(db), clients, owner),
		Products:     usecase.NewProductService(postgres.NewProductRepository(db), clients, owner),
		Contexts:     usecase.NewProductContextService(postgres.NewProductContextRepository(db), owner),
		Queries:      usecase.NewChatQueryService(postgres.NewChatQueryRepository(db), clients),
		Auth:         middleware.Identity(cfg.JWTSecret),
		Logger:       log,
		AllowOrigins: cfg.AllowOrigins,
	})

	listenErr := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", cfg.Addr)
		listenErr <- app.Listen(cfg.Addr)
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http": func(ctx context.Context) error {
				if err := app.ShutdownWithContext(ctx); err != nil {
					db.Close()
					return err
				}
				return db.Close()
			},
		},
	)

	select {
	case err := <-listenErr:
		if err == nil {
			exitCode := <-wait
			log.Info("shutdown complete", "exitCode", exitCode)
			log.Sync()
			return exitCode
		}
		log.Error("server failed to start", "addr", cfg.Addr, "error", err)
		db.Close()
		log.Sync()
		return 1
	case exitCode := <-wait:
		log.Info("shutdown complete", "exitCode", exitCode)
		log.Sync()
		return exitCode
	}
}
