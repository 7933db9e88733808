package main

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"beauty-assistant/internal/config"
	"beauty-assistant/internal/database"
	"beauty-assistant/internal/handlers"
	"beauty-assistant/internal/repository"
	"beauty-assistant/internal/router"
	"beauty-assistant/internal/services"
	"beauty-assistant/migrations"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	logger.Info("🚀 Starting beauty assistant gateway...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	logger.Info("✓ Environment variables loaded", zap.String("env", cfg.Env))

	// ──── Step 2: Upstream Completion API ────
	completions := services.NewCompletionService(
		cfg.UpstreamURL,
		cfg.OpenAIAPIKey,
		cfg.UpstreamModel,
		cfg.MaxCompletionTokens,
		cfg.UpstreamTimeout,
	)
	if completions.HasCredential() {
		logger.Info("✓ Upstream credential configured", zap.String("model", cfg.UpstreamModel))
	} else {
		logger.Warn("✗ OPENAI_API_KEY is not set; completion requests will fail until it is")
	}

	// ──── Step 3: Product Catalog (optional) ────
	var catalog services.CatalogSource
	switch {
	case cfg.DatabaseURL != "":
		pool, err := database.NewPostgresPool(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("✗ PostgreSQL connection failed", zap.Error(err))
		}
		defer pool.Close()
		logger.Info("✓ PostgreSQL connected")

		var schema fs.FS = migrations.FS
		if cfg.MigrationsDir != "" {
			schema = os.DirFS(cfg.MigrationsDir)
		}
		applied, err := database.RunMigrations(context.Background(), pool, schema, logger)
		if err != nil {
			logger.Fatal("✗ Database migration failed", zap.Error(err))
		}
		logger.Info("✓ Database migrations applied", zap.Strings("files", applied))

		repo := repository.NewProductRepo(pool)
		if cfg.CatalogPath != "" {
			if err := seedCatalog(repo, cfg.CatalogPath); err != nil {
				logger.Fatal("✗ Catalog seed failed", zap.Error(err))
			}
			logger.Info("✓ Catalog seeded", zap.String("path", cfg.CatalogPath))
		}
		catalog = repo
	case cfg.CatalogPath != "":
		catalog = services.NewFileCatalog(cfg.CatalogPath)
		logger.Info("✓ Serving catalog file", zap.String("path", cfg.CatalogPath))
	default:
		logger.Info("No catalog configured; GET /products will return 404")
	}

	// ──── Step 4: Handlers and Router ────
	proxyHandler := handlers.NewProxyHandler(completions, cfg.AllowedOrigin, logger)
	catalogHandler := handlers.NewCatalogHandler(catalog)
	r := router.New(proxyHandler, catalogHandler, cfg.AllowedOrigin, cfg.LogRequests)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	logger.Info(fmt.Sprintf("✓ Gateway ready on http://localhost:%s", cfg.Port))

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal("Server error", zap.Error(err))
	}
}

// seedCatalog copies the catalog file into the products table.
func seedCatalog(repo *repository.ProductRepo, path string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	products, err := services.NewFileCatalog(path).Load(ctx)
	if err != nil {
		return err
	}
	return repo.Upsert(ctx, products)
}
