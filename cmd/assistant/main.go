package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"beauty-assistant/internal/assistant"
	"beauty-assistant/internal/config"
	"beauty-assistant/internal/database"
	"beauty-assistant/internal/models"
	"beauty-assistant/internal/repository"
	"beauty-assistant/internal/services"
	"beauty-assistant/internal/terminal"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Debug)
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		logger.Fatal("✗ Local store unavailable", zap.String("store", cfg.Store), zap.Error(err))
	}
	defer closeStore()
	logger.Debug("✓ Local store ready", zap.String("store", cfg.Store))

	products, closeCatalog, catalogErr := loadCatalog(ctx, cfg.Products)
	defer closeCatalog()
	if catalogErr != nil {
		logger.Error("error loading products", zap.String("source", cfg.Products), zap.Error(catalogErr))
	}

	systemPrompt := assistant.DefaultSystemPrompt
	if cfg.SystemPromptFile != "" {
		data, err := os.ReadFile(cfg.SystemPromptFile)
		if err != nil {
			logger.Fatal("✗ Could not read system prompt", zap.Error(err))
		}
		systemPrompt = strings.TrimSpace(string(data))
	}

	display := terminal.NewDisplay(os.Stdout)
	display.Welcome(services.Categories(products))

	ctrl := assistant.NewController(
		assistant.NewGatewayClient(cfg.GatewayURL),
		assistant.NewSelectionSet(store),
		products,
		display,
		assistant.Options{
			SystemPrompt: systemPrompt,
			HistoryLimit: cfg.HistoryLimit,
			CatalogErr:   catalogErr,
			Logger:       logger,
		},
	)
	ctrl.Start(ctx)

	prompt := terminal.NewPrompt(filepath.Join(filepath.Dir(cfg.StorePath), "history"))
	defer prompt.Close()

	var (
		parser   terminal.Parser
		requests sync.WaitGroup
	)
	for {
		line, err := prompt.ReadLine("› ")
		if err != nil {
			if !errors.Is(err, terminal.ErrClosed) {
				display.Error(err)
			}
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		input, err := parser.Parse(line)
		if err != nil {
			display.Error(err)
			continue
		}
		if input.Quit {
			break
		}
		if input.Help {
			display.Help()
			continue
		}

		switch input.Command.(type) {
		case assistant.SubmitMessage, assistant.GenerateRoutine:
			// Requests run in the background so the prompt stays usable.
			requests.Add(1)
			go func(cmd assistant.Command) {
				defer requests.Done()
				if _, err := ctrl.Dispatch(ctx, cmd); err != nil {
					display.Error(err)
				}
			}(input.Command)
		default:
			if _, err := ctrl.Dispatch(ctx, input.Command); err != nil {
				display.Error(err)
			}
		}
	}

	cancel()
	requests.Wait()
	display.Goodbye()
}

func newLogger(debug bool) *zap.Logger {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	if debug {
		zcfg = zap.NewDevelopmentConfig()
	}
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func openStore(cfg *config.ClientConfig) (assistant.LocalStore, func(), error) {
	switch cfg.Store {
	case "redis":
		client, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisLocalStore(client, "beauty-assistant:"), func() { client.Close() }, nil
	case "memory":
		return repository.NewMemoryLocalStore(), func() {}, nil
	default:
		db, err := database.NewSQLiteDB(cfg.StorePath)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewSQLiteLocalStore(db), func() { db.Close() }, nil
	}
}

// loadCatalog picks the catalog source from the shape of src: a postgres
// URL, an http(s) URL, or a file path.
func loadCatalog(ctx context.Context, src string) ([]models.Product, func(), error) {
	noop := func() {}

	switch {
	case strings.HasPrefix(src, "postgres://"), strings.HasPrefix(src, "postgresql://"):
		pool, err := database.NewPostgresPool(src)
		if err != nil {
			return nil, noop, err
		}
		products, err := repository.NewProductRepo(pool).Load(ctx)
		return products, pool.Close, err
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		products, err := services.NewHTTPCatalog(src).Load(ctx)
		return products, noop, err
	default:
		products, err := services.NewFileCatalog(src).Load(ctx)
		return products, noop, err
	}
}
