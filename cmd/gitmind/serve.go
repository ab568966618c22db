// cmd/gitmind/serve.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"gitmind-explorer/internal/api"
	"gitmind-explorer/internal/config"
	"gitmind-explorer/internal/history"
	"gitmind-explorer/internal/search"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var migrationsDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the search HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), migrationsDir)
		},
	}
	cmd.Flags().StringVar(&migrationsDir, "migrations", "migrations", "Directory holding the search history migrations")
	return cmd
}

func runServer(parent context.Context, migrationsDir string) error {
	if parent == nil {
		parent = context.Background()
	}

	// 1. Load configuration and initialize structured logger
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := newLogger(os.Stdout, cfg.LogLevel)
	logger.Info("Configuration loaded successfully", "ai_provider", cfg.AIProvider, "model", cfg.AIModel())
	if cfg.AIProvider == config.ProviderGemini && cfg.GeminiAPIKey == "" ||
		cfg.AIProvider == config.ProviderOpenAI && cfg.OpenAIAPIKey == "" {
		logger.Warn("No AI credential configured; insights will use the fallback text")
	}

	// 2. Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 3. Optional search history
	var opts []search.Option
	var recent api.RecentSearches
	if cfg.DBURL != "" {
		dbpool, err := pgxpool.New(ctx, cfg.DBURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbpool.Close()
		logger.Info("Database connection established")

		if err := runMigrations(migrationsDir, cfg.DBURL); err != nil {
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
		logger.Info("Database migrations applied successfully")

		store := history.NewStore(dbpool, logger)
		opts = append(opts, search.WithRecorder(store))
		recent = store
	} else {
		logger.Info("DB_URL not set; search history disabled")
	}

	// 4. Initialize application components
	comps, err := newComponents(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create components: %w", err)
	}
	sessions, err := api.NewSessions(cfg.SessionCapacity, func() *search.Orchestrator {
		return comps.newOrchestrator(logger, opts...)
	})
	if err != nil {
		return fmt.Errorf("failed to create session table: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(sessions, recent, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 5. Serve until a shutdown signal arrives
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received. Draining connections.")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

func runMigrations(dir, dbURL string) error {
	m, err := migrate.New("file://"+dir, dbURL)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
