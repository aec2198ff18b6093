package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cedricworldwide/CuriosityQuest/internal/api"
	"github.com/cedricworldwide/CuriosityQuest/internal/auth"
	"github.com/cedricworldwide/CuriosityQuest/internal/config"
	"github.com/cedricworldwide/CuriosityQuest/internal/prompts"
	"github.com/cedricworldwide/CuriosityQuest/internal/rewards"
	"github.com/cedricworldwide/CuriosityQuest/internal/store"
	"github.com/cedricworldwide/CuriosityQuest/internal/topics"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		slog.Warn("JWT_SECRET not set, using insecure default; tokens offer no confidentiality")
	}

	slog.Info("starting curiosity-quest",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"store", cfg.Store.Driver,
	)

	// Verify the topic catalog is readable before serving anything.
	// A broken catalog should abort startup, not surface per request.
	catalog := topics.NewCatalog(cfg.Topics.Path)
	if _, err := catalog.List(); err != nil {
		slog.Error("failed to load topic catalog", "path", cfg.Topics.Path, "error", err)
		os.Exit(1)
	}

	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	users, err := buildUserStore(initCtx, cfg)
	if err != nil {
		slog.Error("failed to create user store", "error", err)
		os.Exit(1)
	}

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	engine := rewards.NewEngine(users, cfg.Rewards.ThresholdPoints, cfg.Rewards.ThresholdBadge)
	generator := prompts.NewGenerator(catalog, nil)

	// Setup HTTP server
	server := api.NewServer(cfg.Server, catalog, users, tokens, engine, generator)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	if err := users.Close(); err != nil {
		slog.Error("user store close error", "error", err)
	}

	slog.Info("curiosity-quest stopped")
}

// buildUserStore constructs the configured user store backend
func buildUserStore(ctx context.Context, cfg *config.Config) (store.Users, error) {
	switch cfg.Store.Driver {
	case "postgres":
		slog.Info("running database migrations", "dir", cfg.Store.MigrationsDir)
		if err := store.MigrateFromDSN(ctx, cfg.Store.DatabaseDSN, cfg.Store.MigrationsDir); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return store.NewPostgresStore(ctx, store.PostgresConfig{DSN: cfg.Store.DatabaseDSN})
	case "redis":
		return store.NewRedisStore(ctx, cfg.Store.RedisAddress, cfg.Store.RedisPassword, cfg.Store.RedisDB)
	default:
		slog.Warn("using in-memory user store; accounts and rewards vanish on restart")
		return store.NewMemoryStore(), nil
	}
}
