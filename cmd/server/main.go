package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ytakahashi/habit-tracker/internal/config"
	"github.com/ytakahashi/habit-tracker/internal/logging"
	"github.com/ytakahashi/habit-tracker/internal/server"
	"github.com/ytakahashi/habit-tracker/internal/services"
)

func main() {
	foundEnv := config.LoadDotEnv()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if !foundEnv {
		logger.Info("No .env file found")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to open habit store", zap.Error(err))
	}
	defer store.Close()

	e := server.New(store, logger, server.Options{
		AllowOrigins:      cfg.AllowOrigins,
		Categories:        cfg.Categories,
		EnforceCategories: cfg.EnforceCategories,
	})

	go func() {
		logger.Info("server starting",
			zap.String("addr", cfg.Addr()),
			zap.String("store", cfg.Store),
			zap.String("collection", cfg.Collection))
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.Config) (services.HabitStore, error) {
	if cfg.Store == config.StoreMemory {
		return services.NewMemoryService(), nil
	}
	fs, err := services.NewFirestoreService(ctx, cfg.ProjectID, cfg.Collection)
	if err != nil {
		return nil, err
	}
	return fs, nil
}
