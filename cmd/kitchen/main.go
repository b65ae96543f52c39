// cmd/kitchen/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/tableside/internal/config"
	"github.com/your-org/tableside/internal/domain/kitchen"
	"github.com/your-org/tableside/internal/interfaces/http"
	"github.com/your-org/tableside/internal/pkg/api"
	"github.com/your-org/tableside/internal/pkg/auth"
	"github.com/your-org/tableside/internal/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.New(cfg)
	appLogger.Infof("Starting %s kitchen dashboard v%s in %s mode",
		cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	store, closeStore, err := openStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to open local storage: %v", err)
	}
	defer closeStore()

	tokens := auth.NewTokenHolder(store, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Seed the credential from the environment when provided (first login).
	if seed := os.Getenv("KITCHEN_ADMIN_TOKEN"); seed != "" {
		if err := tokens.SetToken(ctx, seed); err != nil {
			log.Fatalf("Failed to store kitchen credential: %v", err)
		}
	}

	if !tokens.HasToken(ctx) {
		log.Fatal("No kitchen credential stored; set KITCHEN_ADMIN_TOKEN to log in")
	}

	backend := api.NewClient(cfg, appLogger)

	dashboard := kitchen.NewDashboard(backend, tokens, cfg.Kitchen.PollInterval, func() {
		appLogger.Warn("Kitchen credential rejected; stopping and returning to login")
		cancel()
	}, appLogger)

	go dashboard.Run(ctx)

	server := http.NewServer(cfg, dashboard, appLogger)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start dashboard server: %v", err)
		}
	}()

	// Wait for interrupt signal or credential rejection
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-quit:
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		appLogger.WithError(err).Warn("Failed to shutdown dashboard server gracefully")
	}

	appLogger.Info("Kitchen dashboard shutdown completed")
}
