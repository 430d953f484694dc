package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gravadigital/wedding-api/internal/config"
	"github.com/gravadigital/wedding-api/internal/logger"
	"github.com/gravadigital/wedding-api/internal/server"
	"github.com/gravadigital/wedding-api/internal/services"
	"github.com/gravadigital/wedding-api/internal/storage"
	"github.com/gravadigital/wedding-api/internal/storage/objectstore"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.Server.LogLevel)
	log := logger.Get()

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}

	factory, err := storage.FromConfig(cfg)
	if err != nil {
		log.Fatal("Invalid storage driver", "error", err)
	}

	repos, err := factory.CreateContainer(cfg)
	if err != nil {
		log.Fatal("Failed to initialize storage", "error", err)
	}

	var archive objectstore.Store
	if cfg.ObjectStoreEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		store, err := objectstore.NewMinioStore(ctx, cfg)
		cancel()
		if err != nil {
			log.Warn("Object store unavailable, RSVP archives disabled", "error", err)
		} else {
			archive = store
		}
	}

	sessions := services.NewSessionManager(cfg.Session.Secret, cfg.Session.TTL)
	srv := server.New(cfg, repos, services.New(repos, sessions, archive))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("Server stopped", "error", err)
		}
	case sig := <-quit:
		log.Info("Shutdown signal received", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Stop(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		log.Error("Server shutdown failed", "error", err)
	}
	if err := repos.CloseWithTimeout(5 * time.Second); err != nil {
		log.Error("Failed to close storage", "error", err)
	}

	log.Info("Server exited")
}
