package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gravadigital/wedding-api/internal/config"
	"github.com/gravadigital/wedding-api/internal/logger"
	"github.com/gravadigital/wedding-api/internal/seed"
	"github.com/gravadigital/wedding-api/internal/storage"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.Server.LogLevel)
	log := logger.Command("seed")

	file := flag.String("file", "seeds/guests.yaml", "YAML file with the guest credentials")
	timeout := flag.Duration("timeout", time.Minute, "Overall timeout")
	flag.Parse()

	credentials, err := seed.LoadFile(*file)
	if err != nil {
		log.Error("Failed to load seed file", "file", *file, "error", err)
		os.Exit(1)
	}

	factory, err := storage.FromConfig(cfg)
	if err != nil {
		log.Error("Invalid storage driver", "error", err)
		os.Exit(1)
	}
	repos, err := factory.CreateContainer(cfg)
	if err != nil {
		log.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer repos.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	inserted, err := seed.Apply(ctx, repos.Guests(), credentials)
	if err != nil {
		log.Error("Seeding failed", "error", err)
		os.Exit(1)
	}

	for _, c := range credentials {
		fmt.Printf("  → %s (%s): %s\n", c.DisplayName(), c.Group, c.Password)
	}
	fmt.Printf("\n✓ Seeded %d guest passwords (%d already present)\n", inserted, int64(len(credentials))-inserted)
}
