package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gravadigital/wedding-api/internal/config"
	"github.com/gravadigital/wedding-api/internal/logger"
	"github.com/gravadigital/wedding-api/internal/storage/migrations"
	"github.com/gravadigital/wedding-api/internal/storage/postgres"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.Server.LogLevel)
	log := logger.Migration()

	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	status := flag.Bool("status", false, "List applied migrations")
	flag.Parse()

	log.Info("Starting migration process", "driver", cfg.DB.Driver, "rollback", *rollback)

	db, err := postgres.Connect(cfg)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer postgres.Close(db)

	switch {
	case *status:
		applied, err := migrations.AppliedMigrations(db)
		if err != nil {
			log.Error("Failed to read migration status", "error", err)
			os.Exit(1)
		}
		for _, m := range migrations.GetMigrations() {
			state := "pending"
			for _, id := range applied {
				if id == m.ID {
					state = "applied"
				}
			}
			fmt.Printf("%s  %-8s %s\n", m.ID, state, m.Name)
		}
		return
	case *rollback:
		log.Info("Rolling back migrations...")
		if err := migrations.RollbackMigration(db); err != nil {
			log.Error("Migration rollback failed", "error", err)
			os.Exit(1)
		}
		log.Info("Migration rollback completed successfully")
	default:
		log.Info("Running migrations...")
		if err := migrations.RunMigrations(db); err != nil {
			log.Error("Migration failed", "error", err)
			os.Exit(1)
		}
		log.Info("Migrations completed successfully")
	}

	fmt.Println("Migration process completed!")
}
