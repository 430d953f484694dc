package postgres

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/gravadigital/wedding-api/internal/config"
	"github.com/gravadigital/wedding-api/internal/logger"
)

// RepositoryContainer groups the repositories the services depend on
type RepositoryContainer interface {
	Guests() GuestRepository
	RSVPs() RSVPRepository
	Health() error
	DB() *gorm.DB
	Close() error
	CloseWithTimeout(timeout time.Duration) error
}

// Container implements RepositoryContainer
type Container struct {
	db        *gorm.DB
	log       *log.Logger
	guestRepo GuestRepository
	rsvpRepo  RSVPRepository
}

// NewContainer connects, migrates and wires every repository
func NewContainer(cfg *config.Config) (*Container, error) {
	log := logger.Repository("container")
	log.Info("Initializing repository container...", "driver", cfg.DB.Driver)

	db, err := Connect(cfg)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		log.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	container := NewContainerWithDB(db, cfg.DB.QueryTimeout)

	if err := container.Health(); err != nil {
		log.Error("Container health check failed", "error", err)
		return nil, fmt.Errorf("container health check failed: %w", err)
	}

	log.Info("Repository container initialized successfully")
	return container, nil
}

// NewContainerWithDB creates a container with an existing database connection
func NewContainerWithDB(db *gorm.DB, queryTimeout time.Duration) *Container {
	return &Container{
		db:        db,
		log:       logger.Repository("container"),
		guestRepo: NewPostgresGuestRepository(db, queryTimeout),
		rsvpRepo:  NewPostgresRSVPRepository(db, queryTimeout),
	}
}

// Guests returns the guest credential repository
func (c *Container) Guests() GuestRepository {
	return c.guestRepo
}

// RSVPs returns the submission repository
func (c *Container) RSVPs() RSVPRepository {
	return c.rsvpRepo
}

// DB returns the underlying database connection
func (c *Container) DB() *gorm.DB {
	return c.db
}

// Health pings the database and checks both tables are queryable
func (c *Container) Health() error {
	if err := HealthCheck(c.db); err != nil {
		c.log.Error("Database health check failed", "error", err)
		return fmt.Errorf("database health check failed: %w", err)
	}

	for _, table := range []string{"guest_passwords", "rsvp_submissions"} {
		var count int64
		if err := c.db.Table(table).Count(&count).Error; err != nil {
			c.log.Error("Repository health check failed", "table", table, "error", err)
			return fmt.Errorf("table %s health check failed: %w", table, err)
		}
		c.log.Debug("Repository health check passed", "table", table, "rows", count)
	}

	return nil
}

// Close shuts down the connection pool
func (c *Container) Close() error {
	c.log.Info("Closing repository container...")

	if c.db == nil {
		c.log.Warn("Database connection is nil, nothing to close")
		return nil
	}

	if err := Close(c.db); err != nil {
		return err
	}

	c.db = nil
	c.guestRepo = nil
	c.rsvpRepo = nil
	return nil
}

// CloseWithTimeout closes the container with a timeout
func (c *Container) CloseWithTimeout(timeout time.Duration) error {
	done := make(chan error, 1)

	go func() {
		done <- c.Close()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		c.log.Error("Container close operation timed out", "timeout", timeout)
		return fmt.Errorf("container close operation timed out after %v", timeout)
	}
}
