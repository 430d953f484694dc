//go:build integration
// +build integration

package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/wedding-api/internal/config"
	"github.com/gravadigital/wedding-api/internal/domain/common"
	"github.com/gravadigital/wedding-api/internal/domain/guest"
	"github.com/gravadigital/wedding-api/internal/services"
	"github.com/gravadigital/wedding-api/internal/storage/migrations"
	"github.com/gravadigital/wedding-api/internal/storage/postgres"
)

// Integration tests that require a real PostgreSQL database
// Run with: go test -tags=integration

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.DB.Driver = "postgres"
	if testDB := os.Getenv("TEST_DB_NAME"); testDB != "" {
		cfg.DB.Name = testDB
	}
	return cfg
}

func TestDatabaseConnection(t *testing.T) {
	db, err := postgres.Connect(testConfig())
	require.NoError(t, err, "Should be able to connect to test database")
	defer postgres.Close(db)

	assert.NoError(t, postgres.HealthCheck(db), "Should be able to ping the database")
}

func TestDatabaseMigration(t *testing.T) {
	db, err := postgres.Connect(testConfig())
	require.NoError(t, err, "Should be able to connect to test database")
	defer postgres.Close(db)

	require.NoError(t, postgres.AutoMigrate(db), "Should be able to run migrations")

	applied, err := migrations.AppliedMigrations(db)
	require.NoError(t, err)
	assert.Contains(t, applied, "001")
	assert.Contains(t, applied, "004")
}

func TestRSVPUniqueOnPostgres(t *testing.T) {
	cfg := testConfig()
	container, err := postgres.NewContainer(cfg)
	require.NoError(t, err)
	defer container.Close()

	db := container.DB()
	require.NoError(t, db.Exec("TRUNCATE rsvp_submissions, guest_passwords").Error)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	svc := services.New(container, services.NewSessionManager("integration", time.Hour), nil)
	require.NoError(t, container.Guests().Create(ctx, guest.NewCredential("maria2026", "Maria", guest.GroupFamily)))

	req := services.SubmitRequest{
		Password: "maria2026", Name: "Maria", Email: "maria@example.com",
		Phone: "1", Attendance: "yes", Guests: "2", Kids: "1",
	}

	results := make(chan error, 4)
	for range 4 {
		go func() {
			_, err := svc.RSVP.Submit(ctx, req)
			results <- err
		}()
	}

	var ok, conflicts int
	for range 4 {
		err := <-results
		switch {
		case err == nil:
			ok++
		case common.KindOf(err) == common.KindConflict:
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, ok)
	assert.Equal(t, 3, conflicts)
}
