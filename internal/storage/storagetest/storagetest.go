// Package storagetest opens throwaway SQLite databases for tests.
package storagetest

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gravadigital/wedding-api/internal/storage/migrations"
	"github.com/gravadigital/wedding-api/internal/storage/postgres"
)

// QueryTimeout bounds every repository call made in tests
const QueryTimeout = 5 * time.Second

// Open returns an empty in-memory database private to the test
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := postgres.ConnectSQLite(dsn, false)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = postgres.Close(db)
	})
	return db
}

// NewDB returns an in-memory database with all migrations applied
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db := Open(t)
	require.NoError(t, migrations.RunMigrations(db))
	return db
}

// NewContainer returns a repository container over a fresh migrated database
func NewContainer(t testing.TB) *postgres.Container {
	t.Helper()
	return postgres.NewContainerWithDB(NewDB(t), QueryTimeout)
}
