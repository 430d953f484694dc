package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/wedding-api/internal/config"
)

func TestValidateStorageType(t *testing.T) {
	st, err := ValidateStorageType("sqlite")
	require.NoError(t, err)
	assert.Equal(t, StorageTypeSQLite, st)

	_, err = ValidateStorageType("mongo")
	assert.ErrorContains(t, err, "unsupported storage type")
}

func TestFactoryCreatesMigratedSQLiteContainer(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Driver = "sqlite"
	cfg.DB.SQLitePath = filepath.Join(t.TempDir(), "wedding.db")
	cfg.DB.QueryTimeout = 5 * time.Second

	factory, err := FromConfig(cfg)
	require.NoError(t, err)

	container, err := factory.CreateContainer(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })

	assert.NoError(t, container.Health())
	assert.NotNil(t, container.Guests())
	assert.NotNil(t, container.RSVPs())
}
