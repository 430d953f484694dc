package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("DB_QUERY_TIMEOUT", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("MINIO_ENDPOINT", "")

	cfg := Load()

	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 30*time.Second, cfg.DB.QueryTimeout)
	assert.Equal(t, 30*24*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.ObjectStoreEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/wedding.db")
	t.Setenv("DB_QUERY_TIMEOUT", "5s")
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example ,")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "/tmp/wedding.db", cfg.DB.SQLitePath)
	assert.Equal(t, 5*time.Second, cfg.DB.QueryTimeout)
	assert.True(t, cfg.ObjectStore.UseSSL)
	assert.True(t, cfg.ObjectStoreEnabled())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}

func TestLoadIgnoresMalformedDuration(t *testing.T) {
	t.Setenv("DB_QUERY_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 30*time.Second, cfg.DB.QueryTimeout)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.DB.Driver = "postgres"
		cfg.DB.Host = "localhost"
		cfg.DB.Name = "wedding_db"
		cfg.DB.User = "wedding"
		cfg.DB.QueryTimeout = time.Second
		cfg.Session.Secret = "s3cret"
		cfg.Session.TTL = time.Hour
		return cfg
	}

	require.NoError(t, base().Validate())

	cfg := base()
	cfg.DB.Driver = "mysql"
	assert.ErrorContains(t, cfg.Validate(), "unsupported STORAGE_DRIVER")

	cfg = base()
	cfg.Server.GinMode = "release"
	cfg.Session.Secret = DefaultSessionSecret
	assert.ErrorContains(t, cfg.Validate(), "release mode")

	cfg = base()
	cfg.DB.QueryTimeout = 0
	cfg.Session.TTL = 0
	err := cfg.Validate()
	assert.ErrorContains(t, err, "DB_QUERY_TIMEOUT")
	assert.ErrorContains(t, err, "SESSION_TTL")
}

func TestGetDatabaseURL(t *testing.T) {
	cfg := &Config{}
	cfg.DB.User = "u"
	cfg.DB.Password = "p"
	cfg.DB.Host = "db"
	cfg.DB.Port = "5432"
	cfg.DB.Name = "wedding"
	cfg.DB.SSLMode = "disable"

	assert.Equal(t, "postgres://u:p@db:5432/wedding?sslmode=disable", cfg.GetDatabaseURL())
}
