package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSessionSecret is only acceptable outside release mode.
const DefaultSessionSecret = "change-me-wedding-session-secret"

// Config holds all configuration for the application
type Config struct {
	DB struct {
		Driver       string
		Host         string
		Port         string
		User         string
		Password     string
		Name         string
		SSLMode      string
		SQLitePath   string
		QueryTimeout time.Duration
	}

	Server struct {
		Port        string
		GinMode     string
		Environment string
		LogLevel    string
	}

	Session struct {
		Secret string
		TTL    time.Duration
	}

	CORS struct {
		AllowOrigins string
		AllowMethods string
		AllowHeaders string
	}

	ObjectStore struct {
		Endpoint      string
		AccessKey     string
		SecretKey     string
		Bucket        string
		UseSSL        bool
		PresignExpiry time.Duration
	}
}

// Load loads configuration from environment variables
func Load() *Config {
	_ = godotenv.Load()

	config := &Config{}

	config.DB.Driver = getEnv("STORAGE_DRIVER", "postgres")
	config.DB.Host = getEnv("DB_HOST", "localhost")
	config.DB.Port = getEnv("DB_PORT", "5432")
	config.DB.User = getEnv("DB_USER", "wedding")
	config.DB.Password = getEnv("DB_PASSWORD", "wedding_password")
	config.DB.Name = getEnv("DB_NAME", "wedding_db")
	config.DB.SSLMode = getEnv("DB_SSLMODE", "disable")
	config.DB.SQLitePath = getEnv("SQLITE_PATH", "wedding.db")
	config.DB.QueryTimeout = getEnvAsDuration("DB_QUERY_TIMEOUT", 30*time.Second)

	config.Server.Port = getEnv("PORT", "8080")
	config.Server.GinMode = getEnv("GIN_MODE", "debug")
	config.Server.Environment = getEnv("APP_ENV", "development")
	config.Server.LogLevel = getEnv("LOG_LEVEL", "info")

	config.Session.Secret = getEnv("SESSION_SECRET", DefaultSessionSecret)
	config.Session.TTL = getEnvAsDuration("SESSION_TTL", 30*24*time.Hour)

	config.CORS.AllowOrigins = getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")
	config.CORS.AllowMethods = getEnv("CORS_ALLOW_METHODS", "GET,POST,PUT,DELETE,OPTIONS")
	config.CORS.AllowHeaders = getEnv("CORS_ALLOW_HEADERS", "Origin,Content-Length,Content-Type,Authorization,X-Auth-Password")

	config.ObjectStore.Endpoint = getEnv("MINIO_ENDPOINT", "")
	config.ObjectStore.AccessKey = getEnv("MINIO_ACCESS_KEY", "")
	config.ObjectStore.SecretKey = getEnv("MINIO_SECRET_KEY", "")
	config.ObjectStore.Bucket = getEnv("MINIO_BUCKET", "wedding-exports")
	config.ObjectStore.UseSSL = getEnvAsBool("MINIO_USE_SSL", false)
	config.ObjectStore.PresignExpiry = getEnvAsDuration("MINIO_PRESIGN_EXPIRY", 15*time.Minute)

	return config
}

// Validate reports configuration that the server cannot run with
func (c *Config) Validate() error {
	var errs []error

	switch c.DB.Driver {
	case "postgres":
		if c.DB.Host == "" || c.DB.Name == "" || c.DB.User == "" {
			errs = append(errs, errors.New("postgres requires DB_HOST, DB_NAME and DB_USER"))
		}
	case "sqlite":
		if c.DB.SQLitePath == "" {
			errs = append(errs, errors.New("sqlite requires SQLITE_PATH"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported STORAGE_DRIVER %q", c.DB.Driver))
	}

	if c.DB.QueryTimeout <= 0 {
		errs = append(errs, errors.New("DB_QUERY_TIMEOUT must be positive"))
	}

	if c.Session.Secret == "" {
		errs = append(errs, errors.New("SESSION_SECRET cannot be empty"))
	} else if c.IsRelease() && c.Session.Secret == DefaultSessionSecret {
		errs = append(errs, errors.New("SESSION_SECRET must be set in release mode"))
	}

	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}

	return errors.Join(errs...)
}

// IsRelease reports whether gin runs in release mode
func (c *Config) IsRelease() bool {
	return c.Server.GinMode == "release" || c.Server.Environment == "production"
}

// ObjectStoreEnabled reports whether RSVP archives can be uploaded
func (c *Config) ObjectStoreEnabled() bool {
	return c.ObjectStore.Endpoint != "" && c.ObjectStore.Bucket != ""
}

// AllowedOrigins splits the CORS origin list
func (c *Config) AllowedOrigins() []string {
	return splitList(c.CORS.AllowOrigins)
}

// AllowedMethods splits the CORS method list
func (c *Config) AllowedMethods() []string {
	return splitList(c.CORS.AllowMethods)
}

// AllowedHeaders splits the CORS header list
func (c *Config) AllowedHeaders() []string {
	return splitList(c.CORS.AllowHeaders)
}

// GetDatabaseURL returns the database connection URL
func (c *Config) GetDatabaseURL() string {
	return "postgres://" + c.DB.User + ":" + c.DB.Password + "@" + c.DB.Host + ":" + c.DB.Port + "/" + c.DB.Name + "?sslmode=" + c.DB.SSLMode
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
