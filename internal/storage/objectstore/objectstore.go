// Package objectstore uploads generated exports to an S3 compatible bucket.
package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/charmbracelet/log"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/gravadigital/wedding-api/internal/config"
	"github.com/gravadigital/wedding-api/internal/logger"
)

// ErrDisabled is returned when no endpoint is configured
var ErrDisabled = errors.New("object store is not configured")

// Store is the subset of bucket operations the archive needs
type Store interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	PresignGet(ctx context.Context, key string) (string, error)
}

// MinioStore implements Store on top of minio-go
type MinioStore struct {
	client *minio.Client
	bucket string
	expiry time.Duration
	log    *log.Logger
}

// NewMinioStore connects to the configured endpoint and makes sure the bucket exists
func NewMinioStore(ctx context.Context, cfg *config.Config) (*MinioStore, error) {
	if cfg == nil || !cfg.ObjectStoreEnabled() {
		return nil, ErrDisabled
	}

	client, err := minio.New(cfg.ObjectStore.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.ObjectStore.AccessKey, cfg.ObjectStore.SecretKey, ""),
		Secure: cfg.ObjectStore.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	store := &MinioStore{
		client: client,
		bucket: cfg.ObjectStore.Bucket,
		expiry: cfg.ObjectStore.PresignExpiry,
		log:    logger.WithContext("component", "objectstore", "bucket", cfg.ObjectStore.Bucket),
	}

	if err := store.ensureBucket(ctx); err != nil {
		return nil, err
	}

	store.log.Info("Object store ready", "endpoint", cfg.ObjectStore.Endpoint)
	return store, nil
}

func (s *MinioStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}

	s.log.Info("Creating bucket")
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Upload stores data under key
func (s *MinioStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		s.log.Error("Upload failed", "key", key, "error", err)
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	s.log.Debug("Object uploaded", "key", key, "size", info.Size, "etag", info.ETag)
	return nil
}

// PresignGet returns a time-limited download URL for key
func (s *MinioStore) PresignGet(ctx context.Context, key string) (string, error) {
	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", path.Base(key)))

	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.expiry, params)
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", key, err)
	}
	return u.String(), nil
}

// ArchiveKey names an RSVP export taken at t
func ArchiveKey(t time.Time) string {
	return "rsvps/rsvps-" + t.UTC().Format("20060102T150405Z") + ".csv"
}
