package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BruksfildServices01/appointmenttech-api/internal/config"
)

var ErrInvalidKey = errors.New("invalid object key")

type PutOptions struct {
	Size        int64
	ContentType string
}

type Object struct {
	Key         string
	Size        int64
	ContentType string
	ETag        string
	UpdatedAt   time.Time
}

// Storage is the object store behind uploaded media. Keys are
// "<module>/<name>" and never contain "..".
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutOptions) (Object, error)
	Get(ctx context.Context, key string) (io.ReadCloser, Object, error)
	Delete(ctx context.Context, key string) error
	// URL is the stable address stored on entities.
	URL(key string) string
	// PresignGet returns a time-limited download address.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// New builds the configured driver.
func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case "local", "":
		return NewLocal(cfg.LocalDir, cfg.PublicBaseURL)
	case "s3":
		return NewS3(cfg)
	case "minio":
		return NewMinIO(cfg)
	}
	return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.Driver)
}

func cleanKey(key string) (string, error) {
	key = strings.TrimLeft(strings.ReplaceAll(key, "\\", "/"), "/")
	if key == "" || strings.Contains(key, "..") {
		return "", ErrInvalidKey
	}
	return key, nil
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
