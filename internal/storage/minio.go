package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/BruksfildServices01/appointmenttech-api/internal/config"
)

// MinIO talks to any S3-compatible server through minio-go.
type MinIO struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinIO checks connectivity and creates the bucket when missing.
func NewMinIO(cfg config.StorageConfig) (*MinIO, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &MinIO{client: cli, bucket: cfg.Bucket, baseURL: cfg.PublicBaseURL}, nil
}

var _ Storage = (*MinIO)(nil)

func (m *MinIO) Put(ctx context.Context, key string, r io.Reader, opt PutOptions) (Object, error) {
	key, err := cleanKey(key)
	if err != nil {
		return Object{}, err
	}

	info, err := m.client.PutObject(ctx, m.bucket, key, r, opt.Size, minio.PutObjectOptions{
		ContentType: opt.ContentType,
	})
	if err != nil {
		return Object{}, err
	}

	return Object{
		Key:         key,
		Size:        info.Size,
		ContentType: opt.ContentType,
		ETag:        info.ETag,
		UpdatedAt:   time.Now(),
	}, nil
}

func (m *MinIO) Get(ctx context.Context, key string) (io.ReadCloser, Object, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, Object{}, err
	}

	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, Object{}, err
	}
	st, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, Object{}, err
	}

	return obj, Object{
		Key:         key,
		Size:        st.Size,
		ContentType: st.ContentType,
		ETag:        st.ETag,
		UpdatedAt:   st.LastModified,
	}, nil
}

func (m *MinIO) Delete(ctx context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	return m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
}

func (m *MinIO) URL(key string) string {
	return joinURL(m.baseURL, key)
}

func (m *MinIO) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
