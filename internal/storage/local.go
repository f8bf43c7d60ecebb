package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"time"
)

// Local keeps objects under a directory that the router serves statically.
type Local struct {
	dir     string
	baseURL string
}

func NewLocal(dir, baseURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: dir, baseURL: baseURL}, nil
}

var _ Storage = (*Local)(nil)

func (l *Local) Dir() string { return l.dir }

func (l *Local) path(key string) (string, string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", "", err
	}
	return key, filepath.Join(l.dir, filepath.FromSlash(key)), nil
}

func (l *Local) Put(_ context.Context, key string, r io.Reader, opt PutOptions) (Object, error) {
	key, p, err := l.path(key)
	if err != nil {
		return Object{}, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return Object{}, err
	}

	f, err := os.Create(p)
	if err != nil {
		return Object{}, err
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(p)
		return Object{}, err
	}

	return Object{Key: key, Size: n, ContentType: opt.ContentType, UpdatedAt: time.Now()}, nil
}

func (l *Local) Get(_ context.Context, key string) (io.ReadCloser, Object, error) {
	key, p, err := l.path(key)
	if err != nil {
		return nil, Object{}, err
	}

	f, err := os.Open(p)
	if err != nil {
		return nil, Object{}, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, Object{}, err
	}

	return f, Object{
		Key:         key,
		Size:        st.Size(),
		ContentType: mime.TypeByExtension(filepath.Ext(p)),
		UpdatedAt:   st.ModTime(),
	}, nil
}

func (l *Local) Delete(_ context.Context, key string) error {
	_, p, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (l *Local) URL(key string) string {
	return joinURL(l.baseURL, key)
}

// PresignGet has nothing to sign: local files are public.
func (l *Local) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return l.URL(key), nil
}
