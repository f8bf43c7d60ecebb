package storage

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/appointmenttech-api/internal/config"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
)

var allowedExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// rasters are re-encoded when WebP conversion is on.
var rasters = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true}

// Uploader validates multipart files and stores them under "<module>/".
type Uploader struct {
	store   Storage
	maxSize int64
	webp    bool
	maxEdge int
	log     zerolog.Logger
}

func NewUploader(store Storage, cfg config.StorageConfig, log zerolog.Logger) *Uploader {
	max := cfg.MaxUploadSize
	if max <= 0 {
		max = 5 << 20
	}
	return &Uploader{
		store:   store,
		maxSize: max,
		webp:    cfg.ConvertWebP,
		maxEdge: cfg.MaxImageEdge,
		log:     log,
	}
}

func (u *Uploader) Storage() Storage { return u.store }

func invalidFile(msg string) error {
	return httperr.E(http.StatusBadRequest, "invalid_file", msg)
}

// Save stores fh and returns the public URL of the object.
func (u *Uploader) Save(ctx context.Context, module string, fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	contentType, ok := allowedExt[ext]
	if !ok {
		return "", invalidFile("File type not allowed. Allowed: jpg, jpeg, png, gif, webp, svg.")
	}
	if fh.Size > u.maxSize {
		return "", invalidFile("File exceeds the maximum upload size.")
	}

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, u.maxSize+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > u.maxSize {
		return "", invalidFile("File exceeds the maximum upload size.")
	}

	return u.SaveBytes(ctx, module, ext, contentType, data)
}

// SaveBytes stores an already validated payload.
func (u *Uploader) SaveBytes(ctx context.Context, module, ext, contentType string, data []byte) (string, error) {
	if u.webp && rasters[ext] {
		if out, err := ToWebP(data, u.maxEdge); err == nil {
			data, ext, contentType = out, ".webp", "image/webp"
		} else {
			u.log.Warn().Err(err).Str("module", module).Msg("webp conversion failed, storing original")
		}
	}

	key := module + "/" + uuid.NewString() + ext
	if _, err := u.store.Put(ctx, key, bytes.NewReader(data), PutOptions{
		Size:        int64(len(data)),
		ContentType: contentType,
	}); err != nil {
		return "", err
	}
	return u.store.URL(key), nil
}

// Optional saves the named form file when the request carries one.
// An empty URL means the field was absent.
func (u *Uploader) Optional(ctx context.Context, form *multipart.Form, field, module string) (string, error) {
	if form == nil {
		return "", nil
	}
	files := form.File[field]
	if len(files) == 0 {
		return "", nil
	}
	return u.Save(ctx, module, files[0])
}
