package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotConfigured   = errors.New("storage_not_configured")
	ErrEmptyFile       = errors.New("empty_file")
	ErrUnsupportedType = errors.New("unsupported_file_type")
)

// Uploader stores a memory-buffered object and returns its public URL
// and object key.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename, folder string) (url string, key string, err error)
	Delete(ctx context.Context, key string) error
}

var allowedExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".webp": {}, ".gif": {},
	".svg": {}, ".mp4": {}, ".webm": {}, ".mov": {},
}

// objectKey builds `<folder>/<uuid><ext>`, rejecting extensions
// outside the image/video set.
func objectKey(filename, folder string) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", ErrUnsupportedType
	}
	folder = strings.Trim(folder, "/")
	if folder == "" {
		folder = "uploads"
	}
	return fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), ext), nil
}

// NoOpUploader is used when object storage is not configured. Uploads
// fail loudly instead of silently dropping files.
type NoOpUploader struct{}

func (u *NoOpUploader) Upload(ctx context.Context, data []byte, filename, folder string) (string, string, error) {
	return "", "", ErrNotConfigured
}

func (u *NoOpUploader) Delete(ctx context.Context, key string) error {
	return ErrNotConfigured
}
