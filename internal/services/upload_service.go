package services

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	nhatro_errors "nhatro-chat/pkg/errors"

	"github.com/google/uuid"
)

// ImageStore is the slice of object storage the chat needs.
type ImageStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type UploadService struct {
	store ImageStore
}

func NewUploadService(store ImageStore) *UploadService {
	return &UploadService{store: store}
}

// UploadMessageImage stores an attachment under a fresh key and returns the
// public URL together with the key kept for later cleanup.
func (s *UploadService) UploadMessageImage(ctx context.Context, filename, contentType string, body io.Reader) (string, string, error) {
	if s == nil || s.store == nil {
		return "", "", nhatro_errors.ErrUpstreamUnavailable
	}
	if !allowedImageTypes[strings.ToLower(contentType)] {
		return "", "", nhatro_errors.ErrInvalidInput
	}

	ext := strings.ToLower(filepath.Ext(filename))
	key := "chat/" + uuid.New().String() + ext
	url, err := s.store.Upload(ctx, key, contentType, body)
	if err != nil {
		return "", "", err
	}
	return url, key, nil
}

func (s *UploadService) DeleteImage(ctx context.Context, key string) error {
	if s == nil || s.store == nil || key == "" {
		return nil
	}
	return s.store.Delete(ctx, key)
}
