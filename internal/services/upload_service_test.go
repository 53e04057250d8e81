package services_test

import (
	"context"
	"strings"
	"testing"

	"nhatro-chat/internal/services"
	nhatro_errors "nhatro-chat/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUploadMessageImageGeneratesFreshKey(t *testing.T) {
	store := new(MockImageStore)
	store.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "chat/") && strings.HasSuffix(key, ".jpg")
	}), "image/jpeg", mock.Anything).Return("https://cdn.example.com/chat/x.jpg", nil)

	svc := services.NewUploadService(store)

	url, key, err := svc.UploadMessageImage(context.Background(), "photo.JPG", "image/jpeg", strings.NewReader("data"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/chat/x.jpg", url)
	assert.True(t, strings.HasPrefix(key, "chat/"))
}

func TestUploadMessageImageRejectsNonImage(t *testing.T) {
	svc := services.NewUploadService(new(MockImageStore))

	_, _, err := svc.UploadMessageImage(context.Background(), "cv.pdf", "application/pdf", strings.NewReader("data"))
	assert.ErrorIs(t, err, nhatro_errors.ErrInvalidInput)
}

func TestDeleteImageIgnoresEmptyKey(t *testing.T) {
	store := new(MockImageStore)
	svc := services.NewUploadService(store)

	require.NoError(t, svc.DeleteImage(context.Background(), ""))
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
