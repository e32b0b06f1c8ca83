package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/nutriplan/backend/internal/service"
)

type stubPresigner struct {
	key         string
	contentType string
	err         error
}

func (s *stubPresigner) PresignPut(_ context.Context, key, contentType string, _ time.Duration) (string, error) {
	s.key, s.contentType = key, contentType
	if s.err != nil {
		return "", s.err
	}
	return "https://bucket.example/" + key + "?signature=abc", nil
}

func TestAvatarService_CreateUploadURL(t *testing.T) {
	presigner := &stubPresigner{}
	svc := service.NewAvatarService(presigner)
	userID := uuid.New()

	upload, err := svc.CreateUploadURL(context.Background(), userID, "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(upload.ObjectKey, "avatars/"+userID.String()+"/"))
	assert.True(t, strings.HasSuffix(upload.ObjectKey, ".png"))
	assert.Equal(t, presigner.key, upload.ObjectKey)
	assert.Equal(t, "image/png", presigner.contentType)
	assert.Contains(t, upload.UploadURL, upload.ObjectKey)
	assert.True(t, upload.ExpiresAt.After(time.Now()))
}

func TestAvatarService_Errors(t *testing.T) {
	_, err := service.NewAvatarService(&stubPresigner{}).CreateUploadURL(context.Background(), uuid.New(), "image/gif")
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = service.NewAvatarService(nil).CreateUploadURL(context.Background(), uuid.New(), "image/png")
	assert.ErrorIs(t, err, service.ErrStorageUnavailable)

	boom := errors.New("credentials expired")
	_, err = service.NewAvatarService(&stubPresigner{err: boom}).CreateUploadURL(context.Background(), uuid.New(), "image/jpeg")
	assert.ErrorIs(t, err, boom)
}
