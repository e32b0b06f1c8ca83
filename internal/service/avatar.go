package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// AvatarUploadExpiry is how long an upload URL stays valid
const AvatarUploadExpiry = 15 * time.Minute

var avatarExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// Presigner issues presigned object storage URLs. *config.S3Config is one.
type Presigner interface {
	PresignPut(ctx context.Context, objectKey, contentType string, expiration time.Duration) (string, error)
}

// AvatarUpload tells the client where to PUT its avatar
type AvatarUpload struct {
	UploadURL string    `json:"upload_url"`
	ObjectKey string    `json:"object_key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AvatarService hands out presigned upload URLs for profile pictures. The
// upload itself goes straight to the bucket.
type AvatarService struct {
	storage Presigner
}

func NewAvatarService(storage Presigner) *AvatarService {
	return &AvatarService{storage: storage}
}

// CreateUploadURL returns a presigned PUT URL for a new avatar of userID
func (s *AvatarService) CreateUploadURL(ctx context.Context, userID uuid.UUID, contentType string) (*AvatarUpload, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}
	ext, ok := avatarExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported content type %q", ErrInvalidInput, contentType)
	}

	key := fmt.Sprintf("avatars/%s/%s.%s", userID, uuid.New(), ext)
	url, err := s.storage.PresignPut(ctx, key, contentType, AvatarUploadExpiry)
	if err != nil {
		log.Printf("[AvatarService] failed to presign upload for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to presign avatar upload: %w", err)
	}

	return &AvatarUpload{
		UploadURL: url,
		ObjectKey: key,
		ExpiresAt: time.Now().Add(AvatarUploadExpiry),
	}, nil
}
