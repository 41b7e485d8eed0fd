package media

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Asset identifies an uploaded object in the external media store.
type Asset struct {
	URL          string `json:"url"`
	AssetID      string `json:"asset_id"`
	ResourceType string `json:"resource_type"` // "image" or "video"
}

// Store is the media-storage collaborator: uploads return a URL plus an
// asset id, deletes are used as compensating actions when a paired
// database write fails.
type Store interface {
	Upload(ctx context.Context, file io.Reader, folder string) (*Asset, error)
	Delete(ctx context.Context, assetID, resourceType string) error
	// DeleteBestEffort compensates for a failed paired write; its own
	// failure is logged, never surfaced or retried synchronously.
	DeleteBestEffort(ctx context.Context, assetID, resourceType string)
}

// CloudinaryStore implements Store on Cloudinary.
type CloudinaryStore struct {
	client *cloudinary.Cloudinary
	logger *zap.Logger
}

func NewCloudinaryStore(cloudinaryURL string, logger *zap.Logger) (*CloudinaryStore, error) {
	if cloudinaryURL == "" {
		return nil, fmt.Errorf("CLOUDINARY_URL not set")
	}
	client, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryStore{client: client, logger: logger}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, file io.Reader, folder string) (*Asset, error) {
	publicID := uuid.NewString()
	resp, err := s.client.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:     publicID,
		Folder:       folder,
		ResourceType: "auto",
	})
	if err != nil {
		return nil, fmt.Errorf("media upload failed: %w", err)
	}
	return &Asset{
		URL:          resp.SecureURL,
		AssetID:      resp.PublicID,
		ResourceType: resp.ResourceType,
	}, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, assetID, resourceType string) error {
	if resourceType == "" {
		resourceType = "image"
	}
	_, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     assetID,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("media delete failed: %w", err)
	}
	return nil
}

func (s *CloudinaryStore) DeleteBestEffort(ctx context.Context, assetID, resourceType string) {
	if assetID == "" {
		return
	}
	if err := s.Delete(ctx, assetID, resourceType); err != nil {
		s.logger.Warn("compensating media delete failed",
			zap.String("asset_id", assetID),
			zap.Error(err))
	}
}
