package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const cloudinaryRaw = "raw"

// CloudinaryStore keeps uploads as raw Cloudinary assets.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

var _ Store = (*CloudinaryStore)(nil)

// NewCloudinaryStore creates a Cloudinary-backed store.
func NewCloudinaryStore(cloudName, apiKey, apiSecret string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

// Save uploads r with loc.Key() as the public id. Raw public ids keep their extension.
func (s *CloudinaryStore) Save(ctx context.Context, loc Location, r io.ReadSeeker, size int64, contentType string) error {
	_, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:     loc.Key(),
		ResourceType: cloudinaryRaw,
		Overwrite:    api.Bool(false),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	return nil
}

// Remove destroys the asset at loc.Key().
func (s *CloudinaryStore) Remove(ctx context.Context, loc Location) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     loc.Key(),
		ResourceType: cloudinaryRaw,
	})
	if err != nil {
		return fmt.Errorf("failed to remove from Cloudinary: %w", err)
	}
	return nil
}
