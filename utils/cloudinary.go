package utils

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// CloudinaryStore keeps documents as raw assets in a Cloudinary folder. The
// reference is the asset's public id.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &CloudinaryStore{cld: cld, folder: folder}, nil
}

func (s *CloudinaryStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	publicID := uuid.NewString() + strings.ToLower(filepath.Ext(filename))

	resp, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:     publicID,
		Folder:       s.folder,
		ResourceType: "raw",
	})
	if err != nil {
		return "", err
	}
	if resp.Error.Message != "" {
		return "", errors.New(resp.Error.Message)
	}
	return resp.PublicID, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     ref,
		ResourceType: "raw",
	})
	if err != nil {
		return err
	}
	if resp.Error.Message != "" {
		return errors.New(resp.Error.Message)
	}
	return nil
}
