// Package media uploads site images to Cloudinary.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

// CloudinaryStore implements ports.MediaStore.
type CloudinaryStore struct {
	api    uploadAPI
	folder string
}

func NewCloudinaryStore(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return &CloudinaryStore{api: &cld.Upload, folder: folder}, nil
}

// Upload streams r to Cloudinary and returns the HTTPS delivery URL. The
// original file name, minus extension, seeds the public id.
func (s *CloudinaryStore) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	resp, err := s.api.Upload(ctx, r, uploader.UploadParams{
		Folder:         s.folder,
		PublicID:       publicID(filename),
		UniqueFilename: boolPtr(true),
		ResourceType:   "image",
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("upload %s: %s", filename, resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return "", errors.New("upload " + filename + ": empty url in response")
	}
	return resp.SecureURL, nil
}

func publicID(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

func boolPtr(b bool) *bool { return &b }
