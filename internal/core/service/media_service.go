package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/bizsites/website-builder/pkg/metrics"
	"github.com/bizsites/website-builder/internal/core/ports"
)

const maxParallelUploads = 4

var ErrNoFiles = errors.New("no files uploaded")
var ErrUnsupportedMedia = errors.New("only image uploads are accepted")

// MediaService forwards uploaded images to the media host.
type MediaService struct {
	store  ports.MediaStore
	logger zerolog.Logger
}

func NewMediaService(store ports.MediaStore, logger zerolog.Logger) *MediaService {
	return &MediaService{store: store, logger: logger}
}

// UploadImages uploads every file concurrently and returns their public URLs
// in the order the files were received. Any failure fails the whole batch.
func (s *MediaService) UploadImages(ctx context.Context, files []ports.UploadFile) ([]string, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	for _, f := range files {
		if !strings.HasPrefix(f.ContentType, "image/") {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedMedia, f.Filename)
		}
	}

	urls := make([]string, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelUploads)

	for i, f := range files {
		g.Go(func() error {
			rc, err := f.Open()
			if err != nil {
				return fmt.Errorf("open %s: %w", f.Filename, err)
			}
			defer rc.Close()

			url, err := s.store.Upload(ctx, f.Filename, rc)
			if err != nil {
				metrics.MediaUploadsTotal.WithLabelValues("error").Inc()
				return fmt.Errorf("upload %s: %w", f.Filename, err)
			}
			metrics.MediaUploadsTotal.WithLabelValues("ok").Inc()
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Int("files", len(files)).Msg("image upload failed")
		return nil, err
	}

	s.logger.Info().Int("files", len(files)).Msg("images uploaded")
	return urls, nil
}
