package ports

import (
	"context"
	"io"
)

// MediaStore hosts uploaded files and returns a public URL for each.
type MediaStore interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// UploadFile is one file received from the upload form.
type UploadFile struct {
	Filename    string
	ContentType string
	Open        func() (io.ReadCloser, error)
}

type MediaService interface {
	UploadImages(ctx context.Context, files []UploadFile) ([]string, error)
}
