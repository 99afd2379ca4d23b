package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type stubUploadAPI struct {
	result *uploader.UploadResult
	err    error

	gotParams uploader.UploadParams
	gotBody   string
}

func (s *stubUploadAPI) Upload(_ context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	s.gotParams = params
	if r, ok := file.(io.Reader); ok {
		b, _ := io.ReadAll(r)
		s.gotBody = string(b)
	}
	return s.result, s.err
}

func TestCloudinaryStore_Upload(t *testing.T) {
	stub := &stubUploadAPI{result: &uploader.UploadResult{SecureURL: "https://res.cloudinary.test/logo.png"}}
	store := &CloudinaryStore{api: stub, folder: "sites"}

	url, err := store.Upload(context.Background(), "logo.final.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://res.cloudinary.test/logo.png" {
		t.Errorf("url: got %q", url)
	}
	if stub.gotParams.Folder != "sites" || stub.gotParams.PublicID != "logo.final" {
		t.Errorf("params: got %+v", stub.gotParams)
	}
	if stub.gotBody != "png-bytes" {
		t.Errorf("body: got %q", stub.gotBody)
	}
}

func TestCloudinaryStore_UploadErrors(t *testing.T) {
	tests := []struct {
		name string
		stub *stubUploadAPI
	}{
		{"transport error", &stubUploadAPI{err: errors.New("dial tcp: refused")}},
		{"api error", &stubUploadAPI{result: &uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid image file"}}}},
		{"empty url", &stubUploadAPI{result: &uploader.UploadResult{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &CloudinaryStore{api: tt.stub}
			if _, err := store.Upload(context.Background(), "a.png", strings.NewReader("x")); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestPublicID(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":           "photo",
		`C:\Users\me\pic.png`: "pic",
		"dir/sub/banner.webp": "banner",
		"noext":               "noext",
	}
	for in, want := range cases {
		if got := publicID(in); got != want {
			t.Errorf("publicID(%q) = %q, want %q", in, got, want)
		}
	}
}
