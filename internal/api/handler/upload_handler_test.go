package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bizsites/website-builder/internal/core/ports"
)

type stubMediaService struct {
	uploadFn func(ctx context.Context, files []ports.UploadFile) ([]string, error)
}

func (s *stubMediaService) UploadImages(ctx context.Context, files []ports.UploadFile) ([]string, error) {
	return s.uploadFn(ctx, files)
}

type formFile struct {
	name, contentType, body string
}

func newMultipartContext(t *testing.T, files ...formFile) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="`+f.name+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		_, _ = part.Write([]byte(f.body))
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUploadHandler_SingleFile(t *testing.T) {
	stub := &stubMediaService{
		uploadFn: func(_ context.Context, files []ports.UploadFile) ([]string, error) {
			if len(files) != 1 || files[0].Filename != "logo.png" || files[0].ContentType != "image/png" {
				t.Fatalf("unexpected files: %+v", files)
			}
			rc, err := files[0].Open()
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer rc.Close()
			if b, _ := io.ReadAll(rc); string(b) != "png-bytes" {
				t.Fatalf("unexpected content %q", b)
			}
			return []string{"https://cdn.test/logo.png"}, nil
		},
	}
	h := NewUploadHandler(stub, 1<<20)

	c, rec := newMultipartContext(t, formFile{"logo.png", "image/png", "png-bytes"})
	if err := h.Upload(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		URL  string   `json:"url"`
		URLs []string `json:"urls"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.URL != "https://cdn.test/logo.png" {
		t.Fatalf("unexpected url: %s", rec.Body.String())
	}
	if len(resp.URLs) != 1 || resp.URLs[0] != "https://cdn.test/logo.png" {
		t.Fatalf("single upload must still list urls: %s", rec.Body.String())
	}
}

func TestUploadHandler_ManyFiles(t *testing.T) {
	stub := &stubMediaService{
		uploadFn: func(_ context.Context, files []ports.UploadFile) ([]string, error) {
			return []string{"https://cdn.test/a.png", "https://cdn.test/b.png"}, nil
		},
	}
	h := NewUploadHandler(stub, 1<<20)

	c, rec := newMultipartContext(t,
		formFile{"a.png", "image/png", "a"},
		formFile{"b.png", "image/png", "b"},
	)
	if err := h.Upload(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		URL  string   `json:"url"`
		URLs []string `json:"urls"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.URLs) != 2 || resp.URLs[1] != "https://cdn.test/b.png" || resp.URL != "https://cdn.test/a.png" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestUploadHandler_NotConfigured(t *testing.T) {
	h := NewUploadHandler(nil, 1<<20)
	c, _ := newMultipartContext(t, formFile{"a.png", "image/png", "a"})

	err := h.Upload(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %v", err)
	}
}

func TestUploadHandler_TooLarge(t *testing.T) {
	stub := &stubMediaService{
		uploadFn: func(context.Context, []ports.UploadFile) ([]string, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewUploadHandler(stub, 64)

	c, _ := newMultipartContext(t, formFile{"a.png", "image/png", string(bytes.Repeat([]byte("x"), 4096))})
	err := h.Upload(c)

	var tooLarge *http.MaxBytesError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("expected MaxBytesError, got %v", err)
	}
}

func TestUploadHandler_NotMultipart(t *testing.T) {
	h := NewUploadHandler(&stubMediaService{}, 1<<20)
	c, _ := newJSONContext(http.MethodPost, "/api/upload", `{}`)

	err := h.Upload(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
