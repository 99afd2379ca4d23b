package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/bizsites/website-builder/internal/core/ports"
)

type stubMediaStore struct {
	mu       sync.Mutex
	uploaded map[string]string
	failOn   string
}

func (s *stubMediaStore) Upload(_ context.Context, filename string, r io.Reader) (string, error) {
	if filename == s.failOn {
		return "", errors.New("media host rejected file")
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploaded == nil {
		s.uploaded = make(map[string]string)
	}
	s.uploaded[filename] = string(body)
	return "https://cdn.example.com/" + filename, nil
}

func memFile(name, contentType, body string) ports.UploadFile {
	return ports.UploadFile{
		Filename:    name,
		ContentType: contentType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

func TestMediaService_UploadImages_PreservesOrder(t *testing.T) {
	store := &stubMediaStore{}
	svc := NewMediaService(store, discardLogger)

	files := []ports.UploadFile{
		memFile("a.png", "image/png", "A"),
		memFile("b.jpg", "image/jpeg", "B"),
		memFile("c.webp", "image/webp", "C"),
	}

	urls, err := svc.UploadImages(context.Background(), files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"https://cdn.example.com/a.png",
		"https://cdn.example.com/b.jpg",
		"https://cdn.example.com/c.webp",
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("urls[%d] = %q, want %q", i, urls[i], want[i])
		}
	}
	if store.uploaded["b.jpg"] != "B" {
		t.Errorf("file body not forwarded: %q", store.uploaded["b.jpg"])
	}
}

func TestMediaService_UploadImages_NoFiles(t *testing.T) {
	svc := NewMediaService(&stubMediaStore{}, discardLogger)

	if _, err := svc.UploadImages(context.Background(), nil); !errors.Is(err, ErrNoFiles) {
		t.Fatalf("expected ErrNoFiles, got %v", err)
	}
}

func TestMediaService_UploadImages_RejectsNonImages(t *testing.T) {
	store := &stubMediaStore{}
	svc := NewMediaService(store, discardLogger)

	_, err := svc.UploadImages(context.Background(), []ports.UploadFile{
		memFile("a.png", "image/png", "A"),
		memFile("notes.txt", "text/plain", "hi"),
	})
	if !errors.Is(err, ErrUnsupportedMedia) {
		t.Fatalf("expected ErrUnsupportedMedia, got %v", err)
	}
	if len(store.uploaded) != 0 {
		t.Fatalf("nothing should be uploaded when a file is rejected")
	}
}

func TestMediaService_UploadImages_FailureFailsBatch(t *testing.T) {
	store := &stubMediaStore{failOn: "b.png"}
	svc := NewMediaService(store, discardLogger)

	urls, err := svc.UploadImages(context.Background(), []ports.UploadFile{
		memFile("a.png", "image/png", "A"),
		memFile("b.png", "image/png", "B"),
	})
	if err == nil {
		t.Fatal("expected error when the media host fails")
	}
	if urls != nil {
		t.Fatalf("expected no urls on failure, got %v", urls)
	}
}
