package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bizsites/website-builder/internal/core/domain"
	"github.com/bizsites/website-builder/internal/web"
)

func newPageContext(t *testing.T, target, slug string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e := echo.New()
	e.Renderer = renderer

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues(slug)
	return c, rec
}

func pageStub() *stubSiteService {
	return &stubSiteService{
		slugFn: func(_ context.Context, slug string) (*domain.Site, error) {
			if slug != "acme" {
				return nil, domain.ErrSiteNotFound
			}
			return sampleSite(), nil
		},
	}
}

func TestPageHandler_Site(t *testing.T) {
	h := NewPageHandler(pageStub(), "https://sites.test/")
	c, rec := newPageContext(t, "/sites/acme", "acme")

	if err := h.Site(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Acme Bakery") || !strings.Contains(body, "/api/sites/acme/qr.png") {
		t.Fatalf("unexpected page: %s", body)
	}
	if strings.Contains(body, strings.Repeat("ab", 32)) {
		t.Fatalf("page must not contain the edit token")
	}
}

func TestPageHandler_SiteNotFound(t *testing.T) {
	h := NewPageHandler(pageStub(), "https://sites.test")
	c, rec := newPageContext(t, "/sites/missing", "missing")

	if err := h.Site(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPageHandler_QRCode(t *testing.T) {
	h := NewPageHandler(pageStub(), "https://sites.test")
	c, rec := newPageContext(t, "/api/sites/acme/qr.png?size=200", "acme")

	if err := h.QRCode(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "image/png" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")) {
		t.Fatalf("expected PNG body")
	}
}
