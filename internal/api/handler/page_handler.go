package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bizsites/website-builder/internal/core/domain"
	"github.com/bizsites/website-builder/internal/core/ports"
	"github.com/bizsites/website-builder/internal/web"
)

// PageHandler renders the public HTML page of a site and its QR code.
type PageHandler struct {
	service ports.SiteService
	baseURL string
}

func NewPageHandler(service ports.SiteService, baseURL string) *PageHandler {
	return &PageHandler{service: service, baseURL: strings.TrimRight(baseURL, "/")}
}

type sitePage struct {
	Site       *domain.Site
	ThemeColor string
	QRPath     string
}

// Site renders GET /sites/:slug.
func (h *PageHandler) Site(c echo.Context) error {
	slug := c.Param("slug")
	site, err := h.service.GetBySlug(c.Request().Context(), slug)
	if errors.Is(err, domain.ErrSiteNotFound) {
		return c.Render(http.StatusNotFound, "not_found.html", map[string]string{"Slug": slug})
	}
	if err != nil {
		return err
	}

	public := site.Public()
	return c.Render(http.StatusOK, "site.html", sitePage{
		Site:       &public,
		ThemeColor: site.ThemeColor,
		QRPath:     "/api/sites/" + url.PathEscape(slug) + "/qr.png",
	})
}

// QRCode returns a PNG pointing at the public page, drawn in the site's
// theme color.
//
// @Summary  QR code for a site
// @Tags     sites
// @Produce  png
// @Param    slug  path   string  true   "Site slug"
// @Param    size  query  int     false  "Edge length in pixels (128-1024)"
// @Success  200
// @Failure  404  {object}  errorResponse
// @Router   /api/sites/{slug}/qr.png [get]
func (h *PageHandler) QRCode(c echo.Context) error {
	slug := c.Param("slug")
	site, err := h.service.GetBySlug(c.Request().Context(), slug)
	if err != nil {
		return err
	}

	size, _ := strconv.Atoi(c.QueryParam("size"))
	png, err := web.QRCode(h.baseURL+"/sites/"+url.PathEscape(slug), site.ThemeColor, size)
	if err != nil {
		return err
	}

	c.Response().Header().Set("Cache-Control", "public, max-age=300")
	return c.Blob(http.StatusOK, "image/png", png)
}
