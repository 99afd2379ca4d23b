package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bizsites/website-builder/internal/core/domain"
	"github.com/bizsites/website-builder/internal/core/ports"
)

// SiteHandler serves the site JSON API.
type SiteHandler struct {
	service         ports.SiteService
	exposeEditToken bool
}

// NewSiteHandler builds a SiteHandler. When exposeEditToken is false the
// public slug lookup omits the edit token.
func NewSiteHandler(service ports.SiteService, exposeEditToken bool) *SiteHandler {
	return &SiteHandler{service: service, exposeEditToken: exposeEditToken}
}

// Create publishes a new site.
//
// @Summary      Create a site
// @Description  Validates the form, stores the site and returns it with its edit token. The token is returned only here.
// @Tags         sites
// @Accept       json
// @Produce      json
// @Param        body  body      ports.CreateSiteInput  true  "Site form"
// @Success      201   {object}  domain.Site
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/sites [post]
func (h *SiteHandler) Create(c echo.Context) error {
	var req ports.CreateSiteInput
	if err := decodeJSON(c, &req); err != nil {
		return err
	}

	site, err := h.service.CreateSite(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, site)
}

// GetBySlug returns the public view of a site.
//
// @Summary      Get a site by slug
// @Tags         sites
// @Produce      json
// @Param        slug  path      string  true  "Site slug"
// @Success      200   {object}  domain.Site
// @Failure      404   {object}  errorResponse
// @Router       /api/sites/{slug} [get]
func (h *SiteHandler) GetBySlug(c echo.Context) error {
	site, err := h.service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	if h.exposeEditToken {
		return c.JSON(http.StatusOK, site)
	}
	return c.JSON(http.StatusOK, site.Public())
}

// GetByEditToken loads a site for editing.
//
// @Summary      Get a site by edit token
// @Tags         sites
// @Produce      json
// @Param        token  path      string  true  "Edit token"
// @Success      200    {object}  domain.Site
// @Failure      404    {object}  errorResponse
// @Router       /api/sites/edit/{token} [get]
func (h *SiteHandler) GetByEditToken(c echo.Context) error {
	site, err := h.service.GetByEditToken(c.Request().Context(), c.Param("token"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, site)
}

// UpdateByEditToken applies a partial update.
//
// @Summary      Update a site
// @Description  Only the fields present in the body change. id, editToken and createdAt cannot be changed.
// @Tags         sites
// @Accept       json
// @Produce      json
// @Param        token  path      string                 true  "Edit token"
// @Param        body   body      ports.UpdateSiteInput  true  "Fields to change"
// @Success      200    {object}  domain.Site
// @Failure      400    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Failure      409    {object}  errorResponse
// @Router       /api/sites/edit/{token} [patch]
func (h *SiteHandler) UpdateByEditToken(c echo.Context) error {
	var req ports.UpdateSiteInput
	if err := decodeJSON(c, &req); err != nil {
		return err
	}

	site, err := h.service.UpdateByEditToken(c.Request().Context(), c.Param("token"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, site)
}

// List returns every site for the admin dashboard, without edit tokens.
//
// @Summary      List sites
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Site
// @Failure      401  {object}  errorResponse
// @Router       /api/sites [get]
func (h *SiteHandler) List(c echo.Context) error {
	sites, err := h.service.ListSites(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]domain.Site, 0, len(sites))
	for _, s := range sites {
		out = append(out, s.Public())
	}
	return c.JSON(http.StatusOK, out)
}
