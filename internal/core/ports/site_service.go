package ports

import (
	"context"

	"github.com/bizsites/website-builder/internal/core/domain"
)

// CreateSiteInput is the untrusted creation payload as decoded from JSON.
type CreateSiteInput struct {
	BusinessName         string   `json:"businessName"         validate:"required"`
	ContactInfo          string   `json:"contactInfo"          validate:"required"`
	Description          string   `json:"description"          validate:"required"`
	LogoURL              *string  `json:"logoUrl"              validate:"omitnil,url"`
	Images               []string `json:"images"               validate:"omitempty,dive,url"`
	InterestedInGiftCard *bool    `json:"interestedInGiftCard" validate:"required"`
	Slug                 string   `json:"slug"                 validate:"required"`
	SocialLinks          []string `json:"socialLinks"          validate:"omitempty,dive,url"`
	ThemeColor           *string  `json:"themeColor"           validate:"omitnil,themecolor"`
}

// UpdateSiteInput is the untrusted partial update payload. Absent fields
// decode to nil and are left untouched.
type UpdateSiteInput struct {
	BusinessName         *string  `json:"businessName"         validate:"omitnil,min=1"`
	ContactInfo          *string  `json:"contactInfo"          validate:"omitnil,min=1"`
	Description          *string  `json:"description"          validate:"omitnil,min=1"`
	LogoURL              *string  `json:"logoUrl"              validate:"omitnil,url"`
	Images               []string `json:"images"               validate:"omitempty,dive,url"`
	InterestedInGiftCard *bool    `json:"interestedInGiftCard"`
	Slug                 *string  `json:"slug"                 validate:"omitnil,min=1"`
	SocialLinks          []string `json:"socialLinks"          validate:"omitempty,dive,url"`
	ThemeColor           *string  `json:"themeColor"           validate:"omitnil,themecolor"`
}

// SiteService defines the site lifecycle use cases.
type SiteService interface {
	CreateSite(ctx context.Context, input CreateSiteInput) (*domain.Site, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Site, error)
	GetByEditToken(ctx context.Context, token string) (*domain.Site, error)
	UpdateByEditToken(ctx context.Context, token string, input UpdateSiteInput) (*domain.Site, error)
	ListSites(ctx context.Context) ([]*domain.Site, error)
}
