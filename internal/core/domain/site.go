package domain

import (
	"errors"
	"time"
)

// DefaultThemeColor is applied on creation when no theme color is supplied.
const DefaultThemeColor = "#3b82f6"

var ErrSiteNotFound = errors.New("site not found")
var ErrDuplicateSlug = errors.New("slug already taken")
var ErrStorageUnavailable = errors.New("storage unavailable")

// Site is the business listing created through the public form.
type Site struct {
	ID                   int64     `json:"id" bson:"_id"`
	BusinessName         string    `json:"businessName" bson:"business_name"`
	ContactInfo          string    `json:"contactInfo" bson:"contact_info"`
	Description          string    `json:"description" bson:"description"`
	LogoURL              string    `json:"logoUrl,omitempty" bson:"logo_url,omitempty"`
	Images               []string  `json:"images" bson:"images"`
	SocialLinks          []string  `json:"socialLinks" bson:"social_links"`
	ThemeColor           string    `json:"themeColor" bson:"theme_color"`
	Slug                 string    `json:"slug" bson:"slug"`
	EditToken            string    `json:"editToken,omitempty" bson:"edit_token"`
	InterestedInGiftCard bool      `json:"interestedInGiftCard" bson:"interested_in_gift_card"`
	CreatedAt            time.Time `json:"createdAt" bson:"created_at"`
}

// SiteInput is a validated creation payload with defaults applied.
type SiteInput struct {
	BusinessName         string
	ContactInfo          string
	Description          string
	LogoURL              string
	Images               []string
	SocialLinks          []string
	ThemeColor           string
	Slug                 string
	InterestedInGiftCard bool
}

// SitePatch carries the fields of a partial update. A nil field is left
// untouched; id, edit token and creation time cannot be expressed here.
type SitePatch struct {
	BusinessName         *string
	ContactInfo          *string
	Description          *string
	LogoURL              *string
	Images               []string
	SocialLinks          []string
	ThemeColor           *string
	Slug                 *string
	InterestedInGiftCard *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p SitePatch) IsEmpty() bool {
	return p.BusinessName == nil && p.ContactInfo == nil && p.Description == nil &&
		p.LogoURL == nil && p.Images == nil && p.SocialLinks == nil &&
		p.ThemeColor == nil && p.Slug == nil && p.InterestedInGiftCard == nil
}

// Apply merges the patch onto s in place.
func (p SitePatch) Apply(s *Site) {
	if p.BusinessName != nil {
		s.BusinessName = *p.BusinessName
	}
	if p.ContactInfo != nil {
		s.ContactInfo = *p.ContactInfo
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.LogoURL != nil {
		s.LogoURL = *p.LogoURL
	}
	if p.Images != nil {
		s.Images = append([]string{}, p.Images...)
	}
	if p.SocialLinks != nil {
		s.SocialLinks = append([]string{}, p.SocialLinks...)
	}
	if p.ThemeColor != nil {
		s.ThemeColor = *p.ThemeColor
	}
	if p.Slug != nil {
		s.Slug = *p.Slug
	}
	if p.InterestedInGiftCard != nil {
		s.InterestedInGiftCard = *p.InterestedInGiftCard
	}
}

// Public returns a copy of the site without its edit token.
func (s Site) Public() Site {
	s.EditToken = ""
	return s
}
