package sqldb

import (
	"time"

	"github.com/bizsites/website-builder/internal/core/domain"
)

type siteRecord struct {
	ID                   int64     `gorm:"primaryKey;autoIncrement"`
	BusinessName         string    `gorm:"not null"`
	ContactInfo          string    `gorm:"not null"`
	Description          string    `gorm:"not null;type:text"`
	LogoURL              string    `gorm:"type:text"`
	Images               []string  `gorm:"serializer:json;type:text"`
	SocialLinks          []string  `gorm:"serializer:json;type:text"`
	ThemeColor           string    `gorm:"not null;size:7"`
	Slug                 string    `gorm:"uniqueIndex;not null;size:255"`
	EditToken            string    `gorm:"uniqueIndex;not null;size:64"`
	InterestedInGiftCard bool      `gorm:"not null"`
	CreatedAt            time.Time `gorm:"not null"`
}

func (siteRecord) TableName() string {
	return "sites"
}

type userRecord struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"uniqueIndex;not null;size:80"`
	PasswordHash string    `gorm:"not null;size:255"`
	Role         string    `gorm:"not null;size:20"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (userRecord) TableName() string {
	return "users"
}

func toSiteRecord(s *domain.Site) siteRecord {
	return siteRecord{
		ID:                   s.ID,
		BusinessName:         s.BusinessName,
		ContactInfo:          s.ContactInfo,
		Description:          s.Description,
		LogoURL:              s.LogoURL,
		Images:               s.Images,
		SocialLinks:          s.SocialLinks,
		ThemeColor:           s.ThemeColor,
		Slug:                 s.Slug,
		EditToken:            s.EditToken,
		InterestedInGiftCard: s.InterestedInGiftCard,
		CreatedAt:            s.CreatedAt,
	}
}

func (r siteRecord) toDomain() *domain.Site {
	s := &domain.Site{
		ID:                   r.ID,
		BusinessName:         r.BusinessName,
		ContactInfo:          r.ContactInfo,
		Description:          r.Description,
		LogoURL:              r.LogoURL,
		Images:               r.Images,
		SocialLinks:          r.SocialLinks,
		ThemeColor:           r.ThemeColor,
		Slug:                 r.Slug,
		EditToken:            r.EditToken,
		InterestedInGiftCard: r.InterestedInGiftCard,
		CreatedAt:            r.CreatedAt.UTC(),
	}
	if s.Images == nil {
		s.Images = []string{}
	}
	if s.SocialLinks == nil {
		s.SocialLinks = []string{}
	}
	return s
}

func (r userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		Role:         r.Role,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}
