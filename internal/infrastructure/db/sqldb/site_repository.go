package sqldb

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/bizsites/website-builder/internal/core/domain"
)

// SiteRepository implements ports.SiteRepository on gorm. Slug uniqueness is
// a unique index on sites.slug.
type SiteRepository struct {
	db *gorm.DB
}

func NewSiteRepository(db *gorm.DB) *SiteRepository {
	return &SiteRepository{db: db}
}

func (r *SiteRepository) Create(ctx context.Context, s *domain.Site) error {
	rec := toSiteRecord(s)
	rec.ID = 0
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isDuplicate(err) {
			return domain.ErrDuplicateSlug
		}
		return classify("insert site", err)
	}
	s.ID = rec.ID
	return nil
}

func (r *SiteRepository) FindByID(ctx context.Context, id int64) (*domain.Site, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *SiteRepository) FindBySlug(ctx context.Context, slug string) (*domain.Site, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *SiteRepository) FindByEditToken(ctx context.Context, token string) (*domain.Site, error) {
	return r.first(ctx, "edit_token = ?", token)
}

func (r *SiteRepository) List(ctx context.Context) ([]*domain.Site, error) {
	var recs []siteRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, classify("list sites", err)
	}
	sites := make([]*domain.Site, 0, len(recs))
	for _, rec := range recs {
		sites = append(sites, rec.toDomain())
	}
	return sites, nil
}

// Update writes only the patched columns inside a transaction and returns
// the merged record.
func (r *SiteRepository) Update(ctx context.Context, id int64, patch domain.SitePatch) (*domain.Site, error) {
	var out *domain.Site
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec siteRecord
		if err := tx.First(&rec, "id = ?", id).Error; err != nil {
			return err
		}

		site := rec.toDomain()
		patch.Apply(site)
		out = site

		cols := patchColumns(patch)
		if len(cols) == 0 {
			return nil
		}
		updated := toSiteRecord(site)
		return tx.Model(&rec).Select(cols).Updates(&updated).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, domain.ErrSiteNotFound
		case isDuplicate(err):
			return nil, domain.ErrDuplicateSlug
		}
		return nil, classify("update site", err)
	}
	return out, nil
}

func (r *SiteRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *SiteRepository) first(ctx context.Context, query string, arg any) (*domain.Site, error) {
	var rec siteRecord
	if err := r.db.WithContext(ctx).Where(query, arg).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSiteNotFound
		}
		return nil, classify("find site", err)
	}
	return rec.toDomain(), nil
}

// patchColumns lists the struct fields a patch touches. id, edit_token and
// created_at are never among them.
func patchColumns(p domain.SitePatch) []string {
	var cols []string
	if p.BusinessName != nil {
		cols = append(cols, "BusinessName")
	}
	if p.ContactInfo != nil {
		cols = append(cols, "ContactInfo")
	}
	if p.Description != nil {
		cols = append(cols, "Description")
	}
	if p.LogoURL != nil {
		cols = append(cols, "LogoURL")
	}
	if p.Images != nil {
		cols = append(cols, "Images")
	}
	if p.SocialLinks != nil {
		cols = append(cols, "SocialLinks")
	}
	if p.ThemeColor != nil {
		cols = append(cols, "ThemeColor")
	}
	if p.Slug != nil {
		cols = append(cols, "Slug")
	}
	if p.InterestedInGiftCard != nil {
		cols = append(cols, "InterestedInGiftCard")
	}
	return cols
}
