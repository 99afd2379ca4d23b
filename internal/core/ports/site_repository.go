package ports

import (
	"context"

	"github.com/bizsites/website-builder/internal/core/domain"
)

// SiteRepository defines persistence operations for sites.
//
// Implementations enforce slug uniqueness atomically (unique index or
// constraint) and return domain.ErrDuplicateSlug on collision.
type SiteRepository interface {
	// Create assigns s.ID and persists the record.
	Create(ctx context.Context, s *domain.Site) error
	FindByID(ctx context.Context, id int64) (*domain.Site, error)
	// FindBySlug is a case-sensitive exact match.
	FindBySlug(ctx context.Context, slug string) (*domain.Site, error)
	FindByEditToken(ctx context.Context, token string) (*domain.Site, error)
	// List returns every site ordered by id.
	List(ctx context.Context) ([]*domain.Site, error)
	// Update merges patch onto the stored site and returns the result.
	Update(ctx context.Context, id int64, patch domain.SitePatch) (*domain.Site, error)
	Ping(ctx context.Context) error
}
