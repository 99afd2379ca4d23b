// Package memory holds process-local repositories used by tests and the
// "memory" store driver. Data is lost on restart.
package memory

import (
	"context"
	"sync"

	"github.com/bizsites/website-builder/internal/core/domain"
	"github.com/bizsites/website-builder/internal/core/token"
)

// SiteRepository keeps sites in maps guarded by a single mutex, so slug
// checks and inserts happen atomically.
type SiteRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*domain.Site
	bySlug map[string]int64
	order  []int64
}

func NewSiteRepository() *SiteRepository {
	return &SiteRepository{
		nextID: 1,
		byID:   make(map[int64]*domain.Site),
		bySlug: make(map[string]int64),
	}
}

func (r *SiteRepository) Create(_ context.Context, s *domain.Site) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.bySlug[s.Slug]; taken {
		return domain.ErrDuplicateSlug
	}

	s.ID = r.nextID
	r.nextID++

	stored := clone(s)
	r.byID[s.ID] = stored
	r.bySlug[s.Slug] = s.ID
	r.order = append(r.order, s.ID)
	return nil
}

func (r *SiteRepository) FindByID(_ context.Context, id int64) (*domain.Site, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSiteNotFound
	}
	return clone(s), nil
}

func (r *SiteRepository) FindBySlug(_ context.Context, slug string) (*domain.Site, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.bySlug[slug]
	if !ok {
		return nil, domain.ErrSiteNotFound
	}
	return clone(r.byID[id]), nil
}

// FindByEditToken scans every site and compares tokens in constant time.
func (r *SiteRepository) FindByEditToken(_ context.Context, tok string) (*domain.Site, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if s := r.byID[id]; token.Equal(s.EditToken, tok) {
			return clone(s), nil
		}
	}
	return nil, domain.ErrSiteNotFound
}

func (r *SiteRepository) List(_ context.Context) ([]*domain.Site, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sites := make([]*domain.Site, 0, len(r.order))
	for _, id := range r.order {
		sites = append(sites, clone(r.byID[id]))
	}
	return sites, nil
}

func (r *SiteRepository) Update(_ context.Context, id int64, patch domain.SitePatch) (*domain.Site, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSiteNotFound
	}

	updated := clone(current)
	patch.Apply(updated)

	if updated.Slug != current.Slug {
		if _, taken := r.bySlug[updated.Slug]; taken {
			return nil, domain.ErrDuplicateSlug
		}
		delete(r.bySlug, current.Slug)
		r.bySlug[updated.Slug] = id
	}

	r.byID[id] = updated
	return clone(updated), nil
}

func (r *SiteRepository) Ping(context.Context) error {
	return nil
}

func clone(s *domain.Site) *domain.Site {
	c := *s
	c.Images = append([]string{}, s.Images...)
	c.SocialLinks = append([]string{}, s.SocialLinks...)
	return &c
}
