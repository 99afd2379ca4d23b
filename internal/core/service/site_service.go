package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bizsites/website-builder/pkg/metrics"
	"github.com/bizsites/website-builder/internal/core/domain"
	"github.com/bizsites/website-builder/internal/core/ports"
	"github.com/bizsites/website-builder/internal/core/token"
	"github.com/bizsites/website-builder/internal/core/validation"
)

type SiteService struct {
	repo      ports.SiteRepository
	validator *validation.Validator
	logger    zerolog.Logger
	now       func() time.Time
	issue     func() (string, error)
}

func NewSiteService(repo ports.SiteRepository, v *validation.Validator, logger zerolog.Logger) *SiteService {
	return &SiteService{
		repo:      repo,
		validator: v,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
		issue:     token.Issue,
	}
}

// CreateSite validates the payload, issues the edit token and persists the
// record. The returned site carries the token; it is the only time the
// creator receives it.
func (s *SiteService) CreateSite(ctx context.Context, input ports.CreateSiteInput) (*domain.Site, error) {
	in, err := s.validator.Create(input)
	if err != nil {
		metrics.SitesRejectedTotal.WithLabelValues("validation").Inc()
		return nil, err
	}

	editToken, err := s.issue()
	if err != nil {
		return nil, err
	}

	site := &domain.Site{
		BusinessName:         in.BusinessName,
		ContactInfo:          in.ContactInfo,
		Description:          in.Description,
		LogoURL:              in.LogoURL,
		Images:               in.Images,
		SocialLinks:          in.SocialLinks,
		ThemeColor:           in.ThemeColor,
		Slug:                 in.Slug,
		EditToken:            editToken,
		InterestedInGiftCard: in.InterestedInGiftCard,
		// Stores keep millisecond precision.
		CreatedAt: s.now().Truncate(time.Millisecond),
	}

	if err := s.repo.Create(ctx, site); err != nil {
		if errors.Is(err, domain.ErrDuplicateSlug) {
			metrics.SitesRejectedTotal.WithLabelValues("duplicate_slug").Inc()
			s.logger.Info().Str("slug", in.Slug).Msg("slug already taken")
			return nil, err
		}
		s.logger.Error().Err(err).Str("slug", in.Slug).Msg("failed to create site")
		return nil, fmt.Errorf("create site: %w", err)
	}

	metrics.SitesCreatedTotal.WithLabelValues(giftCardLabel(site.InterestedInGiftCard)).Inc()
	s.logger.Info().Int64("site_id", site.ID).Str("slug", site.Slug).Msg("site created")
	return site, nil
}

// GetBySlug returns the full record, token included. Callers decide what to
// expose.
func (s *SiteService) GetBySlug(ctx context.Context, slug string) (*domain.Site, error) {
	site, err := s.repo.FindBySlug(ctx, slug)
	metrics.SiteLookupsTotal.WithLabelValues("slug", lookupResult(err)).Inc()
	return site, err
}

func (s *SiteService) GetByEditToken(ctx context.Context, editToken string) (*domain.Site, error) {
	if !token.WellFormed(editToken) {
		metrics.SiteLookupsTotal.WithLabelValues("token", "miss").Inc()
		return nil, domain.ErrSiteNotFound
	}
	site, err := s.repo.FindByEditToken(ctx, editToken)
	metrics.SiteLookupsTotal.WithLabelValues("token", lookupResult(err)).Inc()
	return site, err
}

// UpdateByEditToken resolves the token, validates the partial payload and
// merges it onto the stored site.
func (s *SiteService) UpdateByEditToken(ctx context.Context, editToken string, input ports.UpdateSiteInput) (*domain.Site, error) {
	site, err := s.GetByEditToken(ctx, editToken)
	if err != nil {
		return nil, err
	}

	patch, err := s.validator.Update(input)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return site, nil
	}

	updated, err := s.repo.Update(ctx, site.ID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrSiteNotFound) || errors.Is(err, domain.ErrDuplicateSlug) {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("site_id", site.ID).Msg("failed to update site")
		return nil, fmt.Errorf("update site: %w", err)
	}

	metrics.SitesUpdatedTotal.Inc()
	s.logger.Info().Int64("site_id", updated.ID).Str("slug", updated.Slug).Msg("site updated")
	return updated, nil
}

// ListSites returns every site for the admin view.
func (s *SiteService) ListSites(ctx context.Context) ([]*domain.Site, error) {
	sites, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	return sites, nil
}

func lookupResult(err error) string {
	switch {
	case err == nil:
		return "hit"
	case errors.Is(err, domain.ErrSiteNotFound):
		return "miss"
	default:
		return "error"
	}
}

func giftCardLabel(interested bool) string {
	if interested {
		return "yes"
	}
	return "no"
}
