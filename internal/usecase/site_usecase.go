package usecase

import (
	"errors"
	"log/slog"
	"time"

	"github.com/aegntic/growth-service/internal/domain"
	sitedto "github.com/aegntic/growth-service/internal/usecase/dto/site"
)

type SiteUsecase interface {
	RegisterSite(input *sitedto.RegisterSiteInput) (*domain.Site, error)
	GetSiteMetrics(siteID string) (*sitedto.SiteMetricsOutput, error)
}

type DefaultSiteUsecase struct {
	SiteRepo domain.SiteRepository

	logger *slog.Logger
	now    func() time.Time
}

func NewDefaultSiteUsecase(siteRepo domain.SiteRepository, logger *slog.Logger) *DefaultSiteUsecase {
	return &DefaultSiteUsecase{
		SiteRepo: siteRepo,
		now:      time.Now,
		logger:   logger,
	}
}

// RegisterSite creates the growth-side record for a published site.
// Re-registration is a no-op so the site-created hook can be retried.
func (uc *DefaultSiteUsecase) RegisterSite(input *sitedto.RegisterSiteInput) (*domain.Site, error) {
	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = uc.now()
	}

	site := &domain.Site{
		ID:                input.SiteID,
		OwnerID:           input.OwnerID,
		State:             domain.PromotionNormal,
		FeatureBaselineAt: createdAt,
		CreatedAt:         createdAt,
		UpdatedAt:         uc.now(),
	}

	if err := uc.SiteRepo.CreateSite(site); err != nil {
		if errors.Is(err, domain.ErrSiteAlreadyExists) {
			uc.logger.Info("site already registered", "site_id", input.SiteID)
			return uc.SiteRepo.GetSiteByID(input.SiteID)
		}
		return nil, err
	}

	return site, nil
}

func (uc *DefaultSiteUsecase) GetSiteMetrics(siteID string) (*sitedto.SiteMetricsOutput, error) {
	site, err := uc.SiteRepo.GetSiteByID(siteID)
	if err != nil {
		return nil, err
	}

	return &sitedto.SiteMetricsOutput{
		SiteID:        site.ID,
		Score:         site.ViralScore,
		ShareCount:    site.ShareCount,
		Featured:      site.State == domain.PromotionAutoFeatured,
		FeaturedUntil: site.FeaturedUntil,
	}, nil
}
