package mappers

import (
	"github.com/aegntic/growth-service/internal/domain"
	"github.com/aegntic/growth-service/internal/infrastructure/postgres/models"
)

func ToGORMSite(site *domain.Site) *models.SiteModel {
	return &models.SiteModel{
		ID:                site.ID,
		OwnerID:           site.OwnerID,
		State:             site.State,
		ViralScore:        site.ViralScore,
		ShareCount:        site.ShareCount,
		FeaturedUntil:     site.FeaturedUntil,
		FeatureBaselineAt: site.FeatureBaselineAt,
		ShowcaseEligible:  site.ShowcaseEligible,
		ShowcasePinned:    site.ShowcasePinned,
		ShowcaseOptOut:    site.ShowcaseOptOut,
		CreatedAt:         site.CreatedAt,
		UpdatedAt:         site.UpdatedAt,
	}
}

func ToDomainSite(model *models.SiteModel) *domain.Site {
	return &domain.Site{
		ID:                model.ID,
		OwnerID:           model.OwnerID,
		State:             model.State,
		ViralScore:        model.ViralScore,
		ShareCount:        model.ShareCount,
		FeaturedUntil:     model.FeaturedUntil,
		FeatureBaselineAt: model.FeatureBaselineAt,
		ShowcaseEligible:  model.ShowcaseEligible,
		ShowcasePinned:    model.ShowcasePinned,
		ShowcaseOptOut:    model.ShowcaseOptOut,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}
