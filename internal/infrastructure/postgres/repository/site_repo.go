package repository

import (
	"errors"
	"time"

	"github.com/aegntic/growth-service/internal/domain"
	"github.com/aegntic/growth-service/internal/infrastructure/postgres/mappers"
	"github.com/aegntic/growth-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultSiteRepository struct {
	DB *gorm.DB
}

func NewDefaultSiteRepository(db *gorm.DB) *DefaultSiteRepository {
	return &DefaultSiteRepository{DB: db}
}

func (r *DefaultSiteRepository) CreateSite(site *domain.Site) error {
	model := mappers.ToGORMSite(site)
	if err := r.DB.Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrSiteAlreadyExists
		}
		return err
	}
	return nil
}

func (r *DefaultSiteRepository) GetSiteByID(siteID string) (*domain.Site, error) {
	var model models.SiteModel
	if err := r.DB.First(&model, "id = ?", siteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSiteNotFound
		}
		return nil, err
	}
	return mappers.ToDomainSite(&model), nil
}

func (r *DefaultSiteRepository) UpdateScore(siteID string, score float64, shareCount int64) error {
	return r.DB.Model(&models.SiteModel{}).
		Where("id = ?", siteID).
		Updates(map[string]interface{}{
			"viral_score": score,
			"share_count": shareCount,
			"updated_at":  time.Now(),
		}).Error
}

// MarkFeatured reports whether this call won the transition. A zero
// RowsAffected means a concurrent caller already flipped the state.
func (r *DefaultSiteRepository) MarkFeatured(siteID string, until time.Time, baselineAt time.Time) (bool, error) {
	result := r.DB.Model(&models.SiteModel{}).
		Where("id = ? AND state = ?", siteID, domain.PromotionNormal).
		Updates(map[string]interface{}{
			"state":               domain.PromotionAutoFeatured,
			"featured_until":      until,
			"feature_baseline_at": baselineAt,
			"updated_at":          time.Now(),
		})
	return result.RowsAffected > 0, result.Error
}

func (r *DefaultSiteRepository) ClearFeatured(siteID string, baselineAt time.Time) error {
	return r.DB.Model(&models.SiteModel{}).
		Where("id = ? AND state = ?", siteID, domain.PromotionAutoFeatured).
		Updates(map[string]interface{}{
			"state":               domain.PromotionNormal,
			"featured_until":      nil,
			"feature_baseline_at": baselineAt,
			"updated_at":          time.Now(),
		}).Error
}

func (r *DefaultSiteRepository) FindExpiredFeatured(now time.Time) ([]*domain.Site, error) {
	var siteModels []models.SiteModel
	if err := r.DB.
		Where("state = ? AND featured_until <= ?", domain.PromotionAutoFeatured, now).
		Find(&siteModels).Error; err != nil {
		return nil, err
	}

	sites := make([]*domain.Site, len(siteModels))
	for i, model := range siteModels {
		sites[i] = mappers.ToDomainSite(&model)
	}
	return sites, nil
}

func (r *DefaultSiteRepository) ListScoredSites() ([]*domain.Site, error) {
	var siteModels []models.SiteModel
	if err := r.DB.
		Where("viral_score > 0 AND showcase_opt_out = ?", false).
		Find(&siteModels).Error; err != nil {
		return nil, err
	}

	sites := make([]*domain.Site, len(siteModels))
	for i, model := range siteModels {
		sites[i] = mappers.ToDomainSite(&model)
	}
	return sites, nil
}

func (r *DefaultSiteRepository) SetShowcaseEligible(siteID string, eligible bool) error {
	return r.updateFlag(siteID, "showcase_eligible", eligible)
}

func (r *DefaultSiteRepository) SetShowcasePinned(siteID string, pinned bool) error {
	return r.updateFlag(siteID, "showcase_pinned", pinned)
}

func (r *DefaultSiteRepository) SetShowcaseOptOut(siteID string, optOut bool) error {
	return r.updateFlag(siteID, "showcase_opt_out", optOut)
}

func (r *DefaultSiteRepository) updateFlag(siteID, column string, value bool) error {
	result := r.DB.Model(&models.SiteModel{}).
		Where("id = ?", siteID).
		Updates(map[string]interface{}{
			column:       value,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrSiteNotFound
	}
	return nil
}
