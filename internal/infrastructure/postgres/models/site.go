package models

import (
	"time"

	"github.com/aegntic/growth-service/internal/domain"
)

type SiteModel struct {
	ID                string                `gorm:"primaryKey;type:uuid"`
	OwnerID           string                `gorm:"not null;index"`
	State             domain.PromotionState `gorm:"not null;index:idx_state_featured"`
	ViralScore        float64               `gorm:"index:idx_score"`
	ShareCount        int64
	FeaturedUntil     *time.Time `gorm:"index:idx_state_featured"`
	FeatureBaselineAt time.Time
	ShowcaseEligible  bool
	ShowcasePinned    bool
	ShowcaseOptOut    bool
	CreatedAt         time.Time `gorm:"index:idx_created_at"`
	UpdatedAt         time.Time
}

func (SiteModel) TableName() string {
	return "sites"
}
