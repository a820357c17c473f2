package domain

import "time"

type Tier string

const (
	TierFree       Tier = "FREE"
	TierPro        Tier = "PRO"
	TierBusiness   Tier = "BUSINESS"
	TierEnterprise Tier = "ENTERPRISE"
)

var tierRank = map[Tier]int{
	TierFree:       0,
	TierPro:        1,
	TierBusiness:   2,
	TierEnterprise: 3,
}

func (t Tier) AtLeast(other Tier) bool {
	return tierRank[t] >= tierRank[other]
}

func (t Tier) Valid() bool {
	_, ok := tierRank[t]
	return ok
}

type PromotionState string

const (
	PromotionNormal       PromotionState = "NORMAL"
	PromotionAutoFeatured PromotionState = "AUTO_FEATURED"
)

type Site struct {
	ID                string
	OwnerID           string
	State             PromotionState
	ViralScore        float64
	ShareCount        int64
	FeaturedUntil     *time.Time
	FeatureBaselineAt time.Time
	ShowcaseEligible  bool
	ShowcasePinned    bool
	ShowcaseOptOut    bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type SiteRepository interface {
	CreateSite(site *Site) error
	GetSiteByID(siteID string) (*Site, error)
	UpdateScore(siteID string, score float64, shareCount int64) error
	MarkFeatured(siteID string, until time.Time, baselineAt time.Time) (bool, error)
	ClearFeatured(siteID string, baselineAt time.Time) error
	FindExpiredFeatured(now time.Time) ([]*Site, error)
	ListScoredSites() ([]*Site, error)
	SetShowcaseEligible(siteID string, eligible bool) error
	SetShowcasePinned(siteID string, pinned bool) error
	SetShowcaseOptOut(siteID string, optOut bool) error
}
