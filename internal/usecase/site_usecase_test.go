package usecase

import (
	"testing"
	"time"

	"github.com/aegntic/growth-service/internal/domain"
	sitedto "github.com/aegntic/growth-service/internal/usecase/dto/site"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterSite_SetsBaselineToCreation(t *testing.T) {
	siteRepo := newFakeSiteRepo()
	uc := NewDefaultSiteUsecase(siteRepo, testLogger())

	createdAt := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	site, err := uc.RegisterSite(&sitedto.RegisterSiteInput{
		SiteID: "site-1", OwnerID: "owner-1", CreatedAt: createdAt,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PromotionNormal, site.State)
	assert.Equal(t, createdAt, site.FeatureBaselineAt)
	assert.Equal(t, createdAt, site.CreatedAt)
}

func TestRegisterSite_RepeatedRegistrationIsNoOp(t *testing.T) {
	siteRepo := newFakeSiteRepo()
	uc := NewDefaultSiteUsecase(siteRepo, testLogger())

	first, err := uc.RegisterSite(&sitedto.RegisterSiteInput{SiteID: "site-1", OwnerID: "owner-1"})
	require.NoError(t, err)

	require.NoError(t, siteRepo.UpdateScore("site-1", 42, 7))

	second, err := uc.RegisterSite(&sitedto.RegisterSiteInput{SiteID: "site-1", OwnerID: "owner-1"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.InDelta(t, 42.0, second.ViralScore, 1e-9)
}

func TestGetSiteMetrics(t *testing.T) {
	siteRepo := newFakeSiteRepo()
	uc := NewDefaultSiteUsecase(siteRepo, testLogger())

	until := time.Now().Add(7 * 24 * time.Hour)
	require.NoError(t, siteRepo.CreateSite(&domain.Site{
		ID: "site-1", OwnerID: "owner-1", State: domain.PromotionAutoFeatured,
		ViralScore: 12.5, ShareCount: 9, FeaturedUntil: &until,
	}))

	metrics, err := uc.GetSiteMetrics("site-1")
	require.NoError(t, err)

	assert.InDelta(t, 12.5, metrics.Score, 1e-9)
	assert.Equal(t, int64(9), metrics.ShareCount)
	assert.True(t, metrics.Featured)
	require.NotNil(t, metrics.FeaturedUntil)

	_, err = uc.GetSiteMetrics("missing")
	assert.ErrorIs(t, err, domain.ErrSiteNotFound)
}
