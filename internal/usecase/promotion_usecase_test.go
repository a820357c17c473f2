package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/aegntic/growth-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPromotionUsecaseForTest(siteRepo *fakeSiteRepo, ledger *fakeLedger, showcaseRepo *fakeShowcaseRepo, identity *fakeIdentity) *DefaultPromotionUsecase {
	return NewDefaultPromotionUsecase(
		siteRepo, ledger, showcaseRepo, identity, &fakePublisher{}, "growth-events",
		testMetrics(), 5, domain.TierPro, 50, testLogger())
}

func appendShares(t *testing.T, ledger *fakeLedger, siteID string, count int, at time.Time) {
	t.Helper()
	for i := 0; i < count; i++ {
		_, err := ledger.Append(context.Background(), &domain.LedgerEvent{
			ID: siteID + "-share-" + string(rune('a'+i)), SiteID: siteID,
			Kind: domain.EventKindShare, Platform: domain.PlatformTwitter,
			ActorID: "actor-" + string(rune('a'+i)),
			OccurredAt: at, AdmittedAt: at,
		})
		require.NoError(t, err)
	}
}

func TestEvaluatePromotion_BelowThresholdStaysNormal(t *testing.T) {
	siteRepo := newFakeSiteRepo()
	ledger := newFakeLedger()
	now := time.Now()

	require.NoError(t, siteRepo.CreateSite(&domain.Site{
		ID: "site-1", OwnerID: "owner-1", State: domain.PromotionNormal,
		FeatureBaselineAt: now.Add(-time.Hour), CreatedAt: now.Add(-time.Hour),
	}))
	appendShares(t, ledger, "site-1", 4, now)

	uc := newPromotionUsecaseForTest(siteRepo, ledger, &fakeShowcaseRepo{}, newFakeIdentity())
	featured, err := uc.EvaluatePromotion(context.Background(), "site-1")
	require.NoError(t, err)
	assert.False(t, featured)

	site, _ := siteRepo.GetSiteByID("site-1")
	assert.Equal(t, domain.PromotionNormal, site.State)
}

func TestEvaluatePromotion_FifthShareFeaturesOnce(t *testing.T) {
	siteRepo := newFakeSiteRepo()
	ledger := newFakeLedger()
	now := time.Now()

	require.NoError(t, siteRepo.CreateSite(&domain.Site{
		ID: "site-1", OwnerID: "owner-1", State: domain.PromotionNormal,
		FeatureBaselineAt: now.Add(-time.Hour), CreatedAt: now.Add(-time.Hour),
	}))
	appendShares(t, ledger, "site-1", 5, now)

	uc := newPromotionUsecaseForTest(siteRepo, ledger, &fakeShowcaseRepo{}, newFakeIdentity())

	featured, err := uc.EvaluatePromotion(context.Background(), "site-1")
	require.NoError(t, err)
	assert.True(t, featured)

	site, _ := siteRepo.GetSiteByID("site-1")
	assert.Equal(t, domain.PromotionAutoFeatured, site.State)
	require.NotNil(t, site.FeaturedUntil)

	// more shares while featured do not fire a second transition
	appendShares(t, ledger, "site-1", 3, now.Add(time.Minute))
	featured, err = uc.EvaluatePromotion(context.Background(), "site-1")
	require.NoError(t, err)
	assert.False(t, featured)
}

func TestEvaluatePromotion_RaceLoserPublishesNothing(t *testing.T) {
	siteRepo := newFakeSiteRepo()
	ledger := newFakeLedger()
	publisher := &fakePublisher{}
	now := time.Now()

	require.NoError(t, siteRepo.CreateSite(&domain.Site{
		ID: "site-1", OwnerID: "owner-1", State: domain.PromotionNormal,
		FeatureBaselineAt: now.Add(-time.Hour), CreatedAt: now.Add(-time.Hour),
	}))
	appendShares(t, ledger, "site-1", 5, now)

	uc := NewDefaultPromotionUsecase(
		siteRepo, ledger, &fakeShowcaseRepo{}, newFakeIdentity(), publisher,
		"growth-events", testMetrics(), 5, domain.TierPro, 50, testLogger())

	// a competing admission features the site after our read of state
	// Normal but before our guarded write lands
	siteRepo.beforeMarkFeatured = func() {
		siteRepo.beforeMarkFeatured = nil
		won, err := siteRepo.MarkFeatured("site-1", now.Add(7*24*time.Hour), now)
		require.NoError(t, err)
		require.True(t, won)
	}

	featured, err := uc.EvaluatePromotion(context.Background(), "site-1")
	require.NoError(t, err)
	assert.False(t, featured)
	assert.Zero(t, publisher.published())
}

func TestEvaluatePromotion_FeaturedDurationFollowsTier(t *testing.T) {
	cases := map[domain.Tier]time.Duration{
		domain.TierFree:       7 * 24 * time.Hour,
		domain.TierPro:        14 * 24 * time.Hour,
		domain.TierBusiness:   21 * 24 * time.Hour,
		domain.TierEnterprise: 28 * 24 * time.Hour,
	}

	for tier, duration := range cases {
		siteRepo := newFakeSiteRepo()
		ledger := newFakeLedger()
		identity := newFakeIdentity()
		identity.tiers["owner-1"] = tier
		now := time.Now()

		require.NoError(t, siteRepo.CreateSite(&domain.Site{
			ID: "site-1", OwnerID: "owner-1", State: domain.PromotionNormal,
			FeatureBaselineAt: now.Add(-time.Hour), CreatedAt: now.Add(-time.Hour),
		}))
		appendShares(t, ledger, "site-1", 5, now)

		uc := newPromotionUsecaseForTest(siteRepo, ledger, &fakeShowcaseRepo{}, identity)
		featured, err := uc.EvaluatePromotion(context.Background(), "site-1")
		require.NoError(t, err)
		require.True(t, featured, "tier %s", tier)

		site, _ := siteRepo.GetSiteByID("site-1")
		require.NotNil(t, site.FeaturedUntil)
		assert.WithinDuration(t, time.Now().Add(duration), *site.FeaturedUntil, 5*time.Second, "tier %s", tier)
	}
}

func TestExpireFeatured_ResetsStateAndBaseline(t *testing.T) {
	siteRepo := newFakeSiteRepo()
	ledger := newFakeLedger()
	now := time.Now()

	past := now.Add(-time.Minute)
	oldBaseline := now.Add(-15 * 24 * time.Hour)
	require.NoError(t, siteRepo.CreateSite(&domain.Site{
		ID: "site-1", OwnerID: "owner-1", State: domain.PromotionAutoFeatured,
		FeaturedUntil: &past, FeatureBaselineAt: oldBaseline,
		CreatedAt: now.Add(-20 * 24 * time.Hour),
	}))

	uc := newPromotionUsecaseForTest(siteRepo, ledger, &fakeShowcaseRepo{}, newFakeIdentity())
	require.NoError(t, uc.ExpireFeatured(context.Background()))

	site, _ := siteRepo.GetSiteByID("site-1")
	assert.Equal(t, domain.PromotionNormal, site.State)
	assert.Nil(t, site.FeaturedUntil)
	assert.True(t, site.FeatureBaselineAt.After(oldBaseline))

	// shares admitted before the reset no longer count toward the threshold
	appendShares(t, ledger, "site-1", 4, now.Add(-2*time.Minute))
	featured, err := uc.EvaluatePromotion(context.Background(), "site-1")
	require.NoError(t, err)
	assert.False(t, featured)
}

func TestRefreshShowcase_OrdersAndFiltersByTier(t *testing.T) {
	siteRepo := newFakeSiteRepo()
	identity := newFakeIdentity()
	identity.tiers["pro-owner"] = domain.TierPro
	identity.tiers["biz-owner"] = domain.TierBusiness
	identity.tiers["free-owner"] = domain.TierFree
	now := time.Now()

	sites := []*domain.Site{
		{ID: "low", OwnerID: "pro-owner", ViralScore: 10, CreatedAt: now.Add(-48 * time.Hour)},
		{ID: "high", OwnerID: "biz-owner", ViralScore: 90, CreatedAt: now.Add(-24 * time.Hour)},
		{ID: "free", OwnerID: "free-owner", ViralScore: 100, CreatedAt: now},
		{ID: "pinned", OwnerID: "pro-owner", ViralScore: 1, ShowcasePinned: true, CreatedAt: now},
		{ID: "optout", OwnerID: "biz-owner", ViralScore: 80, ShowcaseOptOut: true, CreatedAt: now},
		{ID: "zero", OwnerID: "biz-owner", ViralScore: 0, CreatedAt: now},
	}
	for _, site := range sites {
		require.NoError(t, siteRepo.CreateSite(site))
	}

	showcaseRepo := &fakeShowcaseRepo{}
	uc := newPromotionUsecaseForTest(siteRepo, newFakeLedger(), showcaseRepo, identity)

	entries, err := uc.RefreshShowcase(context.Background())
	require.NoError(t, err)

	ids := make([]string, len(entries))
	for i, entry := range entries {
		ids[i] = entry.SiteID
		assert.Equal(t, i+1, entry.Rank)
	}
	// pinned first, then by score; free tier, opt-out, and zero score are out
	assert.Equal(t, []string{"pinned", "high", "low"}, ids)

	stored, err := uc.GetShowcase(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestRefreshShowcase_CapsEntries(t *testing.T) {
	siteRepo := newFakeSiteRepo()
	identity := newFakeIdentity()
	now := time.Now()

	for i := 0; i < 6; i++ {
		id := "site-" + string(rune('a'+i))
		owner := "owner-" + string(rune('a'+i))
		identity.tiers[owner] = domain.TierPro
		require.NoError(t, siteRepo.CreateSite(&domain.Site{
			ID: id, OwnerID: owner, ViralScore: float64(i + 1), CreatedAt: now,
		}))
	}

	uc := NewDefaultPromotionUsecase(
		siteRepo, newFakeLedger(), &fakeShowcaseRepo{}, identity, &fakePublisher{},
		"growth-events", testMetrics(), 5, domain.TierPro, 3, testLogger())

	entries, err := uc.RefreshShowcase(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.InDelta(t, 6.0, entries[0].Score, 1e-9)
}

func TestRefreshShowcase_SyncsEligibilityFlag(t *testing.T) {
	siteRepo := newFakeSiteRepo()
	identity := newFakeIdentity()
	identity.tiers["owner-1"] = domain.TierPro
	now := time.Now()

	require.NoError(t, siteRepo.CreateSite(&domain.Site{
		ID: "site-1", OwnerID: "owner-1", ViralScore: 5, CreatedAt: now,
	}))

	uc := newPromotionUsecaseForTest(siteRepo, newFakeLedger(), &fakeShowcaseRepo{}, identity)
	_, err := uc.RefreshShowcase(context.Background())
	require.NoError(t, err)

	site, _ := siteRepo.GetSiteByID("site-1")
	assert.True(t, site.ShowcaseEligible)

	// owner downgraded: next refresh clears the flag and drops the entry
	identity.tiers["owner-1"] = domain.TierFree
	entries, err := uc.RefreshShowcase(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)

	site, _ = siteRepo.GetSiteByID("site-1")
	assert.False(t, site.ShowcaseEligible)
}
