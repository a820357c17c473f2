package usecase

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/aegntic/growth-service/internal/domain"
	"github.com/aegntic/growth-service/internal/infrastructure/kafka"
	"github.com/aegntic/growth-service/internal/infrastructure/metrics"
	"github.com/google/uuid"
)

type PromotionUsecase interface {
	EvaluatePromotion(ctx context.Context, siteID string) (bool, error)
	ExpireFeatured(ctx context.Context) error
	RefreshShowcase(ctx context.Context) ([]*domain.ShowcaseEntry, error)
	GetShowcase(ctx context.Context) ([]*domain.ShowcaseEntry, error)
	SetShowcasePinned(siteID string, pinned bool) error
	SetShowcaseOptOut(siteID string, optOut bool) error
}

var featuredDurations = map[domain.Tier]time.Duration{
	domain.TierFree:       7 * 24 * time.Hour,
	domain.TierPro:        14 * 24 * time.Hour,
	domain.TierBusiness:   21 * 24 * time.Hour,
	domain.TierEnterprise: 28 * 24 * time.Hour,
}

func featuredDuration(tier domain.Tier) time.Duration {
	if d, ok := featuredDurations[tier]; ok {
		return d
	}
	return featuredDurations[domain.TierFree]
}

type DefaultPromotionUsecase struct {
	SiteRepo     domain.SiteRepository
	Ledger       domain.EventLedger
	ShowcaseRepo domain.ShowcaseRepository
	Identity     domain.IdentityProvider
	Publisher    domain.PublisherPort
	Topic        string
	Metrics      *metrics.GrowthMetrics

	ShareThreshold int
	EligibleTier   domain.Tier
	MaxEntries     int

	logger *slog.Logger
	now    func() time.Time
}

func NewDefaultPromotionUsecase(
	siteRepo domain.SiteRepository,
	ledger domain.EventLedger,
	showcaseRepo domain.ShowcaseRepository,
	identity domain.IdentityProvider,
	pub domain.PublisherPort,
	topic string,
	growthMetrics *metrics.GrowthMetrics,
	shareThreshold int,
	eligibleTier domain.Tier,
	maxEntries int,
	logger *slog.Logger) *DefaultPromotionUsecase {

	if shareThreshold <= 0 {
		shareThreshold = 5
	}
	if maxEntries <= 0 {
		maxEntries = 50
	}

	return &DefaultPromotionUsecase{
		SiteRepo:       siteRepo,
		Ledger:         ledger,
		ShowcaseRepo:   showcaseRepo,
		Identity:       identity,
		Publisher:      pub,
		Topic:          topic,
		Metrics:        growthMetrics,
		ShareThreshold: shareThreshold,
		EligibleTier:   eligibleTier,
		MaxEntries:     maxEntries,
		logger:         logger,
		now:            time.Now,
	}
}

// EvaluatePromotion checks whether the admitted share count since the last
// transition crossed the threshold and, if so, features the site. The
// guarded state update in MarkFeatured makes the transition fire once per
// crossing even under concurrent admissions: the loser of the race sees no
// row updated and must not report, count, or publish the transition.
func (uc *DefaultPromotionUsecase) EvaluatePromotion(ctx context.Context, siteID string) (bool, error) {
	site, err := uc.SiteRepo.GetSiteByID(siteID)
	if err != nil {
		return false, err
	}

	if site.State == domain.PromotionAutoFeatured {
		return false, nil
	}

	shares, err := uc.Ledger.CountShares(ctx, siteID, site.FeatureBaselineAt)
	if err != nil {
		return false, err
	}
	if shares < int64(uc.ShareThreshold) {
		return false, nil
	}

	tier := uc.ownerTier(ctx, site.OwnerID)
	transitionAt := uc.now()
	until := transitionAt.Add(featuredDuration(tier))

	won, err := uc.SiteRepo.MarkFeatured(siteID, until, transitionAt)
	if err != nil {
		return false, err
	}
	if !won {
		return false, nil
	}

	uc.Metrics.FeaturedTransitionsTotal.WithLabelValues(string(tier)).Inc()
	uc.logger.Info("site auto-featured",
		"site_id", siteID, "tier", tier, "shares", shares, "featured_until", until)

	if uc.Publisher != nil {
		err := kafka.PublishGrowthEvent(uc.Publisher, uc.Topic, kafka.GrowthEvent{
			Type:          kafka.EventTypeSiteFeatured,
			SiteID:        siteID,
			OwnerID:       site.OwnerID,
			FeaturedUntil: &until,
			OccurredAt:    transitionAt,
		})
		if err != nil {
			uc.logger.Error("failed to publish featured event", "site_id", siteID, "error", err)
		}
	}

	return true, nil
}

// ExpireFeatured sweeps featured windows that have passed and returns the
// sites to normal. The baseline reset means a site has to cross the share
// threshold again, from scratch, to re-enter.
func (uc *DefaultPromotionUsecase) ExpireFeatured(ctx context.Context) error {
	expired, err := uc.SiteRepo.FindExpiredFeatured(uc.now())
	if err != nil {
		return err
	}

	for _, site := range expired {
		if err := uc.SiteRepo.ClearFeatured(site.ID, uc.now()); err != nil {
			uc.logger.Error("failed to expire featured site", "site_id", site.ID, "error", err)
			continue
		}

		uc.Metrics.FeaturedExpirationsTotal.Inc()

		if uc.Publisher != nil {
			err := kafka.PublishGrowthEvent(uc.Publisher, uc.Topic, kafka.GrowthEvent{
				Type:       kafka.EventTypeFeatureExpired,
				SiteID:     site.ID,
				OwnerID:    site.OwnerID,
				OccurredAt: uc.now(),
			})
			if err != nil {
				uc.logger.Error("failed to publish expiry event", "site_id", site.ID, "error", err)
			}
		}
	}

	return nil
}

// RefreshShowcase rebuilds the ranked snapshot wholesale. Pinned sites come
// first; the rest order by score descending with newer creation winning
// ties. A superseded refresh can be cancelled via ctx at any point.
func (uc *DefaultPromotionUsecase) RefreshShowcase(ctx context.Context) ([]*domain.ShowcaseEntry, error) {
	started := uc.now()

	sites, err := uc.SiteRepo.ListScoredSites()
	if err != nil {
		return nil, err
	}

	tierCache := make(map[string]domain.Tier, len(sites))
	eligible := make([]*domain.Site, 0, len(sites))
	for _, site := range sites {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		tier, ok := tierCache[site.OwnerID]
		if !ok {
			tier = uc.ownerTier(ctx, site.OwnerID)
			tierCache[site.OwnerID] = tier
		}

		isEligible := tier.AtLeast(uc.EligibleTier)
		if isEligible != site.ShowcaseEligible {
			if err := uc.SiteRepo.SetShowcaseEligible(site.ID, isEligible); err != nil {
				uc.logger.Error("failed to update eligibility flag", "site_id", site.ID, "error", err)
			}
		}
		if isEligible {
			eligible = append(eligible, site)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if a.ShowcasePinned != b.ShowcasePinned {
			return a.ShowcasePinned
		}
		if a.ViralScore != b.ViralScore {
			return a.ViralScore > b.ViralScore
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	if len(eligible) > uc.MaxEntries {
		eligible = eligible[:uc.MaxEntries]
	}

	generation := uuid.New().String()
	refreshedAt := uc.now()
	entries := make([]*domain.ShowcaseEntry, len(eligible))
	for i, site := range eligible {
		entries[i] = &domain.ShowcaseEntry{
			SiteID:      site.ID,
			Score:       site.ViralScore,
			Rank:        i + 1,
			Pinned:      site.ShowcasePinned,
			Generation:  generation,
			RefreshedAt: refreshedAt,
		}
	}

	if err := uc.ShowcaseRepo.ReplaceSnapshot(ctx, entries); err != nil {
		return nil, err
	}

	uc.Metrics.ShowcaseRefreshTotal.Inc()
	uc.Metrics.ShowcaseSize.Set(float64(len(entries)))
	uc.Metrics.ShowcaseRefreshDuration.Observe(uc.now().Sub(started).Seconds())

	return entries, nil
}

func (uc *DefaultPromotionUsecase) GetShowcase(ctx context.Context) ([]*domain.ShowcaseEntry, error) {
	return uc.ShowcaseRepo.GetSnapshot(ctx)
}

func (uc *DefaultPromotionUsecase) SetShowcasePinned(siteID string, pinned bool) error {
	return uc.SiteRepo.SetShowcasePinned(siteID, pinned)
}

func (uc *DefaultPromotionUsecase) SetShowcaseOptOut(siteID string, optOut bool) error {
	return uc.SiteRepo.SetShowcaseOptOut(siteID, optOut)
}

func (uc *DefaultPromotionUsecase) ownerTier(ctx context.Context, ownerID string) domain.Tier {
	tier, err := uc.Identity.OwnerTier(ctx, ownerID)
	if err != nil {
		uc.logger.Warn("owner tier lookup failed, defaulting to free", "owner_id", ownerID, "error", err)
		return domain.TierFree
	}
	return tier
}
