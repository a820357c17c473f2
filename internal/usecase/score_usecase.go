package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aegntic/growth-service/internal/domain"
	"github.com/aegntic/growth-service/internal/infrastructure/kafka"
	"github.com/aegntic/growth-service/internal/infrastructure/metrics"
)

type ScoreUsecase interface {
	Recompute(ctx context.Context, siteID, trigger string) (float64, error)
	RecomputeBatch(ctx context.Context, window time.Duration) error
}

type DefaultScoreUsecase struct {
	Ledger    domain.EventLedger
	SiteRepo  domain.SiteRepository
	Identity  domain.IdentityProvider
	Publisher domain.PublisherPort
	Topic     string
	Metrics   *metrics.GrowthMetrics
	Table     ScoreTable

	logger *slog.Logger
	now    func() time.Time
}

func NewDefaultScoreUsecase(
	ledger domain.EventLedger,
	siteRepo domain.SiteRepository,
	identity domain.IdentityProvider,
	pub domain.PublisherPort,
	topic string,
	growthMetrics *metrics.GrowthMetrics,
	table ScoreTable,
	logger *slog.Logger) *DefaultScoreUsecase {

	return &DefaultScoreUsecase{
		Ledger:    ledger,
		SiteRepo:  siteRepo,
		Identity:  identity,
		Publisher: pub,
		Topic:     topic,
		Metrics:   growthMetrics,
		Table:     table,
		logger:    logger,
		now:       time.Now,
	}
}

// Recompute rebuilds a site's score from its ledger history. Idempotent:
// the same ledger snapshot always produces the same stored score.
func (uc *DefaultScoreUsecase) Recompute(ctx context.Context, siteID, trigger string) (float64, error) {
	started := uc.now()

	site, err := uc.SiteRepo.GetSiteByID(siteID)
	if err != nil {
		uc.Metrics.RecomputeErrorsTotal.WithLabelValues(trigger).Inc()
		return 0, err
	}

	snapshot, err := uc.snapshotWithRetry(ctx, siteID)
	if err != nil {
		uc.Metrics.RecomputeErrorsTotal.WithLabelValues(trigger).Inc()
		return 0, err
	}

	tier := uc.ownerTier(ctx, site.OwnerID)
	score := uc.Table.Score(snapshot, site.CreatedAt, tier, uc.now())
	shareCount := int64(len(snapshot.Shares()))

	if err := uc.SiteRepo.UpdateScore(siteID, score, shareCount); err != nil {
		uc.Metrics.RecomputeErrorsTotal.WithLabelValues(trigger).Inc()
		return 0, err
	}

	uc.Metrics.RecomputeTotal.WithLabelValues(trigger).Inc()
	uc.Metrics.RecomputeDuration.WithLabelValues(trigger).Observe(uc.now().Sub(started).Seconds())

	if uc.Publisher != nil {
		err := kafka.PublishGrowthEvent(uc.Publisher, uc.Topic, kafka.GrowthEvent{
			Type:       kafka.EventTypeScoreRecomputed,
			SiteID:     siteID,
			OwnerID:    site.OwnerID,
			Score:      score,
			ShareCount: shareCount,
			OccurredAt: uc.now(),
		})
		if err != nil {
			uc.logger.Error("failed to publish score event", "site_id", siteID, "error", err)
		}
	}

	return score, nil
}

// RecomputeBatch refreshes every site that saw events inside the window,
// plus every site still holding a score. Covers engagement-only drift
// (views and reactions are not recomputed synchronously on admission) and
// the decay downgrades a quiet site crosses without any new events.
func (uc *DefaultScoreUsecase) RecomputeBatch(ctx context.Context, window time.Duration) error {
	siteIDs, err := uc.Ledger.SitesWithEventsSince(ctx, uc.now().Add(-window))
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(siteIDs))
	for _, siteID := range siteIDs {
		seen[siteID] = true
	}

	scored, err := uc.SiteRepo.ListScoredSites()
	if err != nil {
		return err
	}
	for _, site := range scored {
		if !seen[site.ID] {
			seen[site.ID] = true
			siteIDs = append(siteIDs, site.ID)
		}
	}

	for _, siteID := range siteIDs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := uc.Recompute(ctx, siteID, "batch"); err != nil {
			uc.logger.Error("batch recompute failed", "site_id", siteID, "error", err)
		}
	}
	return nil
}

// snapshotWithRetry retries torn ledger reads. Safe because recompute is
// idempotent.
func (uc *DefaultScoreUsecase) snapshotWithRetry(ctx context.Context, siteID string) (*domain.LedgerSnapshot, error) {
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		snapshot, err := uc.Ledger.Snapshot(ctx, siteID)
		if err == nil {
			return snapshot, nil
		}
		lastErr = err
		if !errors.Is(err, domain.ErrInconsistentLedgerRead) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * 50 * time.Millisecond):
		}
	}
	return nil, lastErr
}

func (uc *DefaultScoreUsecase) ownerTier(ctx context.Context, ownerID string) domain.Tier {
	tier, err := uc.Identity.OwnerTier(ctx, ownerID)
	if err != nil {
		uc.logger.Warn("owner tier lookup failed, defaulting to free", "owner_id", ownerID, "error", err)
		return domain.TierFree
	}
	return tier
}
