package strategies

import (
	"context"
	"fmt"

	"github.com/aegntic/growth-service/internal/domain"
	"github.com/aegntic/growth-service/internal/fraudguard/rules"
)

// DuplicateShareStrategy rejects a share whose (site, actor, platform,
// time-bucket) key is already admitted. The ledger's unique index is the
// final arbiter under races; this check answers fast for the common case.
type DuplicateShareStrategy struct {
	source domain.ActivitySource
	config rules.DedupConfig
}

func NewDuplicateShareStrategy(source domain.ActivitySource, config rules.DedupConfig) *DuplicateShareStrategy {
	return &DuplicateShareStrategy{source: source, config: config}
}

func (s *DuplicateShareStrategy) Name() string {
	return "duplicate_share"
}

func (s *DuplicateShareStrategy) GetDescription() string {
	return "Admits one share per site/actor/platform per time bucket"
}

func (s *DuplicateShareStrategy) Check(ctx context.Context, probe *EventProbe) (*domain.CheckResult, error) {
	if err := s.config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if probe.Kind != domain.EventKindShare {
		return &domain.CheckResult{
			RuleName:     s.Name(),
			Passed:       true,
			CurrentValue: false,
			Threshold:    s.config.Bucket.String(),
			Message:      "not a share event",
		}, nil
	}

	bucketStart := probe.OccurredAt.UTC().Truncate(s.config.Bucket)
	exists, err := s.source.AdmittedShareExists(ctx, probe.SiteID, probe.ActorID, probe.Platform, bucketStart)
	if err != nil {
		return nil, fmt.Errorf("failed to check admitted shares: %w", err)
	}

	return &domain.CheckResult{
		RuleName:     s.Name(),
		Passed:       !exists,
		CurrentValue: exists,
		Threshold:    s.config.Bucket.String(),
		Message: fmt.Sprintf("share key (site=%s actor=%s platform=%s bucket=%s) duplicate=%v",
			probe.SiteID, probe.ActorID, probe.Platform, bucketStart.Format("2006-01-02T15:04"), exists),
	}, nil
}
