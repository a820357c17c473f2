package strategies

import (
	"context"
	"fmt"

	"github.com/aegntic/growth-service/internal/domain"
	"github.com/aegntic/growth-service/internal/fraudguard/rules"
)

// VelocityStrategy rejects actors hammering one site faster than the limit.
type VelocityStrategy struct {
	source domain.ActivitySource
	config rules.VelocityConfig
}

func NewVelocityStrategy(source domain.ActivitySource, config rules.VelocityConfig) *VelocityStrategy {
	return &VelocityStrategy{source: source, config: config}
}

func (s *VelocityStrategy) Name() string {
	return "event_velocity"
}

func (s *VelocityStrategy) GetDescription() string {
	return "Limits events per actor per site inside a sliding window"
}

func (s *VelocityStrategy) Check(ctx context.Context, probe *EventProbe) (*domain.CheckResult, error) {
	if err := s.config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	recentCount, err := s.source.CountActorEvents(ctx, probe.SiteID, probe.ActorID, s.config.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to count recent actor events: %w", err)
	}

	passed := recentCount < int64(s.config.MaxEvents)

	return &domain.CheckResult{
		RuleName:     s.Name(),
		Passed:       passed,
		CurrentValue: recentCount,
		Threshold:    s.config.MaxEvents,
		Message: fmt.Sprintf("actor has %d events against site in last %v (limit: %d)",
			recentCount, s.config.Window, s.config.MaxEvents),
	}, nil
}
