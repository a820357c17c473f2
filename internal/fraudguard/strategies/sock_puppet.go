package strategies

import (
	"context"
	"fmt"

	"github.com/aegntic/growth-service/internal/domain"
	"github.com/aegntic/growth-service/internal/fraudguard/rules"
)

// SockPuppetStrategy rejects busy actors whose traffic comes from too few
// distinct originating addresses.
type SockPuppetStrategy struct {
	source domain.ActivitySource
	config rules.SockPuppetConfig
}

func NewSockPuppetStrategy(source domain.ActivitySource, config rules.SockPuppetConfig) *SockPuppetStrategy {
	return &SockPuppetStrategy{source: source, config: config}
}

func (s *SockPuppetStrategy) Name() string {
	return "sock_puppet"
}

func (s *SockPuppetStrategy) GetDescription() string {
	return "Requires a minimum of distinct addresses once an actor is active enough"
}

func (s *SockPuppetStrategy) Check(ctx context.Context, probe *EventProbe) (*domain.CheckResult, error) {
	if err := s.config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	activity, err := s.source.CountActorActivity(ctx, probe.ActorID, s.config.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to count actor activity: %w", err)
	}

	// low-volume actors are not judged
	if activity < int64(s.config.ActivityFloor) {
		return &domain.CheckResult{
			RuleName:     s.Name(),
			Passed:       true,
			CurrentValue: activity,
			Threshold:    s.config.MinDistinctAddresses,
			Message:      fmt.Sprintf("actor below activity floor (%d < %d)", activity, s.config.ActivityFloor),
		}, nil
	}

	distinct, err := s.source.CountDistinctAddresses(ctx, probe.ActorID, s.config.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to count distinct addresses: %w", err)
	}

	passed := distinct >= int64(s.config.MinDistinctAddresses)

	return &domain.CheckResult{
		RuleName:     s.Name(),
		Passed:       passed,
		CurrentValue: distinct,
		Threshold:    s.config.MinDistinctAddresses,
		Message: fmt.Sprintf("actor has %d events from %d distinct addresses in last %v (min: %d)",
			activity, distinct, s.config.Window, s.config.MinDistinctAddresses),
	}, nil
}
