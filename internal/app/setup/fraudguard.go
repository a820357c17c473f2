package setup

import (
	"fmt"
	"time"

	"github.com/aegntic/growth-service/internal/fraudguard/engine"
	"github.com/aegntic/growth-service/internal/fraudguard/rules"
	"github.com/aegntic/growth-service/internal/fraudguard/strategies"
)

// InitializeFraudGuard builds the admission engine with every rule
// registered. Rule tunables come from config so operators can tighten them
// without a redeploy, only a restart.
func InitializeFraudGuard(deps *Dependencies) (*engine.AdmissionEngine, error) {
	cfg := deps.Config.FraudGuard

	velocityConfig := rules.VelocityConfig{
		MaxEvents: cfg.MaxEventsPerMinute,
		Window:    time.Minute,
	}
	if err := velocityConfig.Validate(); err != nil {
		return nil, fmt.Errorf("velocity rule config: %w", err)
	}

	sockPuppetConfig := rules.SockPuppetConfig{
		MinDistinctAddresses: cfg.MinDistinctAddresses,
		ActivityFloor:        cfg.ActivityFloor,
		Window:               cfg.ActivityWindow,
	}
	if err := sockPuppetConfig.Validate(); err != nil {
		return nil, fmt.Errorf("sock puppet rule config: %w", err)
	}

	dedupConfig := rules.DedupConfig{
		Bucket: cfg.DedupBucket,
	}
	if err := dedupConfig.Validate(); err != nil {
		return nil, fmt.Errorf("dedup rule config: %w", err)
	}

	admissionEngine := engine.NewAdmissionEngine(deps.Logger)
	admissionEngine.RegisterStrategy(strategies.NewVelocityStrategy(deps.Repositories.ActivitySource, velocityConfig))
	admissionEngine.RegisterStrategy(strategies.NewSockPuppetStrategy(deps.Repositories.ActivitySource, sockPuppetConfig))
	admissionEngine.RegisterStrategy(strategies.NewDuplicateShareStrategy(deps.Repositories.ActivitySource, dedupConfig))

	return admissionEngine, nil
}
