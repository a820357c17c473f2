package strategies

import (
	"context"
	"time"

	"github.com/aegntic/growth-service/internal/domain"
)

// EventProbe carries the attributes of an incoming event that admission
// rules check. Strategies never see or touch ledger rows directly.
type EventProbe struct {
	SiteID       string
	ActorID      string
	ActorAddress string
	Kind         domain.EventKind
	Platform     domain.Platform
	OccurredAt   time.Time
}

// AdmissionStrategy is one admission rule.
type AdmissionStrategy interface {
	Name() string
	Check(ctx context.Context, probe *EventProbe) (*domain.CheckResult, error)
	GetDescription() string
}
