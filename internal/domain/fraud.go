package domain

import (
	"context"
	"time"
)

// CheckResult contains the outcome of a single admission rule check.
type CheckResult struct {
	RuleName     string      `json:"rule_name"`
	Passed       bool        `json:"passed"`
	CurrentValue interface{} `json:"current_value"`
	Threshold    interface{} `json:"threshold"`
	Message      string      `json:"message"`
}

// AdmissionReport aggregates all rule checks for one incoming event.
type AdmissionReport struct {
	SiteID      string         `json:"site_id"`
	ActorID     string         `json:"actor_id"`
	CheckedAt   time.Time      `json:"checked_at"`
	AllPassed   bool           `json:"all_passed"`
	Results     []*CheckResult `json:"results"`
	FailedRules []string       `json:"failed_rules,omitempty"`
}

func (r *AdmissionReport) Reason() string {
	if len(r.FailedRules) == 0 {
		return ""
	}
	return r.FailedRules[0]
}

// RejectedEvent is the audit copy of an event that failed admission.
// Rejected events never reach the ledger and never affect scoring.
type RejectedEvent struct {
	ID           string
	SiteID       string
	ActorID      string
	ActorAddress string
	Kind         EventKind
	Platform     Platform
	Reason       string
	OccurredAt   time.Time
	RejectedAt   time.Time
}

type RejectedEventRepository interface {
	CreateRejectedEvent(ctx context.Context, event *RejectedEvent) error
	GetRejectedEvents(ctx context.Context, siteID string, limit int) ([]*RejectedEvent, error)
}

// ActivitySource exposes the recent-activity aggregates admission rules
// check against. Backed by the ledger store.
type ActivitySource interface {
	CountActorEvents(ctx context.Context, siteID, actorID string, window time.Duration) (int64, error)
	CountActorActivity(ctx context.Context, actorID string, window time.Duration) (int64, error)
	CountDistinctAddresses(ctx context.Context, actorID string, window time.Duration) (int64, error)
	AdmittedShareExists(ctx context.Context, siteID, actorID string, platform Platform, bucketStart time.Time) (bool, error)
}
