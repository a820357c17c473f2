package dto

import "time"

type SubmitEventRequest struct {
	SiteID       string  `json:"site_id" validate:"required"`
	ActorID      string  `json:"actor_id" validate:"required"`
	ActorAddress string  `json:"actor_address"`
	Kind         string  `json:"kind" validate:"required,oneof=SHARE VIEW REACTION COMMENT"`
	Platform     string  `json:"platform"`
	BoostWeight  float64 `json:"boost_weight" validate:"gte=0"`
	OccurredAt   string  `json:"occurred_at"`
}

type RegisterSiteRequest struct {
	SiteID    string `json:"site_id" validate:"required"`
	OwnerID   string `json:"owner_id" validate:"required"`
	CreatedAt string `json:"created_at"`
}

type CreateRelationshipRequest struct {
	ReferrerID string `json:"referrer_id" validate:"required"`
	RefereeID  string `json:"referee_id" validate:"required"`
	StartedAt  string `json:"started_at"`
}

type PostCommissionRequest struct {
	RelationshipID   string  `json:"relationship_id"`
	ReferrerID       string  `json:"referrer_id"`
	RefereeID        string  `json:"referee_id"`
	PeriodStart      string  `json:"period_start" validate:"required"`
	PeriodEnd        string  `json:"period_end" validate:"required"`
	Amount           float64 `json:"amount" validate:"gt=0"`
	PerformanceBonus float64 `json:"performance_bonus" validate:"gte=0,lte=1"`
}

type MarkPaidRequest struct {
	RecordIDs []string   `json:"record_ids" validate:"required,min=1,dive,required"`
	PaidAt    *time.Time `json:"paid_at"`
}

type ShowcaseFlagRequest struct {
	Value bool `json:"value"`
}
