package dto

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

type AdmissionResponse struct {
	EventID  string  `json:"event_id"`
	Admitted bool    `json:"admitted"`
	Reason   string  `json:"reason,omitempty"`
	Score    float64 `json:"score,omitempty"`
}

type SiteResponse struct {
	SiteID        string     `json:"site_id"`
	OwnerID       string     `json:"owner_id"`
	State         string     `json:"state"`
	ViralScore    float64    `json:"viral_score"`
	ShareCount    int64      `json:"share_count"`
	FeaturedUntil *time.Time `json:"featured_until,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type SiteMetricsResponse struct {
	SiteID        string     `json:"site_id"`
	Score         float64    `json:"score"`
	ShareCount    int64      `json:"share_count"`
	Featured      bool       `json:"featured"`
	FeaturedUntil *time.Time `json:"featured_until,omitempty"`
}

type ShowcaseEntryResponse struct {
	SiteID      string    `json:"site_id"`
	Score       float64   `json:"score"`
	Rank        int       `json:"rank"`
	Pinned      bool      `json:"pinned"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

type RelationshipResponse struct {
	ID         string    `json:"id"`
	ReferrerID string    `json:"referrer_id"`
	RefereeID  string    `json:"referee_id"`
	Status     string    `json:"status"`
	StartedAt  time.Time `json:"started_at"`
}

type CommissionRecordResponse struct {
	ID          string     `json:"id"`
	ReferrerID  string     `json:"referrer_id"`
	RefereeID   string     `json:"referee_id"`
	PeriodStart time.Time  `json:"period_start"`
	PeriodEnd   time.Time  `json:"period_end"`
	BaseAmount  float64    `json:"base_amount"`
	AppliedRate float64    `json:"applied_rate"`
	BonusRate   float64    `json:"bonus_rate,omitempty"`
	RateTier    string     `json:"rate_tier"`
	AgeMonths   int        `json:"age_months"`
	Amount      float64    `json:"amount"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type RejectedEventResponse struct {
	ID         string    `json:"id"`
	SiteID     string    `json:"site_id"`
	ActorID    string    `json:"actor_id"`
	Kind       string    `json:"kind"`
	Platform   string    `json:"platform,omitempty"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
	RejectedAt time.Time `json:"rejected_at"`
}
