package kafka

import (
	"encoding/json"
	"time"

	"github.com/aegntic/growth-service/internal/domain"
)

const (
	EventTypeScoreRecomputed = "score_recomputed"
	EventTypeSiteFeatured    = "site_featured"
	EventTypeFeatureExpired  = "feature_expired"
	EventTypeCommissionPosted = "commission_posted"
)

// GrowthEvent is the envelope published to the growth-events topic.
type GrowthEvent struct {
	Type       string    `json:"type"`
	SiteID     string    `json:"site_id,omitempty"`
	OwnerID    string    `json:"owner_id,omitempty"`
	ReferrerID string    `json:"referrer_id,omitempty"`
	Score      float64   `json:"score,omitempty"`
	ShareCount int64     `json:"share_count,omitempty"`
	FeaturedUntil *time.Time `json:"featured_until,omitempty"`
	CommissionID  string     `json:"commission_id,omitempty"`
	Amount        float64    `json:"amount,omitempty"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

// PublishGrowthEvent marshals and publishes one envelope, keyed so that all
// events for one site (or referrer) stay ordered on a partition.
func PublishGrowthEvent(pub domain.PublisherPort, topic string, event GrowthEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	key := event.SiteID
	if key == "" {
		key = event.ReferrerID
	}

	return pub.Publish(topic, domain.Message{Key: []byte(key), Value: value})
}
