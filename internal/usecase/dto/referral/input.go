package referral

import "time"

type CreateRelationshipInput struct {
	ReferrerID string
	RefereeID  string
	StartedAt  time.Time
}
