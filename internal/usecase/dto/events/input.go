package events

import (
	"time"

	"github.com/aegntic/growth-service/internal/domain"
)

type SubmitEventInput struct {
	SiteID       string
	ActorID      string
	ActorAddress string
	Kind         domain.EventKind
	Platform     domain.Platform
	BoostWeight  float64
	OccurredAt   time.Time
}
