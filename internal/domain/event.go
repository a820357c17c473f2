package domain

import (
	"context"
	"time"
)

type Platform string

const (
	PlatformTwitter  Platform = "twitter"
	PlatformFacebook Platform = "facebook"
	PlatformLinkedIn Platform = "linkedin"
	PlatformReddit   Platform = "reddit"
	PlatformForum    Platform = "forum"
	PlatformEmail    Platform = "email"
	PlatformDirect   Platform = "direct"
)

var knownPlatforms = map[Platform]bool{
	PlatformTwitter:  true,
	PlatformFacebook: true,
	PlatformLinkedIn: true,
	PlatformReddit:   true,
	PlatformForum:    true,
	PlatformEmail:    true,
	PlatformDirect:   true,
}

func (p Platform) Valid() bool {
	return knownPlatforms[p]
}

type EventKind string

const (
	EventKindShare    EventKind = "SHARE"
	EventKindView     EventKind = "VIEW"
	EventKindReaction EventKind = "REACTION"
	EventKindComment  EventKind = "COMMENT"
)

func (k EventKind) Valid() bool {
	switch k {
	case EventKindShare, EventKindView, EventKindReaction, EventKindComment:
		return true
	}
	return false
}

func (k EventKind) IsEngagement() bool {
	return k != EventKindShare && k.Valid()
}

// LedgerEvent is a single admitted event in the append-only ledger.
// Seq is assigned by the ledger on append and is strictly increasing.
type LedgerEvent struct {
	ID           string
	Seq          int64
	SiteID       string
	Kind         EventKind
	Platform     Platform
	ActorID      string
	ActorAddress string
	BoostWeight  float64
	OccurredAt   time.Time
	AdmittedAt   time.Time
}

// LedgerSnapshot is a consistent read of one site's ledger bounded by Cursor.
// Events never contains a row with Seq > Cursor.
type LedgerSnapshot struct {
	SiteID string
	Cursor int64
	Events []*LedgerEvent
}

func (s *LedgerSnapshot) Shares() []*LedgerEvent {
	var shares []*LedgerEvent
	for _, ev := range s.Events {
		if ev.Kind == EventKindShare {
			shares = append(shares, ev)
		}
	}
	return shares
}

type EventLedger interface {
	Append(ctx context.Context, event *LedgerEvent) (string, error)
	EventsSince(ctx context.Context, siteID string, since time.Time) ([]*LedgerEvent, error)
	Cursor(ctx context.Context, siteID string) (int64, error)
	Snapshot(ctx context.Context, siteID string) (*LedgerSnapshot, error)
	CountShares(ctx context.Context, siteID string, since time.Time) (int64, error)
	SitesWithEventsSince(ctx context.Context, since time.Time) ([]string, error)
}
