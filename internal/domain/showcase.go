package domain

import (
	"context"
	"time"
)

// ShowcaseEntry is one row of the ranked showcase snapshot. The snapshot is
// replaced wholesale on refresh, never patched in place.
type ShowcaseEntry struct {
	SiteID      string
	Score       float64
	Rank        int
	Pinned      bool
	Generation  string
	RefreshedAt time.Time
}

type ShowcaseRepository interface {
	ReplaceSnapshot(ctx context.Context, entries []*ShowcaseEntry) error
	GetSnapshot(ctx context.Context) ([]*ShowcaseEntry, error)
}
