package site

import "time"

type SiteMetricsOutput struct {
	SiteID        string
	Score         float64
	ShareCount    int64
	Featured      bool
	FeaturedUntil *time.Time
}
