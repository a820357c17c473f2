package site

import "time"

type RegisterSiteInput struct {
	SiteID    string
	OwnerID   string
	CreatedAt time.Time
}
