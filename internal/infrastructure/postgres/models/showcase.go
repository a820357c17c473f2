package models

import "time"

type ShowcaseEntryModel struct {
	ID          uint   `gorm:"primaryKey"`
	SiteID      string `gorm:"not null;index"`
	Score       float64
	Rank        int `gorm:"not null"`
	Pinned      bool
	Generation  string    `gorm:"not null;index"`
	RefreshedAt time.Time `gorm:"not null"`
}

func (ShowcaseEntryModel) TableName() string {
	return "showcase_entries"
}
