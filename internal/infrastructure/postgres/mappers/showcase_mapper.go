package mappers

import (
	"github.com/aegntic/growth-service/internal/domain"
	"github.com/aegntic/growth-service/internal/infrastructure/postgres/models"
)

func ToGORMShowcaseEntry(entry *domain.ShowcaseEntry) *models.ShowcaseEntryModel {
	return &models.ShowcaseEntryModel{
		SiteID:      entry.SiteID,
		Score:       entry.Score,
		Rank:        entry.Rank,
		Pinned:      entry.Pinned,
		Generation:  entry.Generation,
		RefreshedAt: entry.RefreshedAt,
	}
}

func ToDomainShowcaseEntry(model *models.ShowcaseEntryModel) *domain.ShowcaseEntry {
	return &domain.ShowcaseEntry{
		SiteID:      model.SiteID,
		Score:       model.Score,
		Rank:        model.Rank,
		Pinned:      model.Pinned,
		Generation:  model.Generation,
		RefreshedAt: model.RefreshedAt,
	}
}
