package repository

import (
	"context"

	"github.com/aegntic/growth-service/internal/domain"
	"github.com/aegntic/growth-service/internal/infrastructure/postgres/mappers"
	"github.com/aegntic/growth-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultShowcaseRepository struct {
	DB *gorm.DB
}

func NewDefaultShowcaseRepository(db *gorm.DB) *DefaultShowcaseRepository {
	return &DefaultShowcaseRepository{DB: db}
}

// ReplaceSnapshot writes the new generation and drops every older one in a
// single transaction. Readers either see the previous snapshot or the new
// one, never a mix.
func (r *DefaultShowcaseRepository) ReplaceSnapshot(ctx context.Context, entries []*domain.ShowcaseEntry) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var generation string
		if len(entries) > 0 {
			generation = entries[0].Generation
			entryModels := make([]*models.ShowcaseEntryModel, len(entries))
			for i, entry := range entries {
				entryModels[i] = mappers.ToGORMShowcaseEntry(entry)
			}
			if err := tx.Create(entryModels).Error; err != nil {
				return err
			}
		}

		return tx.
			Where("generation <> ?", generation).
			Delete(&models.ShowcaseEntryModel{}).Error
	})
}

func (r *DefaultShowcaseRepository) GetSnapshot(ctx context.Context) ([]*domain.ShowcaseEntry, error) {
	var latest models.ShowcaseEntryModel
	err := r.DB.WithContext(ctx).
		Order("refreshed_at DESC").
		First(&latest).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return []*domain.ShowcaseEntry{}, nil
		}
		return nil, err
	}

	var entryModels []models.ShowcaseEntryModel
	if err := r.DB.WithContext(ctx).
		Where("generation = ?", latest.Generation).
		Order("rank ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]*domain.ShowcaseEntry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = mappers.ToDomainShowcaseEntry(&model)
	}
	return entries, nil
}
