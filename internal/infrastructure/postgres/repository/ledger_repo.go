package repository

import (
	"context"
	"errors"
	"time"

	"github.com/aegntic/growth-service/internal/domain"
	"github.com/aegntic/growth-service/internal/infrastructure/postgres/mappers"
	"github.com/aegntic/growth-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

// DefaultEventLedger persists admitted events append-only. It also serves
// as the activity source for admission checks, so the ledger stays the
// single place recent-actor aggregates are read from.
type DefaultEventLedger struct {
	DB          *gorm.DB
	dedupBucket time.Duration
}

func NewDefaultEventLedger(db *gorm.DB, dedupBucket time.Duration) *DefaultEventLedger {
	if dedupBucket <= 0 {
		dedupBucket = time.Hour
	}
	return &DefaultEventLedger{DB: db, dedupBucket: dedupBucket}
}

func (r *DefaultEventLedger) Append(ctx context.Context, event *domain.LedgerEvent) (string, error) {
	model := mappers.ToGORMLedgerEvent(event)
	if event.Kind == domain.EventKindShare {
		model.BucketStart = event.OccurredAt.UTC().Truncate(r.dedupBucket)
	} else {
		// engagement events are not deduplicated; keep the bucket exact
		model.BucketStart = event.OccurredAt.UTC()
	}

	if err := r.DB.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", domain.ErrValidationRejected
		}
		return "", err
	}

	event.Seq = model.Seq
	return model.ID, nil
}

func (r *DefaultEventLedger) EventsSince(ctx context.Context, siteID string, since time.Time) ([]*domain.LedgerEvent, error) {
	var eventModels []models.LedgerEventModel
	if err := r.DB.WithContext(ctx).
		Where("site_id = ? AND occurred_at >= ?", siteID, since).
		Order("occurred_at ASC, seq ASC").
		Find(&eventModels).Error; err != nil {
		return nil, err
	}

	events := make([]*domain.LedgerEvent, len(eventModels))
	for i, model := range eventModels {
		events[i] = mappers.ToDomainLedgerEvent(&model)
	}
	return events, nil
}

func (r *DefaultEventLedger) Cursor(ctx context.Context, siteID string) (int64, error) {
	var cursor int64
	err := r.DB.WithContext(ctx).
		Model(&models.LedgerEventModel{}).
		Where("site_id = ?", siteID).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&cursor).Error
	if err != nil {
		return 0, err
	}
	return cursor, nil
}

// Snapshot captures the cursor first, then reads only rows at or below it,
// so an append racing the read is never half-visible.
func (r *DefaultEventLedger) Snapshot(ctx context.Context, siteID string) (*domain.LedgerSnapshot, error) {
	cursor, err := r.Cursor(ctx, siteID)
	if err != nil {
		return nil, errors.Join(domain.ErrInconsistentLedgerRead, err)
	}

	var eventModels []models.LedgerEventModel
	if err := r.DB.WithContext(ctx).
		Where("site_id = ? AND seq <= ?", siteID, cursor).
		Order("occurred_at ASC, seq ASC").
		Find(&eventModels).Error; err != nil {
		return nil, errors.Join(domain.ErrInconsistentLedgerRead, err)
	}

	events := make([]*domain.LedgerEvent, len(eventModels))
	for i, model := range eventModels {
		events[i] = mappers.ToDomainLedgerEvent(&model)
	}

	return &domain.LedgerSnapshot{
		SiteID: siteID,
		Cursor: cursor,
		Events: events,
	}, nil
}

func (r *DefaultEventLedger) CountShares(ctx context.Context, siteID string, since time.Time) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.LedgerEventModel{}).
		Where("site_id = ? AND kind = ? AND admitted_at >= ?", siteID, domain.EventKindShare, since).
		Count(&count).Error
	return count, err
}

func (r *DefaultEventLedger) SitesWithEventsSince(ctx context.Context, since time.Time) ([]string, error) {
	var siteIDs []string
	err := r.DB.WithContext(ctx).
		Model(&models.LedgerEventModel{}).
		Where("admitted_at >= ?", since).
		Distinct("site_id").
		Pluck("site_id", &siteIDs).Error
	return siteIDs, err
}

// ================= activity source for admission checks =================

func (r *DefaultEventLedger) CountActorEvents(ctx context.Context, siteID, actorID string, window time.Duration) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.LedgerEventModel{}).
		Where("site_id = ? AND actor_id = ? AND admitted_at >= ?", siteID, actorID, time.Now().Add(-window)).
		Count(&count).Error
	return count, err
}

func (r *DefaultEventLedger) CountActorActivity(ctx context.Context, actorID string, window time.Duration) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.LedgerEventModel{}).
		Where("actor_id = ? AND admitted_at >= ?", actorID, time.Now().Add(-window)).
		Count(&count).Error
	return count, err
}

func (r *DefaultEventLedger) CountDistinctAddresses(ctx context.Context, actorID string, window time.Duration) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.LedgerEventModel{}).
		Where("actor_id = ? AND admitted_at >= ? AND actor_address <> ''", actorID, time.Now().Add(-window)).
		Distinct("actor_address").
		Count(&count).Error
	return count, err
}

func (r *DefaultEventLedger) AdmittedShareExists(ctx context.Context, siteID, actorID string, platform domain.Platform, bucketStart time.Time) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.LedgerEventModel{}).
		Where("site_id = ? AND actor_id = ? AND platform = ? AND kind = ? AND bucket_start = ?",
			siteID, actorID, platform, domain.EventKindShare, bucketStart.UTC().Truncate(r.dedupBucket)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
