package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/aegntic/growth-service/internal/usecase"
	"github.com/robfig/cron/v3"
)

// BackgroundTasks owns the periodic jobs: the featured-window expiry sweep,
// the engagement batch recompute, and the scheduled showcase refresh.
type BackgroundTasks struct {
	ScoreUsecase     usecase.ScoreUsecase
	PromotionUsecase usecase.PromotionUsecase

	ExpirySweep time.Duration
	BatchWindow time.Duration
	BatchSpec   string
	RefreshSpec string

	logger *slog.Logger
	cron   *cron.Cron
}

func NewBackgroundTasks(
	scoreUC usecase.ScoreUsecase,
	promotionUC usecase.PromotionUsecase,
	expirySweep time.Duration,
	batchWindow time.Duration,
	batchSpec string,
	refreshSpec string,
	logger *slog.Logger) *BackgroundTasks {

	if expirySweep <= 0 {
		expirySweep = time.Minute
	}

	return &BackgroundTasks{
		ScoreUsecase:     scoreUC,
		PromotionUsecase: promotionUC,
		ExpirySweep:      expirySweep,
		BatchWindow:      batchWindow,
		BatchSpec:        batchSpec,
		RefreshSpec:      refreshSpec,
		logger:           logger,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) error {
	go bt.startFeaturedExpirySweep(ctx)

	bt.cron = cron.New()

	if _, err := bt.cron.AddFunc(bt.BatchSpec, func() {
		if err := bt.ScoreUsecase.RecomputeBatch(ctx, bt.BatchWindow); err != nil {
			bt.logger.Error("batch recompute run failed", "error", err)
		}
	}); err != nil {
		return err
	}

	if _, err := bt.cron.AddFunc(bt.RefreshSpec, func() {
		if _, err := bt.PromotionUsecase.RefreshShowcase(ctx); err != nil {
			bt.logger.Error("showcase refresh run failed", "error", err)
		}
	}); err != nil {
		return err
	}

	bt.cron.Start()
	return nil
}

func (bt *BackgroundTasks) Stop() {
	if bt.cron != nil {
		<-bt.cron.Stop().Done()
	}
}

func (bt *BackgroundTasks) startFeaturedExpirySweep(ctx context.Context) {
	ticker := time.NewTicker(bt.ExpirySweep)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := bt.PromotionUsecase.ExpireFeatured(ctx); err != nil {
				bt.logger.Error("featured expiry sweep failed", "error", err)
			}
		}
	}
}
