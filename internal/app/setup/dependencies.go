package setup

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aegntic/growth-service/internal/client"
	"github.com/aegntic/growth-service/internal/config"
	"github.com/aegntic/growth-service/internal/domain"
	"github.com/aegntic/growth-service/internal/infrastructure/kafka"
	"github.com/aegntic/growth-service/internal/infrastructure/logger"
	"github.com/aegntic/growth-service/internal/infrastructure/metrics"
	"github.com/aegntic/growth-service/internal/infrastructure/postgres"
	"github.com/aegntic/growth-service/internal/infrastructure/postgres/repository"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config          *config.GrowthConfig
	DB              *gorm.DB
	Logger          *slog.Logger
	GrowthPublisher *kafka.KafkaPublisher
	Metrics         *metrics.GrowthMetrics
	AuditLogger     logger.AdmissionAuditLogger
	Identity        domain.IdentityProvider
	Repositories    *Repositories
}

type Repositories struct {
	SiteRepo       domain.SiteRepository
	Ledger         domain.EventLedger
	ActivitySource domain.ActivitySource
	RejectedRepo   domain.RejectedEventRepository
	ReferralRepo   domain.ReferralRepository
	CommissionRepo domain.CommissionRepository
	ShowcaseRepo   domain.ShowcaseRepository
}

func InitializeDependencies() (*Dependencies, error) {
	cfg := config.MustLoad()

	log := newLogger(cfg)
	slog.SetDefault(log)

	db := postgres.MustInitDB(cfg)

	growthPublisher := kafka.NewKafkaPublisher(
		[]string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)},
		cfg.KafkaService.Topic)

	ledgerRepo := repository.NewDefaultEventLedger(db, cfg.FraudGuard.DedupBucket)

	repos := &Repositories{
		SiteRepo:       repository.NewDefaultSiteRepository(db),
		Ledger:         ledgerRepo,
		ActivitySource: ledgerRepo,
		RejectedRepo:   repository.NewDefaultRejectedEventRepository(db),
		ReferralRepo:   repository.NewDefaultReferralRepository(db),
		CommissionRepo: repository.NewDefaultCommissionRepository(db),
		ShowcaseRepo:   repository.NewDefaultShowcaseRepository(db),
	}

	identityClient := client.NewHTTPIdentityClient(
		fmt.Sprintf("%s:%s", cfg.IdentityService.Host, cfg.IdentityService.Port))

	return &Dependencies{
		Config:          cfg,
		DB:              db,
		Logger:          log,
		GrowthPublisher: growthPublisher,
		Metrics:         metrics.NewGrowthMetrics(),
		AuditLogger:     logger.NewPGAdmissionAuditLogger(db),
		Identity:        identityClient,
		Repositories:    repos,
	}, nil
}

func newLogger(cfg *config.GrowthConfig) *slog.Logger {
	var level slog.Level
	switch cfg.LogConfig.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogConfig.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
