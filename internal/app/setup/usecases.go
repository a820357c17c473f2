package setup

import (
	"github.com/aegntic/growth-service/internal/domain"
	"github.com/aegntic/growth-service/internal/fraudguard/engine"
	"github.com/aegntic/growth-service/internal/usecase"
)

type UseCases struct {
	AdmissionUsecase  usecase.AdmissionUsecase
	ScoreUsecase      usecase.ScoreUsecase
	PromotionUsecase  usecase.PromotionUsecase
	CommissionUsecase usecase.CommissionUsecase
	SiteUsecase       usecase.SiteUsecase
}

func InitializeUseCases(deps *Dependencies, admissionEngine *engine.AdmissionEngine) (*UseCases, error) {
	topic := deps.Config.KafkaService.Topic

	scoreTable := usecase.DefaultScoreTable()
	scoreTable.ViewWeight = deps.Config.Scoring.ViewWeight
	scoreTable.ReactionWeight = deps.Config.Scoring.ReactionWeight
	scoreTable.CommentWeight = deps.Config.Scoring.CommentWeight

	scoreUsecase := usecase.NewDefaultScoreUsecase(
		deps.Repositories.Ledger,
		deps.Repositories.SiteRepo,
		deps.Identity,
		deps.GrowthPublisher,
		topic,
		deps.Metrics,
		scoreTable,
		deps.Logger,
	)

	promotionUsecase := usecase.NewDefaultPromotionUsecase(
		deps.Repositories.SiteRepo,
		deps.Repositories.Ledger,
		deps.Repositories.ShowcaseRepo,
		deps.Identity,
		deps.GrowthPublisher,
		topic,
		deps.Metrics,
		deps.Config.Promotion.ShareThreshold,
		domain.Tier(deps.Config.Showcase.EligibleTier),
		deps.Config.Showcase.MaxEntries,
		deps.Logger,
	)

	admissionUsecase := usecase.NewDefaultAdmissionUsecase(
		admissionEngine,
		deps.Repositories.Ledger,
		deps.Repositories.RejectedRepo,
		scoreUsecase,
		promotionUsecase,
		deps.AuditLogger,
		deps.Metrics,
		deps.Logger,
	)

	commissionUsecase := usecase.NewDefaultCommissionUsecase(
		deps.Repositories.ReferralRepo,
		deps.Repositories.CommissionRepo,
		deps.Identity,
		deps.GrowthPublisher,
		topic,
		deps.Metrics,
		deps.Logger,
	)

	siteUsecase := usecase.NewDefaultSiteUsecase(deps.Repositories.SiteRepo, deps.Logger)

	return &UseCases{
		AdmissionUsecase:  admissionUsecase,
		ScoreUsecase:      scoreUsecase,
		PromotionUsecase:  promotionUsecase,
		CommissionUsecase: commissionUsecase,
		SiteUsecase:       siteUsecase,
	}, nil
}
