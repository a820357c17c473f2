package engine

import (
	"log/slog"
	"time"

	"context"

	"github.com/aegntic/growth-service/internal/domain"
	"github.com/aegntic/growth-service/internal/fraudguard/strategies"
)

// AdmissionEngine runs every registered rule against an incoming event.
// It is a pure gate: no Site or ledger state is mutated here.
type AdmissionEngine struct {
	strategies []strategies.AdmissionStrategy
	logger     *slog.Logger
}

func NewAdmissionEngine(logger *slog.Logger) *AdmissionEngine {
	return &AdmissionEngine{
		strategies: make([]strategies.AdmissionStrategy, 0, 3),
		logger:     logger,
	}
}

// RegisterStrategy appends a rule. Rules run in registration order.
func (e *AdmissionEngine) RegisterStrategy(strategy strategies.AdmissionStrategy) {
	e.strategies = append(e.strategies, strategy)
	e.logger.Info("registered admission strategy", "name", strategy.Name())
}

// CheckEvent evaluates all rules and aggregates the verdicts. A rule whose
// check errors is skipped rather than failing the whole admission: the
// ledger's own constraints still backstop duplicates.
func (e *AdmissionEngine) CheckEvent(ctx context.Context, probe *strategies.EventProbe) (*domain.AdmissionReport, error) {
	report := &domain.AdmissionReport{
		SiteID:    probe.SiteID,
		ActorID:   probe.ActorID,
		CheckedAt: time.Now(),
		Results:   make([]*domain.CheckResult, 0, len(e.strategies)),
		AllPassed: true,
	}

	for _, strategy := range e.strategies {
		result, err := strategy.Check(ctx, probe)
		if err != nil {
			e.logger.Error("admission rule check failed", "rule", strategy.Name(), "error", err)
			continue
		}

		report.Results = append(report.Results, result)

		if !result.Passed {
			report.AllPassed = false
			report.FailedRules = append(report.FailedRules, strategy.Name())
		}
	}

	return report, nil
}
