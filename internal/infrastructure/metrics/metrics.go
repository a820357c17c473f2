package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// GrowthMetrics holds every metric the service exports.
type GrowthMetrics struct {
	// event ingestion
	EventsAdmittedTotal prometheus.CounterVec
	EventsRejectedTotal prometheus.CounterVec
	AdmissionDuration   prometheus.HistogramVec

	// scoring
	RecomputeTotal      prometheus.CounterVec
	RecomputeDuration   prometheus.HistogramVec
	RecomputeErrorsTotal prometheus.CounterVec

	// featuring
	FeaturedTransitionsTotal prometheus.CounterVec
	FeaturedExpirationsTotal prometheus.Counter

	// showcase
	ShowcaseRefreshTotal prometheus.Counter
	ShowcaseSize         prometheus.Gauge
	ShowcaseRefreshDuration prometheus.Histogram

	// commissions
	CommissionsPostedTotal    prometheus.CounterVec
	CommissionAmountTotal     prometheus.CounterVec
	CommissionDuplicatesTotal prometheus.Counter
	CommissionErrorsTotal     prometheus.Counter
}

func NewGrowthMetrics() *GrowthMetrics {
	return &GrowthMetrics{
		EventsAdmittedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "growth_events_admitted_total",
				Help: "Events admitted to the ledger",
			},
			[]string{"kind", "platform"},
		),

		EventsRejectedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "growth_events_rejected_total",
				Help: "Events rejected by admission checks",
			},
			[]string{"kind", "rule"},
		),

		AdmissionDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "growth_admission_duration_seconds",
				Help:    "Time spent in admission checks",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
			},
			[]string{"kind"},
		),

		RecomputeTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "growth_score_recompute_total",
				Help: "Score recomputations by trigger",
			},
			[]string{"trigger"},
		),

		RecomputeDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "growth_score_recompute_duration_seconds",
				Help:    "Per-site score recompute latency",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
			},
			[]string{"trigger"},
		),

		RecomputeErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "growth_score_recompute_errors_total",
				Help: "Failed score recomputations",
			},
			[]string{"trigger"},
		),

		FeaturedTransitionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "growth_featured_transitions_total",
				Help: "Sites promoted to auto-featured",
			},
			[]string{"tier"},
		),

		FeaturedExpirationsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "growth_featured_expirations_total",
				Help: "Featured windows expired back to normal",
			},
		),

		ShowcaseRefreshTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "growth_showcase_refresh_total",
				Help: "Showcase snapshot refreshes",
			},
		),

		ShowcaseSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "growth_showcase_size",
				Help: "Entries in the current showcase snapshot",
			},
		),

		ShowcaseRefreshDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "growth_showcase_refresh_duration_seconds",
				Help:    "Showcase refresh latency",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
		),

		CommissionsPostedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "growth_commissions_posted_total",
				Help: "Commission records created",
			},
			[]string{"rate_tier"},
		),

		CommissionAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "growth_commission_amount_total",
				Help: "Total commission amount posted",
			},
			[]string{"rate_tier"},
		),

		CommissionDuplicatesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "growth_commission_duplicates_total",
				Help: "Duplicate commission postings treated as no-ops",
			},
		),

		CommissionErrorsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "growth_commission_errors_total",
				Help: "Commission postings that failed and need reconciliation",
			},
		),
	}
}
