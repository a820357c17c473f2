package usecase

import (
	"time"

	"github.com/aegntic/growth-service/internal/domain"
)

// ScoreTable holds the tunable weights of the virality formula. The table
// is fixed for the lifetime of the process; changing it changes scores only
// on the next recompute, never retroactively in stored history.
type ScoreTable struct {
	ViewWeight     float64
	ReactionWeight float64
	CommentWeight  float64

	PlatformMultipliers map[domain.Platform]float64
	TierBonuses         map[domain.Tier]float64
}

func DefaultScoreTable() ScoreTable {
	return ScoreTable{
		ViewWeight:     0.1,
		ReactionWeight: 2.0,
		CommentWeight:  3.0,
		PlatformMultipliers: map[domain.Platform]float64{
			domain.PlatformTwitter:  1.5,
			domain.PlatformFacebook: 1.3,
			domain.PlatformLinkedIn: 1.2,
			domain.PlatformReddit:   1.4,
			domain.PlatformForum:    1.1,
			domain.PlatformEmail:    1.0,
			domain.PlatformDirect:   0.8,
		},
		TierBonuses: map[domain.Tier]float64{
			domain.TierFree:       1.0,
			domain.TierPro:        1.3,
			domain.TierBusiness:   1.5,
			domain.TierEnterprise: 1.8,
		},
	}
}

// Score derives the viral score from a ledger snapshot. Pure: the same
// snapshot, site age, and tier always produce the same score.
func (t ScoreTable) Score(snapshot *domain.LedgerSnapshot, siteCreatedAt time.Time, tier domain.Tier, now time.Time) float64 {
	if len(snapshot.Events) == 0 {
		return 0
	}

	var base, shareContribution float64
	for _, event := range snapshot.Events {
		switch event.Kind {
		case domain.EventKindView:
			base += t.ViewWeight
		case domain.EventKindReaction:
			base += t.ReactionWeight
		case domain.EventKindComment:
			base += t.CommentWeight
		case domain.EventKindShare:
			weight := event.BoostWeight
			if weight <= 0 {
				weight = 1.0
			}
			shareContribution += t.platformMultiplier(event.Platform) * weight
		}
	}

	rawScore := base + shareContribution
	score := rawScore * ageDecay(now.Sub(siteCreatedAt)) * t.tierBonus(tier)
	if score < 0 {
		return 0
	}
	return score
}

func (t ScoreTable) platformMultiplier(platform domain.Platform) float64 {
	if m, ok := t.PlatformMultipliers[platform]; ok {
		return m
	}
	return 1.0
}

func (t ScoreTable) tierBonus(tier domain.Tier) float64 {
	if b, ok := t.TierBonuses[tier]; ok {
		return b
	}
	return 1.0
}

// ageDecay boosts fresh sites and dampens old ones.
func ageDecay(age time.Duration) float64 {
	ageDays := age.Hours() / 24
	switch {
	case ageDays < 7:
		return 1.2
	case ageDays < 30:
		return 1.0
	case ageDays < 90:
		return 0.8
	default:
		return 0.5
	}
}
