package strategies

import (
	"context"
	"testing"
	"time"

	"github.com/aegntic/growth-service/internal/domain"
	"github.com/aegntic/growth-service/internal/fraudguard/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	actorEvents   int64
	actorActivity int64
	distinctAddrs int64
	shareAdmitted bool

	lastBucketStart time.Time
}

func (s *stubSource) CountActorEvents(ctx context.Context, siteID, actorID string, window time.Duration) (int64, error) {
	return s.actorEvents, nil
}

func (s *stubSource) CountActorActivity(ctx context.Context, actorID string, window time.Duration) (int64, error) {
	return s.actorActivity, nil
}

func (s *stubSource) CountDistinctAddresses(ctx context.Context, actorID string, window time.Duration) (int64, error) {
	return s.distinctAddrs, nil
}

func (s *stubSource) AdmittedShareExists(ctx context.Context, siteID, actorID string, platform domain.Platform, bucketStart time.Time) (bool, error) {
	s.lastBucketStart = bucketStart
	return s.shareAdmitted, nil
}

func shareProbe() *EventProbe {
	return &EventProbe{
		SiteID:     "site-1",
		ActorID:    "actor-1",
		Kind:       domain.EventKindShare,
		Platform:   domain.PlatformTwitter,
		OccurredAt: time.Now(),
	}
}

func TestVelocityStrategy_PassesUnderLimit(t *testing.T) {
	source := &stubSource{actorEvents: 9}
	strategy := NewVelocityStrategy(source, rules.VelocityConfig{MaxEvents: 10, Window: time.Minute})

	result, err := strategy.Check(context.Background(), shareProbe())
	require.NoError(t, err)
	assert.True(t, result.Passed)
}

func TestVelocityStrategy_RejectsAtLimit(t *testing.T) {
	source := &stubSource{actorEvents: 10}
	strategy := NewVelocityStrategy(source, rules.VelocityConfig{MaxEvents: 10, Window: time.Minute})

	result, err := strategy.Check(context.Background(), shareProbe())
	require.NoError(t, err)
	assert.False(t, result.Passed)
	assert.Equal(t, "event_velocity", result.RuleName)
}

func TestVelocityStrategy_InvalidConfig(t *testing.T) {
	strategy := NewVelocityStrategy(&stubSource{}, rules.VelocityConfig{})
	_, err := strategy.Check(context.Background(), shareProbe())
	assert.Error(t, err)
}

func TestSockPuppetStrategy_IgnoresQuietActors(t *testing.T) {
	source := &stubSource{actorActivity: 7, distinctAddrs: 1}
	strategy := NewSockPuppetStrategy(source, rules.SockPuppetConfig{
		MinDistinctAddresses: 2, ActivityFloor: 8, Window: 10 * time.Minute,
	})

	result, err := strategy.Check(context.Background(), shareProbe())
	require.NoError(t, err)
	assert.True(t, result.Passed)
}

func TestSockPuppetStrategy_RejectsConcentratedTraffic(t *testing.T) {
	source := &stubSource{actorActivity: 8, distinctAddrs: 1}
	strategy := NewSockPuppetStrategy(source, rules.SockPuppetConfig{
		MinDistinctAddresses: 2, ActivityFloor: 8, Window: 10 * time.Minute,
	})

	result, err := strategy.Check(context.Background(), shareProbe())
	require.NoError(t, err)
	assert.False(t, result.Passed)
}

func TestSockPuppetStrategy_PassesSpreadTraffic(t *testing.T) {
	source := &stubSource{actorActivity: 20, distinctAddrs: 4}
	strategy := NewSockPuppetStrategy(source, rules.SockPuppetConfig{
		MinDistinctAddresses: 2, ActivityFloor: 8, Window: 10 * time.Minute,
	})

	result, err := strategy.Check(context.Background(), shareProbe())
	require.NoError(t, err)
	assert.True(t, result.Passed)
}

func TestDuplicateShareStrategy_IgnoresEngagement(t *testing.T) {
	source := &stubSource{shareAdmitted: true}
	strategy := NewDuplicateShareStrategy(source, rules.DedupConfig{Bucket: time.Hour})

	probe := shareProbe()
	probe.Kind = domain.EventKindView

	result, err := strategy.Check(context.Background(), probe)
	require.NoError(t, err)
	assert.True(t, result.Passed)
}

func TestDuplicateShareStrategy_RejectsDuplicate(t *testing.T) {
	source := &stubSource{shareAdmitted: true}
	strategy := NewDuplicateShareStrategy(source, rules.DedupConfig{Bucket: time.Hour})

	result, err := strategy.Check(context.Background(), shareProbe())
	require.NoError(t, err)
	assert.False(t, result.Passed)
}

func TestDuplicateShareStrategy_TruncatesBucket(t *testing.T) {
	source := &stubSource{}
	strategy := NewDuplicateShareStrategy(source, rules.DedupConfig{Bucket: time.Hour})

	probe := shareProbe()
	probe.OccurredAt = time.Date(2026, 8, 15, 14, 37, 12, 0, time.UTC)

	_, err := strategy.Check(context.Background(), probe)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 15, 14, 0, 0, 0, time.UTC), source.lastBucketStart)
}
