package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aegntic/growth-service/internal/domain"
	"github.com/aegntic/growth-service/internal/infrastructure/metrics"
)

var (
	metricsOnce   sync.Once
	sharedMetrics *metrics.GrowthMetrics
)

// testMetrics returns a process-wide metrics instance; promauto registers
// into the default registry so two instances would panic.
func testMetrics() *metrics.GrowthMetrics {
	metricsOnce.Do(func() {
		sharedMetrics = metrics.NewGrowthMetrics()
	})
	return sharedMetrics
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeSiteRepo struct {
	mu    sync.Mutex
	sites map[string]*domain.Site

	// runs before MarkFeatured takes the lock, so tests can interleave a
	// competing transition between a caller's read and its write
	beforeMarkFeatured func()
}

func newFakeSiteRepo() *fakeSiteRepo {
	return &fakeSiteRepo{sites: make(map[string]*domain.Site)}
}

func (r *fakeSiteRepo) CreateSite(site *domain.Site) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sites[site.ID]; ok {
		return domain.ErrSiteAlreadyExists
	}
	copied := *site
	r.sites[site.ID] = &copied
	return nil
}

func (r *fakeSiteRepo) GetSiteByID(siteID string) (*domain.Site, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	site, ok := r.sites[siteID]
	if !ok {
		return nil, domain.ErrSiteNotFound
	}
	copied := *site
	return &copied, nil
}

func (r *fakeSiteRepo) UpdateScore(siteID string, score float64, shareCount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	site, ok := r.sites[siteID]
	if !ok {
		return domain.ErrSiteNotFound
	}
	site.ViralScore = score
	site.ShareCount = shareCount
	return nil
}

func (r *fakeSiteRepo) MarkFeatured(siteID string, until time.Time, baselineAt time.Time) (bool, error) {
	if r.beforeMarkFeatured != nil {
		r.beforeMarkFeatured()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	site, ok := r.sites[siteID]
	if !ok || site.State != domain.PromotionNormal {
		return false, nil
	}
	site.State = domain.PromotionAutoFeatured
	site.FeaturedUntil = &until
	site.FeatureBaselineAt = baselineAt
	return true, nil
}

func (r *fakeSiteRepo) ClearFeatured(siteID string, baselineAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	site, ok := r.sites[siteID]
	if !ok || site.State != domain.PromotionAutoFeatured {
		return nil
	}
	site.State = domain.PromotionNormal
	site.FeaturedUntil = nil
	site.FeatureBaselineAt = baselineAt
	return nil
}

func (r *fakeSiteRepo) FindExpiredFeatured(now time.Time) ([]*domain.Site, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var expired []*domain.Site
	for _, site := range r.sites {
		if site.State == domain.PromotionAutoFeatured &&
			site.FeaturedUntil != nil && !site.FeaturedUntil.After(now) {
			copied := *site
			expired = append(expired, &copied)
		}
	}
	return expired, nil
}

func (r *fakeSiteRepo) ListScoredSites() ([]*domain.Site, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var scored []*domain.Site
	for _, site := range r.sites {
		if site.ViralScore > 0 && !site.ShowcaseOptOut {
			copied := *site
			scored = append(scored, &copied)
		}
	}
	return scored, nil
}

func (r *fakeSiteRepo) SetShowcaseEligible(siteID string, eligible bool) error {
	return r.setFlag(siteID, func(s *domain.Site) { s.ShowcaseEligible = eligible })
}

func (r *fakeSiteRepo) SetShowcasePinned(siteID string, pinned bool) error {
	return r.setFlag(siteID, func(s *domain.Site) { s.ShowcasePinned = pinned })
}

func (r *fakeSiteRepo) SetShowcaseOptOut(siteID string, optOut bool) error {
	return r.setFlag(siteID, func(s *domain.Site) { s.ShowcaseOptOut = optOut })
}

func (r *fakeSiteRepo) setFlag(siteID string, apply func(*domain.Site)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	site, ok := r.sites[siteID]
	if !ok {
		return domain.ErrSiteNotFound
	}
	apply(site)
	return nil
}

type fakeLedger struct {
	mu      sync.Mutex
	nextSeq int64
	events  []*domain.LedgerEvent

	appendErr   error
	snapshotErr error
	failReads   int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{}
}

func (l *fakeLedger) Append(ctx context.Context, event *domain.LedgerEvent) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.appendErr != nil {
		return "", l.appendErr
	}
	l.nextSeq++
	event.Seq = l.nextSeq
	copied := *event
	l.events = append(l.events, &copied)
	return event.ID, nil
}

func (l *fakeLedger) EventsSince(ctx context.Context, siteID string, since time.Time) ([]*domain.LedgerEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*domain.LedgerEvent
	for _, ev := range l.events {
		if ev.SiteID == siteID && !ev.OccurredAt.Before(since) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (l *fakeLedger) Cursor(ctx context.Context, siteID string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var cursor int64
	for _, ev := range l.events {
		if ev.SiteID == siteID && ev.Seq > cursor {
			cursor = ev.Seq
		}
	}
	return cursor, nil
}

func (l *fakeLedger) Snapshot(ctx context.Context, siteID string) (*domain.LedgerSnapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failReads > 0 {
		l.failReads--
		return nil, domain.ErrInconsistentLedgerRead
	}
	if l.snapshotErr != nil {
		return nil, l.snapshotErr
	}
	snapshot := &domain.LedgerSnapshot{SiteID: siteID}
	for _, ev := range l.events {
		if ev.SiteID == siteID {
			snapshot.Events = append(snapshot.Events, ev)
			if ev.Seq > snapshot.Cursor {
				snapshot.Cursor = ev.Seq
			}
		}
	}
	return snapshot, nil
}

func (l *fakeLedger) CountShares(ctx context.Context, siteID string, since time.Time) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var count int64
	for _, ev := range l.events {
		if ev.SiteID == siteID && ev.Kind == domain.EventKindShare && !ev.AdmittedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (l *fakeLedger) SitesWithEventsSince(ctx context.Context, since time.Time) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	seen := make(map[string]bool)
	var siteIDs []string
	for _, ev := range l.events {
		if !ev.AdmittedAt.Before(since) && !seen[ev.SiteID] {
			seen[ev.SiteID] = true
			siteIDs = append(siteIDs, ev.SiteID)
		}
	}
	return siteIDs, nil
}

type fakeIdentity struct {
	tiers   map[string]domain.Tier
	ages    map[string]int
	tierErr error
	ageErr  error
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{
		tiers: make(map[string]domain.Tier),
		ages:  make(map[string]int),
	}
}

func (f *fakeIdentity) OwnerTier(ctx context.Context, ownerID string) (domain.Tier, error) {
	if f.tierErr != nil {
		return "", f.tierErr
	}
	if tier, ok := f.tiers[ownerID]; ok {
		return tier, nil
	}
	return domain.TierFree, nil
}

func (f *fakeIdentity) RelationshipAge(ctx context.Context, referrerID, refereeID string) (int, error) {
	if f.ageErr != nil {
		return 0, f.ageErr
	}
	return f.ages[referrerID+"/"+refereeID], nil
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []domain.Message
}

func (p *fakePublisher) Publish(topic string, msgs ...domain.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msgs...)
	return nil
}

func (p *fakePublisher) published() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages)
}

type fakeShowcaseRepo struct {
	mu      sync.Mutex
	entries []*domain.ShowcaseEntry
}

func (r *fakeShowcaseRepo) ReplaceSnapshot(ctx context.Context, entries []*domain.ShowcaseEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = entries
	return nil
}

func (r *fakeShowcaseRepo) GetSnapshot(ctx context.Context) ([]*domain.ShowcaseEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries, nil
}

type fakeReferralRepo struct {
	mu            sync.Mutex
	relationships map[string]*domain.ReferralRelationship
}

func newFakeReferralRepo() *fakeReferralRepo {
	return &fakeReferralRepo{relationships: make(map[string]*domain.ReferralRelationship)}
}

func (r *fakeReferralRepo) CreateRelationship(relationship *domain.ReferralRelationship) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *relationship
	r.relationships[relationship.ID] = &copied
	return nil
}

func (r *fakeReferralRepo) GetRelationshipByID(relationID string) (*domain.ReferralRelationship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	relationship, ok := r.relationships[relationID]
	if !ok {
		return nil, domain.ErrRelationshipNotFound
	}
	copied := *relationship
	return &copied, nil
}

func (r *fakeReferralRepo) GetRelationship(referrerID, refereeID string) (*domain.ReferralRelationship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, relationship := range r.relationships {
		if relationship.ReferrerID == referrerID && relationship.RefereeID == refereeID {
			copied := *relationship
			return &copied, nil
		}
	}
	return nil, domain.ErrRelationshipNotFound
}

func (r *fakeReferralRepo) GetRelationshipsByReferrerID(referrerID string) ([]*domain.ReferralRelationship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.ReferralRelationship
	for _, relationship := range r.relationships {
		if relationship.ReferrerID == referrerID {
			copied := *relationship
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeReferralRepo) UpdateRelationshipStatus(relationID string, status domain.ReferralStatus, convertedAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	relationship, ok := r.relationships[relationID]
	if !ok {
		return domain.ErrRelationshipNotFound
	}
	relationship.Status = status
	relationship.ConvertedAt = convertedAt
	return nil
}

type fakeCommissionRepo struct {
	mu      sync.Mutex
	records map[string]*domain.CommissionRecord
	periods map[string]bool
}

func newFakeCommissionRepo() *fakeCommissionRepo {
	return &fakeCommissionRepo{
		records: make(map[string]*domain.CommissionRecord),
		periods: make(map[string]bool),
	}
}

func (r *fakeCommissionRepo) CreateRecord(ctx context.Context, record *domain.CommissionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := record.ReferrerID + "/" + record.RefereeID + "/" + record.PeriodStart.UTC().Format(time.RFC3339)
	if r.periods[key] {
		return domain.ErrDuplicateCommissionPeriod
	}
	r.periods[key] = true
	copied := *record
	r.records[record.ID] = &copied
	return nil
}

func (r *fakeCommissionRepo) GetRecordsByReferrerID(ctx context.Context, referrerID string) ([]*domain.CommissionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.CommissionRecord
	for _, record := range r.records {
		if record.ReferrerID == referrerID {
			copied := *record
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeCommissionRepo) GetUnpaidRecords(ctx context.Context, limit int) ([]*domain.CommissionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.CommissionRecord
	for _, record := range r.records {
		if record.PaidAt == nil {
			copied := *record
			out = append(out, &copied)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *fakeCommissionRepo) MarkRecordsPaid(ctx context.Context, recordIDs []string, paidAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range recordIDs {
		if record, ok := r.records[id]; ok {
			at := paidAt
			record.PaidAt = &at
		}
	}
	return nil
}

type fakeRejectedRepo struct {
	mu       sync.Mutex
	rejected []*domain.RejectedEvent
}

func (r *fakeRejectedRepo) CreateRejectedEvent(ctx context.Context, event *domain.RejectedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *event
	r.rejected = append(r.rejected, &copied)
	return nil
}

func (r *fakeRejectedRepo) GetRejectedEvents(ctx context.Context, siteID string, limit int) ([]*domain.RejectedEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.RejectedEvent
	for _, ev := range r.rejected {
		if ev.SiteID == siteID {
			out = append(out, ev)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// fakeActivitySource feeds admission rules fixed aggregates.
type fakeActivitySource struct {
	actorEvents   int64
	actorActivity int64
	distinctAddrs int64
	shareAdmitted bool
}

func (f *fakeActivitySource) CountActorEvents(ctx context.Context, siteID, actorID string, window time.Duration) (int64, error) {
	return f.actorEvents, nil
}

func (f *fakeActivitySource) CountActorActivity(ctx context.Context, actorID string, window time.Duration) (int64, error) {
	return f.actorActivity, nil
}

func (f *fakeActivitySource) CountDistinctAddresses(ctx context.Context, actorID string, window time.Duration) (int64, error) {
	return f.distinctAddrs, nil
}

func (f *fakeActivitySource) AdmittedShareExists(ctx context.Context, siteID, actorID string, platform domain.Platform, bucketStart time.Time) (bool, error) {
	return f.shareAdmitted, nil
}

type fakeAuditLogger struct {
	mu      sync.Mutex
	reports []*domain.AdmissionReport
}

func (l *fakeAuditLogger) LogAdmission(ctx context.Context, report *domain.AdmissionReport, kind domain.EventKind, platform domain.Platform) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reports = append(l.reports, report)
	return nil
}
