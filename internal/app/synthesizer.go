package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/domain/metrics"
	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/domain/report"
	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/domain/schedule"
	idb "github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/infra/database"
)

// impressionsMultiplier converts an organic click estimate into an
// impressions estimate when the keyword provider has no impression data.
const impressionsMultiplier = 10

// ReportSynthesizer merges metrics from the three external providers into
// one canonical snapshot per client. Provider failures never abort
// synthesis: each failed source only degrades the fields it feeds.
type ReportSynthesizer struct {
	analytics metrics.AnalyticsProvider
	keywords  metrics.KeywordRankProvider
	traffic   metrics.TrafficEstimateProvider
	reports   report.Repository
	schedules schedule.Repository
	logger    *logrus.Logger
}

func NewReportSynthesizer(
	analytics metrics.AnalyticsProvider,
	keywords metrics.KeywordRankProvider,
	traffic metrics.TrafficEstimateProvider,
	reports report.Repository,
	schedules schedule.Repository,
	logger *logrus.Logger,
) *ReportSynthesizer {
	return &ReportSynthesizer{
		analytics: analytics,
		keywords:  keywords,
		traffic:   traffic,
		reports:   reports,
		schedules: schedules,
		logger:    logger,
	}
}

// Synthesize fetches all providers, merges them with per-field fallback
// precedence, and upserts the client's snapshot row. It returns the snapshot
// together with the target rows for rendering.
func (s *ReportSynthesizer) Synthesize(ctx context.Context, clientID int64, period metrics.Period) (*report.Snapshot, []report.TargetRow, error) {
	analytics, keywords, traffic := s.fetchAll(ctx, clientID, period)

	snap := &report.Snapshot{
		ClientID:    clientID,
		PeriodLabel: period.Label(),
		Status:      report.StatusDraft,
	}
	mergeMetrics(snap, analytics, keywords, traffic)

	// An active schedule means this snapshot is on its way out the door.
	if _, err := s.schedules.GetActiveByClient(ctx, clientID); err == nil {
		snap.Status = report.StatusScheduled
	} else if err != idb.ErrScheduleNotFound {
		s.logger.WithField("client_id", clientID).
			Warnf("Could not check for an active schedule, keeping snapshot status %s: %v", snap.Status, err)
	}

	if err := s.reports.Upsert(ctx, snap); err != nil {
		return nil, nil, fmt.Errorf("failed to upsert report snapshot for client %d: %w", clientID, err)
	}

	var rows []report.TargetRow
	if keywords != nil {
		rows = keywords.Rows
	}
	return snap, rows, nil
}

// fetchAll calls the three providers concurrently and waits for all of them.
// A failed fetch is logged and comes back nil.
func (s *ReportSynthesizer) fetchAll(ctx context.Context, clientID int64, period metrics.Period) (*metrics.AnalyticsSummary, *metrics.KeywordSummary, *metrics.TrafficEstimate) {
	var (
		wg        sync.WaitGroup
		analytics *metrics.AnalyticsSummary
		keywords  *metrics.KeywordSummary
		traffic   *metrics.TrafficEstimate
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		var err error
		if analytics, err = s.analytics.Fetch(ctx, clientID, period); err != nil {
			s.logProviderFailure(clientID, "analytics", err)
			analytics = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if keywords, err = s.keywords.Fetch(ctx, clientID, period); err != nil {
			s.logProviderFailure(clientID, "keyword-rank", err)
			keywords = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if traffic, err = s.traffic.Fetch(ctx, clientID, period); err != nil {
			s.logProviderFailure(clientID, "traffic-estimate", err)
			traffic = nil
		}
	}()
	wg.Wait()

	return analytics, keywords, traffic
}

func (s *ReportSynthesizer) logProviderFailure(clientID int64, provider string, err error) {
	s.logger.WithFields(logrus.Fields{
		"client_id": clientID,
		"provider":  provider,
	}).Warnf("Provider fetch failed, affected fields degrade to zero: %v", err)
}

// mergeMetrics applies the per-field fallback precedence:
//
//	clicks           keyword sum, else traffic organic estimate
//	impressions      keyword sum, else organic estimate x multiplier
//	average position traffic average rank, else keyword average rank
//	sessions         analytics only
func mergeMetrics(snap *report.Snapshot, analytics *metrics.AnalyticsSummary, keywords *metrics.KeywordSummary, traffic *metrics.TrafficEstimate) {
	if keywords != nil {
		snap.Clicks = keywords.SumClicks
		snap.Impressions = keywords.SumImpressions
		snap.TrackedKeywords = keywords.TrackedKeywords
		snap.TopTenKeywords = keywords.TopTenKeywords
	}
	if traffic != nil {
		if snap.Clicks == 0 {
			snap.Clicks = traffic.OrganicClicks
		}
		if snap.Impressions == 0 {
			snap.Impressions = traffic.OrganicClicks * impressionsMultiplier
		}
		snap.AvgPosition = traffic.AvgRank
	}
	if snap.AvgPosition == 0 && keywords != nil {
		snap.AvgPosition = keywords.AvgRank
	}
	if analytics != nil {
		snap.Sessions = analytics.Sessions
	}
}
