package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/domain/report"
)

// Period is the reporting window a snapshot covers.
type Period struct {
	Start time.Time
	End   time.Time
}

// Label renders the period for display and for the snapshot row, e.g.
// "Jul 29 – Aug 28, 2026".
func (p Period) Label() string {
	return fmt.Sprintf("%s – %s", p.Start.Format("Jan 2"), p.End.Format("Jan 2, 2006"))
}

// AnalyticsSummary is what the site-analytics provider reports for a client
// over a period.
type AnalyticsSummary struct {
	Sessions       int64
	OrganicTraffic int64
}

// KeywordSummary aggregates the keyword-rank provider's data: per-keyword
// target rows plus the sums and averages derived from them.
type KeywordSummary struct {
	SumClicks       int64
	SumImpressions  int64
	AvgRank         float64
	TrackedKeywords int
	TopTenKeywords  int
	Rows            []report.TargetRow
}

// TrafficEstimate is the traffic-estimate provider's view of a client's
// organic performance.
type TrafficEstimate struct {
	OrganicClicks int64
	AvgRank       float64
}

// AnalyticsProvider fetches site analytics for a client. Implementations may
// fail; callers degrade the affected fields rather than aborting synthesis.
type AnalyticsProvider interface {
	Fetch(ctx context.Context, clientID int64, period Period) (*AnalyticsSummary, error)
}

// KeywordRankProvider fetches tracked keyword rankings for a client.
type KeywordRankProvider interface {
	Fetch(ctx context.Context, clientID int64, period Period) (*KeywordSummary, error)
}

// TrafficEstimateProvider fetches third-party organic traffic estimates.
type TrafficEstimateProvider interface {
	Fetch(ctx context.Context, clientID int64, period Period) (*TrafficEstimate, error)
}
