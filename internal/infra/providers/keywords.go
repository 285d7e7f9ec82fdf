package providers

import (
	"context"
	"time"

	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/domain/metrics"
	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/domain/report"
)

// KeywordRankClient fetches tracked keyword rankings from the rank-tracking
// API and derives the aggregates the synthesizer wants.
type KeywordRankClient struct {
	apiClient
}

func NewKeywordRankClient(baseURL, apiKey string) *KeywordRankClient {
	return &KeywordRankClient{apiClient: newAPIClient(baseURL, apiKey)}
}

type keywordRowResponse struct {
	Keyword     string   `json:"keyword"`
	Location    string   `json:"location"`
	CreatedAt   string   `json:"created_at"` // "2006-01-02"
	Rank        int      `json:"rank"`
	PrevRank    int      `json:"prev_rank"`
	Clicks      int64    `json:"clicks"`
	Impressions int64    `json:"impressions"`
	FeatureTags []string `json:"feature_tags"`
	URL         string   `json:"url"`
}

type keywordResponse struct {
	Keywords []keywordRowResponse `json:"keywords"`
}

func (c *KeywordRankClient) Fetch(ctx context.Context, clientID int64, period metrics.Period) (*metrics.KeywordSummary, error) {
	var resp keywordResponse
	if err := c.getJSON(ctx, "/v1/keywords", clientID, period, &resp); err != nil {
		return nil, err
	}

	summary := &metrics.KeywordSummary{TrackedKeywords: len(resp.Keywords)}
	var rankSum int64
	var ranked int64
	for _, k := range resp.Keywords {
		summary.SumClicks += k.Clicks
		summary.SumImpressions += k.Impressions
		if k.Rank > 0 {
			rankSum += int64(k.Rank)
			ranked++
			if k.Rank <= 10 {
				summary.TopTenKeywords++
			}
		}

		created, _ := time.Parse("2006-01-02", k.CreatedAt)
		summary.Rows = append(summary.Rows, report.TargetRow{
			Keyword:     k.Keyword,
			Location:    k.Location,
			CreatedAt:   created,
			Rank:        k.Rank,
			PrevRank:    k.PrevRank,
			FeatureTags: k.FeatureTags,
			URL:         k.URL,
		})
	}
	if ranked > 0 {
		summary.AvgRank = float64(rankSum) / float64(ranked)
	}
	return summary, nil
}
