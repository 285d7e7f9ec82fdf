package providers

import (
	"context"

	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/domain/metrics"
)

// AnalyticsClient fetches site analytics aggregates from the analytics API.
type AnalyticsClient struct {
	apiClient
}

func NewAnalyticsClient(baseURL, apiKey string) *AnalyticsClient {
	return &AnalyticsClient{apiClient: newAPIClient(baseURL, apiKey)}
}

type analyticsResponse struct {
	Sessions       int64 `json:"sessions"`
	OrganicTraffic int64 `json:"organic_traffic"`
}

func (c *AnalyticsClient) Fetch(ctx context.Context, clientID int64, period metrics.Period) (*metrics.AnalyticsSummary, error) {
	var resp analyticsResponse
	if err := c.getJSON(ctx, "/v1/analytics/summary", clientID, period, &resp); err != nil {
		return nil, err
	}
	return &metrics.AnalyticsSummary{
		Sessions:       resp.Sessions,
		OrganicTraffic: resp.OrganicTraffic,
	}, nil
}
