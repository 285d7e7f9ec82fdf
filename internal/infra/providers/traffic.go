package providers

import (
	"context"

	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/domain/metrics"
)

// TrafficEstimateClient fetches third-party organic traffic estimates.
type TrafficEstimateClient struct {
	apiClient
}

func NewTrafficEstimateClient(baseURL, apiKey string) *TrafficEstimateClient {
	return &TrafficEstimateClient{apiClient: newAPIClient(baseURL, apiKey)}
}

type trafficResponse struct {
	OrganicClicks int64   `json:"organic_clicks"`
	AvgRank       float64 `json:"avg_rank"`
}

func (c *TrafficEstimateClient) Fetch(ctx context.Context, clientID int64, period metrics.Period) (*metrics.TrafficEstimate, error) {
	var resp trafficResponse
	if err := c.getJSON(ctx, "/v1/traffic/estimate", clientID, period, &resp); err != nil {
		return nil, err
	}
	return &metrics.TrafficEstimate{
		OrganicClicks: resp.OrganicClicks,
		AvgRank:       resp.AvgRank,
	}, nil
}
