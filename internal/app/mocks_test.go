package app

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/domain/delivery"
	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/domain/metrics"
	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/domain/report"
	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/domain/schedule"
)

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) Create(ctx context.Context, s *schedule.Schedule) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockScheduleRepository) GetByID(ctx context.Context, id int64) (*schedule.Schedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.Schedule), args.Error(1)
}

func (m *MockScheduleRepository) GetActiveByClient(ctx context.Context, clientID int64) (*schedule.Schedule, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.Schedule), args.Error(1)
}

func (m *MockScheduleRepository) Update(ctx context.Context, s *schedule.Schedule) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockScheduleRepository) ListDue(ctx context.Context, now time.Time) ([]*schedule.Schedule, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*schedule.Schedule), args.Error(1)
}

func (m *MockScheduleRepository) Advance(ctx context.Context, id int64, lastRunAt, nextRunAt time.Time) error {
	return m.Called(ctx, id, lastRunAt, nextRunAt).Error(0)
}

func (m *MockScheduleRepository) Reschedule(ctx context.Context, id int64, nextRunAt time.Time) error {
	return m.Called(ctx, id, nextRunAt).Error(0)
}

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Upsert(ctx context.Context, s *report.Snapshot) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockReportRepository) GetByClient(ctx context.Context, clientID int64) (*report.Snapshot, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Snapshot), args.Error(1)
}

func (m *MockReportRepository) MarkSent(ctx context.Context, clientID int64, sentAt time.Time, recipients []string, subject string) error {
	return m.Called(ctx, clientID, sentAt, recipients, subject).Error(0)
}

func (m *MockReportRepository) MarkFailed(ctx context.Context, clientID int64) error {
	return m.Called(ctx, clientID).Error(0)
}

type MockAnalyticsProvider struct {
	mock.Mock
}

func (m *MockAnalyticsProvider) Fetch(ctx context.Context, clientID int64, period metrics.Period) (*metrics.AnalyticsSummary, error) {
	args := m.Called(ctx, clientID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*metrics.AnalyticsSummary), args.Error(1)
}

type MockKeywordRankProvider struct {
	mock.Mock
}

func (m *MockKeywordRankProvider) Fetch(ctx context.Context, clientID int64, period metrics.Period) (*metrics.KeywordSummary, error) {
	args := m.Called(ctx, clientID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*metrics.KeywordSummary), args.Error(1)
}

type MockTrafficEstimateProvider struct {
	mock.Mock
}

func (m *MockTrafficEstimateProvider) Fetch(ctx context.Context, clientID int64, period metrics.Period) (*metrics.TrafficEstimate, error) {
	args := m.Called(ctx, clientID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*metrics.TrafficEstimate), args.Error(1)
}

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Send(ctx context.Context, msg *delivery.Message) error {
	return m.Called(ctx, msg).Error(0)
}
