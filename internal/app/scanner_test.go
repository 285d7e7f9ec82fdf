package app

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/domain/metrics"
	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/domain/schedule"
	idb "github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/infra/database"
	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/render"
)

var scanNow = time.Date(2026, time.August, 28, 10, 0, 0, 0, time.UTC) // Friday

type scannerFixture struct {
	scanner   *DueScheduleScanner
	schedules *MockScheduleRepository
	reports   *MockReportRepository
	transport *MockTransport
	analytics *MockAnalyticsProvider
	keywords  *MockKeywordRankProvider
	traffic   *MockTrafficEstimateProvider
}

func newScannerFixture() *scannerFixture {
	f := &scannerFixture{
		schedules: new(MockScheduleRepository),
		reports:   new(MockReportRepository),
		transport: new(MockTransport),
		analytics: new(MockAnalyticsProvider),
		keywords:  new(MockKeywordRankProvider),
		traffic:   new(MockTrafficEstimateProvider),
	}
	log := logrus.New()
	synth := NewReportSynthesizer(f.analytics, f.keywords, f.traffic, f.reports, f.schedules, log)
	renderer := render.NewRenderer(nil, log)
	coordinator := NewDeliveryCoordinator(f.transport, f.reports, log).
		WithClock(func() time.Time { return scanNow })
	f.scanner = NewDueScheduleScanner(
		f.schedules, synth, renderer, coordinator, f.reports,
		log, time.Minute, time.Hour,
	).WithClock(func() time.Time { return scanNow })
	return f
}

func dueSchedule(id, clientID int64, recipients []string) *schedule.Schedule {
	return &schedule.Schedule{
		ID:         id,
		ClientID:   clientID,
		ClientName: "Acme Plumbing",
		Frequency:  schedule.FrequencyWeekly,
		DayOfWeek:  sql.NullInt32{Int32: 1, Valid: true}, // Monday
		TimeOfDay:  "09:00",
		Recipients: recipients,
		IsActive:   true,
		NextRunAt:  scanNow.Add(-time.Hour),
	}
}

func (f *scannerFixture) stubProviders(clientID int64) {
	f.analytics.On("Fetch", mock.Anything, clientID, mock.Anything).
		Return(&metrics.AnalyticsSummary{Sessions: 100}, nil)
	f.keywords.On("Fetch", mock.Anything, clientID, mock.Anything).
		Return(&metrics.KeywordSummary{SumClicks: 10, SumImpressions: 200, TrackedKeywords: 1}, nil)
	f.traffic.On("Fetch", mock.Anything, clientID, mock.Anything).
		Return(&metrics.TrafficEstimate{AvgRank: 4.2}, nil)
	f.schedules.On("GetActiveByClient", mock.Anything, clientID).Return(nil, idb.ErrScheduleNotFound)
}

func TestScanSuccessDeliversAndAdvancesRecurrence(t *testing.T) {
	f := newScannerFixture()
	sched := dueSchedule(7, 42, []string{"owner@acme.com"})

	f.schedules.On("ListDue", mock.Anything, scanNow).Return([]*schedule.Schedule{sched}, nil)
	f.stubProviders(42)
	f.reports.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	f.transport.On("Send", mock.Anything, mock.Anything).Return(nil)
	f.reports.On("MarkSent", mock.Anything, int64(42), scanNow, []string{"owner@acme.com"}, mock.Anything).Return(nil)

	expectedNext := schedule.NextRun(sched, scanNow)
	f.schedules.On("Advance", mock.Anything, int64(7), scanNow, expectedNext).Return(nil)

	require.NoError(t, f.scanner.Scan(context.Background()))

	f.schedules.AssertExpectations(t)
	f.reports.AssertExpectations(t)
	f.transport.AssertExpectations(t)
	assert.True(t, expectedNext.After(scanNow), "advanced nextRunAt must be strictly after now")
}

// A schedule with no recipients still synthesizes and renders, skips
// delivery entirely, and advances its recurrence.
func TestScanNoRecipientsSkipsDeliveryButAdvances(t *testing.T) {
	f := newScannerFixture()
	sched := dueSchedule(7, 42, nil)

	f.schedules.On("ListDue", mock.Anything, scanNow).Return([]*schedule.Schedule{sched}, nil)
	f.stubProviders(42)
	f.reports.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	f.schedules.On("Advance", mock.Anything, int64(7), scanNow, mock.Anything).Return(nil)

	require.NoError(t, f.scanner.Scan(context.Background()))

	f.transport.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	f.reports.AssertNotCalled(t, "MarkSent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.schedules.AssertExpectations(t)
}

// A delivery failure applies the explicit failure transition: snapshot
// FAILED, schedule pushed out by the backoff, recurrence not advanced.
func TestScanDeliveryFailureAppliesFailureTransition(t *testing.T) {
	f := newScannerFixture()
	sched := dueSchedule(7, 42, []string{"owner@acme.com"})

	f.schedules.On("ListDue", mock.Anything, scanNow).Return([]*schedule.Schedule{sched}, nil)
	f.stubProviders(42)
	f.reports.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	f.transport.On("Send", mock.Anything, mock.Anything).Return(assert.AnError)
	f.reports.On("MarkFailed", mock.Anything, int64(42)).Return(nil)
	f.schedules.On("Reschedule", mock.Anything, int64(7), scanNow.Add(time.Hour)).Return(nil)

	require.NoError(t, f.scanner.Scan(context.Background()))

	f.schedules.AssertNotCalled(t, "Advance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.reports.AssertExpectations(t)
	f.schedules.AssertExpectations(t)
}

// One record's failure must not stop later records in the same batch.
func TestScanIsolatesRecordFailures(t *testing.T) {
	f := newScannerFixture()
	broken := dueSchedule(7, 42, []string{"owner@acme.com"})
	healthy := dueSchedule(8, 43, nil)

	f.schedules.On("ListDue", mock.Anything, scanNow).Return([]*schedule.Schedule{broken, healthy}, nil)
	f.stubProviders(42)
	f.stubProviders(43)
	// The broken record fails at the very first persistence step.
	f.reports.On("Upsert", mock.Anything, mock.MatchedBy(func(s interface{}) bool { return true })).
		Return(assert.AnError).Once()
	f.reports.On("MarkFailed", mock.Anything, int64(42)).Return(nil)
	f.schedules.On("Reschedule", mock.Anything, int64(7), mock.Anything).Return(nil)

	f.reports.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	f.schedules.On("Advance", mock.Anything, int64(8), scanNow, mock.Anything).Return(nil)

	require.NoError(t, f.scanner.Scan(context.Background()))
	f.schedules.AssertCalled(t, "Advance", mock.Anything, int64(8), scanNow, mock.Anything)
}

func TestScanListDueErrorPropagates(t *testing.T) {
	f := newScannerFixture()
	f.schedules.On("ListDue", mock.Anything, scanNow).Return(nil, assert.AnError)
	assert.Error(t, f.scanner.Scan(context.Background()))
}

func TestScanNothingDue(t *testing.T) {
	f := newScannerFixture()
	f.schedules.On("ListDue", mock.Anything, scanNow).Return([]*schedule.Schedule{}, nil)
	require.NoError(t, f.scanner.Scan(context.Background()))
	f.reports.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
