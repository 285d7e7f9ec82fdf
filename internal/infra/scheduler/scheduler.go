package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scanner is the due-schedule scan entrypoint driven by the cron engine.
type Scanner interface {
	Scan(ctx context.Context) error
}

// ScanScheduler runs the report scan on a fixed cron interval. A tick that
// is still draining its due-record loop suppresses the next tick, so scans
// never overlap.
type ScanScheduler struct {
	cronEngine *cron.Cron
	scanner    Scanner
	logger     *logrus.Logger
	cronSpec   string
}

func NewScanScheduler(scanner Scanner, logger *logrus.Logger, cronSpec string) *ScanScheduler {
	return &ScanScheduler{
		cronEngine: cron.New(
			cron.WithLocation(time.Local), // Use server's local time for cron
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		scanner:  scanner,
		logger:   logger,
		cronSpec: cronSpec,
	}
}

func (s *ScanScheduler) Start() {
	s.logger.Info("Starting report scan scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Debug("Cron tick: scanning for due report schedules.")
		if err := s.scanner.Scan(context.Background()); err != nil {
			s.logger.Errorf("Report scan failed: %v", err)
		}
	})
	if err != nil {
		s.logger.Fatalf("FATAL: Could not add report scan cron job: %v", err)
	}

	s.cronEngine.Start()
	s.logger.Infof("Report scan scheduler started with spec %q.", s.cronSpec)
}

func (s *ScanScheduler) Stop() {
	s.logger.Info("Stopping report scan scheduler...")
	ctx := s.cronEngine.Stop() // Stops new ticks, waits for the running scan.
	<-ctx.Done()
	s.logger.Info("Report scan scheduler gracefully stopped.")
}
