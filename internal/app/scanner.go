package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/domain/metrics"
	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/domain/schedule"
	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/render"
)

// reportWindowDays is how far back a generated report looks.
const reportWindowDays = 30

// DueScheduleScanner drives the full pipeline for every due schedule:
// synthesize, render, deliver, persist status, advance the recurrence. Each
// record is processed sequentially and in isolation so one failure never
// blocks the rest of the batch.
type DueScheduleScanner struct {
	schedules      schedule.Repository
	synthesizer    *ReportSynthesizer
	renderer       *render.Renderer
	delivery       *DeliveryCoordinator
	failures       FailureRecorder
	logger         *logrus.Logger
	clock          func() time.Time
	recordTimeout  time.Duration
	failureBackoff time.Duration
}

// FailureRecorder marks a client's snapshot FAILED after a run aborts
// mid-pipeline. Satisfied by report.Repository.
type FailureRecorder interface {
	MarkFailed(ctx context.Context, clientID int64) error
}

func NewDueScheduleScanner(
	schedules schedule.Repository,
	synthesizer *ReportSynthesizer,
	renderer *render.Renderer,
	delivery *DeliveryCoordinator,
	failures FailureRecorder,
	logger *logrus.Logger,
	recordTimeout time.Duration,
	failureBackoff time.Duration,
) *DueScheduleScanner {
	return &DueScheduleScanner{
		schedules:      schedules,
		synthesizer:    synthesizer,
		renderer:       renderer,
		delivery:       delivery,
		failures:       failures,
		logger:         logger,
		clock:          time.Now,
		recordTimeout:  recordTimeout,
		failureBackoff: failureBackoff,
	}
}

// WithClock overrides the clock, making scan timing deterministic in tests.
func (s *DueScheduleScanner) WithClock(clock func() time.Time) *DueScheduleScanner {
	s.clock = clock
	return s
}

// Scan runs one tick: find due schedules and process each one. Only the due
// query itself can fail the scan; per-record failures are logged, the record
// transitions to its failure state, and the loop moves on.
func (s *DueScheduleScanner) Scan(ctx context.Context) error {
	now := s.clock()
	due, err := s.schedules.ListDue(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to list due schedules: %w", err)
	}
	if len(due) == 0 {
		s.logger.Debug("Scan tick: no due schedules.")
		return nil
	}
	s.logger.Infof("Scan tick: %d due schedule(s).", len(due))

	for _, sched := range due {
		log := s.logger.WithFields(logrus.Fields{
			"schedule_id": sched.ID,
			"client_id":   sched.ClientID,
		})
		if err := s.processRecord(ctx, sched, now); err != nil {
			log.Errorf("Pipeline failed, applying failure transition: %v", err)
			s.recordFailure(ctx, sched, now)
			continue
		}
		log.Info("Pipeline completed, recurrence advanced.")
	}
	return nil
}

// processRecord runs the full pipeline for one schedule under a per-record
// timeout. Panics are treated like any other record-level failure so an
// unexpected fault cannot take down sibling records.
func (s *DueScheduleScanner) processRecord(ctx context.Context, sched *schedule.Schedule, now time.Time) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected panic in report pipeline: %v", r)
		}
	}()

	rctx, cancel := context.WithTimeout(ctx, s.recordTimeout)
	defer cancel()

	period := metrics.Period{Start: now.AddDate(0, 0, -reportWindowDays), End: now}

	snap, rows, err := s.synthesizer.Synthesize(rctx, sched.ClientID, period)
	if err != nil {
		return fmt.Errorf("synthesis: %w", err)
	}

	out, err := s.renderer.Render(sched.ClientID, sched.ClientName, snap, rows)
	if err != nil {
		return fmt.Errorf("rendering: %w", err)
	}

	recipients := schedule.CleanRecipients(sched.Recipients)
	if len(recipients) > 0 {
		subject := fmt.Sprintf("%s Ranking Report (%s)", sched.ClientName, period.Label())
		if err := s.delivery.Deliver(rctx, sched.ClientID, recipients, subject, out); err != nil {
			return fmt.Errorf("delivery: %w", err)
		}
	} else {
		s.logger.WithField("schedule_id", sched.ID).
			Info("Schedule has no recipients, skipping delivery.")
	}

	next := schedule.NextRun(sched, now)
	if err := s.schedules.Advance(rctx, sched.ID, now, next); err != nil {
		return fmt.Errorf("advancing recurrence: %w", err)
	}
	return nil
}

// recordFailure applies the explicit failure transition: the snapshot is
// marked FAILED and the schedule is pushed out by the backoff interval so a
// broken record does not come straight back as due on the next tick.
func (s *DueScheduleScanner) recordFailure(ctx context.Context, sched *schedule.Schedule, now time.Time) {
	if err := s.failures.MarkFailed(ctx, sched.ClientID); err != nil {
		s.logger.WithField("client_id", sched.ClientID).
			Errorf("Could not mark snapshot failed: %v", err)
	}
	if err := s.schedules.Reschedule(ctx, sched.ID, now.Add(s.failureBackoff)); err != nil {
		s.logger.WithField("schedule_id", sched.ID).
			Errorf("Could not apply failure backoff: %v", err)
	}
}
