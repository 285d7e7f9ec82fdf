package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/domain/delivery"
	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/domain/report"
	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/render"
)

// DeliveryCoordinator sends rendered artifacts to a schedule's recipients
// and records the resulting status transition. The recipient batch is
// all-or-nothing: any failed send fails the batch and the snapshot never
// transitions to SENT for this run.
type DeliveryCoordinator struct {
	transport delivery.Transport
	reports   report.Repository
	logger    *logrus.Logger
	clock     func() time.Time
}

func NewDeliveryCoordinator(transport delivery.Transport, reports report.Repository, logger *logrus.Logger) *DeliveryCoordinator {
	return &DeliveryCoordinator{
		transport: transport,
		reports:   reports,
		logger:    logger,
		clock:     time.Now,
	}
}

// WithClock overrides the clock used for the sent timestamp.
func (c *DeliveryCoordinator) WithClock(clock func() time.Time) *DeliveryCoordinator {
	c.clock = clock
	return c
}

// Deliver sends the rendered report to every recipient concurrently and,
// only if the whole batch succeeds, marks the client's snapshot SENT with
// the recipients and subject actually used.
func (c *DeliveryCoordinator) Deliver(ctx context.Context, clientID int64, recipients []string, subject string, out *render.Output) error {
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients for client %d", clientID)
	}

	var wg sync.WaitGroup
	sendErrs := make([]error, len(recipients))
	for i, to := range recipients {
		wg.Add(1)
		go func(i int, to string) {
			defer wg.Done()
			sendErrs[i] = c.transport.Send(ctx, &delivery.Message{
				To:         to,
				Subject:    subject,
				HTMLBody:   out.HTMLBody,
				Attachment: out.Document,
			})
		}(i, to)
	}
	wg.Wait()

	var failed []string
	for i, err := range sendErrs {
		if err != nil {
			c.logger.WithFields(logrus.Fields{
				"client_id": clientID,
				"recipient": recipients[i],
			}).Errorf("Report delivery failed: %v", err)
			failed = append(failed, recipients[i])
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("delivery failed for %d of %d recipients (%s)",
			len(failed), len(recipients), strings.Join(failed, ", "))
	}

	if err := c.reports.MarkSent(ctx, clientID, c.clock(), recipients, subject); err != nil {
		return fmt.Errorf("delivered but failed to mark snapshot sent for client %d: %w", clientID, err)
	}
	c.logger.WithFields(logrus.Fields{
		"client_id":  clientID,
		"recipients": len(recipients),
	}).Info("Report delivered to all recipients.")
	return nil
}
