package schedule

import (
	"context"
	"time"
)

// Repository defines the operations for persisting and retrieving report
// schedules.
type Repository interface {
	Create(ctx context.Context, s *Schedule) error
	GetByID(ctx context.Context, id int64) (*Schedule, error)
	GetActiveByClient(ctx context.Context, clientID int64) (*Schedule, error)
	Update(ctx context.Context, s *Schedule) error

	// ListDue returns active schedules whose NextRunAt is at or before now.
	ListDue(ctx context.Context, now time.Time) ([]*Schedule, error)

	// Advance records a successful run: sets LastRunAt and the new NextRunAt.
	Advance(ctx context.Context, id int64, lastRunAt, nextRunAt time.Time) error

	// Reschedule moves NextRunAt without touching LastRunAt. Used to apply a
	// backoff after a failed run.
	Reschedule(ctx context.Context, id int64, nextRunAt time.Time) error
}
