package report

import (
	"context"
	"time"
)

// Repository defines the operations for the per-client snapshot row.
type Repository interface {
	// Upsert writes the snapshot for its client, inserting or overwriting so
	// that exactly one row per client ever exists.
	Upsert(ctx context.Context, s *Snapshot) error
	GetByClient(ctx context.Context, clientID int64) (*Snapshot, error)

	// MarkSent transitions the client's snapshot to SENT, recording when it
	// was sent, to whom, and under which subject.
	MarkSent(ctx context.Context, clientID int64, sentAt time.Time, recipients []string, subject string) error

	// MarkFailed transitions the client's snapshot to FAILED after a run
	// aborted mid-pipeline.
	MarkFailed(ctx context.Context, clientID int64) error
}
