package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/domain/report"
)

// Custom errors specific to the report repository.
var ErrSnapshotNotFound = fmt.Errorf("report snapshot not found")

type PostgresReportRepository struct {
	db *sql.DB
}

func NewPostgresReportRepository(db *sql.DB) *PostgresReportRepository {
	return &PostgresReportRepository{db: db}
}

// Upsert writes the single snapshot row for a client. The ON CONFLICT arm
// overwrites everything, including the sent bookkeeping, so a regeneration
// fully replaces whatever terminal state the previous run reached.
func (r *PostgresReportRepository) Upsert(ctx context.Context, s *report.Snapshot) error {
	query := `INSERT INTO report_snapshots
                (client_id, period_label, status, clicks, impressions, sessions, avg_position,
                 tracked_keywords, top_ten_keywords, sent_at, sent_recipients, sent_subject, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULL, '{}', '', NOW())
              ON CONFLICT (client_id) DO UPDATE SET
                period_label = EXCLUDED.period_label,
                status = EXCLUDED.status,
                clicks = EXCLUDED.clicks,
                impressions = EXCLUDED.impressions,
                sessions = EXCLUDED.sessions,
                avg_position = EXCLUDED.avg_position,
                tracked_keywords = EXCLUDED.tracked_keywords,
                top_ten_keywords = EXCLUDED.top_ten_keywords,
                sent_at = NULL,
                sent_recipients = '{}',
                sent_subject = '',
                updated_at = NOW()
              RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		s.ClientID, s.PeriodLabel, s.Status, s.Clicks, s.Impressions, s.Sessions,
		s.AvgPosition, s.TrackedKeywords, s.TopTenKeywords,
	).Scan(&s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error upserting report snapshot: %w", err)
	}
	return nil
}

func (r *PostgresReportRepository) GetByClient(ctx context.Context, clientID int64) (*report.Snapshot, error) {
	query := `SELECT client_id, period_label, status, clicks, impressions, sessions, avg_position,
                     tracked_keywords, top_ten_keywords, sent_at, sent_recipients, sent_subject, updated_at
              FROM report_snapshots WHERE client_id = $1`
	s := report.Snapshot{}
	var recipients pq.StringArray
	err := r.db.QueryRowContext(ctx, query, clientID).Scan(
		&s.ClientID, &s.PeriodLabel, &s.Status, &s.Clicks, &s.Impressions, &s.Sessions,
		&s.AvgPosition, &s.TrackedKeywords, &s.TopTenKeywords,
		&s.SentAt, &recipients, &s.SentSubject, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("error getting report snapshot: %w", err)
	}
	s.SentRecipients = recipients
	return &s, nil
}

func (r *PostgresReportRepository) MarkSent(ctx context.Context, clientID int64, sentAt time.Time, recipients []string, subject string) error {
	query := `UPDATE report_snapshots
              SET status = $2, sent_at = $3, sent_recipients = $4, sent_subject = $5, updated_at = NOW()
              WHERE client_id = $1`
	res, err := r.db.ExecContext(ctx, query, clientID, report.StatusSent, sentAt, pq.Array(recipients), subject)
	if err != nil {
		return fmt.Errorf("error marking report snapshot sent: %w", err)
	}
	return requireRow(res, ErrSnapshotNotFound)
}

func (r *PostgresReportRepository) MarkFailed(ctx context.Context, clientID int64) error {
	query := `UPDATE report_snapshots SET status = $2, updated_at = NOW() WHERE client_id = $1`
	res, err := r.db.ExecContext(ctx, query, clientID, report.StatusFailed)
	if err != nil {
		return fmt.Errorf("error marking report snapshot failed: %w", err)
	}
	return requireRow(res, ErrSnapshotNotFound)
}
