package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq" // For pq.Array and driver registration

	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/domain/schedule"
)

// Custom errors specific to the schedule repository.
var ErrScheduleNotFound = fmt.Errorf("report schedule not found")

type PostgresScheduleRepository struct {
	db *sql.DB
}

func NewPostgresScheduleRepository(db *sql.DB) *PostgresScheduleRepository {
	return &PostgresScheduleRepository{db: db}
}

const scheduleColumns = `s.id, s.client_id, c.name, s.frequency, s.day_of_week, s.day_of_month,
        s.time_of_day, s.recipients, s.is_active, s.next_run_at, s.last_run_at, s.created_at, s.updated_at`

func (r *PostgresScheduleRepository) Create(ctx context.Context, s *schedule.Schedule) error {
	if !s.Frequency.Valid() {
		return fmt.Errorf("unsupported schedule frequency %q", s.Frequency)
	}
	if _, _, err := schedule.ParseTimeOfDay(s.TimeOfDay); err != nil {
		return err
	}
	query := `INSERT INTO report_schedules
                (client_id, frequency, day_of_week, day_of_month, time_of_day, recipients, is_active, next_run_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
              RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		s.ClientID, s.Frequency, s.DayOfWeek, s.DayOfMonth, s.TimeOfDay,
		pq.Array(s.Recipients), s.IsActive, s.NextRunAt,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating report schedule: %w", err)
	}
	return nil
}

func (r *PostgresScheduleRepository) GetByID(ctx context.Context, id int64) (*schedule.Schedule, error) {
	query := `SELECT ` + scheduleColumns + `
              FROM report_schedules s JOIN clients c ON c.id = s.client_id
              WHERE s.id = $1`
	s, err := r.scanOne(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("error getting report schedule by ID: %w", err)
	}
	return s, nil
}

func (r *PostgresScheduleRepository) GetActiveByClient(ctx context.Context, clientID int64) (*schedule.Schedule, error) {
	query := `SELECT ` + scheduleColumns + `
              FROM report_schedules s JOIN clients c ON c.id = s.client_id
              WHERE s.client_id = $1 AND s.is_active = TRUE
              ORDER BY s.created_at DESC LIMIT 1`
	s, err := r.scanOne(r.db.QueryRowContext(ctx, query, clientID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("error getting active schedule for client: %w", err)
	}
	return s, nil
}

func (r *PostgresScheduleRepository) Update(ctx context.Context, s *schedule.Schedule) error {
	query := `UPDATE report_schedules
              SET frequency = $2, day_of_week = $3, day_of_month = $4, time_of_day = $5,
                  recipients = $6, is_active = $7, next_run_at = $8, updated_at = NOW()
              WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		s.ID, s.Frequency, s.DayOfWeek, s.DayOfMonth, s.TimeOfDay,
		pq.Array(s.Recipients), s.IsActive, s.NextRunAt)
	if err != nil {
		return fmt.Errorf("error updating report schedule: %w", err)
	}
	return requireRow(res, ErrScheduleNotFound)
}

func (r *PostgresScheduleRepository) ListDue(ctx context.Context, now time.Time) ([]*schedule.Schedule, error) {
	query := `SELECT ` + scheduleColumns + `
              FROM report_schedules s JOIN clients c ON c.id = s.client_id
              WHERE s.is_active = TRUE AND s.next_run_at <= $1
              ORDER BY s.next_run_at ASC`
	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("error listing due schedules: %w", err)
	}
	defer rows.Close()

	var schedules []*schedule.Schedule
	for rows.Next() {
		s, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning due schedule: %w", err)
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating due schedules: %w", err)
	}
	return schedules, nil
}

func (r *PostgresScheduleRepository) Advance(ctx context.Context, id int64, lastRunAt, nextRunAt time.Time) error {
	query := `UPDATE report_schedules
              SET last_run_at = $2, next_run_at = $3, updated_at = NOW()
              WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, lastRunAt, nextRunAt)
	if err != nil {
		return fmt.Errorf("error advancing report schedule: %w", err)
	}
	return requireRow(res, ErrScheduleNotFound)
}

func (r *PostgresScheduleRepository) Reschedule(ctx context.Context, id int64, nextRunAt time.Time) error {
	query := `UPDATE report_schedules SET next_run_at = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, nextRunAt)
	if err != nil {
		return fmt.Errorf("error rescheduling report schedule: %w", err)
	}
	return requireRow(res, ErrScheduleNotFound)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *PostgresScheduleRepository) scanOne(row rowScanner) (*schedule.Schedule, error) {
	s := schedule.Schedule{}
	var recipients pq.StringArray
	err := row.Scan(&s.ID, &s.ClientID, &s.ClientName, &s.Frequency, &s.DayOfWeek, &s.DayOfMonth,
		&s.TimeOfDay, &recipients, &s.IsActive, &s.NextRunAt, &s.LastRunAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	// Recipient lists are validated once here, at the persistence boundary.
	s.Recipients = schedule.CleanRecipients(recipients)
	return &s, nil
}

func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
