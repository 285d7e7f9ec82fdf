package report

import (
	"database/sql"
	"time"
)

// Status tracks a snapshot through its lifecycle. A snapshot is DRAFT when
// synthesized with no active schedule, SCHEDULED when an active schedule
// exists for the client, SENT only after every recipient in a delivery batch
// succeeded, and FAILED when a scheduled run aborted mid-pipeline. A later
// synthesis for the same client overwrites the row and may move the status
// backward; there is no append-only history.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusScheduled Status = "SCHEDULED"
	StatusSent      Status = "SENT"
	StatusFailed    Status = "FAILED"
)

// Snapshot is the single canonical report row for a client, overwritten on
// every regeneration.
type Snapshot struct {
	ClientID        int64
	PeriodLabel     string
	Status          Status
	Clicks          int64
	Impressions     int64
	Sessions        int64
	AvgPosition     float64
	TrackedKeywords int
	TopTenKeywords  int
	SentAt          sql.NullTime
	SentRecipients  []string
	SentSubject     string
	UpdatedAt       time.Time
}

// TargetRow is one tabulated unit of keyword ranking data. Rows are
// read-only inputs to rendering; the pipeline never mutates them.
type TargetRow struct {
	Keyword     string
	Location    string
	CreatedAt   time.Time
	Rank        int
	PrevRank    int
	FeatureTags []string
	URL         string
}
