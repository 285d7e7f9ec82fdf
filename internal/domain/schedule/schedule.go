package schedule

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Frequency identifies how often a report schedule fires.
type Frequency string

const (
	FrequencyWeekly   Frequency = "WEEKLY"
	FrequencyBiweekly Frequency = "BIWEEKLY"
	FrequencyMonthly  Frequency = "MONTHLY"
)

// Valid reports whether the frequency is one of the supported values.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
		return true
	}
	return false
}

// Schedule is a persisted recurrence rule describing when the next report
// for a client should be generated and to whom it should be sent.
type Schedule struct {
	ID         int64
	ClientID   int64
	ClientName string
	Frequency  Frequency
	DayOfWeek  sql.NullInt32 // 0 (Sunday) .. 6 (Saturday); weekly/biweekly only
	DayOfMonth sql.NullInt32 // 1..31; monthly only
	TimeOfDay  string        // "HH:MM", 24h
	Recipients []string
	IsActive   bool
	NextRunAt  time.Time
	LastRunAt  sql.NullTime
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ParseTimeOfDay parses an "HH:MM" string into hour and minute components.
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time of day %q: expected HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in time of day %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in time of day %q", s)
	}
	return hour, minute, nil
}

// CleanRecipients drops empty and whitespace-only entries from a recipient
// list. Recipient columns are validated once here, when loaded, rather than
// re-checked at every read site.
func CleanRecipients(in []string) []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		r = strings.TrimSpace(r)
		if r != "" {
			out = append(out, r)
		}
	}
	return out
}
