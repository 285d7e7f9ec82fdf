package schedule

import "time"

// defaultFallbackDays is the advance applied when a schedule carries an
// unsupported frequency: one week from now at the configured time of day.
const defaultFallbackDays = 7

// NextRun computes the next trigger timestamp for a schedule, strictly after
// now. It is pure: the caller supplies "now", and identical inputs always
// produce identical output.
func NextRun(s *Schedule, now time.Time) time.Time {
	hour, minute, err := ParseTimeOfDay(s.TimeOfDay)
	if err != nil {
		// Time-of-day is validated when a schedule is created; if a bad
		// value slips through anyway, fall back to 09:00.
		hour, minute = 9, 0
	}
	candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())

	switch s.Frequency {
	case FrequencyWeekly:
		return nextWeekday(candidate, now, int(s.DayOfWeek.Int32), 7)
	case FrequencyBiweekly:
		return nextWeekday(candidate, now, int(s.DayOfWeek.Int32), 14)
	case FrequencyMonthly:
		return nextMonthly(candidate, now, int(s.DayOfMonth.Int32))
	default:
		return candidate.AddDate(0, 0, defaultFallbackDays)
	}
}

func nextWeekday(candidate, now time.Time, dayOfWeek, cycleDays int) time.Time {
	delta := (dayOfWeek - int(now.Weekday()) + cycleDays) % cycleDays
	candidate = candidate.AddDate(0, 0, delta)
	if !candidate.After(now) {
		// Today is the anchor day but the time has already passed; wait a
		// full cycle.
		candidate = candidate.AddDate(0, 0, cycleDays)
	}
	return candidate
}

func nextMonthly(candidate, now time.Time, dayOfMonth int) time.Time {
	c := withClampedDay(candidate.Year(), candidate.Month(), dayOfMonth, candidate)
	if !c.After(now) {
		// Advance via the first of the next month so AddDate's day
		// normalization cannot skip a short month.
		next := time.Date(candidate.Year(), candidate.Month()+1, 1, 0, 0, 0, 0, candidate.Location())
		c = withClampedDay(next.Year(), next.Month(), dayOfMonth, candidate)
	}
	return c
}

// withClampedDay builds a timestamp on the given day of the given month,
// clamping to the month's last day when the anchor does not exist there
// (day 31 in a 30-day month).
func withClampedDay(year int, month time.Month, day int, timeOf time.Time) time.Time {
	if last := lastDayOfMonth(year, month, timeOf.Location()); day > last {
		day = last
	}
	return time.Date(year, month, day, timeOf.Hour(), timeOf.Minute(), 0, 0, timeOf.Location())
}

func lastDayOfMonth(year int, month time.Month, loc *time.Location) int {
	firstOfNext := time.Date(year, month+1, 1, 0, 0, 0, 0, loc)
	return firstOfNext.AddDate(0, 0, -1).Day()
}
