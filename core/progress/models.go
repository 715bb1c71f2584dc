package progress

import (
	"time"
)

// Event records that a learner completed a course unit.
// One row per (user, unit); completing an already completed unit
// only refreshes the timestamp.
type Event struct {
	UserID      string    `json:"user_id"`
	UnitOrdinal int       `json:"module_id"`
	Completed   bool      `json:"completed"`
	CompletedAt time.Time `json:"completed_at"`
}

// CompletedCount counts the distinct units completed.
// Duplicate events for the same unit count once.
func CompletedCount(events []Event) int {
	seen := make(map[int]struct{}, len(events))
	for _, ev := range events {
		if !ev.Completed {
			continue
		}
		seen[ev.UnitOrdinal] = struct{}{}
	}
	return len(seen)
}

// Percentage returns the completion percentage, 0 when the course is empty.
func Percentage(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// NextUnit returns the ordinal of the unit to resume at,
// capped at the last unit once everything is done.
func NextUnit(completed, total int) int {
	if completed >= total {
		return total
	}
	return completed + 1
}

// StreakDays counts consecutive UTC calendar days of activity ending today.
// The walk starts at today and stops at the first day without an event,
// so a learner with no activity today has a streak of 0 regardless of
// yesterday.
func StreakDays(timestamps []time.Time, today time.Time) int {
	if len(timestamps) == 0 {
		return 0
	}

	days := make(map[string]struct{}, len(timestamps))
	for _, ts := range timestamps {
		days[ts.UTC().Format("2006-01-02")] = struct{}{}
	}

	streak := 0
	day := today.UTC()
	for {
		if _, ok := days[day.Format("2006-01-02")]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
