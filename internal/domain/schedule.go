package domain

import (
	"fmt"
	"time"
)

// MaxPendingNotifications is the platform ceiling on simultaneously
// scheduled, undelivered notifications. Compiled batches never exceed it.
const MaxPendingNotifications = 64

// Schedule is the result of compiling a ReminderSpec against a concrete
// "now": an ordered, deduplicated, future-only list of trigger instants.
// Instants are never persisted individually; they are regenerated on every
// re-compile.
type Schedule struct {
	Instants []time.Time

	// WindowStart and WindowEnd are the resolved window bounds for
	// interval-window specs, zero otherwise.
	WindowStart time.Time
	WindowEnd   time.Time

	// Truncated reports that the instant count hit the pending-notification
	// ceiling. This is a reported condition, not a failure.
	Truncated bool
}

func (s *Schedule) IsEmpty() bool {
	return len(s.Instants) == 0
}

// Summary renders the human-readable range persisted alongside the spec,
// e.g. "6 : 00 AM - 10 : 00 PM". For schedules without a resolved window it
// falls back to the first instant's time of day.
func (s *Schedule) Summary() string {
	if !s.WindowStart.IsZero() && !s.WindowEnd.IsZero() {
		return fmt.Sprintf("%s - %s", formatInstant(s.WindowStart), formatInstant(s.WindowEnd))
	}
	if len(s.Instants) == 0 {
		return ""
	}
	return formatInstant(s.Instants[0])
}

func formatInstant(t time.Time) string {
	tod := TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
	timeString, period := tod.FormatTwelveHour()
	return timeString + " " + period
}

// ReminderRecord is the persisted form of a window-based reminder: the user
// spec plus the derived summary, keyed by category.
type ReminderRecord struct {
	Category    Category     `json:"category"`
	Spec        ReminderSpec `json:"spec"`
	SummaryText string       `json:"summary_text"`
	SavedAt     time.Time    `json:"saved_at"`
}
