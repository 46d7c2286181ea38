package domain

import (
	"fmt"
	"time"
)

// SpecKind tags the shape of a ReminderSpec.
type SpecKind string

const (
	SpecIntervalWindow SpecKind = "interval_window"
	SpecLabeledInstant SpecKind = "labeled_instant"
	SpecDateRangeDaily SpecKind = "date_range_daily"
)

// IntervalWindow describes a repeating reminder within a daily time window,
// e.g. drink water every 30 minutes between 06:00 and 22:00. A window whose
// end is not after its start is treated as crossing midnight.
type IntervalWindow struct {
	Start    TimeOfDay     `json:"start"`
	End      TimeOfDay     `json:"end"`
	Interval time.Duration `json:"interval"`
}

// LabeledInstant is a single named time of day, e.g. "Breakfast" at 08:00.
// Meal-time reminders are a list of these, each independently removable.
type LabeledInstant struct {
	Label string    `json:"label"`
	Time  TimeOfDay `json:"time"`
}

// DateRangeDaily fires once per calendar day at a fixed time between two
// dates inclusive, e.g. take medication X daily from Jan 1 to Jan 14.
type DateRangeDaily struct {
	StartDate   Date      `json:"start_date"`
	EndDate     Date      `json:"end_date"`
	Time        TimeOfDay `json:"time"`
	SubjectName string    `json:"subject_name"`
	Notes       string    `json:"notes,omitempty"`
}

// ReminderSpec is the user's intent for one reminder, a tagged union over
// the three supported shapes. Exactly one of the shape fields is set,
// matching Kind. A spec is immutable once compiled: edits produce a new
// spec and a full re-compile, never an in-place patch of instants.
type ReminderSpec struct {
	Kind    SpecKind        `json:"kind"`
	Window  *IntervalWindow `json:"window,omitempty"`
	Instant *LabeledInstant `json:"instant,omitempty"`
	Daily   *DateRangeDaily `json:"daily,omitempty"`
}

func NewIntervalWindowSpec(start, end TimeOfDay, interval time.Duration) ReminderSpec {
	return ReminderSpec{
		Kind:   SpecIntervalWindow,
		Window: &IntervalWindow{Start: start, End: end, Interval: interval},
	}
}

func NewLabeledInstantSpec(label string, at TimeOfDay) ReminderSpec {
	return ReminderSpec{
		Kind:    SpecLabeledInstant,
		Instant: &LabeledInstant{Label: label, Time: at},
	}
}

func NewDateRangeDailySpec(start, end Date, at TimeOfDay, subject, notes string) ReminderSpec {
	return ReminderSpec{
		Kind: SpecDateRangeDaily,
		Daily: &DateRangeDaily{
			StartDate:   start,
			EndDate:     end,
			Time:        at,
			SubjectName: subject,
			Notes:       notes,
		},
	}
}

func (s ReminderSpec) Validate() error {
	switch s.Kind {
	case SpecIntervalWindow:
		if s.Window == nil {
			return fmt.Errorf("%w: missing window shape", ErrInvalidSpec)
		}
		if err := s.Window.Start.Validate(); err != nil {
			return err
		}
		if err := s.Window.End.Validate(); err != nil {
			return err
		}
		if s.Window.Interval <= 0 {
			return fmt.Errorf("%w: interval must be positive", ErrInvalidSpec)
		}
		return nil

	case SpecLabeledInstant:
		if s.Instant == nil {
			return fmt.Errorf("%w: missing instant shape", ErrInvalidSpec)
		}
		if s.Instant.Label == "" {
			return fmt.Errorf("%w: label is required", ErrInvalidSpec)
		}
		return s.Instant.Time.Validate()

	case SpecDateRangeDaily:
		if s.Daily == nil {
			return fmt.Errorf("%w: missing daily shape", ErrInvalidSpec)
		}
		if s.Daily.StartDate.IsZero() || s.Daily.EndDate.IsZero() {
			return fmt.Errorf("%w: start and end dates are required", ErrInvalidSpec)
		}
		if s.Daily.StartDate.After(s.Daily.EndDate) {
			return fmt.Errorf("%w: start date %s after end date %s",
				ErrInvalidSpec, s.Daily.StartDate, s.Daily.EndDate)
		}
		return s.Daily.Time.Validate()

	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidSpec, s.Kind)
	}
}

// Entry is one element of a category's reminder list (meal times,
// medications). Active is meaningful for medication entries only: an
// inactive entry keeps its persisted spec but is excluded from scheduling.
type Entry struct {
	ID     string       `json:"id"`
	Spec   ReminderSpec `json:"spec"`
	Active bool         `json:"active"`
}
