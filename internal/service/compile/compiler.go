package compile

import (
	"time"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
)

// Compiler turns a reminder spec and a concrete "now" into a schedule of
// future trigger instants. It is pure: no clock reads, no side effects, so
// the same spec and now always compile to the same schedule.
type Compiler struct {
	maxInstants int
}

// NewCompiler creates a compiler with the given batch ceiling. Values
// outside (0, MaxPendingNotifications] are clamped to the platform ceiling.
func NewCompiler(maxInstants int) *Compiler {
	if maxInstants <= 0 || maxInstants > domain.MaxPendingNotifications {
		maxInstants = domain.MaxPendingNotifications
	}
	return &Compiler{maxInstants: maxInstants}
}

// Compile produces the ordered, future-only trigger instants for the spec.
// An empty schedule is not an error: zero remaining instants is reported to
// the caller through Schedule.IsEmpty. Invalid specs fail fast before any
// instant is produced.
func (c *Compiler) Compile(spec domain.ReminderSpec, now time.Time) (*domain.Schedule, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	switch spec.Kind {
	case domain.SpecIntervalWindow:
		return c.compileWindow(spec.Window, now), nil
	case domain.SpecLabeledInstant:
		return c.compileInstant(spec.Instant, now), nil
	default:
		return c.compileDaily(spec.Daily, now), nil
	}
}

// compileWindow resolves the daily window against now and walks it by the
// repeat interval.
//
// The start time is placed on today's date and rolled forward one day when
// it is not strictly in the future, so the first trigger never lands in the
// past. The end time is placed on the resolved start's date and rolled
// forward one day when it does not follow the start, which is how windows
// crossing midnight (e.g. 22:00-06:00) resolve.
func (c *Compiler) compileWindow(w *domain.IntervalWindow, now time.Time) *domain.Schedule {
	start := w.Start.On(now)
	if !start.After(now) {
		start = start.AddDate(0, 0, 1)
	}

	end := w.End.On(start)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}

	schedule := &domain.Schedule{
		WindowStart: start,
		WindowEnd:   end,
	}

	for current := start; !current.After(end); current = current.Add(w.Interval) {
		if len(schedule.Instants) >= c.maxInstants {
			schedule.Truncated = true
			break
		}
		schedule.Instants = append(schedule.Instants, current)
	}

	return schedule
}

// compileInstant computes the next occurrence of a labeled time of day:
// today when still ahead, otherwise tomorrow.
func (c *Compiler) compileInstant(in *domain.LabeledInstant, now time.Time) *domain.Schedule {
	next := in.Time.On(now)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return &domain.Schedule{Instants: []time.Time{next}}
}

// compileDaily emits one trigger per calendar day in the inclusive date
// range, silently skipping days whose trigger already passed: a schedule
// beginning in the past only fires its remaining future doses. The batch
// ceiling applies here too, even though wide ranges rarely reach it.
func (c *Compiler) compileDaily(d *domain.DateRangeDaily, now time.Time) *domain.Schedule {
	schedule := &domain.Schedule{}

	for day := d.StartDate; !day.After(d.EndDate); day = day.Next() {
		trigger := day.At(d.Time, now.Location())
		if !trigger.After(now) {
			continue
		}
		if len(schedule.Instants) >= c.maxInstants {
			schedule.Truncated = true
			break
		}
		schedule.Instants = append(schedule.Instants, trigger)
	}

	return schedule
}
