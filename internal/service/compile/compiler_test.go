package compile

import (
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
)

func mustTimeOfDay(t *testing.T, hour, minute int) domain.TimeOfDay {
	t.Helper()

	tod, err := domain.NewTimeOfDay(hour, minute)
	if err != nil {
		t.Fatalf("invalid time of day %02d:%02d: %v", hour, minute, err)
	}
	return tod
}

func TestCompiler_Window_FutureSameDay(t *testing.T) {
	c := NewCompiler(0)

	now := time.Date(2024, 3, 1, 5, 0, 0, 0, time.UTC)
	spec := domain.NewIntervalWindowSpec(
		mustTimeOfDay(t, 6, 0),
		mustTimeOfDay(t, 10, 0),
		2*time.Hour,
	)

	got, err := c.Compile(spec, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []time.Time{
		time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	assertInstants(t, got.Instants, want)
	if got.Truncated {
		t.Error("Truncated = true, want false")
	}
	if !got.WindowStart.Equal(want[0]) {
		t.Errorf("WindowStart = %v, want %v", got.WindowStart, want[0])
	}
	if !got.WindowEnd.Equal(want[2]) {
		t.Errorf("WindowEnd = %v, want %v", got.WindowEnd, want[2])
	}
}

func TestCompiler_Window_StartInPastRollsToTomorrow(t *testing.T) {
	c := NewCompiler(0)

	// 06:00 already passed: the whole window moves to the next day.
	now := time.Date(2024, 3, 1, 7, 30, 0, 0, time.UTC)
	spec := domain.NewIntervalWindowSpec(
		mustTimeOfDay(t, 6, 0),
		mustTimeOfDay(t, 8, 0),
		time.Hour,
	)

	got, err := c.Compile(spec, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertInstants(t, got.Instants, []time.Time{
		time.Date(2024, 3, 2, 6, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 2, 7, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC),
	})

	for _, instant := range got.Instants {
		if !instant.After(now) {
			t.Errorf("instant %v is not in the future of %v", instant, now)
		}
	}
}

func TestCompiler_Window_CrossesMidnight(t *testing.T) {
	c := NewCompiler(0)

	// Worked example: now = Day1 23:30, window 22:00-06:00 every 2h.
	// Day1 22:00 already passed so the start rolls to Day2 22:00, and the
	// end resolves to Day3 06:00.
	now := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)
	spec := domain.NewIntervalWindowSpec(
		mustTimeOfDay(t, 22, 0),
		mustTimeOfDay(t, 6, 0),
		2*time.Hour,
	)

	got, err := c.Compile(spec, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertInstants(t, got.Instants, []time.Time{
		time.Date(2024, 3, 2, 22, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 3, 2, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 3, 4, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 3, 6, 0, 0, 0, time.UTC),
	})

	wantStart := time.Date(2024, 3, 2, 22, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, 3, 3, 6, 0, 0, 0, time.UTC)
	if !got.WindowStart.Equal(wantStart) {
		t.Errorf("WindowStart = %v, want %v", got.WindowStart, wantStart)
	}
	if !got.WindowEnd.Equal(wantEnd) {
		t.Errorf("WindowEnd = %v, want %v", got.WindowEnd, wantEnd)
	}
}

func TestCompiler_Window_IntervalSteps(t *testing.T) {
	c := NewCompiler(0)

	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		interval time.Duration
		want     int
	}{
		{name: "one minute interval truncates at ceiling", interval: time.Minute, want: domain.MaxPendingNotifications},
		{name: "ten minutes", interval: 10 * time.Minute, want: 25},
		{name: "thirty minutes", interval: 30 * time.Minute, want: 9},
		{name: "one hour", interval: time.Hour, want: 5},
		{name: "two hours", interval: 2 * time.Hour, want: 3},
		// Not one of the client's enumerated choices; any positive duration
		// must compile.
		{name: "arbitrary interval", interval: 3*time.Hour + 50*time.Minute, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := domain.NewIntervalWindowSpec(
				mustTimeOfDay(t, 8, 0),
				mustTimeOfDay(t, 12, 0),
				tt.interval,
			)

			got, err := c.Compile(spec, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got.Instants) != tt.want {
				t.Errorf("len(Instants) = %d, want %d", len(got.Instants), tt.want)
			}

			for i := 1; i < len(got.Instants); i++ {
				step := got.Instants[i].Sub(got.Instants[i-1])
				if step != tt.interval {
					t.Errorf("step %d = %v, want %v", i, step, tt.interval)
				}
			}
		})
	}
}

func TestCompiler_Window_CeilingReported(t *testing.T) {
	c := NewCompiler(0)

	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	spec := domain.NewIntervalWindowSpec(
		mustTimeOfDay(t, 1, 0),
		mustTimeOfDay(t, 23, 0),
		time.Minute,
	)

	got, err := c.Compile(spec, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.Instants) != domain.MaxPendingNotifications {
		t.Errorf("len(Instants) = %d, want %d", len(got.Instants), domain.MaxPendingNotifications)
	}
	if !got.Truncated {
		t.Error("Truncated = false, want true")
	}
}

func TestCompiler_Window_InvalidSpec(t *testing.T) {
	c := NewCompiler(0)
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		spec domain.ReminderSpec
	}{
		{
			name: "zero interval",
			spec: domain.NewIntervalWindowSpec(mustTimeOfDay(t, 6, 0), mustTimeOfDay(t, 10, 0), 0),
		},
		{
			name: "negative interval",
			spec: domain.NewIntervalWindowSpec(mustTimeOfDay(t, 6, 0), mustTimeOfDay(t, 10, 0), -time.Minute),
		},
		{
			name: "hour out of range",
			spec: domain.NewIntervalWindowSpec(domain.TimeOfDay{Hour: 24}, mustTimeOfDay(t, 10, 0), time.Hour),
		},
		{
			name: "missing shape",
			spec: domain.ReminderSpec{Kind: domain.SpecIntervalWindow},
		},
		{
			name: "unknown kind",
			spec: domain.ReminderSpec{Kind: "periodic"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Compile(tt.spec, now)
			if !errors.Is(err, domain.ErrInvalidSpec) {
				t.Errorf("Compile() error = %v, want ErrInvalidSpec", err)
			}
		})
	}
}

func TestCompiler_Daily_SkipsPastDays(t *testing.T) {
	c := NewCompiler(0)

	// Worked example: range Jan 1-3 at 08:00, now = Jan 2 09:00. Jan 1 and
	// Jan 2 are already past; only Jan 3 remains.
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	spec := domain.NewDateRangeDailySpec(
		domain.NewDate(2024, time.January, 1),
		domain.NewDate(2024, time.January, 3),
		mustTimeOfDay(t, 8, 0),
		"Amoxicillin",
		"",
	)

	got, err := c.Compile(spec, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertInstants(t, got.Instants, []time.Time{
		time.Date(2024, 1, 3, 8, 0, 0, 0, time.UTC),
	})
}

func TestCompiler_Daily_AllWithinRangeAtSpecTime(t *testing.T) {
	c := NewCompiler(0)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	start := domain.NewDate(2024, time.January, 5)
	end := domain.NewDate(2024, time.January, 12)
	spec := domain.NewDateRangeDailySpec(start, end, mustTimeOfDay(t, 21, 30), "Iron", "after dinner")

	got, err := c.Compile(spec, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.Instants) != 8 {
		t.Fatalf("len(Instants) = %d, want 8", len(got.Instants))
	}

	for _, instant := range got.Instants {
		day := domain.DateOf(instant)
		if start.After(day) || day.After(end) {
			t.Errorf("instant %v outside range [%s, %s]", instant, start, end)
		}
		if instant.Hour() != 21 || instant.Minute() != 30 {
			t.Errorf("instant %v not at 21:30", instant)
		}
	}
}

func TestCompiler_Daily_WholePastRangeIsEmpty(t *testing.T) {
	c := NewCompiler(0)

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	spec := domain.NewDateRangeDailySpec(
		domain.NewDate(2024, time.May, 1),
		domain.NewDate(2024, time.May, 10),
		mustTimeOfDay(t, 8, 0),
		"Expired course",
		"",
	)

	got, err := c.Compile(spec, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsEmpty() {
		t.Errorf("IsEmpty() = false, want true (got %d instants)", len(got.Instants))
	}
}

func TestCompiler_Daily_CeilingApplies(t *testing.T) {
	c := NewCompiler(0)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	spec := domain.NewDateRangeDailySpec(
		domain.NewDate(2024, time.January, 2),
		domain.NewDate(2024, time.June, 1),
		mustTimeOfDay(t, 8, 0),
		"Long course",
		"",
	)

	got, err := c.Compile(spec, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.Instants) != domain.MaxPendingNotifications {
		t.Errorf("len(Instants) = %d, want %d", len(got.Instants), domain.MaxPendingNotifications)
	}
	if !got.Truncated {
		t.Error("Truncated = false, want true")
	}
}

func TestCompiler_Daily_InvalidRange(t *testing.T) {
	c := NewCompiler(0)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	spec := domain.NewDateRangeDailySpec(
		domain.NewDate(2024, time.February, 1),
		domain.NewDate(2024, time.January, 1),
		mustTimeOfDay(t, 8, 0),
		"Backwards",
		"",
	)

	if _, err := c.Compile(spec, now); !errors.Is(err, domain.ErrInvalidSpec) {
		t.Errorf("Compile() error = %v, want ErrInvalidSpec", err)
	}
}

func TestCompiler_Instant_NextOccurrence(t *testing.T) {
	c := NewCompiler(0)

	tests := []struct {
		name string
		now  time.Time
		at   domain.TimeOfDay
		want time.Time
	}{
		{
			name: "later today",
			now:  time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC),
			at:   domain.TimeOfDay{Hour: 8, Minute: 30},
			want: time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC),
		},
		{
			name: "already passed rolls to tomorrow",
			now:  time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
			at:   domain.TimeOfDay{Hour: 8, Minute: 30},
			want: time.Date(2024, 3, 2, 8, 30, 0, 0, time.UTC),
		},
		{
			name: "exactly now rolls to tomorrow",
			now:  time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC),
			at:   domain.TimeOfDay{Hour: 8, Minute: 30},
			want: time.Date(2024, 3, 2, 8, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := domain.NewLabeledInstantSpec("Breakfast", tt.at)

			got, err := c.Compile(spec, tt.now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			assertInstants(t, got.Instants, []time.Time{tt.want})
		})
	}
}

func TestCompiler_Instant_RequiresLabel(t *testing.T) {
	c := NewCompiler(0)

	spec := domain.NewLabeledInstantSpec("", domain.TimeOfDay{Hour: 8})
	if _, err := c.Compile(spec, time.Now()); !errors.Is(err, domain.ErrInvalidSpec) {
		t.Errorf("Compile() error = %v, want ErrInvalidSpec", err)
	}
}

func TestSchedule_Summary(t *testing.T) {
	c := NewCompiler(0)

	now := time.Date(2024, 3, 1, 5, 0, 0, 0, time.UTC)
	spec := domain.NewIntervalWindowSpec(
		mustTimeOfDay(t, 6, 0),
		mustTimeOfDay(t, 22, 0),
		time.Hour,
	)

	got, err := c.Compile(spec, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "6 : 00 AM - 10 : 00 PM"
	if got.Summary() != want {
		t.Errorf("Summary() = %q, want %q", got.Summary(), want)
	}
}

func assertInstants(t *testing.T, got, want []time.Time) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("len(instants) = %d, want %d (got %v)", len(got), len(want), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("instant[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
