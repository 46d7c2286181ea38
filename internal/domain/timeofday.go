package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeOfDay is an hour+minute value with no associated date.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	t := TimeOfDay{Hour: hour, Minute: minute}
	if err := t.Validate(); err != nil {
		return TimeOfDay{}, err
	}
	return t, nil
}

func (t TimeOfDay) Validate() error {
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("%w: time of day %02d:%02d out of range", ErrInvalidSpec, t.Hour, t.Minute)
	}
	return nil
}

// On places the time of day on the calendar date of ref, in ref's location.
func (t TimeOfDay) On(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), t.Hour, t.Minute, 0, 0, ref.Location())
}

// FormatTwelveHour renders the time in the 12-hour display format used by
// the mobile client: hour 0 maps to 12, minutes are zero-padded, and the
// period is "PM" for hours >= 12.
func (t TimeOfDay) FormatTwelveHour() (timeString, period string) {
	period = "AM"
	if t.Hour >= 12 {
		period = "PM"
	}

	hour := t.Hour % 12
	if hour == 0 {
		hour = 12
	}

	return fmt.Sprintf("%d : %02d", hour, t.Minute), period
}

// DateKey returns the zero-padded YYYY-MM-DD key for a calendar date,
// stable across time zones for map keying and calendar-range marking.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Date is a calendar date with no time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf truncates an instant to its calendar date in its own location.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// At combines the date with a time of day in the given location.
func (d Date) At(t TimeOfDay, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, 0, 0, loc)
}

func (d Date) Next() Date {
	return DateOf(d.At(TimeOfDay{}, time.UTC).AddDate(0, 0, 1))
}

func (d Date) After(other Date) bool {
	if d.Year != other.Year {
		return d.Year > other.Year
	}
	if d.Month != other.Month {
		return d.Month > other.Month
	}
	return d.Day > other.Day
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", raw, err)
	}
	*d = DateOf(parsed)
	return nil
}
