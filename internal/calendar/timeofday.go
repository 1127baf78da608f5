package calendar

import (
	"fmt"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// TimeOfDay is a wall-clock time expressed as minutes since local midnight.
// Valid values are in [0, 1440).
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from an hour and minute, wrapping modulo 24h.
func NewTimeOfDay(hour, min int) TimeOfDay {
	return TimeOfDay(0).AddMinutes(hour*60 + min)
}

// ParseTimeOfDay parses a time string like "05:10" or "05:10 (UZT)".
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	// Strip a trailing zone label like " (UZT)".
	s := strings.TrimSpace(raw)
	if idx := strings.Index(s, " "); idx != -1 {
		s = s[:idx]
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time format: %q", raw)
	}

	var hour, min int
	if _, err := fmt.Sscanf(parts[0], "%d", &hour); err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", raw, err)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &min); err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", raw, err)
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 {
		return 0, fmt.Errorf("time out of range: %q", raw)
	}

	return TimeOfDay(hour*60 + min), nil
}

// MustParseTimeOfDay is like ParseTimeOfDay but panics on error.
// Intended for static tables.
func MustParseTimeOfDay(raw string) TimeOfDay {
	t, err := ParseTimeOfDay(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// FromTime returns the hour:minute of t. Seconds are truncated.
func FromTime(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// Hour returns the hour component.
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component.
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// AddMinutes shifts t by n minutes, wrapping around midnight in both directions.
func (t TimeOfDay) AddMinutes(n int) TimeOfDay {
	v := (int(t) + n) % minutesPerDay
	if v < 0 {
		v += minutesPerDay
	}
	return TimeOfDay(v)
}

// On places t on the calendar date of date, in date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

// Format renders t with a Go time layout such as "15:04" or "3:04 PM".
func (t TimeOfDay) Format(layout string) string {
	return time.Date(2000, 1, 1, t.Hour(), t.Minute(), 0, 0, time.UTC).Format(layout)
}

// String returns t as zero-padded "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// MarshalText implements encoding.TextMarshaler.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(b []byte) error {
	v, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
