// Package fasting derives the live fasting status from a day's anchors: which
// phase the clock is in, what it counts down to, and how far the fast has
// progressed.
package fasting

import (
	"fmt"
	"time"

	"github.com/smokyabdulrahman/ramazon/internal/calendar"
)

// Phase is the position of the clock relative to the day's anchors.
type Phase int

const (
	BeforeStart Phase = iota
	InWindow
	AfterWindow
)

// String returns the identifier used in JSON output.
func (p Phase) String() string {
	switch p {
	case BeforeStart:
		return "before_start"
	case InWindow:
		return "in_window"
	case AfterWindow:
		return "after_window"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Label returns the countdown caption shown next to the timer.
func (p Phase) Label() string {
	switch p {
	case InWindow:
		return "Iftorgacha"
	case AfterWindow:
		return "Saharlikgacha (Ertaga)"
	default:
		return "Saharlikgacha"
	}
}

// ShortLabel returns a one-letter caption for narrow status lines.
func (p Phase) ShortLabel() string {
	if p == InWindow {
		return "I"
	}
	return "S"
}

// Status is the derived state for one instant.
type Status struct {
	Phase            Phase
	Target           calendar.TimeOfDay
	TargetIsTomorrow bool
	Day              calendar.DayRecord
}

// Compute derives the status for now. day must already be adjusted for the
// district; cal is the effective calendar used to find the next day's start
// once today's fast is over. Comparison is at minute resolution.
func Compute(cal calendar.Calendar, day calendar.DayRecord, now time.Time) Status {
	cur := calendar.FromTime(now)

	switch {
	case cur < day.Start:
		return Status{Phase: BeforeStart, Target: day.Start, Day: day}
	case cur < day.End:
		return Status{Phase: InWindow, Target: day.End, Day: day}
	}

	target := day.Start
	if next, ok := cal.Next(day.Day); ok {
		target = next.Start
	}
	return Status{Phase: AfterWindow, Target: target, TargetIsTomorrow: true, Day: day}
}

// TargetTime places the status target on now's date, or the following date
// when the target is tomorrow, in now's location.
func TargetTime(s Status, now time.Time) time.Time {
	date := now
	if s.TargetIsTomorrow {
		date = now.AddDate(0, 0, 1)
	}
	return s.Target.On(date)
}

// Remaining returns the time left until the target, never negative.
func Remaining(s Status, now time.Time) time.Duration {
	d := TargetTime(s, now).Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Progress returns how much of the fasting window has elapsed, in percent.
// It is 0 outside InWindow and when the window is empty.
func Progress(s Status, now time.Time) float64 {
	if s.Phase != InWindow || s.Day.End <= s.Day.Start {
		return 0
	}
	start := s.Day.Start.On(now)
	end := s.Day.End.On(now)

	pct := float64(now.Sub(start)) / float64(end.Sub(start)) * 100
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return pct
	}
}

// FormatCountdown renders d as exactly eight characters "HH:MM:SS".
// Non-positive durations print as zero; anything past 99 hours is clamped.
func FormatCountdown(d time.Duration) string {
	if d <= 0 {
		return "00:00:00"
	}
	total := int(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 99 {
		h, m, s = 99, 59, 59
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" if less than an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
