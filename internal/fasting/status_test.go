package fasting

import (
	"testing"
	"time"

	"github.com/smokyabdulrahman/ramazon/internal/calendar"
)

var uzt = time.FixedZone("UZT", 5*3600)

func at(hour, min, sec int) time.Time {
	return time.Date(2026, 2, 19, hour, min, sec, 0, uzt)
}

// scenarioCalendar is day 1 at 05:10/18:40 shifted by {+5, -3}, followed by
// an unshifted day 2.
func scenarioCalendar() calendar.Calendar {
	base := calendar.Calendar{
		{Day: 1, Date: "19-Fevral", Start: calendar.MustParseTimeOfDay("05:10"), End: calendar.MustParseTimeOfDay("18:40")},
		{Day: 2, Date: "20-Fevral", Start: calendar.MustParseTimeOfDay("05:08"), End: calendar.MustParseTimeOfDay("18:42")},
	}
	return calendar.AdjustAll(base, calendar.DistrictOffset{StartOffset: 5, EndOffset: -3})
}

func TestCompute_Phases(t *testing.T) {
	cal := scenarioCalendar()
	day := cal[0]

	tests := []struct {
		name         string
		now          time.Time
		wantPhase    Phase
		wantTarget   string
		wantTomorrow bool
	}{
		{"early morning", at(3, 0, 0), BeforeStart, "05:15", false},
		{"one minute before start", at(5, 14, 0), BeforeStart, "05:15", false},
		{"seconds inside prior minute", at(5, 14, 59), BeforeStart, "05:15", false},
		{"exactly start", at(5, 15, 0), InWindow, "18:37", false},
		{"midday", at(12, 0, 0), InWindow, "18:37", false},
		{"last minute of fast", at(18, 36, 59), InWindow, "18:37", false},
		{"exactly end", at(18, 37, 0), AfterWindow, "05:13", true},
		{"late evening", at(23, 59, 0), AfterWindow, "05:13", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Compute(cal, day, tt.now)
			if s.Phase != tt.wantPhase {
				t.Errorf("Phase = %s, want %s", s.Phase, tt.wantPhase)
			}
			if s.Target.String() != tt.wantTarget {
				t.Errorf("Target = %s, want %s", s.Target, tt.wantTarget)
			}
			if s.TargetIsTomorrow != tt.wantTomorrow {
				t.Errorf("TargetIsTomorrow = %v, want %v", s.TargetIsTomorrow, tt.wantTomorrow)
			}
		})
	}
}

func TestCompute_LastDayTargetsOwnStart(t *testing.T) {
	cal := scenarioCalendar()
	last := cal[len(cal)-1]

	s := Compute(cal, last, time.Date(2026, 2, 20, 20, 0, 0, 0, uzt))
	if s.Phase != AfterWindow || !s.TargetIsTomorrow {
		t.Fatalf("status = %+v, want tomorrow AfterWindow", s)
	}
	if s.Target != last.Start {
		t.Errorf("Target = %s, want %s", s.Target, last.Start)
	}
}

func TestCompute_ScenarioCountdown(t *testing.T) {
	cal := scenarioCalendar()
	now := at(5, 14, 0)

	s := Compute(cal, cal[0], now)
	d := Remaining(s, now)
	if d > time.Minute || d <= 0 {
		t.Fatalf("Remaining = %v, want within one minute", d)
	}
	if got := FormatCountdown(d); got != "00:01:00" {
		t.Errorf("FormatCountdown = %q, want %q", got, "00:01:00")
	}
}

func TestTargetTime(t *testing.T) {
	s := Status{Phase: AfterWindow, Target: calendar.MustParseTimeOfDay("05:13"), TargetIsTomorrow: true}
	now := at(20, 0, 0)

	got := TargetTime(s, now)
	want := time.Date(2026, 2, 20, 5, 13, 0, 0, uzt)
	if !got.Equal(want) {
		t.Errorf("TargetTime = %v, want %v", got, want)
	}
	if got := Remaining(s, now); got != 9*time.Hour+13*time.Minute {
		t.Errorf("Remaining = %v, want 9h13m", got)
	}
}

func TestRemaining_NeverNegative(t *testing.T) {
	s := Status{Phase: InWindow, Target: calendar.MustParseTimeOfDay("18:37")}
	if got := Remaining(s, at(18, 37, 30)); got != 0 {
		t.Errorf("Remaining past target = %v, want 0", got)
	}
}

func TestProgress(t *testing.T) {
	day := calendar.DayRecord{Day: 1, Start: calendar.MustParseTimeOfDay("06:00"), End: calendar.MustParseTimeOfDay("18:00")}

	tests := []struct {
		name  string
		phase Phase
		now   time.Time
		want  float64
	}{
		{"window start", InWindow, at(6, 0, 0), 0},
		{"quarter", InWindow, at(9, 0, 0), 25},
		{"half", InWindow, at(12, 0, 0), 50},
		{"before start phase", BeforeStart, at(5, 0, 0), 0},
		{"after window phase", AfterWindow, at(19, 0, 0), 0},
		{"clamped high", InWindow, at(19, 0, 0), 100},
		{"clamped low", InWindow, at(5, 0, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Progress(Status{Phase: tt.phase, Day: day}, tt.now)
			if got != tt.want {
				t.Errorf("Progress = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgress_EmptyWindow(t *testing.T) {
	day := calendar.DayRecord{Start: calendar.MustParseTimeOfDay("18:00"), End: calendar.MustParseTimeOfDay("06:00")}
	if got := Progress(Status{Phase: InWindow, Day: day}, at(12, 0, 0)); got != 0 {
		t.Errorf("Progress with End <= Start = %v, want 0", got)
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{-5 * time.Second, "00:00:00"},
		{time.Second, "00:00:01"},
		{1500 * time.Millisecond, "00:00:01"},
		{59 * time.Second, "00:00:59"},
		{time.Hour + 2*time.Minute + 3*time.Second, "01:02:03"},
		{13*time.Hour + 22*time.Minute, "13:22:00"},
		{99*time.Hour + 59*time.Minute + 59*time.Second, "99:59:59"},
		{150 * time.Hour, "99:59:59"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := FormatCountdown(tt.d)
			if got != tt.want {
				t.Errorf("FormatCountdown(%v) = %q, want %q", tt.d, got, tt.want)
			}
			if len(got) != 8 {
				t.Errorf("FormatCountdown(%v) length = %d, want 8", tt.d, len(got))
			}
		})
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0m"},
		{-time.Minute, "0m"},
		{45 * time.Minute, "45m"},
		{2*time.Hour + 15*time.Minute, "2h 15m"},
		{time.Hour, "1h 0m"},
	}

	for _, tt := range tests {
		if got := FormatRemaining(tt.d); got != tt.want {
			t.Errorf("FormatRemaining(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestPhaseLabels(t *testing.T) {
	tests := []struct {
		phase Phase
		label string
		short string
	}{
		{BeforeStart, "Saharlikgacha", "S"},
		{InWindow, "Iftorgacha", "I"},
		{AfterWindow, "Saharlikgacha (Ertaga)", "S"},
	}
	for _, tt := range tests {
		if got := tt.phase.Label(); got != tt.label {
			t.Errorf("%s.Label() = %q, want %q", tt.phase, got, tt.label)
		}
		if got := tt.phase.ShortLabel(); got != tt.short {
			t.Errorf("%s.ShortLabel() = %q, want %q", tt.phase, got, tt.short)
		}
	}
}

// ---

func TestCompute_EveryMinuteHasOnePhase(t *testing.T) {
	wrapped := calendar.AdjustAll(calendar.Calendar{
		{Day: 1, Date: "19-Fevral", Start: calendar.MustParseTimeOfDay("00:02"), End: calendar.MustParseTimeOfDay("18:40")},
	}, calendar.DistrictOffset{StartOffset: -5})

	tests := []struct {
		name       string
		cal        calendar.Calendar
		wantWindow bool
	}{
		{"shifted day", scenarioCalendar(), true},
		{"start wrapped before midnight", wrapped, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := tt.cal[0]
			last := BeforeStart
			sawWindow := false

			for m := 0; m < 24*60; m++ {
				now := at(0, 0, 0).Add(time.Duration(m) * time.Minute)
				s := Compute(tt.cal, day, now)

				switch s.Phase {
				case BeforeStart:
					if s.Target != day.Start || s.TargetIsTomorrow {
						t.Fatalf("%s: BeforeStart status = %+v", now.Format("15:04"), s)
					}
				case InWindow:
					sawWindow = true
					if s.Target != day.End || s.TargetIsTomorrow {
						t.Fatalf("%s: InWindow status = %+v", now.Format("15:04"), s)
					}
				case AfterWindow:
					if !s.TargetIsTomorrow {
						t.Fatalf("%s: AfterWindow target not tomorrow", now.Format("15:04"))
					}
				default:
					t.Fatalf("%s: invalid phase %d", now.Format("15:04"), s.Phase)
				}

				if s.Phase < last {
					t.Fatalf("%s: phase went back from %s to %s", now.Format("15:04"), last, s.Phase)
				}
				last = s.Phase
			}

			if sawWindow != tt.wantWindow {
				t.Errorf("InWindow seen = %v, want %v", sawWindow, tt.wantWindow)
			}
		})
	}
}

func TestProgress_NeverDecreases(t *testing.T) {
	cal := scenarioCalendar()
	day := cal[0]
	from := day.Start.On(at(0, 0, 0))
	to := day.End.On(at(0, 0, 0))

	prev := -1.0
	for now := from; now.Before(to); now = now.Add(30 * time.Second) {
		s := Compute(cal, day, now)
		if s.Phase != InWindow {
			t.Fatalf("%s: phase = %s, want in_window", now.Format("15:04:05"), s.Phase)
		}
		p := Progress(s, now)
		if p < prev || p < 0 || p > 100 {
			t.Fatalf("%s: progress = %.4f after %.4f", now.Format("15:04:05"), p, prev)
		}
		prev = p
	}
	if prev < 99 {
		t.Errorf("progress before end = %.2f, want near 100", prev)
	}
}
