package fasting

import (
	"strings"
	"testing"
	"time"

	"github.com/smokyabdulrahman/ramazon/internal/calendar"
)

// helper: a fixed in-window status and "now" for format tests.
func formatTestStatus() (Status, time.Time) {
	day := calendar.DayRecord{
		Day:   3,
		Date:  "21-Fevral",
		Start: calendar.MustParseTimeOfDay("06:00"),
		End:   calendar.MustParseTimeOfDay("18:37"),
	}
	now := time.Date(2026, 2, 21, 16, 21, 30, 0, uzt)
	return Status{Phase: InWindow, Target: day.End, Day: day}, now
}

func TestFormatOutput_AllBuiltinModes(t *testing.T) {
	s, now := formatTestStatus()

	tests := []struct {
		mode string
		want string
	}{
		{FormatCountdownOnly, "02:15:30"},
		{FormatTargetTime, "18:37"},
		{FormatLabelAndCountdown, "Iftorgacha 02:15:30"},
		{FormatLabelAndTarget, "Iftorgacha 18:37"},
		{FormatShortAndCountdown, "I 02:15:30"},
		{FormatShortAndTarget, "I 18:37"},
		{FormatProgress, "82%"},
		{FormatFull, "Iftorgacha 18:37 (02:15:30)"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			got := FormatOutput(s, now, tt.mode, "15:04", "Xiva")
			if got != tt.want {
				t.Errorf("FormatOutput(%q) = %q, want %q", tt.mode, got, tt.want)
			}
		})
	}
}

func TestFormatOutput_12HourFormat(t *testing.T) {
	s, now := formatTestStatus()

	got := FormatOutput(s, now, FormatLabelAndTarget, "3:04 PM", "Xiva")
	if got != "Iftorgacha 6:37 PM" {
		t.Errorf("12h format = %q, want %q", got, "Iftorgacha 6:37 PM")
	}
}

func TestFormatOutput_UnknownModeUsesDefault(t *testing.T) {
	s, now := formatTestStatus()

	got := FormatOutput(s, now, "nonexistent-format", "15:04", "Xiva")
	want := FormatOutput(s, now, DefaultFormat, "15:04", "Xiva")
	if got != want {
		t.Errorf("unknown mode = %q, want %q", got, want)
	}
}

func TestFormatOutput_CustomTemplate(t *testing.T) {
	s, now := formatTestStatus()

	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{"label and remaining", "{{.Label}} {{.Remaining}}", "Iftorgacha 2h 15m"},
		{"district and day", "{{.District}} #{{.Day}}", "Xiva #3"},
		{"split fields", "{{.Hours}}:{{.Minutes}}:{{.Seconds}}", "2:15:30"},
		{"progress printf", `{{printf "%.0f" .Progress}}%`, "82%"},
		{"short and target", "{{.ShortLabel}}@{{.Target}}", "I@18:37"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatOutput(s, now, tt.tmpl, "15:04", "Xiva")
			if got != tt.want {
				t.Errorf("custom template %q = %q, want %q", tt.tmpl, got, tt.want)
			}
		})
	}
}

func TestFormatOutput_InvalidTemplate(t *testing.T) {
	s, now := formatTestStatus()

	for _, tmpl := range []string{"{{.Label", "{{.NonExistent}}"} {
		got := FormatOutput(s, now, tmpl, "15:04", "Xiva")
		if !strings.HasPrefix(got, "template-err:") {
			t.Errorf("template %q should return 'template-err:...', got %q", tmpl, got)
		}
	}
}

func TestFormats_ListsEveryMode(t *testing.T) {
	seen := make(map[string]bool)
	for _, f := range Formats {
		if seen[f] {
			t.Errorf("duplicate format %q", f)
		}
		seen[f] = true
	}
	if !seen[DefaultFormat] {
		t.Errorf("DefaultFormat %q missing from Formats", DefaultFormat)
	}
}
