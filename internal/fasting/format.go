package fasting

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// Status-line output modes.
const (
	FormatCountdownOnly     = "countdown"
	FormatTargetTime        = "target-time"
	FormatLabelAndCountdown = "label-and-countdown"
	FormatLabelAndTarget    = "label-and-target"
	FormatShortAndCountdown = "short-label-and-countdown"
	FormatShortAndTarget    = "short-label-and-target"
	FormatProgress          = "progress"
	FormatFull              = "full"
	DefaultFormat           = FormatLabelAndCountdown
)

// Formats lists the built-in modes in help order.
var Formats = []string{
	FormatCountdownOnly,
	FormatTargetTime,
	FormatLabelAndCountdown,
	FormatLabelAndTarget,
	FormatShortAndCountdown,
	FormatShortAndTarget,
	FormatProgress,
	FormatFull,
}

// FormatData is the data passed to custom Go templates.
type FormatData struct {
	Label      string  `json:"label"`       // e.g. "Iftorgacha"
	ShortLabel string  `json:"short_label"` // "S" or "I"
	Target     string  `json:"target"`      // formatted target time, e.g. "18:37" or "6:37 PM"
	Countdown  string  `json:"countdown"`   // "HH:MM:SS"
	Remaining  string  `json:"remaining"`   // e.g. "2h 15m"
	Hours      int     `json:"hours"`       // whole hours remaining
	Minutes    int     `json:"minutes"`     // minutes after hours
	Seconds    int     `json:"seconds"`     // seconds after minutes
	Progress   float64 `json:"progress"`    // 0-100
	District   string  `json:"district"`
	Day        int     `json:"day"` // Ramadan day index
}

// NewFormatData collects everything a status line may show.
func NewFormatData(s Status, now time.Time, timeFormat, district string) FormatData {
	d := Remaining(s, now)
	return FormatData{
		Label:      s.Phase.Label(),
		ShortLabel: s.Phase.ShortLabel(),
		Target:     s.Target.Format(timeFormat),
		Countdown:  FormatCountdown(d),
		Remaining:  FormatRemaining(d),
		Hours:      int(d.Hours()),
		Minutes:    int(d.Minutes()) % 60,
		Seconds:    int(d.Seconds()) % 60,
		Progress:   Progress(s, now),
		District:   district,
		Day:        s.Day.Day,
	}
}

// FormatOutput renders a status according to mode.
// timeFormat should be "15:04" for 24h or "3:04 PM" for 12h.
//
// If mode contains "{{", it is treated as a custom Go template string.
// Example: "{{.ShortLabel}} {{.Countdown}} {{printf \"%.0f\" .Progress}}%"
func FormatOutput(s Status, now time.Time, mode, timeFormat, district string) string {
	data := NewFormatData(s, now, timeFormat, district)

	if strings.Contains(mode, "{{") {
		return formatCustom(mode, data)
	}

	switch mode {
	case FormatCountdownOnly:
		return data.Countdown
	case FormatTargetTime:
		return data.Target
	case FormatLabelAndTarget:
		return fmt.Sprintf("%s %s", data.Label, data.Target)
	case FormatShortAndCountdown:
		return fmt.Sprintf("%s %s", data.ShortLabel, data.Countdown)
	case FormatShortAndTarget:
		return fmt.Sprintf("%s %s", data.ShortLabel, data.Target)
	case FormatProgress:
		return fmt.Sprintf("%d%%", int(data.Progress))
	case FormatFull:
		return fmt.Sprintf("%s %s (%s)", data.Label, data.Target, data.Countdown)
	default:
		return fmt.Sprintf("%s %s", data.Label, data.Countdown)
	}
}

// formatCustom executes a user-provided Go template string against data.
func formatCustom(tmpl string, data FormatData) string {
	t, err := template.New("custom").Parse(tmpl)
	if err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	return buf.String()
}
