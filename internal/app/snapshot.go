package app

import (
	"fmt"
	"time"

	"github.com/smokyabdulrahman/ramazon/internal/calendar"
	"github.com/smokyabdulrahman/ramazon/internal/fasting"
)

// Snapshot is everything a screen needs to draw the live status.
type Snapshot struct {
	Now        time.Time               `json:"now"`
	District   calendar.DistrictOffset `json:"district"`
	Day        calendar.DayRecord      `json:"day"`
	Matched    bool                    `json:"matched"` // false when Day is the fallback record
	Range      string                  `json:"range"`   // "before", "in" or "after"
	Status     fasting.Status          `json:"-"`
	Phase      string                  `json:"phase"`
	Label      string                  `json:"label"`
	Target     time.Time               `json:"target"`
	Remaining  time.Duration           `json:"-"`
	Countdown  string                  `json:"countdown"`
	Progress   float64                 `json:"progress"`
	TimeLayout string                  `json:"-"`
}

// OutOfRange reports whether now lies outside the published calendar.
func (s Snapshot) OutOfRange() bool {
	return s.Range != calendar.InRange.String()
}

// RangeNotice explains an out-of-range date, or returns "".
func (s Snapshot) RangeNotice() string {
	switch s.Range {
	case calendar.BeforeRange.String():
		return "Ramazon hali boshlanmagan: 1-kun ko'rsatilmoqda."
	case calendar.AfterRange.String():
		return "Ramazon taqvimi tugagan: 1-kun ko'rsatilmoqda."
	default:
		return ""
	}
}

// Snapshot derives the live status for now.
func (s *State) Snapshot(now time.Time) Snapshot {
	s.mu.Lock()
	cal := s.effective
	district := s.district
	layout := s.cfg.TimeLayout()
	s.mu.Unlock()

	day, matched := calendar.SelectDay(cal, now)
	st := fasting.Compute(cal, day, now)
	remaining := fasting.Remaining(st, now)

	return Snapshot{
		Now:        now,
		District:   district,
		Day:        day,
		Matched:    matched,
		Range:      calendar.RangeOf(cal, now).String(),
		Status:     st,
		Phase:      st.Phase.String(),
		Label:      st.Phase.Label(),
		Target:     fasting.TargetTime(st, now),
		Remaining:  remaining,
		Countdown:  fasting.FormatCountdown(remaining),
		Progress:   fasting.Progress(st, now),
		TimeLayout: layout,
	}
}

// ShareText returns the summary of today's times for sharing.
func (s *State) ShareText(now time.Time) string {
	snap := s.Snapshot(now)
	return fmt.Sprintf("🌙 Ramazon 2026 - %s\n📅 %s\n🌅 Saharlik: %s\n🌇 Iftorlik: %s\n\nIlova orqali ko'proq ma'lumot oling!",
		snap.District.Name, snap.Day.Date, snap.Day.Start, snap.Day.End)
}
