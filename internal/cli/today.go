package cli

import (
	"fmt"
	"io"
	"math"

	"github.com/smokyabdulrahman/ramazon/internal/app"
	"github.com/smokyabdulrahman/ramazon/internal/display"
	"github.com/smokyabdulrahman/ramazon/internal/fasting"
	"github.com/spf13/cobra"
)

const todayBarWidth = 24

func runToday(cmd *cobra.Command, args []string) error {
	state, err := viewState(cmd)
	if err != nil {
		return err
	}

	snap := state.Snapshot(state.Now())
	out := cmd.OutOrStdout()

	if FlagJSON {
		return printJSON(out, todayJSONFrom(snap))
	}

	printTodayRich(out, snap)
	return nil
}

// printTodayRich renders the colored terminal output for the selected day.
func printTodayRich(w io.Writer, snap app.Snapshot) {
	layout := snap.TimeLayout

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold("🌙 Ramazon 2026"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", snap.District.Name)
	fmt.Fprintf(w, "  %s\n", snap.Now.Format("02.01.2006 15:04"))
	fmt.Fprintf(w, "  Ramazon %d-kun, %s\n", snap.Day.Day, snap.Day.Date)
	if notice := snap.RangeNotice(); notice != "" {
		fmt.Fprintf(w, "  %s\n", display.Yellow(notice))
	}
	fmt.Fprintln(w)

	start := fmt.Sprintf("  %-9s %s", "Saharlik", snap.Day.Start.Format(layout))
	end := fmt.Sprintf("  %-9s %s", "Iftorlik", snap.Day.End.Format(layout))
	switch snap.Status.Phase {
	case fasting.InWindow:
		fmt.Fprintln(w, display.Dim(start))
		fmt.Fprintln(w, display.Accent(end)+display.Accent("  <- "+snap.Countdown))
	case fasting.BeforeStart:
		fmt.Fprintln(w, display.Accent(start)+display.Accent("  <- "+snap.Countdown))
		fmt.Fprintln(w, end)
	default:
		fmt.Fprintln(w, display.Dim(start))
		fmt.Fprintln(w, display.Dim(end))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s %s (%s)\n", display.Bold(snap.Label), display.Cyan(snap.Countdown), snap.Target.Format(layout))
	if snap.Status.Phase == fasting.InWindow {
		fmt.Fprintf(w, "  %s %d%%\n", display.ProgressBar(snap.Progress, todayBarWidth), int(math.Round(snap.Progress)))
	}
	fmt.Fprintln(w)
}

// todayJSON is the JSON output structure for the root command.
type todayJSON struct {
	District string     `json:"district"`
	Day      int        `json:"day"`
	Date     string     `json:"date"`
	Saharlik string     `json:"saharlik"`
	Iftorlik string     `json:"iftorlik"`
	InRange  bool       `json:"in_range"`
	Range    string     `json:"range"`
	Status   statusJSON `json:"status"`
	Notice   string     `json:"notice,omitempty"`
}

type statusJSON struct {
	Phase     string  `json:"phase"`
	Label     string  `json:"label"`
	Target    string  `json:"target"`
	Tomorrow  bool    `json:"tomorrow"`
	Countdown string  `json:"countdown"`
	Progress  float64 `json:"progress"`
}

func todayJSONFrom(snap app.Snapshot) todayJSON {
	return todayJSON{
		District: snap.District.Name,
		Day:      snap.Day.Day,
		Date:     snap.Day.Date,
		Saharlik: snap.Day.Start.Format(snap.TimeLayout),
		Iftorlik: snap.Day.End.Format(snap.TimeLayout),
		InRange:  !snap.OutOfRange(),
		Range:    snap.Range,
		Status: statusJSON{
			Phase:     snap.Phase,
			Label:     snap.Label,
			Target:    snap.Target.Format(snap.TimeLayout),
			Tomorrow:  snap.Status.TargetIsTomorrow,
			Countdown: snap.Countdown,
			Progress:  math.Round(snap.Progress*10) / 10,
		},
		Notice: snap.RangeNotice(),
	}
}
