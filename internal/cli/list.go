package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/smokyabdulrahman/ramazon/internal/app"
	"github.com/smokyabdulrahman/ramazon/internal/calendar"
	"github.com/smokyabdulrahman/ramazon/internal/display"
	"github.com/spf13/cobra"
)

func newMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month",
		Short: "Show the whole Ramazon calendar",
		Long:  "Display all 30 days for the selected district. Today's row is highlighted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, 0)
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [days]",
		Short: "Show the calendar from today for N days",
		Long:  "Display the next N days of the calendar (default: 7), starting with today.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days := 7
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return fmt.Errorf("invalid number of days: %q (must be a positive integer)", args[0])
				}
				days = n
			}
			return runList(cmd, days)
		},
	}
}

// runList prints days records starting at today. days <= 0 prints the
// whole calendar.
func runList(cmd *cobra.Command, days int) error {
	state, err := viewState(cmd)
	if err != nil {
		return err
	}

	snap := state.Snapshot(state.Now())
	rows := state.Calendar()
	if days > 0 {
		rows = window(rows, snap, days)
	}

	if FlagJSON {
		return printJSON(cmd.OutOrStdout(), listJSON{District: snap.District.Name, Days: formatDays(rows, snap.TimeLayout)})
	}

	printListRich(cmd.OutOrStdout(), rows, snap)
	return nil
}

// window returns up to n records starting with the selected day.
func window(cal calendar.Calendar, snap app.Snapshot, n int) calendar.Calendar {
	start := 0
	if snap.Matched {
		for i, d := range cal {
			if d.Day == snap.Day.Day {
				start = i
			}
		}
	}
	end := min(len(cal), start+n)
	return cal[start:end]
}

func printListRich(w io.Writer, rows calendar.Calendar, snap app.Snapshot) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold("Ramazon Taqvimi - "+snap.District.Name))
	if notice := snap.RangeNotice(); notice != "" {
		fmt.Fprintf(w, "  %s\n", display.Yellow(notice))
	}
	fmt.Fprintln(w)

	tbl := display.NewTable([]string{"Kun", "Sana", "Saharlik", "Iftorlik"})
	tbl.AlignRight(0)
	for i, d := range rows {
		tbl.AddRow([]string{
			strconv.Itoa(d.Day),
			d.Date,
			d.Start.Format(snap.TimeLayout),
			d.End.Format(snap.TimeLayout),
		})
		if snap.Matched && d.Day == snap.Day.Day {
			tbl.SetHighlightRow(i)
		}
	}
	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)
}

type listJSON struct {
	District string    `json:"district"`
	Days     []dayJSON `json:"days"`
}

type dayJSON struct {
	Day      int    `json:"day"`
	Date     string `json:"date"`
	Saharlik string `json:"saharlik"`
	Iftorlik string `json:"iftorlik"`
}

func formatDays(rows calendar.Calendar, layout string) []dayJSON {
	out := make([]dayJSON, len(rows))
	for i, d := range rows {
		out[i] = dayJSON{
			Day:      d.Day,
			Date:     d.Date,
			Saharlik: d.Start.Format(layout),
			Iftorlik: d.End.Format(layout),
		}
	}
	return out
}
