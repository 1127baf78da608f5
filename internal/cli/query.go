package cli

import (
	"fmt"
	"strings"

	"github.com/smokyabdulrahman/ramazon/internal/reminder"
	"github.com/spf13/cobra"
)

var flagQueryDays string

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <saharlik|iftorlik>",
		Short: "Query one anchor time",
		Long:  "Print today's saharlik or iftorlik time, or a run of days with --days.\n\nAccepted names: saharlik (sahar), iftorlik (iftor).",
		Args:  cobra.ExactArgs(1),
		RunE:  runQuery,
	}

	cmd.Flags().StringVar(&flagQueryDays, "days", "", "Number of days to show (or 'week'/'month')")

	return cmd
}

func parseAnchor(name string) (reminder.Anchor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "saharlik", "sahar", "start":
		return reminder.Start, nil
	case "iftorlik", "iftor", "iftar", "end":
		return reminder.End, nil
	}
	return 0, fmt.Errorf("unknown time %q; valid names: saharlik, iftorlik", name)
}

func parseDays(v string) (int, error) {
	switch v {
	case "":
		return 1, nil
	case "week":
		return 7, nil
	case "month":
		return 30, nil
	}
	var days int
	n, err := fmt.Sscanf(v, "%d", &days)
	if err != nil || n != 1 || days < 1 {
		return 0, fmt.Errorf("invalid --days value %q: must be a positive integer, 'week', or 'month'", v)
	}
	return days, nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	anchor, err := parseAnchor(args[0])
	if err != nil {
		return err
	}
	days, err := parseDays(flagQueryDays)
	if err != nil {
		return err
	}

	state, err := viewState(cmd)
	if err != nil {
		return err
	}
	snap := state.Snapshot(state.Now())
	rows := window(state.Calendar(), snap, days)

	name := "Saharlik"
	if anchor == reminder.End {
		name = "Iftorlik"
	}

	type entry struct {
		Day  int    `json:"day"`
		Date string `json:"date"`
		Time string `json:"time"`
	}
	entries := make([]entry, len(rows))
	for i, d := range rows {
		t := d.Start
		if anchor == reminder.End {
			t = d.End
		}
		entries[i] = entry{Day: d.Day, Date: d.Date, Time: t.Format(snap.TimeLayout)}
	}

	out := cmd.OutOrStdout()
	if FlagJSON {
		if days == 1 && len(entries) == 1 {
			return printJSON(out, entries[0])
		}
		return printJSON(out, entries)
	}

	if days == 1 && len(entries) == 1 {
		fmt.Fprintf(out, "%s %s\n", name, entries[0].Time)
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(out, "  %2d  %-10s  %s\n", e.Day, e.Date, e.Time)
	}
	return nil
}
