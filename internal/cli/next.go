package cli

import (
	"fmt"
	"strings"

	"github.com/smokyabdulrahman/ramazon/internal/fasting"
	"github.com/spf13/cobra"
)

var flagFormat string

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next saharlik or iftorlik with countdown",
		Long:  "Display the countdown to the next anchor time on one line.\nThis is the same output tmux-ramazon prints for status bars.",
		RunE:  runNext,
	}

	cmd.Flags().StringVar(&flagFormat, "format", fasting.DefaultFormat,
		"Display format: "+strings.Join(fasting.Formats, ", ")+", or a custom Go template")

	return cmd
}

func runNext(cmd *cobra.Command, args []string) error {
	state, err := viewState(cmd)
	if err != nil {
		return err
	}

	cfg := state.Config()
	now := state.Now()
	snap := state.Snapshot(now)

	if FlagJSON {
		return printJSON(cmd.OutOrStdout(), fasting.NewFormatData(snap.Status, now, cfg.TimeLayout(), snap.District.Name))
	}

	fmt.Fprintln(cmd.OutOrStdout(), fasting.FormatOutput(snap.Status, now, flagFormat, cfg.TimeLayout(), snap.District.Name))
	return nil
}
