package cli

import (
	"fmt"
	"os"

	"github.com/smokyabdulrahman/ramazon/internal/config"
	"github.com/smokyabdulrahman/ramazon/internal/export"
	"github.com/spf13/cobra"
)

var (
	flagExportFormat string
	flagExportOutput string
	flagExportLead   int
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the calendar for other apps",
		Long: `Write the selected district's calendar as iCalendar (default), CSV or JSON.

iCalendar events carry an alarm before each saharlik and iftorlik when
reminders are enabled, or when --lead is given. --lead 0 disables alarms.`,
		Example: `  ramazon export --output ramazon.ics
  ramazon export --format csv --district "Xiva tumani"`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	f := cmd.Flags()
	f.StringVarP(&flagExportFormat, "format", "f", export.FormatICS, "Output format: ics, csv or json")
	f.StringVarP(&flagExportOutput, "output", "o", "", "Write to file instead of stdout")
	f.IntVar(&flagExportLead, "lead", 0, "Alarm minutes before each event (default: reminder setting)")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}
	state, err := viewState(cmd)
	if err != nil {
		return err
	}

	lead := 0
	if cfg.Notifications.Enabled {
		lead = cfg.Notifications.ReminderMinutes
	}
	if cmd.Flags().Changed("lead") {
		if flagExportLead != 0 && !config.ValidLead(flagExportLead) {
			return config.ErrInvalidLead
		}
		lead = flagExportLead
	}

	opts := export.Options{
		District:    state.District(),
		Location:    cfg.Location(),
		LeadMinutes: lead,
		Stamp:       clk.Now(),
	}

	if flagExportOutput == "" || flagExportOutput == "-" {
		return export.Write(cmd.OutOrStdout(), flagExportFormat, state.Calendar(), opts)
	}

	f, err := os.Create(flagExportOutput)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := export.Write(f, flagExportFormat, state.Calendar(), opts); err != nil {
		f.Close()
		os.Remove(flagExportOutput)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%d kun yozildi: %s\n", len(state.Calendar()), flagExportOutput)
	return nil
}
