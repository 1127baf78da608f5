package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/smokyabdulrahman/ramazon/internal/app"
	"github.com/smokyabdulrahman/ramazon/internal/config"
	"github.com/smokyabdulrahman/ramazon/internal/display"
	"github.com/smokyabdulrahman/ramazon/internal/fasting"
	"github.com/smokyabdulrahman/ramazon/internal/reminder"
	"github.com/spf13/cobra"
)

var flagYes bool

// isInteractive reports whether prompts can be shown. Tests replace it.
var isInteractive = func() bool {
	return display.IsTerminal(os.Stdin) && display.IsTerminal(os.Stdout)
}

func newNotifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify [on|off|sahar|iftor|lead N|test]",
		Short: "Show or change reminder settings",
		Long: `Without arguments, print the reminder settings.

  on        enable reminders (asks for permission once)
  off       disable reminders
  sahar     toggle the saharlik reminder
  iftor     toggle the iftorlik reminder
  lead N    remind N minutes before (5-60)
  test      send a test reminder to every configured sink`,
		Args: cobra.RangeArgs(0, 2),
		RunE: runNotify,
	}

	cmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Grant notification permission without prompting")

	return cmd
}

func runNotify(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	state := persistentState(cmd, app.Options{})

	if len(args) == 0 {
		return printNotifySettings(out, state)
	}

	switch args[0] {
	case "on":
		if state.Permission() == reminder.Unknown && !flagYes && !isInteractive() {
			return fmt.Errorf("notification permission: %w; rerun with --yes", errInteractive)
		}
		on, err := state.SetNotificationsEnabled(cmd.Context(), true, permissionAsker())
		if err != nil {
			return err
		}
		if !on {
			fmt.Fprintln(out, "Bildirishnomalarga ruxsat berilmadi.")
			return nil
		}
		fmt.Fprintln(out, "Bildirishnomalar yoqildi.")

	case "off":
		if _, err := state.SetNotificationsEnabled(cmd.Context(), false, nil); err != nil {
			return err
		}
		fmt.Fprintln(out, "Bildirishnomalar o'chirildi.")

	case "sahar":
		on, err := state.ToggleStartReminder()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Saharlik eslatmasi: %s\n", onOff(on))

	case "iftor":
		on, err := state.ToggleEndReminder()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Iftorlik eslatmasi: %s\n", onOff(on))

	case "lead":
		if len(args) != 2 {
			return fmt.Errorf("usage: ramazon notify lead N (%d-%d)", config.MinLead, config.MaxLead)
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid minutes %q: must be an integer", args[1])
		}
		if err := state.SetLeadMinutes(n); err != nil {
			return err
		}
		fmt.Fprintf(out, "Eslatma %d daqiqa oldin yuboriladi.\n", n)

	case "test":
		return sendTestAlert(cmd, state)

	default:
		return fmt.Errorf("unknown notify action %q; valid: on, off, sahar, iftor, lead, test", args[0])
	}
	return nil
}

func printNotifySettings(w io.Writer, state *app.State) error {
	cfg := state.Config()
	n := cfg.Notifications

	if FlagJSON {
		return printJSON(w, struct {
			Notifications config.Notifications `json:"notifications"`
			Permission    string               `json:"permission"`
		}{n, string(state.Permission())})
	}

	fmt.Fprintf(w, "  %-18s %s\n", "Bildirishnomalar", onOff(n.Enabled))
	fmt.Fprintf(w, "  %-18s %s\n", "Ruxsat", state.Permission())
	fmt.Fprintf(w, "  %-18s %s\n", "Saharlik", onOff(n.SaharReminder))
	fmt.Fprintf(w, "  %-18s %s\n", "Iftorlik", onOff(n.IftorReminder))
	fmt.Fprintf(w, "  %-18s %d daqiqa oldin\n", "Vaqt", n.ReminderMinutes)
	if n.TelegramEnabled {
		fmt.Fprintf(w, "  %-18s %s\n", "Telegram", n.TelegramChatID)
	}
	return nil
}

// permissionAsker grants with --yes, otherwise asks on the terminal.
func permissionAsker() reminder.Asker {
	return reminder.AskerFunc(func(ctx context.Context) (bool, error) {
		if flagYes {
			return true, nil
		}
		ok := true
		err := huh.NewConfirm().
			Title("Bildirishnomalarga ruxsat berasizmi?").
			Description("Saharlik va iftorlik oldidan eslatma yuboriladi.").
			Affirmative("Ha").
			Negative("Yo'q").
			Value(&ok).
			Run()
		if err != nil {
			return false, fmt.Errorf("asking for permission: %w", err)
		}
		return ok, nil
	})
}

// sendTestAlert delivers one alert through the configured sinks right away.
func sendTestAlert(cmd *cobra.Command, state *app.State) error {
	cfg := state.Config()
	snap := state.Snapshot(state.Now())

	anchor, target := reminder.Start, snap.Day.Start
	if snap.Status.Phase == fasting.InWindow {
		anchor, target = reminder.End, snap.Day.End
	}
	alert := reminder.NewAlert(anchor, target, cfg.Notifications.ReminderMinutes, snap.Now)

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	notifier := app.BuildNotifier(&cfg, newLogger(cmd))
	if err := notifier.Notify(ctx, alert); err != nil {
		return fmt.Errorf("sending test reminder: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Sinov eslatmasi yuborildi (%d ta manzil).\n", notifier.Len())
	return nil
}

func onOff(on bool) string {
	if on {
		return display.Green("yoqilgan")
	}
	return display.Gray("o'chirilgan")
}
