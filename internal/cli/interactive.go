package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/smokyabdulrahman/ramazon/internal/app"
	"github.com/smokyabdulrahman/ramazon/internal/config"
	"github.com/smokyabdulrahman/ramazon/internal/display"
	"github.com/smokyabdulrahman/ramazon/internal/tui"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Open the live dashboard",
		Long:  "Open the interactive dashboard: live countdown, month table, duas, district picker, tally counter and chat.\nReminders fire while it is open. Settings edited elsewhere are picked up automatically.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInterface(cmd, tui.ScreenToday)
		},
	}
}

func newTasbihCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "tasbih",
		Aliases: []string{"tasbeh"},
		Short:   "Open the tally counter",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInterface(cmd, tui.ScreenTally)
		},
	}
}

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the Ramazon assistant",
		Long:  "Open the assistant chat. The API key comes from " + config.EnvGeminiKey + " or 'ramazon config set gemini_api_key'.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInterface(cmd, tui.ScreenChat)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "ask <question>",
		Short: "Ask one question and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runChatAsk,
	})

	return cmd
}

// runInterface opens the TUI on screen, reloading settings when the file
// changes underneath it.
func runInterface(cmd *cobra.Command, screen tui.Screen) error {
	if !isInteractive() {
		return errInteractive
	}

	logger := tuiLogger()
	state := persistentState(cmd, app.Options{Logger: logger})

	w, err := config.NewWatcher(configPath, reloadFunc(state, logger), logger)
	if err != nil {
		warnf(cmd, "settings will not reload automatically: %v", err)
	} else {
		defer w.Close()
	}

	return tui.Run(cmd.Context(), state, tui.Options{Screen: screen})
}

// reloadFunc applies a reloaded settings file to state.
func reloadFunc(state *app.State, logger *log.Logger) func(*config.Config, error) {
	return func(cfg *config.Config, err error) {
		if err != nil {
			logger.Printf("reload: %v", err)
		}
		state.Reload(cfg)
	}
}

func runChatAsk(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}
	if chatGenerator == nil && cfg.GeminiKey() == "" {
		warnf(cmd, "no API key: set %s or run 'ramazon config set gemini_api_key'", config.EnvGeminiKey)
	}

	state := app.New(cfg, app.Options{Clock: clk, Logger: newLogger(cmd), Generator: chatGenerator})
	reply, err := state.SendChat(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if FlagJSON {
		return printJSON(out, struct {
			Question string `json:"question"`
			Answer   string `json:"answer"`
		}{strings.Join(args, " "), reply})
	}

	fmt.Fprintln(out, renderMarkdown(reply))
	return nil
}

// renderMarkdown formats a reply for the terminal, or returns it unchanged
// when output is not a terminal.
func renderMarkdown(text string) string {
	if !display.Enabled() {
		return text
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(min(display.Width(80), 100)-4),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

func newRemindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Run the reminder daemon",
		Long:  "Stay in the foreground and send reminders before saharlik and iftorlik.\nSettings changes are picked up without a restart. Stop with Ctrl+C.",
		Args:  cobra.NoArgs,
		RunE:  runRemind,
	}
}

func runRemind(cmd *cobra.Command, args []string) error {
	logger := log.New(cmd.ErrOrStderr(), "ramazon: ", log.LstdFlags)
	state := persistentState(cmd, app.Options{Logger: logger, Notifier: daemonNotifier})

	cfg := state.Config()
	if !cfg.Notifications.Enabled {
		warnf(cmd, "reminders are off; run 'ramazon notify on' to enable them")
	}

	w, err := config.NewWatcher(configPath, reloadFunc(state, logger), logger)
	if err != nil {
		warnf(cmd, "settings will not reload automatically: %v", err)
	} else {
		defer w.Close()
	}

	logger.Printf("reminding for %s, %d minutes before", state.District().Name, cfg.Notifications.ReminderMinutes)
	err = state.Scheduler().Run(cmd.Context())
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		logger.Printf("stopped")
		return nil
	}
	return err
}
