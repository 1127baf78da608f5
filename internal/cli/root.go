package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/smokyabdulrahman/ramazon/internal/app"
	"github.com/smokyabdulrahman/ramazon/internal/calendar"
	"github.com/smokyabdulrahman/ramazon/internal/chat"
	"github.com/smokyabdulrahman/ramazon/internal/clock"
	"github.com/smokyabdulrahman/ramazon/internal/config"
	"github.com/smokyabdulrahman/ramazon/internal/display"
	"github.com/smokyabdulrahman/ramazon/internal/reminder"
	"github.com/smokyabdulrahman/ramazon/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Global flags shared across all subcommands.
var (
	FlagDistrict   string
	FlagJSON       bool
	FlagTimeFormat string
	FlagConfig     string
	FlagVerbose    bool
)

var (
	// loadedConfig holds the settings loaded during PersistentPreRunE.
	loadedConfig *config.Config
	// configPath is where loadedConfig came from and where changes go.
	configPath string
	// clk is the time source for every command.
	clk clock.Clock = clock.Real{}
	// chatGenerator and daemonNotifier replace the network-backed chat
	// client and reminder sinks when set.
	chatGenerator  chat.Generator
	daemonNotifier reminder.Notifier
)

// NewRootCmd creates the root command for the ramazon CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ramazon",
		Short:   "Ramazon 2026 saharlik va iftorlik vaqtlari",
		Long:    "Ramadan 2026 fasting times for the districts of Khorezm: live countdown, month table, reminders, duas, tally counter and an assistant chat.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if FlagJSON {
				display.SetEnabled(false)
			}
			return loadConfig(cmd)
		},
		// Default action: show today's times.
		RunE:          runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(PrintVersion("{{.Version}}"))

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&FlagDistrict, "district", "", "Override district (takes precedence over config)")
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON (where supported)")
	pf.StringVar(&FlagTimeFormat, "time-format", "", "Time format: 12h or 24h (overrides config)")
	pf.StringVar(&FlagConfig, "config", "", "Config file (default: ~/.config/ramazon/config.json)")
	pf.BoolVarP(&FlagVerbose, "verbose", "v", false, "Log diagnostics to stderr")

	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newMonthCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newDistrictsCmd())
	rootCmd.AddCommand(newDistrictCmd())
	rootCmd.AddCommand(newNotifyCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newRemindCmd())
	rootCmd.AddCommand(newTasbihCmd())
	rootCmd.AddCommand(newDuaCmd())
	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newShareCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newSetupCmd())

	return rootCmd
}

// PrintVersion formats the --version line.
func PrintVersion(version string) string {
	return fmt.Sprintf("ramazon %s\n", version)
}

// loadConfig reads the settings file. A malformed file is reported and
// replaced by defaults; only an unreadable file stops the command.
func loadConfig(cmd *cobra.Command) error {
	path := FlagConfig
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return err
		}
		path = p
	}

	cfg, err := config.LoadFrom(path)
	if cfg == nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err != nil {
		warnf(cmd, "%v", err)
	}

	loadedConfig = cfg
	configPath = path
	return nil
}

// effectiveConfig returns a copy of the settings with CLI flags applied,
// following the priority: CLI flags > config file > defaults.
func effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Defaults()
	if loadedConfig != nil {
		cfg = *loadedConfig
	}

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	if flagWasSet(flags, root, "district") {
		d, err := calendar.LookupDistrict(FlagDistrict)
		if err != nil {
			return nil, err
		}
		cfg.SelectedDistrict = d.Name
	}
	if flagWasSet(flags, root, "time-format") {
		if FlagTimeFormat != "12h" && FlagTimeFormat != "24h" {
			return nil, fmt.Errorf("invalid time format %q: must be 12h or 24h", FlagTimeFormat)
		}
		cfg.TimeFormat = FlagTimeFormat
	}

	return &cfg, nil
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}

// viewState builds an in-memory State from the effective settings. Nothing
// it does is persisted, so flag overrides never leak into the config file.
func viewState(cmd *cobra.Command) (*app.State, error) {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, app.Options{Clock: clk, Logger: newLogger(cmd)}), nil
}

// persistentState builds a State that writes changes back to the config file.
func persistentState(cmd *cobra.Command, opts app.Options) *app.State {
	cfg := loadedConfig
	if cfg == nil {
		d := config.Defaults()
		cfg = &d
	}
	opts.ConfigPath = configPath
	if opts.Clock == nil {
		opts.Clock = clk
	}
	if opts.Logger == nil {
		opts.Logger = newLogger(cmd)
	}
	if opts.Generator == nil {
		opts.Generator = chatGenerator
	}
	return app.New(cfg, opts)
}

// newLogger returns a diagnostics logger: stderr with --verbose, silent otherwise.
func newLogger(cmd *cobra.Command) *log.Logger {
	if FlagVerbose {
		return log.New(cmd.ErrOrStderr(), "ramazon: ", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}

// tuiLogger keeps stderr clean while the interface owns the terminal. With
// RAMAZON_DEBUG set, logs go to the file the interface opens.
func tuiLogger() *log.Logger {
	if os.Getenv(tui.DebugEnv) != "" {
		return log.Default()
	}
	return log.New(io.Discard, "", 0)
}

func warnf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintln(cmd.ErrOrStderr(), display.Warnf(format, args...))
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// errInteractive is returned when a command needs a terminal it does not have.
var errInteractive = errors.New("this command needs an interactive terminal")
