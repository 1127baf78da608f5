package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/smokyabdulrahman/ramazon/internal/app"
	"github.com/smokyabdulrahman/ramazon/internal/calendar"
	"github.com/smokyabdulrahman/ramazon/internal/config"
	"github.com/smokyabdulrahman/ramazon/internal/display"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newDistrictsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "districts",
		Short: "List districts and their offsets",
		Long:  "Print every district with its saharlik and iftorlik offset from the regional calendar.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := effectiveConfig(cmd)
			if err != nil {
				return err
			}
			current := calendar.ResolveDistrict(cfg.SelectedDistrict).Name
			out := cmd.OutOrStdout()

			if FlagJSON {
				return printJSON(out, calendar.Districts)
			}

			tbl := display.NewTable([]string{"Tuman", "Saharlik", "Iftorlik"})
			tbl.AlignRight(1, 2)
			for i, d := range calendar.Districts {
				tbl.AddRow([]string{d.Name, calendar.FormatOffset(d.StartOffset), calendar.FormatOffset(d.EndOffset)})
				if d.Name == current {
					tbl.SetHighlightRow(i)
				}
			}
			fmt.Fprintln(out)
			fmt.Fprint(out, tbl.Render())
			fmt.Fprintln(out)
			return nil
		},
	}
}

func newDistrictCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "district [name]",
		Short: "Show or change the selected district",
		Long:  "Without an argument, print the selected district. With a name, select it and save the choice.\nNames match case-insensitively; run 'ramazon districts' for the list.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				cfg, err := effectiveConfig(cmd)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, calendar.ResolveDistrict(cfg.SelectedDistrict).Name)
				return nil
			}

			state := persistentState(cmd, app.Options{})
			if err := state.SelectDistrict(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out, "Hudud: %s\n", state.District().Name)
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or modify configuration",
		Long:  "Display current configuration, or use subcommands to modify it.\nWhen run without subcommands, shows the current configuration.",
		RunE:  runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> [value]",
		Short: "Set a config value",
		Long: fmt.Sprintf("Set a configuration value. Valid keys: %s\n\nSecrets (gemini_api_key, telegram_bot_token) are read from the terminal without echo when the value is omitted.\n\nExamples:\n  ramazon config set selected_district Xiva\n  ramazon config set reminder_minutes 20\n  ramazon config set time_format 12h\n  ramazon config set gemini_api_key",
			strings.Join(config.ValidKeys, ", ")),
		Args: cobra.RangeArgs(1, 2),
		RunE: runConfigSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print one config value",
		Args:  cobra.ExactArgs(1),
		RunE:  runConfigGet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset config to defaults",
		Long:  "Delete the config file and restore all settings to defaults.",
		RunE:  runConfigReset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file path",
		RunE:  runConfigPath,
	})

	return cmd
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg := loadedConfig

	if FlagJSON {
		masked := *cfg
		masked.GeminiAPIKey = mask(masked.GeminiAPIKey)
		masked.Notifications.TelegramBotToken = mask(masked.Notifications.TelegramBotToken)
		return printJSON(out, masked)
	}

	fmt.Fprintf(out, "  Configuration (%s)\n\n", configPath)
	for _, key := range config.ValidKeys {
		val, _ := cfg.Get(key)
		if config.IsSecret(key) {
			val = mask(val)
		}
		if val == "" {
			val = "(not set)"
		}
		fmt.Fprintf(out, "  %-20s %s\n", key, val)
	}
	if cfg.GeminiAPIKey == "" && cfg.GeminiKey() != "" {
		fmt.Fprintf(out, "\n  %s\n", display.Dim("gemini_api_key is taken from "+config.EnvGeminiKey))
	}
	return nil
}

// runConfigSet sets a config key to the given value.
func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]

	var value string
	switch {
	case len(args) == 2:
		value = args[1]
	case config.IsSecret(key):
		v, err := readSecret(cmd, key)
		if err != nil {
			return err
		}
		value = v
	default:
		return fmt.Errorf("missing value for %s", key)
	}

	cfg := *loadedConfig
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.SaveTo(configPath); err != nil {
		return err
	}

	shown := value
	if config.IsSecret(key) {
		shown = mask(value)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, shown)
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	val, err := loadedConfig.Get(args[0])
	if err != nil {
		return err
	}
	if config.IsSecret(args[0]) {
		val = mask(val)
	}
	fmt.Fprintln(cmd.OutOrStdout(), val)
	return nil
}

// runConfigReset deletes the config file.
func runConfigReset(cmd *cobra.Command, args []string) error {
	if err := config.ResetAt(configPath); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults.")
	return nil
}

// runConfigPath prints the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), configPath)
	return nil
}

// readSecret prompts for a credential without echoing it.
func readSecret(cmd *cobra.Command, key string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("reading %s: %w", key, errInteractive)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s: ", key)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	return strings.TrimSpace(string(b)), nil
}

// mask hides all but the last four characters of a secret.
func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}
