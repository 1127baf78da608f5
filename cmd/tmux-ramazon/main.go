package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	_ "time/tzdata"

	"github.com/smokyabdulrahman/ramazon/internal/app"
	"github.com/smokyabdulrahman/ramazon/internal/calendar"
	"github.com/smokyabdulrahman/ramazon/internal/clock"
	"github.com/smokyabdulrahman/ramazon/internal/config"
	"github.com/smokyabdulrahman/ramazon/internal/fasting"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=v1.0.0"
var version = "dev"

// options holds the parsed command-line flags.
type options struct {
	district   string
	format     string
	timeFormat string
	configPath string
}

func main() {
	var opts options
	flag.StringVar(&opts.district, "district", "", "District name (default: from config, else Urganch)")
	flag.StringVar(&opts.format, "format", fasting.DefaultFormat, "Display format: "+strings.Join(fasting.Formats, ", ")+", or a custom Go template (e.g. '{{.ShortLabel}} {{.Countdown}}'). Template fields: .Label, .ShortLabel, .Target, .Countdown, .Remaining, .Hours, .Minutes, .Seconds, .Progress, .District, .Day")
	flag.StringVar(&opts.timeFormat, "time-format", "", "Time format: 12h or 24h (default: from config)")
	flag.StringVar(&opts.configPath, "config", "", "Config file (default: ~/.config/ramazon/config.json)")

	showVersion := flag.Bool("version", false, "Print version and exit")
	listDistricts := flag.Bool("list-districts", false, "Print supported districts and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("tmux-ramazon %s\n", version)
		return
	}

	if *listDistricts {
		printDistricts(os.Stdout)
		return
	}

	if err := run(os.Stdout, clock.Real{}, opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// printDistricts prints the district table with offsets.
func printDistricts(w io.Writer) {
	fmt.Fprintln(w, "Supported districts:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-18s %-8s %s\n", "Name", "Sahar", "Iftor")
	fmt.Fprintf(w, "  %-18s %-8s %s\n", "────", "─────", "─────")
	for _, d := range calendar.Districts {
		fmt.Fprintf(w, "  %-18s %-8s %s\n", d.Name, calendar.FormatOffset(d.StartOffset), calendar.FormatOffset(d.EndOffset))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use --district <name> to select a district.")
}

func run(w io.Writer, clk clock.Clock, opts options) error {
	cfg := loadConfig(opts.configPath)

	if opts.district != "" {
		d, err := calendar.LookupDistrict(opts.district)
		if err != nil {
			return err
		}
		cfg.SelectedDistrict = d.Name
	}
	switch opts.timeFormat {
	case "":
	case "12h", "24h":
		cfg.TimeFormat = opts.timeFormat
	default:
		return fmt.Errorf("invalid time format %q: must be 12h or 24h", opts.timeFormat)
	}

	state := app.New(cfg, app.Options{Clock: clk})
	snap := state.Snapshot(state.Now())

	fmt.Fprint(w, fasting.FormatOutput(snap.Status, snap.Now, opts.format, cfg.TimeLayout(), snap.District.Name))
	return nil
}

// loadConfig reads the settings file. A status line must always print
// something, so an unreadable file falls back to defaults.
func loadConfig(path string) *config.Config {
	if path == "" {
		if p, err := config.Path(); err == nil {
			path = p
		}
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if cfg == nil {
		d := config.Defaults()
		cfg = &d
	}
	return cfg
}
