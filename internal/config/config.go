// Package config provides persistent settings for the ramazon CLI.
//
// Settings are stored as JSON at ~/.config/ramazon/config.json
// (XDG-compliant). The merge priority is: CLI flags > config file > defaults.
// Every field is decoded on its own; a field that fails to decode or validate
// falls back to its default without discarding the rest of the file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/ramazon/internal/calendar"
)

const (
	configDirName  = "ramazon"
	configFileName = "config.json"

	// DefaultTimezone is the zone the published calendar is written in.
	DefaultTimezone = "Asia/Tashkent"
	// DefaultModel is the chat model used when none is configured.
	DefaultModel = "gemini-1.5-flash"

	MinLead     = 5
	MaxLead     = 60
	DefaultLead = 15
)

// Environment variables that take precedence over stored secrets.
const (
	EnvGeminiKey     = "GEMINI_API_KEY"
	EnvTelegramToken = "TELEGRAM_BOT_TOKEN"
)

var (
	// ErrInvalid marks a settings file that was partly or wholly unreadable.
	// The returned Config is still usable.
	ErrInvalid = errors.New("invalid settings")
	// ErrInvalidLead is returned for reminder minutes outside [MinLead, MaxLead].
	ErrInvalidLead = fmt.Errorf("reminder minutes must be between %d and %d", MinLead, MaxLead)
)

// Permission values persisted under notification_permission.
const (
	PermissionUnknown = "unknown"
	PermissionGranted = "granted"
	PermissionDenied  = "denied"
)

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = []string{
	"selected_district",
	"notifications",
	"sahar_reminder", "iftor_reminder",
	"reminder_minutes",
	"time_format",
	"timezone",
	"gemini_api_key", "gemini_model",
	"telegram_enabled", "telegram_chat_id", "telegram_bot_token",
	"notification_permission",
}

// Notifications holds the reminder settings.
type Notifications struct {
	Enabled          bool   `json:"enabled"`
	SaharReminder    bool   `json:"sahar_reminder"`
	IftorReminder    bool   `json:"iftor_reminder"`
	ReminderMinutes  int    `json:"reminder_minutes"`
	TelegramEnabled  bool   `json:"telegram_enabled,omitempty"`
	TelegramChatID   string `json:"telegram_chat_id,omitempty"`
	TelegramBotToken string `json:"telegram_bot_token,omitempty"`
}

// Config holds all user-configurable settings.
type Config struct {
	SelectedDistrict       string        `json:"selected_district"`
	Notifications          Notifications `json:"notifications"`
	AppStarted             bool          `json:"app_started"`
	NotificationPermission string        `json:"notification_permission"`
	TimeFormat             string        `json:"time_format"` // "12h" or "24h"
	Timezone               string        `json:"timezone"`
	GeminiAPIKey           string        `json:"gemini_api_key,omitempty"`
	GeminiModel            string        `json:"gemini_model,omitempty"`
}

// Defaults returns a Config with all default values applied.
func Defaults() Config {
	return Config{
		SelectedDistrict: calendar.DefaultDistrict().Name,
		Notifications: Notifications{
			SaharReminder:   true,
			IftorReminder:   true,
			ReminderMinutes: DefaultLead,
		},
		NotificationPermission: PermissionUnknown,
		TimeFormat:             "24h",
		Timezone:               DefaultTimezone,
		GeminiModel:            DefaultModel,
	}
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file from disk. See LoadFrom.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	return LoadFrom(path)
}

// LoadFrom reads the config from a specific file path.
// A missing file yields defaults. Malformed content yields defaults for the
// affected fields and an error wrapping ErrInvalid alongside a usable Config.
// Only an unreadable file returns a nil Config.
func LoadFrom(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	problems := cfg.decode(data)
	if len(problems) > 0 {
		return &cfg, fmt.Errorf("%w in %s: %s", ErrInvalid, path, strings.Join(problems, "; "))
	}
	return &cfg, nil
}

// decode fills c from raw JSON field by field, keeping defaults for any field
// that is missing or invalid. It returns a description of each rejected field.
func (c *Config) decode(data []byte) []string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return []string{fmt.Sprintf("not a JSON object: %v", err)}
	}

	var problems []string
	field := func(key string, target any, valid func() bool, reset func()) {
		msg, ok := raw[key]
		if !ok {
			return
		}
		if err := json.Unmarshal(msg, target); err != nil {
			reset()
			problems = append(problems, fmt.Sprintf("%s: %v", key, err))
			return
		}
		if valid != nil && !valid() {
			reset()
			problems = append(problems, fmt.Sprintf("%s: invalid value %s", key, msg))
		}
	}
	def := Defaults()

	field("selected_district", &c.SelectedDistrict,
		func() bool { _, ok := calendar.FindDistrict(c.SelectedDistrict); return ok },
		func() { c.SelectedDistrict = def.SelectedDistrict })
	field("app_started", &c.AppStarted, nil,
		func() { c.AppStarted = def.AppStarted })
	field("notification_permission", &c.NotificationPermission,
		func() bool { return isValidPermission(c.NotificationPermission) },
		func() { c.NotificationPermission = def.NotificationPermission })
	field("time_format", &c.TimeFormat,
		func() bool { return c.TimeFormat == "12h" || c.TimeFormat == "24h" },
		func() { c.TimeFormat = def.TimeFormat })
	field("timezone", &c.Timezone,
		func() bool { _, err := time.LoadLocation(c.Timezone); return c.Timezone != "" && err == nil },
		func() { c.Timezone = def.Timezone })
	field("gemini_api_key", &c.GeminiAPIKey, nil,
		func() { c.GeminiAPIKey = def.GeminiAPIKey })
	field("gemini_model", &c.GeminiModel,
		func() bool { return strings.TrimSpace(c.GeminiModel) != "" },
		func() { c.GeminiModel = def.GeminiModel })

	if msg, ok := raw["notifications"]; ok {
		problems = append(problems, c.Notifications.decode(msg)...)
	}

	return problems
}

func (n *Notifications) decode(data []byte) []string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return []string{fmt.Sprintf("notifications: not a JSON object: %v", err)}
	}

	var problems []string
	def := Defaults().Notifications
	field := func(key string, target any, reset func()) {
		msg, ok := raw[key]
		if !ok {
			return
		}
		if err := json.Unmarshal(msg, target); err != nil {
			reset()
			problems = append(problems, fmt.Sprintf("notifications.%s: %v", key, err))
		}
	}

	field("enabled", &n.Enabled, func() { n.Enabled = def.Enabled })
	field("sahar_reminder", &n.SaharReminder, func() { n.SaharReminder = def.SaharReminder })
	field("iftor_reminder", &n.IftorReminder, func() { n.IftorReminder = def.IftorReminder })
	field("reminder_minutes", &n.ReminderMinutes, func() { n.ReminderMinutes = def.ReminderMinutes })
	field("telegram_enabled", &n.TelegramEnabled, func() { n.TelegramEnabled = def.TelegramEnabled })
	field("telegram_chat_id", &n.TelegramChatID, func() { n.TelegramChatID = def.TelegramChatID })
	field("telegram_bot_token", &n.TelegramBotToken, func() { n.TelegramBotToken = def.TelegramBotToken })

	if !ValidLead(n.ReminderMinutes) {
		problems = append(problems, fmt.Sprintf("notifications.reminder_minutes: %d out of range", n.ReminderMinutes))
		n.ReminderMinutes = def.ReminderMinutes
	}
	return problems
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return c.SaveTo(path)
}

// SaveTo writes the config to a specific file path. The file is written to
// a temporary sibling first and renamed into place.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	// Secrets live in this file, so keep it private.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace config file: %w", err)
	}

	return nil
}

// Reset deletes the config file.
func Reset() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return ResetAt(path)
}

// ResetAt deletes the config file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// Set sets a config key to the given value.
// It validates the key name and parses the value into the correct type.
func (c *Config) Set(key, value string) error {
	switch key {
	case "selected_district":
		d, err := calendar.LookupDistrict(value)
		if err != nil {
			return err
		}
		c.SelectedDistrict = d.Name
	case "notifications":
		v, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.Notifications.Enabled = v
	case "sahar_reminder":
		v, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.Notifications.SaharReminder = v
	case "iftor_reminder":
		v, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.Notifications.IftorReminder = v
	case "reminder_minutes":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid reminder_minutes %q: must be an integer", value)
		}
		if !ValidLead(v) {
			return fmt.Errorf("invalid reminder_minutes %q: %w", value, ErrInvalidLead)
		}
		c.Notifications.ReminderMinutes = v
	case "time_format":
		if value != "12h" && value != "24h" {
			return fmt.Errorf("invalid time_format %q: must be \"12h\" or \"24h\"", value)
		}
		c.TimeFormat = value
	case "timezone":
		if _, err := time.LoadLocation(value); err != nil || value == "" {
			return fmt.Errorf("invalid timezone %q: must be an IANA zone such as %s", value, DefaultTimezone)
		}
		c.Timezone = value
	case "gemini_api_key":
		c.GeminiAPIKey = strings.TrimSpace(value)
	case "gemini_model":
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("invalid gemini_model: must not be empty")
		}
		c.GeminiModel = strings.TrimSpace(value)
	case "telegram_enabled":
		v, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.Notifications.TelegramEnabled = v
	case "telegram_chat_id":
		c.Notifications.TelegramChatID = strings.TrimSpace(value)
	case "telegram_bot_token":
		c.Notifications.TelegramBotToken = strings.TrimSpace(value)
	case "notification_permission":
		switch value {
		case PermissionUnknown, PermissionGranted, PermissionDenied:
			c.NotificationPermission = value
		default:
			return fmt.Errorf("invalid notification_permission %q: must be %q, %q or %q",
				value, PermissionUnknown, PermissionGranted, PermissionDenied)
		}
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

// Get returns the string value of a config key. Secrets are returned as
// stored; callers decide whether to mask them.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "selected_district":
		return c.SelectedDistrict, nil
	case "notifications":
		return formatBool(c.Notifications.Enabled), nil
	case "sahar_reminder":
		return formatBool(c.Notifications.SaharReminder), nil
	case "iftor_reminder":
		return formatBool(c.Notifications.IftorReminder), nil
	case "reminder_minutes":
		return strconv.Itoa(c.Notifications.ReminderMinutes), nil
	case "time_format":
		return c.TimeFormat, nil
	case "timezone":
		return c.Timezone, nil
	case "gemini_api_key":
		return c.GeminiAPIKey, nil
	case "gemini_model":
		return c.GeminiModel, nil
	case "telegram_enabled":
		return formatBool(c.Notifications.TelegramEnabled), nil
	case "telegram_chat_id":
		return c.Notifications.TelegramChatID, nil
	case "telegram_bot_token":
		return c.Notifications.TelegramBotToken, nil
	case "app_started":
		return formatBool(c.AppStarted), nil
	case "notification_permission":
		return c.NotificationPermission, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// IsSecret reports whether a key holds a credential.
func IsSecret(key string) bool {
	return key == "gemini_api_key" || key == "telegram_bot_token"
}

// ValidLead reports whether minutes is an allowed reminder lead time.
func ValidLead(minutes int) bool {
	return minutes >= MinLead && minutes <= MaxLead
}

// TimeLayout returns the Go layout for the configured time format.
func (c *Config) TimeLayout() string {
	if c.TimeFormat == "12h" {
		return "3:04 PM"
	}
	return "15:04"
}

// Location returns the configured zone, falling back to DefaultTimezone and
// finally to a fixed UTC+5 zone when no zone database is available.
func (c *Config) Location() *time.Location {
	if loc, err := time.LoadLocation(c.Timezone); err == nil && c.Timezone != "" {
		return loc
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.FixedZone("UZT", 5*3600)
}

// GeminiKey returns the chat API key, preferring the environment.
func (c *Config) GeminiKey() string {
	if v := strings.TrimSpace(os.Getenv(EnvGeminiKey)); v != "" {
		return v
	}
	return c.GeminiAPIKey
}

// TelegramToken returns the bot token, preferring the environment.
func (c *Config) TelegramToken() string {
	if v := strings.TrimSpace(os.Getenv(EnvTelegramToken)); v != "" {
		return v
	}
	return c.Notifications.TelegramBotToken
}

func isValidPermission(p string) bool {
	return p == PermissionUnknown || p == PermissionGranted || p == PermissionDenied
}

func parseBool(key, value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	v, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: must be true/false or on/off", key, value)
	}
	return v, nil
}

func formatBool(v bool) string {
	return strconv.FormatBool(v)
}
