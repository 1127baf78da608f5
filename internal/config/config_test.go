package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	_ "time/tzdata"

	"github.com/smokyabdulrahman/ramazon/internal/calendar"
)

// tempConfigPath returns a path to a config file inside a temp directory.
func tempConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.json")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// --- Defaults ---

func TestDefaults(t *testing.T) {
	d := Defaults()

	if d.SelectedDistrict != calendar.Districts[0].Name {
		t.Errorf("SelectedDistrict = %q, want %q", d.SelectedDistrict, calendar.Districts[0].Name)
	}
	if d.Notifications.Enabled {
		t.Error("notifications should be disabled by default")
	}
	if !d.Notifications.SaharReminder || !d.Notifications.IftorReminder {
		t.Error("both reminders should be on by default")
	}
	if d.Notifications.ReminderMinutes != 15 {
		t.Errorf("ReminderMinutes = %d, want 15", d.Notifications.ReminderMinutes)
	}
	if d.NotificationPermission != PermissionUnknown {
		t.Errorf("NotificationPermission = %q, want unknown", d.NotificationPermission)
	}
	if d.TimeFormat != "24h" {
		t.Errorf("TimeFormat = %q, want 24h", d.TimeFormat)
	}
	if d.Timezone != DefaultTimezone {
		t.Errorf("Timezone = %q, want %q", d.Timezone, DefaultTimezone)
	}
	if d.AppStarted {
		t.Error("AppStarted should be false by default")
	}
}

// --- Dir and Path with XDG ---

func TestDir_XDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}

	want := filepath.Join("/tmp/xdg-test", "ramazon")
	if dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}
}

func TestDir_FallbackToHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".config", "ramazon")
	if dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}
}

func TestPath_XDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	p, err := Path()
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}

	want := filepath.Join("/tmp/xdg-test", "ramazon", "config.json")
	if p != want {
		t.Errorf("Path() = %q, want %q", p, want)
	}
}

// --- LoadFrom ---

func TestLoadFrom_NonExistentFile(t *testing.T) {
	cfg, err := LoadFrom("/no/such/file.json")
	if err != nil {
		t.Fatalf("LoadFrom non-existent should not error, got: %v", err)
	}
	if *cfg != Defaults() {
		t.Errorf("LoadFrom non-existent = %+v, want defaults", *cfg)
	}
}

func TestLoadFrom_ValidJSON(t *testing.T) {
	path := tempConfigPath(t)
	writeFile(t, path, `{
  "selected_district": "Xiva",
  "notifications": {"enabled": true, "sahar_reminder": false, "iftor_reminder": true, "reminder_minutes": 30},
  "app_started": true,
  "notification_permission": "granted",
  "time_format": "12h",
  "timezone": "Asia/Samarkand"
}`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}
	if cfg.SelectedDistrict != "Xiva" {
		t.Errorf("SelectedDistrict = %q", cfg.SelectedDistrict)
	}
	n := cfg.Notifications
	if !n.Enabled || n.SaharReminder || !n.IftorReminder || n.ReminderMinutes != 30 {
		t.Errorf("Notifications = %+v", n)
	}
	if !cfg.AppStarted || cfg.NotificationPermission != PermissionGranted {
		t.Errorf("AppStarted/Permission = %v/%q", cfg.AppStarted, cfg.NotificationPermission)
	}
	if cfg.TimeFormat != "12h" || cfg.Timezone != "Asia/Samarkand" {
		t.Errorf("TimeFormat/Timezone = %q/%q", cfg.TimeFormat, cfg.Timezone)
	}
	if cfg.GeminiModel != DefaultModel {
		t.Errorf("missing gemini_model should default, got %q", cfg.GeminiModel)
	}
}

func TestLoadFrom_MalformedJSON(t *testing.T) {
	path := tempConfigPath(t)
	writeFile(t, path, `{not valid json`)

	cfg, err := LoadFrom(path)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("error = %v, want ErrInvalid", err)
	}
	if cfg == nil || *cfg != Defaults() {
		t.Errorf("malformed file should yield defaults, got %+v", cfg)
	}
}

func TestLoadFrom_EmptyJSON(t *testing.T) {
	path := tempConfigPath(t)
	writeFile(t, path, `{}`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != Defaults() {
		t.Errorf("empty object = %+v, want defaults", *cfg)
	}
}

func TestLoadFrom_InvalidFieldsFallBackIndividually(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		check func(t *testing.T, c *Config)
	}{
		{
			"unknown district",
			`{"selected_district": "Samarqand", "time_format": "12h"}`,
			func(t *testing.T, c *Config) {
				if c.SelectedDistrict != Defaults().SelectedDistrict {
					t.Errorf("SelectedDistrict = %q, want default", c.SelectedDistrict)
				}
				if c.TimeFormat != "12h" {
					t.Errorf("valid sibling field lost: TimeFormat = %q", c.TimeFormat)
				}
			},
		},
		{
			"lead too small",
			`{"notifications": {"enabled": true, "reminder_minutes": 2}}`,
			func(t *testing.T, c *Config) {
				if c.Notifications.ReminderMinutes != DefaultLead {
					t.Errorf("ReminderMinutes = %d, want %d", c.Notifications.ReminderMinutes, DefaultLead)
				}
				if !c.Notifications.Enabled {
					t.Error("valid sibling field lost: Enabled")
				}
			},
		},
		{
			"lead too large",
			`{"notifications": {"reminder_minutes": 61}}`,
			func(t *testing.T, c *Config) {
				if c.Notifications.ReminderMinutes != DefaultLead {
					t.Errorf("ReminderMinutes = %d, want %d", c.Notifications.ReminderMinutes, DefaultLead)
				}
			},
		},
		{
			"wrong type",
			`{"app_started": "yes", "notifications": {"enabled": "maybe"}}`,
			func(t *testing.T, c *Config) {
				if c.AppStarted || c.Notifications.Enabled {
					t.Errorf("wrongly typed fields should default: %+v", c)
				}
			},
		},
		{
			"bad permission and zone",
			`{"notification_permission": "sometimes", "timezone": "Mars/Olympus"}`,
			func(t *testing.T, c *Config) {
				if c.NotificationPermission != PermissionUnknown {
					t.Errorf("NotificationPermission = %q", c.NotificationPermission)
				}
				if c.Timezone != DefaultTimezone {
					t.Errorf("Timezone = %q", c.Timezone)
				}
			},
		},
		{
			"bad time format",
			`{"time_format": "36h"}`,
			func(t *testing.T, c *Config) {
				if c.TimeFormat != "24h" {
					t.Errorf("TimeFormat = %q, want 24h", c.TimeFormat)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tempConfigPath(t)
			writeFile(t, path, tt.json)

			cfg, err := LoadFrom(path)
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("error = %v, want ErrInvalid", err)
			}
			if cfg == nil {
				t.Fatal("cfg is nil")
			}
			tt.check(t, cfg)
		})
	}
}

// --- SaveTo ---

func TestSaveTo_CreatesDirectoryAndFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	cfg := Defaults()
	cfg.SelectedDistrict = "Gurlan"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("file not created: %v", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("saved file has invalid JSON: %v", err)
	}
	if loaded.SelectedDistrict != "Gurlan" {
		t.Errorf("loaded SelectedDistrict = %q, want %q", loaded.SelectedDistrict, "Gurlan")
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary file left behind: %v", err)
	}
}

func TestSaveTo_TrailingNewline(t *testing.T) {
	path := tempConfigPath(t)
	cfg := Defaults()

	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if len(data) == 0 || data[len(data)-1] != '\n' {
		t.Error("saved file should end with a newline")
	}
}

func TestSaveTo_UsesSnakeCaseKeys(t *testing.T) {
	path := tempConfigPath(t)
	cfg := Defaults()
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	for _, key := range []string{"selected_district", "notifications", "app_started", "notification_permission", "reminder_minutes", "sahar_reminder", "iftor_reminder"} {
		if !strings.Contains(string(data), `"`+key+`"`) {
			t.Errorf("saved file missing key %q", key)
		}
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	path := tempConfigPath(t)

	original := Defaults()
	original.SelectedDistrict = "Tuproqqal'a"
	original.Notifications.Enabled = true
	original.Notifications.ReminderMinutes = 45
	original.AppStarted = true
	original.NotificationPermission = PermissionDenied
	original.TimeFormat = "12h"

	if err := original.SaveTo(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if *loaded != original {
		t.Errorf("round trip = %+v, want %+v", *loaded, original)
	}
}

// --- ResetAt ---

func TestResetAt_DeletesFile(t *testing.T) {
	path := tempConfigPath(t)
	writeFile(t, path, `{}`)

	if err := ResetAt(path); err != nil {
		t.Fatalf("ResetAt error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("config file should be deleted")
	}
}

func TestResetAt_NonExistentFile(t *testing.T) {
	if err := ResetAt(filepath.Join(t.TempDir(), "nope.json")); err != nil {
		t.Errorf("ResetAt non-existent should not error, got: %v", err)
	}
}

// --- Set / Get ---

func TestSetThenGet_RoundTrip(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"selected_district", "Xonqa"},
		{"notifications", "true"},
		{"sahar_reminder", "false"},
		{"iftor_reminder", "true"},
		{"reminder_minutes", "20"},
		{"time_format", "12h"},
		{"timezone", "Asia/Samarkand"},
		{"gemini_api_key", "abc123"},
		{"gemini_model", "gemini-2.0-flash"},
		{"telegram_enabled", "true"},
		{"telegram_chat_id", "12345"},
		{"telegram_bot_token", "1:AA"},
		{"notification_permission", "denied"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg := Defaults()
			if err := cfg.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set(%q, %q) error: %v", tt.key, tt.value, err)
			}
			got, err := cfg.Get(tt.key)
			if err != nil {
				t.Fatalf("Get(%q) error: %v", tt.key, err)
			}
			if got != tt.value {
				t.Errorf("Set/Get round-trip: got %q, want %q", got, tt.value)
			}
		})
	}
}

func TestSet_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"selected_district", "Tashkent"},
		{"notifications", "maybe"},
		{"reminder_minutes", "abc"},
		{"reminder_minutes", "4"},
		{"reminder_minutes", "61"},
		{"time_format", "25h"},
		{"timezone", "Nowhere/Special"},
		{"timezone", ""},
		{"gemini_model", "  "},
		{"notification_permission", "maybe"},
		{"no_such_key", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := Defaults()
			if err := cfg.Set(tt.key, tt.value); err == nil {
				t.Errorf("Set(%q, %q) should fail", tt.key, tt.value)
			}
		})
	}
}

func TestSet_LeadErrorWrapsSentinel(t *testing.T) {
	cfg := Defaults()
	err := cfg.Set("reminder_minutes", "90")
	if !errors.Is(err, ErrInvalidLead) {
		t.Errorf("error = %v, want ErrInvalidLead", err)
	}
}

func TestSet_DistrictCaseInsensitive(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Set("selected_district", "xiva"); err != nil {
		t.Fatal(err)
	}
	if cfg.SelectedDistrict != "Xiva" {
		t.Errorf("SelectedDistrict = %q, want canonical Xiva", cfg.SelectedDistrict)
	}
}

func TestSet_OnOff(t *testing.T) {
	cfg := Defaults()
	cfg.Set("notifications", "on")
	if !cfg.Notifications.Enabled {
		t.Error("on should enable")
	}
	cfg.Set("notifications", "off")
	if cfg.Notifications.Enabled {
		t.Error("off should disable")
	}
}

func TestSet_PermissionResetsDenial(t *testing.T) {
	cfg := Defaults()
	cfg.NotificationPermission = PermissionDenied
	if err := cfg.Set("notification_permission", "unknown"); err != nil {
		t.Fatal(err)
	}
	if cfg.NotificationPermission != PermissionUnknown {
		t.Errorf("NotificationPermission = %q, want unknown", cfg.NotificationPermission)
	}
}

func TestGet_ReadOnlyKeys(t *testing.T) {
	cfg := Defaults()
	cfg.AppStarted = true

	if got, _ := cfg.Get("app_started"); got != "true" {
		t.Errorf("app_started = %q", got)
	}
	if got, _ := cfg.Get("notification_permission"); got != PermissionUnknown {
		t.Errorf("notification_permission = %q", got)
	}
	if _, err := cfg.Get("nope"); err == nil {
		t.Error("unknown key should error")
	}
}

func TestValidKeys_AllGettable(t *testing.T) {
	cfg := Defaults()
	for _, k := range ValidKeys {
		if _, err := cfg.Get(k); err != nil {
			t.Errorf("Get(%q) error: %v", k, err)
		}
	}
}

// --- Derived values ---

func TestTimeLayout(t *testing.T) {
	cfg := Defaults()
	if got := cfg.TimeLayout(); got != "15:04" {
		t.Errorf("24h layout = %q", got)
	}
	cfg.TimeFormat = "12h"
	if got := cfg.TimeLayout(); got != "3:04 PM" {
		t.Errorf("12h layout = %q", got)
	}
}

func TestLocation(t *testing.T) {
	cfg := Defaults()
	if got := cfg.Location().String(); got != DefaultTimezone {
		t.Errorf("Location = %q, want %q", got, DefaultTimezone)
	}
	cfg.Timezone = "Bogus/Zone"
	if got := cfg.Location().String(); got != DefaultTimezone {
		t.Errorf("bad zone Location = %q, want fallback", got)
	}
}

func TestSecrets_EnvTakesPrecedence(t *testing.T) {
	cfg := Defaults()
	cfg.GeminiAPIKey = "from-file"
	cfg.Notifications.TelegramBotToken = "file-token"

	t.Setenv(EnvGeminiKey, "")
	t.Setenv(EnvTelegramToken, "")
	if cfg.GeminiKey() != "from-file" || cfg.TelegramToken() != "file-token" {
		t.Errorf("without env: %q / %q", cfg.GeminiKey(), cfg.TelegramToken())
	}

	t.Setenv(EnvGeminiKey, "from-env")
	t.Setenv(EnvTelegramToken, "env-token")
	if cfg.GeminiKey() != "from-env" || cfg.TelegramToken() != "env-token" {
		t.Errorf("with env: %q / %q", cfg.GeminiKey(), cfg.TelegramToken())
	}
}

func TestIsSecret(t *testing.T) {
	if !IsSecret("gemini_api_key") || !IsSecret("telegram_bot_token") {
		t.Error("credential keys should be secret")
	}
	if IsSecret("selected_district") {
		t.Error("selected_district is not secret")
	}
}

// --- Full integration: Set -> SaveTo -> LoadFrom -> Get ---

func TestSetSaveLoadGet_Integration(t *testing.T) {
	path := tempConfigPath(t)

	cfg := Defaults()
	cfg.Set("selected_district", "Shovot")
	cfg.Set("notifications", "on")
	cfg.Set("reminder_minutes", "10")
	cfg.Set("time_format", "12h")

	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}

	checks := []struct {
		key, want string
	}{
		{"selected_district", "Shovot"},
		{"notifications", "true"},
		{"reminder_minutes", "10"},
		{"time_format", "12h"},
	}

	for _, c := range checks {
		got, _ := loaded.Get(c.key)
		if got != c.want {
			t.Errorf("After save/load: Get(%q) = %q, want %q", c.key, got, c.want)
		}
	}
}
