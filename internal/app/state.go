// Package app owns the mutable application state: the selected district and
// its effective calendar, notification settings and permission, the tally
// counter, and the chat conversation. Every screen and command reads and
// changes state through a State.
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/smokyabdulrahman/ramazon/internal/calendar"
	"github.com/smokyabdulrahman/ramazon/internal/chat"
	"github.com/smokyabdulrahman/ramazon/internal/clock"
	"github.com/smokyabdulrahman/ramazon/internal/config"
	"github.com/smokyabdulrahman/ramazon/internal/content"
	"github.com/smokyabdulrahman/ramazon/internal/reminder"
)

// Options configures a State.
type Options struct {
	// ConfigPath is where settings are persisted. Empty keeps them in memory.
	ConfigPath string
	// Calendar overrides the built-in published calendar.
	Calendar calendar.Calendar
	Clock    clock.Clock
	Logger   *log.Logger
	// Generator overrides the chat client built from the settings.
	Generator chat.Generator
	// Notifier overrides the sinks built from the settings.
	Notifier reminder.Notifier
}

// Tally is the dhikr counter.
type Tally struct {
	Count  int    `json:"count"`
	Phrase string `json:"phrase"`
}

// State is the single owner of application state. It is safe for
// concurrent use.
type State struct {
	mu        sync.Mutex
	cfg       config.Config
	path      string
	clock     clock.Clock
	logger    *log.Logger
	base      calendar.Calendar
	district  calendar.DistrictOffset
	effective calendar.Calendar
	gate      *reminder.Gate
	scheduler *reminder.Scheduler
	tally     Tally
	conv      *chat.Conversation

	// ownNotifier is set when the sinks come from the settings and must
	// follow them on reload.
	ownNotifier bool
}

// New builds a State from loaded settings.
func New(cfg *config.Config, opts Options) *State {
	if cfg == nil {
		d := config.Defaults()
		cfg = &d
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if len(opts.Calendar) == 0 {
		opts.Calendar = calendar.Khorezm2026
	}

	s := &State{
		cfg:    *cfg,
		path:   opts.ConfigPath,
		clock:  opts.Clock,
		logger: opts.Logger,
		base:   opts.Calendar,
		gate:   reminder.NewGate(reminder.ParsePermission(cfg.NotificationPermission)),
		tally:  Tally{Phrase: content.DefaultTallyPhrase},
	}
	s.applyDistrict(calendar.ResolveDistrict(cfg.SelectedDistrict))

	notifier := opts.Notifier
	if notifier == nil {
		notifier = BuildNotifier(cfg, opts.Logger)
		s.ownNotifier = true
	}
	// Anchors are local times, so the scheduler reads the clock in the
	// configured zone.
	s.scheduler = reminder.NewScheduler(reminderSettings(s.cfg), s.gate,
		reminder.WithClock(clock.Func(s.Now)),
		reminder.WithNotifier(notifier),
		reminder.WithLogger(opts.Logger),
	)
	s.scheduler.SetCalendar(s.effective)

	gen := opts.Generator
	if gen == nil {
		if key := cfg.GeminiKey(); key != "" {
			gen = chat.NewClient(key, cfg.GeminiModel)
		}
	}
	s.conv = chat.NewConversation(chat.NewBridge(gen, opts.Logger))

	return s
}

// BuildNotifier assembles the reminder sinks the settings ask for: always
// the desktop, plus Telegram when enabled and configured.
func BuildNotifier(cfg *config.Config, logger *log.Logger) *reminder.MultiNotifier {
	m := reminder.NewMultiNotifier(logger, reminder.NewDesktop(""))
	n := cfg.Notifications
	if n.TelegramEnabled && n.TelegramChatID != "" && cfg.TelegramToken() != "" {
		m.Add(reminder.NewTelegram(cfg.TelegramToken(), n.TelegramChatID))
	}
	return m
}

func reminderSettings(c config.Config) reminder.Settings {
	return reminder.Settings{
		Enabled:           c.Notifications.Enabled,
		RemindBeforeStart: c.Notifications.SaharReminder,
		RemindBeforeEnd:   c.Notifications.IftorReminder,
		LeadMinutes:       c.Notifications.ReminderMinutes,
	}
}

// applyDistrict switches district and recomputes the effective calendar.
// Callers hold s.mu or are constructing s.
func (s *State) applyDistrict(d calendar.DistrictOffset) {
	s.district = d
	s.effective = calendar.AdjustAll(s.base, d)
	s.cfg.SelectedDistrict = d.Name
	if s.scheduler != nil {
		s.scheduler.SetCalendar(s.effective)
	}
}

// persist writes the settings. The in-memory value is kept even when the
// write fails. Callers hold s.mu.
func (s *State) persist() error {
	if s.path == "" {
		return nil
	}
	if err := s.cfg.SaveTo(s.path); err != nil {
		s.logger.Printf("app: saving settings: %v", err)
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

// Now returns the current time in the configured zone.
func (s *State) Now() time.Time {
	s.mu.Lock()
	loc := s.cfg.Location()
	s.mu.Unlock()
	return s.clock.Now().In(loc)
}

// Config returns a copy of the current settings.
func (s *State) Config() config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// District returns the selected district.
func (s *State) District() calendar.DistrictOffset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.district
}

// Calendar returns the effective calendar for the selected district.
func (s *State) Calendar() calendar.Calendar {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.effective
}

// Permission returns the notification permission for this session.
func (s *State) Permission() reminder.Permission {
	return s.gate.State()
}

// Scheduler returns the reminder scheduler bound to this state.
func (s *State) Scheduler() *reminder.Scheduler {
	return s.scheduler
}

// Conversation returns the chat conversation.
func (s *State) Conversation() *chat.Conversation {
	return s.conv
}

// SelectDistrict switches to the named district and persists the choice.
func (s *State) SelectDistrict(name string) error {
	d, err := calendar.LookupDistrict(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyDistrict(d)
	return s.persist()
}

// RequestNotifications asks for permission once per session. A grant turns
// notifications on; a denial turns them off. The answer is persisted.
func (s *State) RequestNotifications(ctx context.Context, asker reminder.Asker) (reminder.Permission, error) {
	perm, err := s.gate.Request(ctx, asker)
	if err != nil {
		s.logger.Printf("app: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch perm {
	case reminder.Granted:
		s.cfg.Notifications.Enabled = true
	case reminder.Denied:
		s.cfg.Notifications.Enabled = false
	default:
		return perm, err
	}
	s.cfg.NotificationPermission = string(perm)
	s.scheduler.SetSettings(reminderSettings(s.cfg))
	if perr := s.persist(); perr != nil {
		return perm, perr
	}
	return perm, nil
}

// SetNotificationsEnabled turns reminders on or off. Turning them on asks
// for permission first; without a grant they stay off and no error is
// returned. It reports the resulting enabled state.
func (s *State) SetNotificationsEnabled(ctx context.Context, on bool, asker reminder.Asker) (bool, error) {
	if on {
		perm, err := s.RequestNotifications(ctx, asker)
		if perm != reminder.Granted {
			s.mu.Lock()
			s.cfg.Notifications.Enabled = false
			s.scheduler.SetSettings(reminderSettings(s.cfg))
			s.mu.Unlock()
			return false, nil
		}
		if err != nil {
			return true, err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.cfg.Notifications.Enabled {
			s.cfg.Notifications.Enabled = true
			s.scheduler.SetSettings(reminderSettings(s.cfg))
			return true, s.persist()
		}
		return true, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Notifications.Enabled = false
	s.scheduler.SetSettings(reminderSettings(s.cfg))
	return false, s.persist()
}

// ToggleStartReminder flips the saharlik reminder and returns the new value.
func (s *State) ToggleStartReminder() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Notifications.SaharReminder = !s.cfg.Notifications.SaharReminder
	s.scheduler.SetSettings(reminderSettings(s.cfg))
	return s.cfg.Notifications.SaharReminder, s.persist()
}

// ToggleEndReminder flips the iftorlik reminder and returns the new value.
func (s *State) ToggleEndReminder() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Notifications.IftorReminder = !s.cfg.Notifications.IftorReminder
	s.scheduler.SetSettings(reminderSettings(s.cfg))
	return s.cfg.Notifications.IftorReminder, s.persist()
}

// SetLeadMinutes sets how long before each anchor reminders fire.
func (s *State) SetLeadMinutes(minutes int) error {
	if !config.ValidLead(minutes) {
		return fmt.Errorf("%d: %w", minutes, config.ErrInvalidLead)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Notifications.ReminderMinutes = minutes
	s.scheduler.SetSettings(reminderSettings(s.cfg))
	return s.persist()
}

// MarkStarted records that the welcome screen has been passed.
func (s *State) MarkStarted() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.AppStarted {
		return nil
	}
	s.cfg.AppStarted = true
	return s.persist()
}

// Started reports whether the welcome screen has been passed.
func (s *State) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.AppStarted
}

// Reload applies settings changed outside this process. An answer given
// during this session wins over the reloaded permission.
func (s *State) Reload(cfg *config.Config) {
	if cfg == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	perm := s.cfg.NotificationPermission
	s.cfg = *cfg
	if !s.gate.Sync(reminder.ParsePermission(cfg.NotificationPermission)) {
		s.cfg.NotificationPermission = perm
	}
	if s.gate.State() == reminder.Denied {
		s.cfg.Notifications.Enabled = false
	}
	s.applyDistrict(calendar.ResolveDistrict(cfg.SelectedDistrict))
	s.scheduler.SetSettings(reminderSettings(s.cfg))
	if s.ownNotifier {
		s.scheduler.SetNotifier(BuildNotifier(&s.cfg, s.logger))
	}
	s.logger.Printf("app: settings reloaded (district %s)", s.district.Name)
}

// Tally returns the counter state.
func (s *State) Tally() Tally {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tally
}

// IncrementTally adds one to the counter and returns the new count.
func (s *State) IncrementTally() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tally.Count++
	return s.tally.Count
}

// ResetTally sets the counter back to zero.
func (s *State) ResetTally() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tally.Count = 0
}

// SetTallyPhrase selects the phrase being counted. The count is kept.
func (s *State) SetTallyPhrase(p string) error {
	if !content.ValidTallyPhrase(p) {
		return fmt.Errorf("unknown tally phrase %q", p)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tally.Phrase = p
	return nil
}

// SendChat forwards text to the assistant and returns its reply.
func (s *State) SendChat(ctx context.Context, text string) (string, error) {
	return s.conv.Send(ctx, text)
}
