package reminder

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"github.com/smokyabdulrahman/ramazon/internal/calendar"
	"github.com/smokyabdulrahman/ramazon/internal/clock"
)

// PollInterval is how often Run checks for due reminders.
const PollInterval = time.Second

var discardLogger = log.New(io.Discard, "", 0)

// Settings controls which reminders fire.
type Settings struct {
	Enabled           bool
	RemindBeforeStart bool
	RemindBeforeEnd   bool
	LeadMinutes       int
}

// Scheduler decides, once per tick, whether a reminder is due.
type Scheduler struct {
	mu        sync.Mutex
	clock     clock.Clock
	settings  Settings
	gate      *Gate
	cal       calendar.Calendar
	day       calendar.DayRecord
	hasDay    bool
	notifier  Notifier
	logger    *log.Logger
	lastFired map[Anchor]string
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock sets the clock read by Run.
func WithClock(c clock.Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithNotifier sets the sink alerts are delivered to.
func WithNotifier(n Notifier) Option {
	return func(s *Scheduler) { s.notifier = n }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewScheduler returns a scheduler gated by g.
func NewScheduler(settings Settings, g *Gate, opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:     clock.Real{},
		settings:  settings,
		gate:      g,
		logger:    discardLogger,
		lastFired: make(map[Anchor]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetSettings replaces the reminder settings.
func (s *Scheduler) SetSettings(settings Settings) {
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
}

// SetNotifier replaces the sink alerts are delivered to.
func (s *Scheduler) SetNotifier(n Notifier) {
	s.mu.Lock()
	s.notifier = n
	s.mu.Unlock()
}

// Notifier returns the sink alerts are delivered to.
func (s *Scheduler) Notifier() Notifier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notifier
}

// Settings returns the current settings.
func (s *Scheduler) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SetCalendar makes each poll pick the day matching the current date.
// Dates outside the calendar fire nothing.
func (s *Scheduler) SetCalendar(c calendar.Calendar) {
	s.mu.Lock()
	s.cal = c
	s.hasDay = false
	s.mu.Unlock()
}

// SetDay pins the day the anchors are read from.
func (s *Scheduler) SetDay(d calendar.DayRecord) {
	s.mu.Lock()
	s.day = d
	s.hasDay = true
	s.cal = nil
	s.mu.Unlock()
}

// Poll returns the alerts due at now. Each anchor fires at most once per
// reminder minute; a minute with no poll is not caught up later.
func (s *Scheduler) Poll(now time.Time) []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.settings.Enabled || s.gate == nil || s.gate.State() != Granted {
		return nil
	}

	day, ok := s.currentDay(now)
	if !ok {
		return nil
	}

	cur := calendar.FromTime(now)
	lead := s.settings.LeadMinutes

	var alerts []Alert
	check := func(a Anchor, on bool, target calendar.TimeOfDay) {
		if !on {
			return
		}
		at := target.AddMinutes(-lead)
		if cur != at {
			return
		}
		key := now.Format("2006-01-02") + "/" + a.String() + "/" + at.String()
		if s.lastFired[a] == key {
			return
		}
		s.lastFired[a] = key
		alerts = append(alerts, NewAlert(a, target, lead, now))
	}

	check(Start, s.settings.RemindBeforeStart, day.Start)
	check(End, s.settings.RemindBeforeEnd, day.End)
	return alerts
}

func (s *Scheduler) currentDay(now time.Time) (calendar.DayRecord, bool) {
	if s.hasDay {
		return s.day, true
	}
	if len(s.cal) == 0 {
		return calendar.DayRecord{}, false
	}
	return calendar.SelectDay(s.cal, now)
}

// Dispatch hands alerts to the notifier. Delivery errors are logged.
func (s *Scheduler) Dispatch(ctx context.Context, alerts []Alert) {
	s.mu.Lock()
	notifier := s.notifier
	s.mu.Unlock()
	if notifier == nil {
		return
	}
	for _, a := range alerts {
		if err := notifier.Notify(ctx, a); err != nil {
			s.logger.Printf("reminder: delivering %s alert: %v", a.Anchor, err)
			continue
		}
		s.logger.Printf("reminder: sent %s alert for %s", a.Anchor, a.Target)
	}
}

// Run polls every second until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if alerts := s.Poll(s.clock.Now()); len(alerts) > 0 {
				s.Dispatch(ctx, alerts)
			}
		}
	}
}
