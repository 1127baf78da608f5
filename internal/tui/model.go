// Package tui is the interactive terminal interface: a live countdown
// dashboard with the month table, duas, district picker, tally counter and
// assistant chat as tabs.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smokyabdulrahman/ramazon/internal/app"
	"github.com/smokyabdulrahman/ramazon/internal/calendar"
	"github.com/smokyabdulrahman/ramazon/internal/config"
	"github.com/smokyabdulrahman/ramazon/internal/content"
	"github.com/smokyabdulrahman/ramazon/internal/reminder"
)

type Screen int

const (
	ScreenWelcome Screen = iota
	ScreenToday
	ScreenMonth
	ScreenTally
	ScreenDua
	ScreenChat
	ScreenRegion
)

var tabs = []struct {
	screen Screen
	label  string
}{
	{ScreenToday, "Bugun"},
	{ScreenMonth, "Taqvim"},
	{ScreenTally, "Tasbeh"},
	{ScreenDua, "Duolar"},
	{ScreenChat, "AI Bot"},
	{ScreenRegion, "Hudud"},
}

const (
	tickInterval   = time.Second
	messageTimeout = 3 * time.Second
	leadStep       = 5
)

// Options configures a Model.
type Options struct {
	// Screen is shown after the welcome screen. Zero means ScreenToday.
	Screen Screen
	// Context bounds chat requests and alert delivery.
	Context context.Context
	// Clipboard receives the share text. Defaults to the system clipboard.
	Clipboard func(string) error
	// MarkdownStyle is the glamour style for assistant replies.
	MarkdownStyle string
}

type Model struct {
	state  *app.State
	ctx    context.Context
	copyFn func(string) error

	screen Screen
	snap   app.Snapshot
	width  int
	height int

	regionCursor int
	prompting    bool // waiting for a y/n permission answer

	message   string
	messageAt time.Time

	chat   chatModel
	styles Styles
}

func NewModel(state *app.State, opts Options) *Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Screen == ScreenWelcome {
		opts.Screen = ScreenToday
	}

	m := &Model{
		state:  state,
		ctx:    opts.Context,
		copyFn: opts.Clipboard,
		screen: opts.Screen,
		chat:   newChatModel(opts.MarkdownStyle),
		styles: DefaultStyles(),
	}
	if !state.Started() {
		m.screen = ScreenWelcome
	}
	m.refresh()
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.chat.input.Focus())
}

// Screen returns the active screen.
func (m *Model) Screen() Screen {
	return m.screen
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.chat.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tickMsg:
		return m, m.handleTick()

	case alertsSentMsg:
		if len(msg.alerts) > 0 {
			m.showMessage(msg.alerts[len(msg.alerts)-1].Title)
		}
		return m, nil

	case chatReplyMsg:
		return m, m.handleChatReply(msg)
	}

	return m, m.chat.updateSpinner(msg)
}

func (m *Model) View() string {
	if m.screen == ScreenWelcome {
		return m.viewWelcome()
	}

	var body string
	switch m.screen {
	case ScreenMonth:
		body = m.viewMonth()
	case ScreenTally:
		body = m.viewTally()
	case ScreenDua:
		body = m.viewDua()
	case ScreenChat:
		body = m.viewChat()
	case ScreenRegion:
		body = m.viewRegion()
	default:
		body = m.viewToday()
	}
	return m.viewFrame(body)
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.screen == ScreenWelcome {
		switch msg.String() {
		case "enter", " ":
			if err := m.state.MarkStarted(); err != nil {
				m.showMessage(err.Error())
			}
			m.screen = ScreenToday
		case "q", "esc":
			return m, tea.Quit
		}
		return m, nil
	}

	if m.prompting {
		switch msg.String() {
		case "y", "Y", "h", "H":
			m.prompting = false
			m.enableNotifications(true)
		case "n", "N", "esc":
			m.prompting = false
			m.enableNotifications(false)
		}
		return m, nil
	}

	switch msg.String() {
	case "tab":
		m.switchTab(1)
		return m, nil
	case "shift+tab":
		m.switchTab(-1)
		return m, nil
	}

	if m.screen == ScreenChat {
		return m.handleChatKeys(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "right", "l":
		m.switchTab(1)
		return m, nil
	case "left", "h":
		m.switchTab(-1)
		return m, nil
	case "1", "2", "3", "4", "5", "6":
		m.setScreen(tabs[int(msg.String()[0]-'1')].screen)
		return m, nil
	}

	switch m.screen {
	case ScreenToday:
		m.handleTodayKeys(msg)
	case ScreenTally:
		m.handleTallyKeys(msg)
	case ScreenRegion:
		m.handleRegionKeys(msg)
	}
	return m, nil
}

func (m *Model) handleTodayKeys(msg tea.KeyMsg) {
	cfg := m.state.Config()

	switch msg.String() {
	case "n":
		switch {
		case cfg.Notifications.Enabled:
			if _, err := m.state.SetNotificationsEnabled(m.ctx, false, nil); err != nil {
				m.showMessage(err.Error())
				return
			}
			m.showMessage("Bildirishnomalar o'chirildi")
		case m.state.Permission() == reminder.Unknown:
			m.prompting = true
		default:
			m.enableNotifications(false)
		}

	case "s":
		on, err := m.state.ToggleStartReminder()
		m.reportToggle("Saharlik eslatmasi", on, err)

	case "i":
		on, err := m.state.ToggleEndReminder()
		m.reportToggle("Iftorlik eslatmasi", on, err)

	case "+", "=":
		m.stepLead(cfg.Notifications.ReminderMinutes + leadStep)

	case "-":
		m.stepLead(cfg.Notifications.ReminderMinutes - leadStep)

	case "c":
		if err := m.copyFn(m.state.ShareText(m.snap.Now)); err != nil {
			m.showMessage("Nusxalab bo'lmadi: " + err.Error())
			return
		}
		m.showMessage("Ma'lumot nusxalandi!")
	}
}

// enableNotifications turns reminders on. answer is used only when the
// permission has not been asked yet this session.
func (m *Model) enableNotifications(answer bool) {
	asker := reminder.AskerFunc(func(context.Context) (bool, error) { return answer, nil })
	on, err := m.state.SetNotificationsEnabled(m.ctx, true, asker)
	switch {
	case err != nil:
		m.showMessage(err.Error())
	case on:
		m.showMessage("Bildirishnomalar yoqildi")
	default:
		m.showMessage("Bildirishnomalarga ruxsat berilmadi")
	}
}

func (m *Model) reportToggle(name string, on bool, err error) {
	if err != nil {
		m.showMessage(err.Error())
		return
	}
	if on {
		m.showMessage(name + " yoqildi")
	} else {
		m.showMessage(name + " o'chirildi")
	}
}

func (m *Model) stepLead(minutes int) {
	minutes = max(config.MinLead, min(config.MaxLead, minutes))
	if err := m.state.SetLeadMinutes(minutes); err != nil {
		m.showMessage(err.Error())
		return
	}
	m.showMessage(fmt.Sprintf("Eslatma: %d daqiqa oldin", minutes))
}

func (m *Model) handleTallyKeys(msg tea.KeyMsg) {
	switch msg.String() {
	case " ", "enter", "+":
		m.state.IncrementTally()
	case "r":
		m.state.ResetTally()
	case "p":
		next := content.NextTallyPhrase(m.state.Tally().Phrase)
		if err := m.state.SetTallyPhrase(next); err != nil {
			m.showMessage(err.Error())
		}
	}
}

func (m *Model) handleRegionKeys(msg tea.KeyMsg) {
	switch msg.String() {
	case "up", "k":
		if m.regionCursor > 0 {
			m.regionCursor--
		}
	case "down", "j":
		if m.regionCursor < len(calendar.Districts)-1 {
			m.regionCursor++
		}
	case "enter", " ":
		d := calendar.Districts[m.regionCursor]
		if err := m.state.SelectDistrict(d.Name); err != nil {
			m.showMessage(err.Error())
		} else {
			m.showMessage("Hudud: " + d.Name)
		}
		m.refresh()
		m.screen = ScreenToday
	}
}

func (m *Model) switchTab(delta int) {
	idx := 0
	for i, t := range tabs {
		if t.screen == m.screen {
			idx = i
		}
	}
	idx = (idx + delta + len(tabs)) % len(tabs)
	m.setScreen(tabs[idx].screen)
}

func (m *Model) setScreen(s Screen) {
	m.screen = s
	if s == ScreenRegion {
		current := m.state.District().Name
		for i, d := range calendar.Districts {
			if d.Name == current {
				m.regionCursor = i
			}
		}
	}
}

// handleTick recomputes the status and fires any due reminders.
func (m *Model) handleTick() tea.Cmd {
	m.refresh()
	if m.message != "" && m.snap.Now.Sub(m.messageAt) >= messageTimeout {
		m.message = ""
	}

	cmds := []tea.Cmd{m.tickCmd()}
	if alerts := m.state.Scheduler().Poll(m.snap.Now); len(alerts) > 0 {
		cmds = append(cmds, dispatchCmd(m.ctx, m.state.Scheduler(), alerts))
	}
	return tea.Batch(cmds...)
}

func (m *Model) refresh() {
	m.snap = m.state.Snapshot(m.state.Now())
}

func (m *Model) showMessage(msg string) {
	m.message = msg
	m.messageAt = m.state.Now()
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// dispatchCmd delivers alerts off the update loop.
func dispatchCmd(ctx context.Context, s *reminder.Scheduler, alerts []reminder.Alert) tea.Cmd {
	return func() tea.Msg {
		s.Dispatch(ctx, alerts)
		return alertsSentMsg{alerts: alerts}
	}
}

type tickMsg time.Time

type alertsSentMsg struct {
	alerts []reminder.Alert
}
