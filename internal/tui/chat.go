package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"

	"github.com/smokyabdulrahman/ramazon/internal/app"
	"github.com/smokyabdulrahman/ramazon/internal/chat"
	"github.com/smokyabdulrahman/ramazon/internal/content"
)

const (
	defaultChatWidth  = 76
	defaultChatHeight = 14
	chatChrome        = 9 // header, tabs, input and help lines
)

type chatModel struct {
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	waiting  bool
	pending  string
	shown    string

	style         string
	renderer      *glamour.TermRenderer
	rendererWidth int
}

type chatReplyMsg struct {
	reply string
	err   error
}

func newChatModel(style string) chatModel {
	if style == "" {
		style = "dark"
	}

	in := textinput.New()
	in.Placeholder = "Savolingizni yozing..."
	in.CharLimit = 500
	in.Width = defaultChatWidth - 4

	return chatModel{
		input:    in,
		viewport: viewport.New(defaultChatWidth, defaultChatHeight),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		style:    style,
	}
}

func (c *chatModel) resize(width, height int) {
	c.viewport.Width = max(20, width-4)
	c.viewport.Height = max(4, height-chatChrome)
	c.input.Width = max(10, width-8)
}

func (c *chatModel) updateSpinner(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(spinner.TickMsg); !ok || !c.waiting {
		return nil
	}
	var cmd tea.Cmd
	c.spinner, cmd = c.spinner.Update(msg)
	return cmd
}

// markdown renders an assistant reply, falling back to plain wrapping.
func (c *chatModel) markdown(text string, width int) string {
	if c.renderer == nil || c.rendererWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(c.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return wordwrap.String(text, width)
		}
		c.renderer, c.rendererWidth = r, width
	}

	out, err := c.renderer.Render(text)
	if err != nil {
		return wordwrap.String(text, width)
	}
	return strings.Trim(out, "\n")
}

func (m *Model) handleChatKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = ScreenToday
		return m, nil

	case "enter":
		text := strings.TrimSpace(m.chat.input.Value())
		if text == "" || m.chat.waiting {
			return m, nil
		}
		m.chat.input.Reset()
		m.chat.waiting = true
		m.chat.pending = text
		return m, tea.Batch(sendChatCmd(m.ctx, m.state, text), m.chat.spinner.Tick)

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.chat.viewport, cmd = m.chat.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.chat.input, cmd = m.chat.input.Update(msg)
	return m, cmd
}

func (m *Model) handleChatReply(msg chatReplyMsg) tea.Cmd {
	m.chat.waiting = false
	m.chat.pending = ""
	if errors.Is(msg.err, chat.ErrBusy) {
		m.showMessage("Javob kutilmoqda...")
	}
	return nil
}

func sendChatCmd(ctx context.Context, state *app.State, text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := state.SendChat(ctx, text)
		return chatReplyMsg{reply: reply, err: err}
	}
}

// transcript renders the conversation, or the intro when it is empty.
func (m *Model) transcript() string {
	width := m.chat.viewport.Width - 2
	turns := m.state.Conversation().Turns()

	if len(turns) == 0 && !m.chat.waiting {
		return m.styles.Title.Render(content.ChatTitle) + "\n\n" +
			m.styles.Subtle.Render(wordwrap.String(content.ChatIntro, width))
	}

	var sb strings.Builder
	for _, t := range turns {
		sb.WriteString(m.renderTurn(t, width))
		sb.WriteString("\n\n")
	}

	if m.chat.waiting {
		last := len(turns) - 1
		if last < 0 || turns[last].Role != chat.RoleUser || turns[last].Text != m.chat.pending {
			sb.WriteString(m.renderTurn(chat.Turn{Role: chat.RoleUser, Text: m.chat.pending}, width))
			sb.WriteString("\n\n")
		}
		sb.WriteString(m.chat.spinner.View() + " " + m.styles.Subtle.Render("Javob yozilmoqda..."))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m *Model) renderTurn(t chat.Turn, width int) string {
	if t.Role == chat.RoleUser {
		return m.styles.User.Render("Siz:") + "\n" + wordwrap.String(t.Text, width)
	}
	return m.styles.Assistant.Render("Yordamchi:") + "\n" + m.chat.markdown(t.Text, width)
}

func (m *Model) viewChat() string {
	body := m.transcript()
	if body != m.chat.shown {
		m.chat.viewport.SetContent(body)
		m.chat.viewport.GotoBottom()
		m.chat.shown = body
	}
	return m.chat.viewport.View() + "\n\n" + m.chat.input.View()
}
