package tui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Label     lipgloss.Style
	Countdown lipgloss.Style
	Time      lipgloss.Style
	Today     lipgloss.Style
	Selected  lipgloss.Style
	TabActive lipgloss.Style
	Tab       lipgloss.Style
	Notice    lipgloss.Style
	Message   lipgloss.Style
	Help      lipgloss.Style
	Box       lipgloss.Style
	BarFull   lipgloss.Style
	BarEmpty  lipgloss.Style
	Arabic    lipgloss.Style
	User      lipgloss.Style
	Assistant lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true),
		Subtle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true),
		Countdown: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true),
		Time: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")),
		Today: lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")).
			Background(lipgloss.Color("42")).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")).
			Background(lipgloss.Color("220")).
			Bold(true),
		TabActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true).
			Underline(true).
			Padding(0, 1),
		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1),
		Notice: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")),
		Message: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 2),
		BarFull: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")),
		BarEmpty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")),
		Arabic: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Bold(true),
		User: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true),
		Assistant: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true),
	}
}
