package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/smokyabdulrahman/ramazon/internal/calendar"
	"github.com/smokyabdulrahman/ramazon/internal/content"
	"github.com/smokyabdulrahman/ramazon/internal/fasting"
)

const barWidth = 30

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return defaultChatWidth
	}
	return max(20, m.width-4)
}

func (m *Model) viewWelcome() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("🌙 Ramazon 2026") + "\n\n")
	b.WriteString(wordwrap.String("Xorazm viloyati uchun maxsus tayyorlangan Ramazon taqvimi va yordamchi ilovasi.", m.contentWidth()) + "\n\n")
	b.WriteString(m.styles.Subtle.Render("Hudud: "+m.snap.District.Name) + "\n\n")
	b.WriteString(m.styles.Help.Render("enter: BOSHLASH • q: chiqish"))
	return m.styles.Box.Render(b.String())
}

func (m *Model) viewFrame(body string) string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("🌙 Ramazon 2026") + " " +
		m.styles.Subtle.Render("• "+m.snap.District.Name+" • "+m.snap.Now.Format("15:04:05")) + "\n")
	b.WriteString(m.viewTabs() + "\n\n")
	b.WriteString(body + "\n\n")

	switch {
	case m.prompting:
		b.WriteString(m.styles.Notice.Render("Bildirishnomalarga ruxsat berasizmi? (y/n)") + "\n")
	case m.message != "":
		b.WriteString(m.styles.Message.Render(m.message) + "\n")
	}
	b.WriteString(m.styles.Help.Render(m.helpLine()))
	return b.String()
}

func (m *Model) viewTabs() string {
	parts := make([]string, len(tabs))
	for i, t := range tabs {
		label := fmt.Sprintf("%d %s", i+1, t.label)
		if t.screen == m.screen {
			parts[i] = m.styles.TabActive.Render(label)
		} else {
			parts[i] = m.styles.Tab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) helpLine() string {
	switch m.screen {
	case ScreenToday:
		return "n: bildirishnoma • s/i: eslatmalar • +/-: daqiqa • c: nusxalash • tab: bo'lim • q: chiqish"
	case ScreenTally:
		return "space: +1 • r: nollash • p: keyingi zikr • tab: bo'lim • q: chiqish"
	case ScreenRegion:
		return "↑/↓: tanlash • enter: saqlash • tab: bo'lim • q: chiqish"
	case ScreenChat:
		return "enter: yuborish • pgup/pgdown: aylantirish • esc: orqaga • ctrl+c: chiqish"
	default:
		return "tab: bo'lim • q: chiqish"
	}
}

func (m *Model) viewToday() string {
	s := m.snap
	layout := s.TimeLayout
	if layout == "" {
		layout = "15:04"
	}

	var b strings.Builder
	b.WriteString(m.styles.Label.Render(s.Label) + "\n")
	b.WriteString(m.styles.Countdown.Render(s.Countdown) + "\n")
	b.WriteString(m.styles.Subtle.Render("Vaqt: "+s.Target.Format(layout)) + "\n\n")

	if s.Status.Phase == fasting.InWindow {
		b.WriteString(m.progressBar(s.Progress) + fmt.Sprintf(" %d%%", int(math.Round(s.Progress))) + "\n\n")
	}

	b.WriteString(fmt.Sprintf("Ramazon %d-kun • %s\n", s.Day.Day, s.Day.Date))
	b.WriteString("Saharlik: " + m.styles.Time.Render(s.Day.Start.Format(layout)) +
		"   Iftorlik: " + m.styles.Time.Render(s.Day.End.Format(layout)) + "\n")

	if notice := s.RangeNotice(); notice != "" {
		b.WriteString(m.styles.Notice.Render(notice) + "\n")
	}

	n := m.state.Config().Notifications
	status := "o'chirilgan"
	if n.Enabled {
		status = "yoqilgan"
	}
	b.WriteString("\n" + m.styles.Subtle.Render(fmt.Sprintf("Bildirishnomalar: %s • Saharlik %s • Iftorlik %s • %d daqiqa oldin",
		status, check(n.SaharReminder), check(n.IftorReminder), n.ReminderMinutes)))
	return b.String()
}

func check(on bool) string {
	if on {
		return "✓"
	}
	return "✗"
}

func (m *Model) progressBar(percent float64) string {
	percent = math.Max(0, math.Min(100, percent))
	filled := int(math.Round(percent / 100 * barWidth))
	return m.styles.BarFull.Render(strings.Repeat("█", filled)) +
		m.styles.BarEmpty.Render(strings.Repeat("░", barWidth-filled))
}

func (m *Model) viewMonth() string {
	layout := m.snap.TimeLayout
	if layout == "" {
		layout = "15:04"
	}

	var b strings.Builder
	b.WriteString(m.styles.Label.Render(fmt.Sprintf("%-4s %-11s %-9s %-9s", "Kun", "Sana", "Saharlik", "Iftorlik")) + "\n")
	for _, d := range m.state.Calendar() {
		row := fmt.Sprintf("%-4d %-11s %-9s %-9s", d.Day, d.Date, d.Start.Format(layout), d.End.Format(layout))
		if m.snap.Matched && d.Day == m.snap.Day.Day {
			row = m.styles.Today.Render(row)
		}
		b.WriteString(row + "\n")
	}
	b.WriteString(m.styles.Subtle.Render("Taqvim vaqtlari O'zbekiston Musulmonlari idorasi tomonidan belgilangan vaqtlarga asoslangan."))
	return b.String()
}

func (m *Model) viewDua() string {
	width := m.contentWidth()

	var b strings.Builder
	for i, d := range content.Duas {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.styles.Title.Render(d.Title) + "\n\n")
		b.WriteString(m.styles.Arabic.Render(d.Arabic) + "\n\n")
		b.WriteString(m.styles.Subtle.Render(wordwrap.String(d.Transliteration, width)) + "\n\n")
		b.WriteString(wordwrap.String(d.Translation, width))
	}
	return b.String()
}

func (m *Model) viewRegion() string {
	current := m.state.District().Name

	var b strings.Builder
	b.WriteString(m.styles.Label.Render("Hududni tanlang") + "\n\n")
	for i, d := range calendar.Districts {
		mark := " "
		if d.Name == current {
			mark = "✓"
		}
		row := fmt.Sprintf("%s %-16s saharlik %-5s iftorlik %-5s", mark, d.Name,
			calendar.FormatOffset(d.StartOffset), calendar.FormatOffset(d.EndOffset))
		if i == m.regionCursor {
			row = m.styles.Selected.Render(row)
		}
		b.WriteString(row + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) viewTally() string {
	t := m.state.Tally()

	var b strings.Builder
	b.WriteString(m.styles.Label.Render("Raqamli Tasbeh") + "\n\n")
	b.WriteString(m.styles.Arabic.Render(t.Phrase) + "\n\n")
	b.WriteString(m.styles.Countdown.Render(fmt.Sprintf("%d", t.Count)) + "\n\n")

	phrases := make([]string, len(content.TallyPhrases))
	for i, p := range content.TallyPhrases {
		if p == t.Phrase {
			phrases[i] = m.styles.TabActive.Render(p)
		} else {
			phrases[i] = m.styles.Tab.Render(p)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, phrases...))
	return b.String()
}
