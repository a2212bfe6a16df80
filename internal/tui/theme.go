package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds colors and pre-built styles.
type Theme struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Success lipgloss.Color
	Danger  lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	Border  lipgloss.Color

	TitleStyle       lipgloss.Style
	ClockStyle       lipgloss.Style
	LabelStyle       lipgloss.Style
	ActiveTabStyle   lipgloss.Style
	InactiveTabStyle lipgloss.Style
	PanelStyle       lipgloss.Style
	CursorStyle      lipgloss.Style
	DoneStyle        lipgloss.Style
	MutedStyle       lipgloss.Style
	HelpStyle        lipgloss.Style
	BarFilledStyle   lipgloss.Style
	BarEmptyStyle    lipgloss.Style
}

func DarkTheme() Theme {
	t := Theme{
		Primary: lipgloss.Color("#7C3AED"),
		Accent:  lipgloss.Color("#F59E0B"),
		Success: lipgloss.Color("#10B981"),
		Danger:  lipgloss.Color("#EF4444"),
		Muted:   lipgloss.Color("#6B7280"),
		Text:    lipgloss.Color("#E5E7EB"),
		Border:  lipgloss.Color("#374151"),
	}

	t.TitleStyle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	t.ClockStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true).
		Padding(0, 2)

	t.LabelStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	t.ActiveTabStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Primary).
		Padding(0, 2).
		Bold(true)

	t.InactiveTabStyle = lipgloss.NewStyle().
		Foreground(t.Muted).
		Padding(0, 2)

	t.PanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	t.CursorStyle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	t.DoneStyle = lipgloss.NewStyle().
		Foreground(t.Muted).
		Strikethrough(true)

	t.MutedStyle = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.HelpStyle = lipgloss.NewStyle().
		Foreground(t.Muted).
		Italic(true)

	t.BarFilledStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	t.BarEmptyStyle = lipgloss.NewStyle().
		Foreground(t.Border)

	return t
}
