package theme

import "github.com/charmbracelet/lipgloss"

// Styles are the lipgloss styles the Home screen renders with.
type Styles struct {
	Header    lipgloss.Style
	Greeting  lipgloss.Style
	Subtle    lipgloss.Style
	Card      lipgloss.Style
	Quote     lipgloss.Style
	Author    lipgloss.Style
	Item      lipgloss.Style
	Selected  lipgloss.Style
	Checked   lipgloss.Style
	Due       lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	StatusBar lipgloss.Style
	Help      lipgloss.Style
}

// NewStyles builds Styles from p.
func NewStyles(p Palette) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			Background(p.Primary).
			Padding(0, 1),
		Greeting: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text),
		Subtle: lipgloss.NewStyle().
			Foreground(p.TextSecondary),
		Card: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Background(p.Card),
		Quote: lipgloss.NewStyle().
			Italic(true).
			Foreground(p.Text),
		Author: lipgloss.NewStyle().
			Foreground(p.TextSecondary),
		Item: lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(p.Text),
		Selected: lipgloss.NewStyle().
			PaddingLeft(1).
			Bold(true).
			Foreground(p.Primary).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(p.Primary),
		Checked: lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(p.TextSecondary),
		Due: lipgloss.NewStyle().
			Foreground(p.Warning),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Error),
		Success: lipgloss.NewStyle().
			Foreground(p.Success),
		Warning: lipgloss.NewStyle().
			Foreground(p.Warning),
		StatusBar: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Surface).
			Padding(0, 1),
		Help: lipgloss.NewStyle().
			Foreground(p.TextSecondary).
			Italic(true),
	}
}
