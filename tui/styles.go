package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles for the teller screens.
type Styles struct {
	Title      lipgloss.Style
	Notice     lipgloss.Style
	ErrNotice  lipgloss.Style
	DateLine   lipgloss.Style
	Deposit    lipgloss.Style
	Withdrawal lipgloss.Style
	RowDate    lipgloss.Style
	Balance    lipgloss.Style
	Summary    lipgloss.Style
	Movements  lipgloss.Style
	FormLabel  lipgloss.Style
	Timer      lipgloss.Style
	Help       lipgloss.Style
}

func defaultStyles() Styles {
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d29b1d")),
		Notice:     lipgloss.NewStyle().Foreground(lipgloss.Color("#e0e0e0")),
		ErrNotice:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")),
		DateLine:   lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")),
		Deposit:    lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00")),
		Withdrawal: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")),
		RowDate:    lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")),
		Balance:    lipgloss.NewStyle().Bold(true),
		Summary:    lipgloss.NewStyle().Foreground(lipgloss.Color("#bbbbbb")),
		Movements:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		FormLabel:  lipgloss.NewStyle().Foreground(lipgloss.Color("#d29b1d")),
		Timer:      lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaf00")),
		Help:       lipgloss.NewStyle().Foreground(lipgloss.Color("#5f5f5f")),
	}
}
