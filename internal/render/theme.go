package render

import "charm.land/lipgloss/v2"

// Color palette
var (
	Primary = lipgloss.Color("#2563EB") // Care Blue
	Success = lipgloss.Color("#22C55E") // Green
	Danger  = lipgloss.Color("#F43F5E") // Rose
	Warning = lipgloss.Color("#F59E0B") // Amber
	Text    = lipgloss.Color("#F8FAFC") // White
	TextDim = lipgloss.Color("#94A3B8") // Slate
	Border  = lipgloss.Color("#334155") // Slate
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	independentStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(Success)

	highRiskStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Danger)

	warningStyle = lipgloss.NewStyle().
			Foreground(Warning)

	bodyStyle = lipgloss.NewStyle().
			Foreground(Text)

	hintStyle = lipgloss.NewStyle().
			Foreground(TextDim).
			Italic(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)

	cardLabelStyle = lipgloss.NewStyle().
			Foreground(TextDim)

	cardValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Text)

	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(Primary).
				Padding(0, 1)

	tableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)
)
