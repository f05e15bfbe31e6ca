package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	PrimaryColor   = lipgloss.Color("#60A5FA") // Blue
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BorderColor    = lipgloss.Color("#6B7280") // Gray

	// Convenience styles for colors
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		MarginBottom(1)

	// Selected row in the context picker
	SelectedRow = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(PrimaryColor).
			Padding(0, 1)

	UnselectedRow = lipgloss.NewStyle().
			Padding(0, 1)

	// Panel drawn around the picker and prompts
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(1, 2)

	// Inline status markers
	SuccessMark = lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true).Render("✓")
	ErrorMark   = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true).Render("✗")
	WarningMark = lipgloss.NewStyle().Foreground(WarningColor).Bold(true).Render("!")
)

// SuccessLine formats a success message with its marker.
func SuccessLine(msg string) string {
	return SuccessMark + " " + msg
}

// ErrorLine formats an error message with its marker.
func ErrorLine(msg string) string {
	return ErrorMark + " " + Error.Render(msg)
}

// WarningLine formats a warning message with its marker.
func WarningLine(msg string) string {
	return WarningMark + " " + Warning.Render(msg)
}
