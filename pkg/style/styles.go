package style

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)
)

// ErrorPrefix starts the single line printed when a run fails.
const ErrorPrefix = "Error:"

// RenderError formats err as the final line printed on failure.
func RenderError(err error) string {
	if err == nil {
		return ""
	}
	return ErrorStyle.Render(ErrorPrefix) + " " + err.Error()
}
