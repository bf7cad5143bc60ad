package prompt

import "github.com/charmbracelet/lipgloss"

var (
	questionStyle = lipgloss.NewStyle().Bold(true)
	markStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
	cancelStyle   = lipgloss.NewStyle().Faint(true)
)

// summary is what remains on screen once a prompt is answered.
func summary(question, answer string) string {
	return markStyle.Render("?") + " " + questionStyle.Render(question) + " " + answerStyle.Render(answer) + "\n"
}

func cancelledSummary(question string) string {
	return markStyle.Render("?") + " " + questionStyle.Render(question) + " " + cancelStyle.Render("<cancelled>") + "\n"
}
