package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// openDiagnostics shows the log panel and loads the tail of the log file.
func (m Model) openDiagnostics() (tea.Model, tea.Cmd) {
	m.showDiagnostics = true
	m.diagnosticsErr = nil
	if m.logPath == "" {
		m.diagnostics.SetContent("")
		return m, nil
	}
	return m, loadDiagnosticsCmd(m.logPath)
}

func (m Model) handleDiagnosticsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back),
		key.Matches(msg, m.keys.Diagnostics),
		key.Matches(msg, m.keys.LogsList),
		key.Matches(msg, m.keys.QuitList):
		m.showDiagnostics = false
		return m, nil
	case msg.String() == "r":
		return m.openDiagnostics()
	}

	var cmd tea.Cmd
	m.diagnostics, cmd = m.diagnostics.Update(msg)
	return m, cmd
}

// renderDiagnostics renders the log panel in place of the main layout.
func (m Model) renderDiagnostics() string {
	styles := m.styles
	width := max(m.width-2, 10)

	title := styles.Text.Bold(true).Render("Diagnostics")
	path := styles.FaintText.Render(truncateMiddle(m.logPath, max(width-20, 10)))

	var body string
	switch {
	case m.logPath == "":
		body = styles.MutedText.Render("File logging is disabled.")
	case m.diagnosticsErr != nil:
		body = styles.DangerText.Render(m.diagnosticsErr.Error())
	case strings.TrimSpace(m.diagnostics.View()) == "":
		body = styles.MutedText.Render("No log entries yet.")
	default:
		body = m.diagnostics.View()
	}

	hint := styles.FaintText.Render("esc close  r reload  j/k scroll")

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Padding(0, 1).
		Width(width).
		Height(max(m.height-2, 3))

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left, title+"  "+path, "", body, "", hint))
}
