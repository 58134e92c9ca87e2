package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/prevsim/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(tuistyles.BorderStyle.Render("⠋ " + m.loadingMessage))
	}

	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.homeModel.View()
	case SceneRules:
		content = m.rulesModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := m.height - 4
	if contentHeight < 0 {
		contentHeight = 0
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		lipgloss.NewStyle().Height(contentHeight).Render(content),
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("PREVSIM - Benefit Simulation")

	crumb := m.currentScene.String()
	if m.currentScene == SceneRules && m.selectedRule != "" {
		crumb = fmt.Sprintf("%s / %s", crumb, m.selectedRule)
	}
	if m.draft != nil && m.draft.ID != "" {
		crumb = fmt.Sprintf("%s  [%s]", crumb, m.draft.ID)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, tuistyles.SubtitleStyle.Render(crumb))
}

func (m Model) renderStatusBar() string {
	return tuistyles.StatusBarStyle.Width(m.width).Render(m.help.View(m.keys))
}

func (m Model) renderError() string {
	message := "An error occurred"
	if m.err != nil {
		message = m.err.Error()
	}
	hint := "Press q to quit."
	if m.draft != nil {
		hint = "Press any key to continue..."
	}
	return m.renderApp(tuistyles.ErrorStyle.Render(fmt.Sprintf("Error: %s\n\n%s", message, hint)))
}

func (m Model) renderHelp() string {
	helpText := `PREVSIM - Benefit Simulation

KEYBOARD SHORTCUTS:
  h        Home: best option per filing date, alerts, methodology
  r        Rules: every retirement rule with its requirements
  c        Compare: current vs reaffirmed filing date
  ?        Show this help
  ESC      Go back
  q/Ctrl+C Quit

RULES:
  ↑/k ↓/j  Move between rules
  tab      Switch filing date
  enter    Select rule

COMPARE:
  +        Simulate waiting one more month before filing
  -        One month less`

	return tuistyles.BorderStyle.Render(helpText)
}
