package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.homeModel.SetSize(msg.Width, msg.Height)
		m.rulesModel.SetSize(msg.Width, msg.Height)
		m.compareModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case SimulationCompleteMsg:
		m.loading = false
		m.err = nil
		m.draft = msg.Draft
		m.result = msg.Result
		m.reaffirmMonths = msg.ReaffirmMonths
		m.homeModel.SetResult(msg.Result)
		m.rulesModel.SetResult(msg.Result)
		m.compareModel.SetResult(msg.Result, msg.ReaffirmMonths)
		return m, nil

	case ReaffirmShiftMsg:
		if m.draft == nil {
			return m, nil
		}
		months := m.reaffirmMonths + msg.Delta
		if months < 0 {
			months = 0
		}
		m.loading = true
		m.loadingMessage = "Simulating..."
		return m, simulateCmd(m.engine, m.draft, months)

	case RuleSelectedMsg:
		m.selectedRule = msg.RuleID
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Any key clears an error once the draft is loaded
	if m.err != nil && m.draft != nil {
		m.err = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		return m, navigate(SceneHelp)
	case key.Matches(msg, m.keys.Back):
		if m.currentScene != SceneHome {
			target := SceneHome
			if m.previousScene != m.currentScene {
				target = m.previousScene
			}
			return m, navigate(target)
		}
	case key.Matches(msg, m.keys.Home):
		if m.currentScene != SceneHome {
			return m, navigate(SceneHome)
		}
	case key.Matches(msg, m.keys.Rules):
		if m.currentScene != SceneRules {
			return m, navigate(SceneRules)
		}
	case key.Matches(msg, m.keys.Compare):
		if m.currentScene != SceneCompare {
			return m, navigate(SceneCompare)
		}
	}

	return m.updateCurrentScene(msg)
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Scene: scene} }
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneHome:
		m.homeModel, cmd = m.homeModel.Update(msg)
	case SceneRules:
		m.rulesModel, cmd = m.rulesModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	}
	return m, cmd
}
