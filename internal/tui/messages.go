package tui

import (
	"github.com/rgehrsitz/prevsim/internal/tui/tuimsg"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneHome Scene = iota
	SceneRules
	SceneCompare
	SceneHelp
)

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// Shared message types live in tuimsg so scenes can emit them
type (
	SimulationCompleteMsg = tuimsg.SimulationCompleteMsg
	ErrorMsg              = tuimsg.ErrorMsg
	ReaffirmShiftMsg      = tuimsg.ReaffirmShiftMsg
	RuleSelectedMsg       = tuimsg.RuleSelectedMsg
)

func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Home"
	case SceneRules:
		return "Rules"
	case SceneCompare:
		return "Compare"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
