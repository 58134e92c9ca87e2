package tuimsg

import (
	"github.com/rgehrsitz/prevsim/internal/domain"
)

// SimulationCompleteMsg carries a fresh result for the draft on screen
type SimulationCompleteMsg struct {
	Draft          *domain.SimulationDraft
	Result         *domain.SimulationResult
	ReaffirmMonths int
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ReaffirmShiftMsg moves the simulated reaffirmed filing date by Delta months
type ReaffirmShiftMsg struct {
	Delta int
}

// RuleSelectedMsg signals a rule has been picked in the rules scene
type RuleSelectedMsg struct {
	RuleID domain.RuleID
}
