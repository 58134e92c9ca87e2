package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/prevsim/internal/calculation"
	"github.com/rgehrsitz/prevsim/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: prevsim-tui <draft-file>")
		os.Exit(1)
	}
	draftPath := os.Args[1]

	if _, err := os.Stat(draftPath); os.IsNotExist(err) {
		fmt.Printf("Error: Draft file not found: %s\n", draftPath)
		os.Exit(1)
	}

	model := tui.NewModel(draftPath, calculation.NewSimulationEngine())

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
