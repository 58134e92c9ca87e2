package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/prevsim/internal/calculation"
	"github.com/rgehrsitz/prevsim/internal/config"
	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/rgehrsitz/prevsim/internal/transform"
	"github.com/rgehrsitz/prevsim/internal/tui/scenes"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	draftPath string
	draft     *domain.SimulationDraft
	engine    *calculation.SimulationEngine
	result    *domain.SimulationResult

	// Months added to the filing date to simulate a reaffirmed date.
	// Zero keeps whatever the draft file says.
	reaffirmMonths int
	selectedRule   domain.RuleID

	keys KeyMap
	help help.Model

	homeModel    *scenes.HomeModel
	rulesModel   *scenes.RulesModel
	compareModel *scenes.CompareModel

	err error

	loading        bool
	loadingMessage string
}

// NewModel creates a new application model
func NewModel(draftPath string, engine *calculation.SimulationEngine) Model {
	if engine == nil {
		engine = calculation.NewSimulationEngine()
	}
	return Model{
		currentScene:   SceneHome,
		draftPath:      draftPath,
		engine:         engine,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		homeModel:      scenes.NewHomeModel(),
		rulesModel:     scenes.NewRulesModel(),
		compareModel:   scenes.NewCompareModel(),
		width:          80,
		height:         24,
		loading:        true,
		loadingMessage: "Loading draft...",
	}
}

// Init loads the draft and runs the first simulation
func (m Model) Init() tea.Cmd {
	return loadDraftCmd(m.draftPath, m.engine)
}

func loadDraftCmd(path string, engine *calculation.SimulationEngine) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		draft, err := parser.LoadDraftFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		if err := parser.ValidateDraft(draft); err != nil {
			return ErrorMsg{Err: fmt.Errorf("invalid draft: %w", err)}
		}
		return simulate(engine, draft, 0)
	}
}

// simulateCmd re-runs the simulation with the reaffirmed filing date
// moved the given number of months past the filing date
func simulateCmd(engine *calculation.SimulationEngine, draft *domain.SimulationDraft, reaffirmMonths int) tea.Cmd {
	return func() tea.Msg {
		return simulate(engine, draft, reaffirmMonths)
	}
}

func simulate(engine *calculation.SimulationEngine, draft *domain.SimulationDraft, reaffirmMonths int) tea.Msg {
	target := draft
	if reaffirmMonths > 0 {
		shifted, err := transform.ApplyTransforms(draft, []transform.DraftTransform{
			&transform.ReaffirmIn{Months: reaffirmMonths},
		})
		if err != nil {
			return ErrorMsg{Err: err}
		}
		target = shifted
	}
	return SimulationCompleteMsg{
		Draft:          draft,
		Result:         engine.Simulate(target),
		ReaffirmMonths: reaffirmMonths,
	}
}

// Result returns the result on screen
func (m Model) Result() *domain.SimulationResult {
	return m.result
}

// CurrentScene returns the scene on screen
func (m Model) CurrentScene() Scene {
	return m.currentScene
}
