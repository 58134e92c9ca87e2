package scenes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/rgehrsitz/prevsim/internal/tui/components"
	"github.com/rgehrsitz/prevsim/internal/tui/tuimsg"
	"github.com/rgehrsitz/prevsim/internal/tui/tuistyles"
	"github.com/rgehrsitz/prevsim/pkg/dateutil"
)

var (
	keyUp       = key.NewBinding(key.WithKeys("up", "k"))
	keyDown     = key.NewBinding(key.WithKeys("down", "j"))
	keyTop      = key.NewBinding(key.WithKeys("g"))
	keyBottom   = key.NewBinding(key.WithKeys("G"))
	keyScenario = key.NewBinding(key.WithKeys("tab"))
	keySelect   = key.NewBinding(key.WithKeys("enter"))
)

// RulesModel browses rule results, one filing date at a time
type RulesModel struct {
	result        *domain.SimulationResult
	scenarioIndex int
	selectedIndex int
	cards         []*components.RuleCard
	width         int
	height        int
}

// NewRulesModel creates a new rules scene model
func NewRulesModel() *RulesModel {
	return &RulesModel{}
}

// SetResult replaces the result, keeping the selection where possible
func (m *RulesModel) SetResult(result *domain.SimulationResult) {
	m.result = result
	if result == nil || m.scenarioIndex >= len(result.Scenarios) {
		m.scenarioIndex = 0
	}
	m.buildCards()
}

// SetSize updates the scene dimensions
func (m *RulesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Scenario returns the scenario currently shown
func (m *RulesModel) Scenario() *domain.ScenarioResult {
	if m.result == nil || len(m.result.Scenarios) == 0 {
		return nil
	}
	return &m.result.Scenarios[m.scenarioIndex]
}

// SelectedRule returns the id of the highlighted rule
func (m *RulesModel) SelectedRule() domain.RuleID {
	if m.selectedIndex >= 0 && m.selectedIndex < len(m.cards) {
		return m.cards[m.selectedIndex].Result.RuleID
	}
	return ""
}

func (m *RulesModel) buildCards() {
	m.cards = []*components.RuleCard{}
	sc := m.Scenario()
	if sc == nil {
		m.selectedIndex = 0
		return
	}
	for _, r := range sc.Rules {
		card := components.NewRuleCard(r)
		card.IsBest = sc.BestEligibleOption != nil && sc.BestEligibleOption.RuleID == r.RuleID
		m.cards = append(m.cards, card)
	}
	if m.selectedIndex >= len(m.cards) {
		m.selectedIndex = 0
	}
}

// Update handles messages for the rules scene
func (m *RulesModel) Update(msg tea.Msg) (*RulesModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keyUp):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(keyMsg, keyDown):
		if m.selectedIndex < len(m.cards)-1 {
			m.selectedIndex++
		}
	case key.Matches(keyMsg, keyTop):
		m.selectedIndex = 0
	case key.Matches(keyMsg, keyBottom):
		m.selectedIndex = max(0, len(m.cards)-1)
	case key.Matches(keyMsg, keyScenario):
		if m.result != nil && len(m.result.Scenarios) > 1 {
			m.scenarioIndex = (m.scenarioIndex + 1) % len(m.result.Scenarios)
			m.buildCards()
		}
	case key.Matches(keyMsg, keySelect):
		id := m.SelectedRule()
		if id == "" {
			return m, nil
		}
		return m, func() tea.Msg { return tuimsg.RuleSelectedMsg{RuleID: id} }
	}
	return m, nil
}

// View renders the rules scene
func (m *RulesModel) View() string {
	sc := m.Scenario()
	if sc == nil {
		return tuistyles.InfoStyle.Render("No simulation loaded yet.")
	}

	for i, card := range m.cards {
		card.SetSelected(i == m.selectedIndex)
	}

	header := tuistyles.HeaderStyle.Render(fmt.Sprintf("%s filing date %s", sc.FilingDateKind, dateutil.FormatDate(sc.FilingDate)))
	if len(m.result.Scenarios) > 1 {
		header += tuistyles.InfoStyle.Render("  (tab to switch)")
	}

	left := components.RuleListCompact(m.cards, m.selectedIndex)
	right := ""
	if len(m.cards) > 0 {
		right = m.cards[m.selectedIndex].WithWidth(52).Render()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(40).Render(left), "  ", right),
		"",
		tuistyles.InfoStyle.Render("↑/k up • ↓/j down • tab filing date • enter select • g top • G bottom"),
	)
}
