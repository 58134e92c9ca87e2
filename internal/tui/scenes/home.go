package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/rgehrsitz/prevsim/internal/tui/components"
	"github.com/rgehrsitz/prevsim/internal/tui/tuistyles"
	"github.com/rgehrsitz/prevsim/pkg/dateutil"
)

// HomeModel shows the headline numbers, alerts and methodology
type HomeModel struct {
	result *domain.SimulationResult
	width  int
	height int
}

// NewHomeModel creates a new home scene model
func NewHomeModel() *HomeModel {
	return &HomeModel{width: 80}
}

// SetResult updates the result to display
func (m *HomeModel) SetResult(result *domain.SimulationResult) {
	m.result = result
}

// SetSize updates the scene dimensions
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the home scene. It is read-only.
func (m *HomeModel) Update(msg tea.Msg) (*HomeModel, tea.Cmd) {
	return m, nil
}

// View renders the home scene
func (m *HomeModel) View() string {
	if m.result == nil {
		return tuistyles.InfoStyle.Render("No simulation loaded yet.")
	}

	cards := []*components.MetricCard{}
	for _, sc := range m.result.Scenarios {
		label := fmt.Sprintf("%s filing %s", sc.FilingDateKind, dateutil.FormatDate(sc.FilingDate))
		eligible := 0
		for _, r := range sc.Rules {
			if r.Eligible {
				eligible++
			}
		}
		card := components.NewMetricCard(label, "no eligible rule")
		if best := sc.BestEligibleOption; best != nil {
			card = components.NewMetricCard(label, "R$ "+best.BenefitAmountWithDiscard.StringFixed(2)).
				WithDescription(best.Name)
		}
		card.WithDescription(strings.TrimSpace(card.Description + fmt.Sprintf(" (%d/%d eligible)", eligible, len(sc.Rules))))
		cards = append(cards, card.WithWidth(36))
	}
	cards = append(cards, components.NewMetricCard("Alerts", fmt.Sprintf("%d", len(m.result.Alerts))).WithWidth(16))

	sections := []string{components.MetricGrid(cards, 3), ""}

	if len(m.result.Alerts) > 0 {
		sections = append(sections, tuistyles.HeaderStyle.Render("Alerts"))
		for _, a := range m.result.Alerts {
			sections = append(sections, tuistyles.WarningStyle.Render("! "+a))
		}
		sections = append(sections, "")
	}

	width := m.width - 4
	if width < 40 {
		width = 40
	}
	sections = append(sections,
		tuistyles.HeaderStyle.Render("Methodology"),
		lipgloss.NewStyle().Width(width).Render(m.result.MethodologySummary),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
