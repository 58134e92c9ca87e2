package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/prevsim/internal/compare"
	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/rgehrsitz/prevsim/internal/tui/components"
	"github.com/rgehrsitz/prevsim/internal/tui/tuimsg"
	"github.com/rgehrsitz/prevsim/internal/tui/tuistyles"
)

var (
	keyLater   = key.NewBinding(key.WithKeys("+", "="))
	keyEarlier = key.NewBinding(key.WithKeys("-"))
)

// CompareModel contrasts the current and reaffirmed filing dates
type CompareModel struct {
	comparison     *compare.FilingDateComparison
	reaffirmMonths int
	width          int
	height         int
}

// NewCompareModel creates a new compare scene model
func NewCompareModel() *CompareModel {
	return &CompareModel{}
}

// SetResult recomputes the filing date comparison
func (m *CompareModel) SetResult(result *domain.SimulationResult, reaffirmMonths int) {
	m.reaffirmMonths = reaffirmMonths
	m.comparison = nil
	if result == nil {
		return
	}
	if fdc, ok := compare.NewMetricsCalculator().CompareFilingDates(result); ok {
		m.comparison = fdc
	}
}

// SetSize updates the scene dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Comparison returns the current comparison, nil without a reaffirmed date
func (m *CompareModel) Comparison() *compare.FilingDateComparison {
	return m.comparison
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keyLater):
		return m, shift(1)
	case key.Matches(keyMsg, keyEarlier):
		if m.reaffirmMonths > 0 {
			return m, shift(-1)
		}
	}
	return m, nil
}

func shift(delta int) tea.Cmd {
	return func() tea.Msg { return tuimsg.ReaffirmShiftMsg{Delta: delta} }
}

// View renders the compare scene
func (m *CompareModel) View() string {
	help := tuistyles.InfoStyle.Render("+ wait one more month • - one month less")

	fdc := m.comparison
	if fdc == nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			tuistyles.InfoStyle.Render("The draft has no reaffirmed filing date."),
			tuistyles.InfoStyle.Render("Press + to simulate waiting before filing."),
			"",
			help,
		)
	}

	waiting := fmt.Sprintf("reaffirmed %s", fdc.ReaffirmedFilingDate)
	if m.reaffirmMonths > 0 {
		waiting = fmt.Sprintf("%s (+%d months)", waiting, m.reaffirmMonths)
	}
	bestCard := components.NewMetricCard("Best benefit if waiting", "R$ "+fdc.ReaffirmedBest.StringFixed(2)).
		WithDescription(waiting).
		WithWidth(36)
	if !fdc.BestDiff.IsZero() {
		bestCard.WithTrend(fdc.BestDiff.IsPositive(), "R$ "+fdc.BestDiff.Abs().StringFixed(2))
	}
	cards := components.MetricGrid([]*components.MetricCard{
		components.NewMetricCard("Best benefit now", "R$ "+fdc.CurrentBest.StringFixed(2)).
			WithDescription("current "+fdc.CurrentFilingDate).
			WithWidth(36),
		bestCard,
	}, 2)

	var table strings.Builder
	table.WriteString(tuistyles.HeaderStyle.Render(fmt.Sprintf("%-34s %-6s %-6s %12s", "Rule", "Now", "Later", "Change")))
	table.WriteString("\n")
	for _, rd := range fdc.Rules {
		line := fmt.Sprintf("%-34s %-6s %-6s %12s", truncate(rd.Name, 34), yesNo(rd.CurrentEligible), yesNo(rd.ReaffirmedEligible), signed(rd))
		if rd.BecomesEligible() {
			line = tuistyles.EligibleStyle.Render(line)
		}
		table.WriteString(line + "\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left, cards, "", strings.TrimRight(table.String(), "\n"), "", help)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func signed(rd compare.RuleDelta) string {
	switch {
	case rd.AmountDiff.IsPositive():
		return "+" + rd.AmountDiff.StringFixed(2)
	case rd.AmountDiff.IsNegative():
		return rd.AmountDiff.StringFixed(2)
	}
	return "0.00"
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
