package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/rgehrsitz/prevsim/internal/tui/tuistyles"
)

// RuleCard displays the evaluation of one rule
type RuleCard struct {
	Result     domain.RuleEvaluationResult
	IsBest     bool
	IsSelected bool
	Width      int
}

// NewRuleCard creates a card for a rule result
func NewRuleCard(result domain.RuleEvaluationResult) *RuleCard {
	return &RuleCard{Result: result, Width: 50}
}

// SetSelected marks the card as selected
func (r *RuleCard) SetSelected(selected bool) *RuleCard {
	r.IsSelected = selected
	return r
}

// WithWidth sets the card width
func (r *RuleCard) WithWidth(width int) *RuleCard {
	r.Width = width
	return r
}

// Render returns the detailed card
func (r *RuleCard) Render() string {
	res := r.Result
	var content strings.Builder

	content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(res.Name))
	if r.IsBest {
		content.WriteString(" " + tuistyles.EligibleStyle.Render("★ best"))
	}
	content.WriteString("\n")
	content.WriteString(tuistyles.EligibilityBadge(res.Eligible))
	content.WriteString("\n\n")

	fmt.Fprintf(&content, "Contribution:   %d months (%d y %d m)\n",
		res.TotalContributionMonths, res.TotalContributionMonths/12, res.TotalContributionMonths%12)
	fmt.Fprintf(&content, "Qualifying:     %d / %d months\n", res.QualifyingMonths, res.RequiredQualifyingMonths)
	fmt.Fprintf(&content, "No discard:     R$ %s\n", res.BenefitAmountWithoutDiscard.StringFixed(2))
	fmt.Fprintf(&content, "With discard:   R$ %s\n", res.BenefitAmountWithDiscard.StringFixed(2))
	if n := len(res.DiscardedCompetencies); n > 0 {
		fmt.Fprintf(&content, "Discarded:      %d competencies (+%s%%)\n", n, res.EstimatedGainPercent.StringFixed(2))
	}

	if len(res.IneligibilityReasons) > 0 {
		content.WriteString("\n")
		for _, reason := range res.IneligibilityReasons {
			content.WriteString(tuistyles.WarningStyle.Render("• " + reason))
			content.WriteString("\n")
		}
	}

	border := tuistyles.ColorBorder
	if r.IsSelected {
		border = tuistyles.ColorPrimary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(r.Width).
		Render(strings.TrimRight(content.String(), "\n"))
}

// RenderCompact returns a single-line version
func (r *RuleCard) RenderCompact() string {
	mark := tuistyles.IneligibleStyle.Render("✗")
	if r.Result.Eligible {
		mark = tuistyles.EligibleStyle.Render("✓")
	}
	line := fmt.Sprintf("%s %s", mark, r.Result.Name)
	if r.Result.Eligible {
		line += tuistyles.InfoStyle.Render(" R$ " + r.Result.BenefitAmountWithDiscard.StringFixed(2))
	}
	return line
}

// RuleListCompact renders a selectable list of rule cards
func RuleListCompact(cards []*RuleCard, selectedIndex int) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No rules evaluated")
	}

	rendered := make([]string, len(cards))
	for i, card := range cards {
		prefix := "  "
		style := tuistyles.UnselectedItemStyle
		if i == selectedIndex {
			prefix = "▸ "
			style = tuistyles.SelectedItemStyle
		}
		rendered[i] = style.Render(prefix + card.RenderCompact())
	}
	return strings.Join(rendered, "\n")
}
