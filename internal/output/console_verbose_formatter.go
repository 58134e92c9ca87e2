package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/rgehrsitz/prevsim/pkg/dateutil"
)

// maxListedDiscards caps the discarded competencies printed per rule
const maxListedDiscards = 12

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// ConsoleVerboseFormatter renders the detailed console report.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf, titleStyle.Render("BENEFIT SIMULATION REPORT"))
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintf(&buf, "Simulation ID: %s\n", result.SimulationID)
	if !result.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "Generated at:  %s\n", result.GeneratedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, sectionStyle.Render("METHODOLOGY"))
	fmt.Fprintln(&buf, result.MethodologySummary)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, sectionStyle.Render("ALERTS"))
	if len(result.Alerts) == 0 {
		fmt.Fprintln(&buf, "No alerts.")
	}
	for _, a := range result.Alerts {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for _, sc := range result.Scenarios {
		writeScenario(&buf, sc)
	}

	fmt.Fprintln(&buf, sectionStyle.Render("KEY ASSUMPTIONS"))
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}

	return buf.Bytes(), nil
}

func writeScenario(w io.Writer, sc domain.ScenarioResult) {
	fmt.Fprintf(w, "%s (%s)\n", titleStyle.Render(scenarioLabel(sc.FilingDateKind)), dateutil.FormatDate(sc.FilingDate))
	fmt.Fprintln(w, strings.Repeat("-", 80))

	if best := sc.BestEligibleOption; best != nil {
		fmt.Fprintf(w, "Best option: %s, %s per month\n", best.Name, FormatCurrency(best.BenefitAmountWithDiscard))
	} else {
		fmt.Fprintln(w, "Best option: none, no rule is met yet")
	}
	fmt.Fprintf(w, "Eligible rules: %d of %d\n\n", eligibleCount(sc), len(sc.Rules))

	for _, r := range sc.Rules {
		writeRule(w, r)
	}
	fmt.Fprintln(w)
}

func writeRule(w io.Writer, r domain.RuleEvaluationResult) {
	status := failStyle.Render("[NOT ELIGIBLE]")
	if r.Eligible {
		status = okStyle.Render("[ELIGIBLE]")
	}
	fmt.Fprintf(w, "%s %s (%s)\n", status, r.Name, r.RuleID)
	fmt.Fprintf(w, "  Contribution:   %d months (%d years %d months)\n",
		r.TotalContributionMonths, r.TotalContributionMonths/12, r.TotalContributionMonths%12)
	fmt.Fprintf(w, "  Qualifying:     %d / %d months\n", r.QualifyingMonths, r.RequiredQualifyingMonths)
	fmt.Fprintf(w, "  Benefit:        %s without discard, %s with discard (gain %s)\n",
		FormatCurrency(r.BenefitAmountWithoutDiscard),
		FormatCurrency(r.BenefitAmountWithDiscard),
		FormatPercentage(r.EstimatedGainPercent))

	if n := len(r.DiscardedCompetencies); n > 0 {
		listed := r.DiscardedCompetencies
		if n > maxListedDiscards {
			listed = listed[:maxListedDiscards]
		}
		parts := make([]string, len(listed))
		for i, d := range listed {
			parts[i] = fmt.Sprintf("%s (%s)", d.Competency, FormatCurrency(d.Amount))
		}
		line := strings.Join(parts, ", ")
		if n > maxListedDiscards {
			line += fmt.Sprintf(" and %d more", n-maxListedDiscards)
		}
		fmt.Fprintf(w, "  Discarded:      %s\n", line)
	}

	if len(r.IneligibilityReasons) > 0 {
		fmt.Fprintln(w, "  Reasons:")
		for _, reason := range r.IneligibilityReasons {
			fmt.Fprintf(w, "    - %s\n", reason)
		}
	}
}
