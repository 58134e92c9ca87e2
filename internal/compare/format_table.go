package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing draft variants
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("BENEFIT SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.DraftPath != "" {
		sb.WriteString(fmt.Sprintf("Draft: %s\n", compSet.DraftPath))
	}
	sb.WriteString("\n")

	nameWidth := 30
	numWidth := 15

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Filing Date",
		numWidth, "Best Amount",
		numWidth, "Eligible"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}

			sb.WriteString(fmt.Sprintf("  Best Amount:      %sR$ %s (%s%%)\n",
				tf.deltaSymbol(alt.AmountDiffFromBase),
				alt.AmountDiffFromBase.Abs().StringFixed(2),
				alt.AmountPctFromBase.StringFixed(1)))

			if alt.EligibleDiff != 0 {
				sb.WriteString(fmt.Sprintf("  Eligible Rules:   %+d\n", alt.EligibleDiff))
			}
			if len(alt.NewlyEligible) > 0 {
				sb.WriteString(fmt.Sprintf("  Newly Eligible:   %s\n", joinRuleIDs(alt.NewlyEligible)))
			}
		}
		sb.WriteString("\n")
	}

	if fdc := compSet.FilingDates; fdc != nil {
		sb.WriteString(tf.FormatFilingDates(fdc))
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatFilingDates renders the current vs reaffirmed rule table
func (tf *TableFormatter) FormatFilingDates(fdc *FilingDateComparison) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("\nCURRENT (%s) vs REAFFIRMED (%s)\n", fdc.CurrentFilingDate, fdc.ReaffirmedFilingDate))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-32s %-9s %-9s %12s %12s\n", "Rule", "Current", "Later", "Amount", "Change"))

	for _, rd := range fdc.Rules {
		sb.WriteString(fmt.Sprintf("%-32s %-9s %-9s %12s %12s\n",
			tf.truncate(rd.Name, 32),
			eligibleLabel(rd.CurrentEligible),
			eligibleLabel(rd.ReaffirmedEligible),
			rd.ReaffirmedAmount.StringFixed(2),
			tf.deltaSymbol(rd.AmountDiff)+rd.AmountDiff.Abs().StringFixed(2)))
	}

	sb.WriteString(fmt.Sprintf("\nBest benefit: R$ %s now, R$ %s later\n",
		fdc.CurrentBest.StringFixed(2), fdc.ReaffirmedBest.StringFixed(2)))

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	amount := "none"
	if result.BestRuleID != "" {
		amount = "R$ " + result.BestAmount.StringFixed(2)
	}

	return fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, result.FilingDate,
		numWidth, amount,
		numWidth, fmt.Sprintf("%d rule(s)", len(result.EligibleRules)))
}

// deltaSymbol returns the sign to print in front of an absolute delta
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.AmountDiffFromBase.IsPositive() {
			change = "+R$ " + alt.AmountDiffFromBase.StringFixed(2)
		} else if alt.AmountDiffFromBase.IsNegative() {
			change = "-R$ " + alt.AmountDiffFromBase.Abs().StringFixed(2)
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}

func eligibleLabel(eligible bool) string {
	if eligible {
		return "yes"
	}
	return "no"
}

func joinRuleIDs(ids []domain.RuleID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ";")
}
