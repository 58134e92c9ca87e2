package breakeven

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/prevsim/pkg/dateutil"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a single search result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("FILING DATE SEARCH RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Goal:                %s\n", result.Goal))
	if result.Request.Constraints.RuleID != "" {
		sb.WriteString(fmt.Sprintf("Rule:                %s\n", result.Request.Constraints.RuleID))
	}
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("FILING DATE\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Filing Date:         %s\n", dateutil.FormatDate(result.FilingDate)))
	sb.WriteString(fmt.Sprintf("Postponed By:        %d months\n", result.PostponeMonths))
	sb.WriteString("\n")

	if result.Option != nil {
		sb.WriteString("OPTION AT THAT DATE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("Rule:                %s\n", result.Option.Name))
		sb.WriteString(fmt.Sprintf("Monthly Benefit:     R$ %s\n", tf.formatCurrency(result.Option.BenefitAmountWithDiscard)))
		sb.WriteString(fmt.Sprintf("Without Discard:     R$ %s\n", tf.formatCurrency(result.Option.BenefitAmountWithoutDiscard)))
		sb.WriteString("\n")
	}

	sb.WriteString("COMPARISON TO CURRENT FILING DATE\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Benefit Now:         R$ %s\n", tf.formatCurrency(result.BaseAmount)))
	sb.WriteString(fmt.Sprintf("Change:              %sR$ %s\n",
		tf.deltaSymbol(result.AmountDiffFromBase), tf.formatCurrency(result.AmountDiffFromBase.Abs())))

	return sb.String()
}

// FormatTimeline formats the per-rule eligibility timeline
func (tf *TableFormatter) FormatTimeline(t *TimelineResult) string {
	var sb strings.Builder

	sb.WriteString("ELIGIBILITY TIMELINE\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Current filing date: %s, searched %d to %d months later\n\n",
		dateutil.FormatDate(t.BaseFilingDate), t.Constraints.MinMonths, t.Constraints.MaxMonths))

	sb.WriteString(fmt.Sprintf("%-36s %10s %12s %15s\n", "Rule", "Months", "Filing Date", "Benefit"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, p := range t.Points {
		if !p.Reached {
			sb.WriteString(fmt.Sprintf("%-36s %10s %12s %15s\n", tf.truncate(p.Name, 36), "-", "not reached", "-"))
			continue
		}
		sb.WriteString(fmt.Sprintf("%-36s %10d %12s %15s\n",
			tf.truncate(p.Name, 36), p.PostponeMonths, dateutil.FormatDate(p.FilingDate),
			"R$ "+tf.formatCurrency(p.Amount)))
	}
	sb.WriteString("\n")

	if len(t.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range t.Recommendations {
			sb.WriteString("• " + rec + "\n")
		}
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for a single search result
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatTimeline generates JSON output for a timeline
func (jf *JSONFormatter) FormatTimeline(t *TimelineResult) (string, error) {
	return jf.marshal(t)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Found"
	}
	return "⚠ Not found"
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
