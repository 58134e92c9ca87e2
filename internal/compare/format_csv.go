package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Filing Date",
		"Best Rule",
		"Best Amount",
		"Eligible Rules",
		"Contribution Months",
		"Amount Diff from Base",
		"Amount % Change",
		"Eligible Diff",
		"Newly Eligible",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.FilingDate,
		string(result.BestRuleID),
		result.BestAmount.StringFixed(2),
		formatInt(len(result.EligibleRules)),
		formatInt(result.TotalContributionMonths),
		result.AmountDiffFromBase.StringFixed(2),
		result.AmountPctFromBase.StringFixed(2),
		formatInt(result.EligibleDiff),
		joinRuleIDs(result.NewlyEligible),
	}
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
