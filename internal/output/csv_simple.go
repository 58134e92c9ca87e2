package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/rgehrsitz/prevsim/pkg/dateutil"
)

// CSVRuleFormatter writes one row per filing date and rule.
type CSVRuleFormatter struct{}

func (c CSVRuleFormatter) Name() string { return "csv" }

func (c CSVRuleFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Scenario", "Filing Date", "Rule ID", "Rule", "Eligible", "Best",
		"Contribution Months", "Qualifying Months", "Required Qualifying Months",
		"Amount Without Discard", "Amount With Discard", "Discarded Competencies", "Gain %",
		"Reasons",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, sc := range result.Scenarios {
		for _, r := range sc.Rules {
			best := sc.BestEligibleOption != nil && sc.BestEligibleOption.RuleID == r.RuleID
			row := []string{
				string(sc.FilingDateKind),
				dateutil.FormatDate(sc.FilingDate),
				string(r.RuleID),
				r.Name,
				strconv.FormatBool(r.Eligible),
				strconv.FormatBool(best),
				strconv.Itoa(r.TotalContributionMonths),
				strconv.Itoa(r.QualifyingMonths),
				strconv.Itoa(r.RequiredQualifyingMonths),
				r.BenefitAmountWithoutDiscard.StringFixed(2),
				r.BenefitAmountWithDiscard.StringFixed(2),
				strconv.Itoa(len(r.DiscardedCompetencies)),
				r.EstimatedGainPercent.StringFixed(2),
				strings.Join(r.IneligibilityReasons, "; "),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
