package calculation

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/rgehrsitz/prevsim/pkg/dateutil"
)

const (
	// maxListedDuplicates caps how many duplicated competencies an alert names
	maxListedDuplicates = 5
	// gapThresholdMonths is the calendar month distance above which a gap is reported
	gapThresholdMonths = 2
)

// Alert texts that do not carry data
const (
	AlertNoWages        = "No wage records were imported; benefit amounts cannot be estimated."
	AlertNoPeriods      = "No contribution periods were registered."
	AlertSimplifiedMode = "Simplified mode is on: import your full contribution history for a more accurate estimate."
)

// BuildAlerts collects the cross-cutting advisories of a draft. Each alert is
// triggered independently of the others.
func BuildAlerts(draft *domain.SimulationDraft, normalizedPeriods []domain.ContributionPeriod) []string {
	alerts := []string{}

	if len(draft.Wages) == 0 {
		alerts = append(alerts, AlertNoWages)
	}
	if len(draft.Periods) == 0 {
		alerts = append(alerts, AlertNoPeriods)
	}
	if draft.Claimant.SimplifiedMode {
		alerts = append(alerts, AlertSimplifiedMode)
	}
	if alert, ok := duplicateCompetencyAlert(draft.Wages); ok {
		alerts = append(alerts, alert)
	}
	if alert, ok := gapAlert(normalizedPeriods); ok {
		alerts = append(alerts, alert)
	}
	if alert, ok := ignoredWagesAlert(draft.Wages); ok {
		alerts = append(alerts, alert)
	}
	if alert, ok := inconsistentWagesAlert(draft.Wages); ok {
		alerts = append(alerts, alert)
	}

	return alerts
}

// DuplicateCompetencies returns competencies present more than once, in first-seen order
func DuplicateCompetencies(wages []domain.WageRecord) []string {
	counts := make(map[string]int, len(wages))
	order := []string{}
	for _, w := range wages {
		if counts[w.Competency] == 0 {
			order = append(order, w.Competency)
		}
		counts[w.Competency]++
	}

	duplicates := []string{}
	for _, c := range order {
		if counts[c] > 1 {
			duplicates = append(duplicates, c)
		}
	}
	return duplicates
}

func duplicateCompetencyAlert(wages []domain.WageRecord) (string, bool) {
	duplicates := DuplicateCompetencies(wages)
	if len(duplicates) == 0 {
		return "", false
	}

	listed := duplicates
	if len(listed) > maxListedDuplicates {
		listed = listed[:maxListedDuplicates]
	}
	alert := "Duplicated competencies in wage records: " + strings.Join(listed, ", ")
	if rest := len(duplicates) - len(listed); rest > 0 {
		alert += fmt.Sprintf(" and %d more", rest)
	}
	return alert + ".", true
}

// Gap is a stretch without contribution between two normalized periods
type Gap struct {
	From domain.ContributionPeriod
	To   domain.ContributionPeriod
}

// FindGaps returns gaps of more than two calendar months between consecutive normalized periods
func FindGaps(normalizedPeriods []domain.ContributionPeriod) []Gap {
	gaps := []Gap{}
	for i := 1; i < len(normalizedPeriods); i++ {
		prev, next := normalizedPeriods[i-1], normalizedPeriods[i]
		if dateutil.CalendarMonthDiff(prev.End, next.Start) > gapThresholdMonths {
			gaps = append(gaps, Gap{From: prev, To: next})
		}
	}
	return gaps
}

func gapAlert(normalizedPeriods []domain.ContributionPeriod) (string, bool) {
	gaps := FindGaps(normalizedPeriods)
	if len(gaps) == 0 {
		return "", false
	}

	ranges := make([]string, len(gaps))
	for i, g := range gaps {
		ranges[i] = fmt.Sprintf("%s to %s", dateutil.FormatDate(g.From.End), dateutil.FormatDate(g.To.Start))
	}
	return "Contribution gaps detected between " + strings.Join(ranges, "; ") + ".", true
}

func ignoredWagesAlert(wages []domain.WageRecord) (string, bool) {
	ignored := len(wages) - len(FilterPositiveWages(wages))
	if ignored == 0 {
		return "", false
	}
	return fmt.Sprintf("%d wage record(s) with zero or negative amount were ignored.", ignored), true
}

func inconsistentWagesAlert(wages []domain.WageRecord) (string, bool) {
	flagged := 0
	for _, w := range wages {
		if w.IsFlaggedInconsistent {
			flagged++
		}
	}
	if flagged == 0 {
		return "", false
	}
	return fmt.Sprintf("%d wage record(s) are flagged as inconsistent and should be reviewed.", flagged), true
}
