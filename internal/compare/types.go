package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/rgehrsitz/prevsim/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents one simulated draft variant with its key metrics
type ComparisonResult struct {
	ScenarioName string                   `json:"scenarioName"`
	Description  string                   `json:"description"`
	Result       *domain.SimulationResult `json:"-"`

	// Key Metrics, taken from the current filing date scenario
	FilingDate              string          `json:"filingDate"`
	BestRuleID              domain.RuleID   `json:"bestRuleId,omitempty"`
	BestRuleName            string          `json:"bestRuleName,omitempty"`
	BestAmount              decimal.Decimal `json:"bestAmount"`
	EligibleRules           []domain.RuleID `json:"eligibleRules"`
	TotalContributionMonths int             `json:"totalContributionMonths"`
	AlertCount              int             `json:"alertCount"`

	// Comparison to Base
	AmountDiffFromBase decimal.Decimal `json:"amountDiffFromBase"`
	AmountPctFromBase  decimal.Decimal `json:"amountPctFromBase"`
	EligibleDiff       int             `json:"eligibleDiff"`
	NewlyEligible      []domain.RuleID `json:"newlyEligible,omitempty"`
}

// RuleDelta compares one rule between the current and the reaffirmed filing date
type RuleDelta struct {
	RuleID             domain.RuleID   `json:"ruleId"`
	Name               string          `json:"name"`
	CurrentEligible    bool            `json:"currentEligible"`
	ReaffirmedEligible bool            `json:"reaffirmedEligible"`
	CurrentAmount      decimal.Decimal `json:"currentAmount"`
	ReaffirmedAmount   decimal.Decimal `json:"reaffirmedAmount"`
	AmountDiff         decimal.Decimal `json:"amountDiff"`
}

// BecomesEligible reports whether waiting for the reaffirmed date unlocks the rule
func (rd RuleDelta) BecomesEligible() bool {
	return !rd.CurrentEligible && rd.ReaffirmedEligible
}

// FilingDateComparison lines up the two scenarios of a single simulation
type FilingDateComparison struct {
	CurrentFilingDate    string          `json:"currentFilingDate"`
	ReaffirmedFilingDate string          `json:"reaffirmedFilingDate"`
	CurrentBest          decimal.Decimal `json:"currentBest"`
	ReaffirmedBest       decimal.Decimal `json:"reaffirmedBest"`
	BestDiff             decimal.Decimal `json:"bestDiff"`
	Rules                []RuleDelta     `json:"rules"`
}

// ComparisonSet represents a collection of draft comparisons
type ComparisonSet struct {
	BaseScenarioName   string                `json:"baseScenarioName"`
	BaseResult         *ComparisonResult     `json:"baseResult"`
	AlternativeResults []ComparisonResult    `json:"alternativeResults"`
	FilingDates        *FilingDateComparison `json:"filingDates,omitempty"`
	Recommendations    []string              `json:"recommendations"`
	DraftPath          string                `json:"draftPath"`
}

// MetricsCalculator extracts key metrics from simulation results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics of a simulation result
func (mc *MetricsCalculator) CalculateMetrics(name string, result *domain.SimulationResult) ComparisonResult {
	metrics := ComparisonResult{
		ScenarioName:  name,
		Result:        result,
		BestAmount:    decimal.Zero,
		EligibleRules: []domain.RuleID{},
		AlertCount:    len(result.Alerts),
	}

	current, ok := result.Scenario(domain.FilingDateCurrent)
	if !ok {
		return metrics
	}

	metrics.FilingDate = dateutil.FormatDate(current.FilingDate)
	for _, r := range current.Rules {
		if r.Eligible {
			metrics.EligibleRules = append(metrics.EligibleRules, r.RuleID)
		}
		if r.TotalContributionMonths > metrics.TotalContributionMonths {
			metrics.TotalContributionMonths = r.TotalContributionMonths
		}
	}
	if best := current.BestEligibleOption; best != nil {
		metrics.BestRuleID = best.RuleID
		metrics.BestRuleName = best.Name
		metrics.BestAmount = best.BenefitAmountWithDiscard
	}

	return metrics
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.AmountDiffFromBase = scenario.BestAmount.Sub(base.BestAmount)

	if !base.BestAmount.IsZero() {
		scenario.AmountPctFromBase = scenario.AmountDiffFromBase.
			Div(base.BestAmount).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	scenario.EligibleDiff = len(scenario.EligibleRules) - len(base.EligibleRules)

	baseEligible := make(map[domain.RuleID]bool, len(base.EligibleRules))
	for _, id := range base.EligibleRules {
		baseEligible[id] = true
	}
	scenario.NewlyEligible = nil
	for _, id := range scenario.EligibleRules {
		if !baseEligible[id] {
			scenario.NewlyEligible = append(scenario.NewlyEligible, id)
		}
	}

	return scenario
}

// CompareFilingDates builds per-rule deltas between the current and the
// reaffirmed scenario. It returns false when the result has no reaffirmed scenario.
func (mc *MetricsCalculator) CompareFilingDates(result *domain.SimulationResult) (*FilingDateComparison, bool) {
	current, ok := result.Scenario(domain.FilingDateCurrent)
	if !ok {
		return nil, false
	}
	reaffirmed, ok := result.Scenario(domain.FilingDateReaffirmed)
	if !ok {
		return nil, false
	}

	fdc := &FilingDateComparison{
		CurrentFilingDate:    dateutil.FormatDate(current.FilingDate),
		ReaffirmedFilingDate: dateutil.FormatDate(reaffirmed.FilingDate),
		CurrentBest:          bestAmount(current),
		ReaffirmedBest:       bestAmount(reaffirmed),
		Rules:                make([]RuleDelta, 0, len(current.Rules)),
	}
	fdc.BestDiff = fdc.ReaffirmedBest.Sub(fdc.CurrentBest)

	for _, cr := range current.Rules {
		rr, ok := reaffirmed.Rule(cr.RuleID)
		if !ok {
			continue
		}
		fdc.Rules = append(fdc.Rules, RuleDelta{
			RuleID:             cr.RuleID,
			Name:               cr.Name,
			CurrentEligible:    cr.Eligible,
			ReaffirmedEligible: rr.Eligible,
			CurrentAmount:      cr.BenefitAmountWithDiscard,
			ReaffirmedAmount:   rr.BenefitAmountWithDiscard,
			AmountDiff:         rr.BenefitAmountWithDiscard.Sub(cr.BenefitAmountWithDiscard),
		})
	}

	return fdc, true
}

func bestAmount(sc *domain.ScenarioResult) decimal.Decimal {
	if sc.BestEligibleOption == nil {
		return decimal.Zero
	}
	return sc.BestEligibleOption.BenefitAmountWithDiscard
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult != nil && len(compSet.AlternativeResults) > 0 {
		bestAmount := compSet.BaseResult
		for i := range compSet.AlternativeResults {
			alt := &compSet.AlternativeResults[i]
			if alt.BestAmount.GreaterThan(bestAmount.BestAmount) {
				bestAmount = alt
			}
		}

		if bestAmount != compSet.BaseResult {
			diff := bestAmount.BestAmount.Sub(compSet.BaseResult.BestAmount)
			recommendations = append(recommendations,
				"Best Amount: "+bestAmount.ScenarioName+" provides R$ "+diff.StringFixed(2)+
					" more per month than the base draft ("+bestAmount.BestRuleName+")")
		}

		mostOptions := compSet.BaseResult
		for i := range compSet.AlternativeResults {
			alt := &compSet.AlternativeResults[i]
			if len(alt.EligibleRules) > len(mostOptions.EligibleRules) {
				mostOptions = alt
			}
		}

		if mostOptions != compSet.BaseResult {
			recommendations = append(recommendations,
				fmt.Sprintf("Most Options: %s makes %d more rule(s) eligible", mostOptions.ScenarioName,
					len(mostOptions.EligibleRules)-len(compSet.BaseResult.EligibleRules)))
		}

		for _, alt := range compSet.AlternativeResults {
			if len(alt.NewlyEligible) == 0 {
				continue
			}
			ids := make([]string, len(alt.NewlyEligible))
			for i, id := range alt.NewlyEligible {
				ids[i] = string(id)
			}
			recommendations = append(recommendations,
				"Newly Eligible: "+alt.ScenarioName+" unlocks "+strings.Join(ids, ", "))
		}
	}

	if fdc := compSet.FilingDates; fdc != nil {
		switch {
		case fdc.BestDiff.IsPositive():
			recommendations = append(recommendations,
				"Reaffirmed Filing Date: filing on "+fdc.ReaffirmedFilingDate+" raises the best benefit by R$ "+
					fdc.BestDiff.StringFixed(2))
		default:
			recommendations = append(recommendations,
				"Current Filing Date: filing on "+fdc.CurrentFilingDate+" is at least as good as waiting until "+
					fdc.ReaffirmedFilingDate)
		}

		unlocked := []string{}
		for _, rd := range fdc.Rules {
			if rd.BecomesEligible() {
				unlocked = append(unlocked, rd.Name)
			}
		}
		if len(unlocked) > 0 {
			recommendations = append(recommendations,
				"Waiting unlocks: "+strings.Join(unlocked, ", "))
		}
	}

	return recommendations
}
