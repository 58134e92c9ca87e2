package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/shopspring/decimal"
)

// EvaluateRule checks one rule against the claimant data at the given filing date.
//
// Every failing requirement is reported; evaluation never stops at the first
// one. Benefit amounts and the discard optimization are computed even when the
// rule is not met so near misses still carry numbers.
func EvaluateRule(
	rule domain.Rule,
	claimant domain.BasicClaimantData,
	normalizedPeriods []domain.ContributionPeriod,
	wages []domain.WageRecord,
	filingDate time.Time,
) domain.RuleEvaluationResult {
	totalMonths := TotalMonths(normalizedPeriods)
	qualifyingMonths := QualifyingMonths(normalizedPeriods)
	age := AgeAtDate(claimant.BirthDate, filingDate)

	reasons := ineligibilityReasons(rule, claimant.Sex, normalizedPeriods, totalMonths, qualifyingMonths, age)

	discard := ApplyDiscardOptimization(wages, totalMonths, rule)
	coefficient := BenefitCoefficient(rule, claimant.Sex, totalMonths)
	withoutDiscard := AverageWage(wages).Mul(coefficient).Round(2)
	withDiscard := AverageWage(discard.Considered).Mul(coefficient).Round(2)

	return domain.RuleEvaluationResult{
		RuleID:                      rule.ID,
		Name:                        rule.Name,
		Eligible:                    len(reasons) == 0,
		IneligibilityReasons:        reasons,
		TotalContributionMonths:     totalMonths,
		QualifyingMonths:            qualifyingMonths,
		RequiredQualifyingMonths:    rule.MinQualifyingMonths,
		BenefitAmountWithoutDiscard: withoutDiscard,
		BenefitAmountWithDiscard:    withDiscard,
		DiscardedCompetencies:       discard.DiscardedCompetencies(),
		EstimatedGainPercent:        percentChange(withoutDiscard, withDiscard),
	}
}

func ineligibilityReasons(
	rule domain.Rule,
	sex domain.Sex,
	periods []domain.ContributionPeriod,
	totalMonths, qualifyingMonths, age int,
) []string {
	reasons := []string{}

	if totalMonths < rule.MinContributionMonths {
		missing := rule.MinContributionMonths - totalMonths
		years := (missing + 11) / 12
		reasons = append(reasons, fmt.Sprintf("%d more year(s) of contribution needed", years))
	}

	if qualifyingMonths < rule.MinQualifyingMonths {
		reasons = append(reasons, fmt.Sprintf("insufficient qualifying period (%d / %d months)",
			qualifyingMonths, rule.MinQualifyingMonths))
	}

	if rule.MinAge != nil {
		minAge := rule.MinAge.For(sex)
		if age < minAge {
			reasons = append(reasons, fmt.Sprintf("minimum age not reached (%d / %d)", age, minAge))
		}
	}

	if rule.RequiredPoints != nil {
		required := rule.RequiredPoints.For(sex)
		points := PointsScore(totalMonths, age)
		if points < required {
			reasons = append(reasons, fmt.Sprintf("score %d/%d", points, required))
		}
	}

	// Stands in for the contribution time held at the reform cutoff date.
	if rule.TollProxyMonths > 0 && totalMonths < rule.TollProxyMonths {
		reasons = append(reasons, fmt.Sprintf(
			"approximate check: %d months of contribution required before the reform cutoff (%d found)",
			rule.TollProxyMonths, totalMonths))
	}

	if rule.RequiresSpecialTime && SpecialMonths(periods) < rule.MinContributionMonths {
		reasons = append(reasons, fmt.Sprintf("insufficient special-activity time (%d / %d months)",
			SpecialMonths(periods), rule.MinContributionMonths))
	}

	return reasons
}

// BenefitCoefficient returns the multiplier applied to the wage average.
// Full coefficients are 1; progressive ones grow per contribution year above the base years and cap at 1.
func BenefitCoefficient(rule domain.Rule, sex domain.Sex, totalMonths int) decimal.Decimal {
	if rule.Coefficient.Kind != domain.CoefficientProgressive {
		return decimal.NewFromInt(1)
	}

	baseYears := rule.Coefficient.BaseYearsMale
	if sex.IsFemale() {
		baseYears = rule.Coefficient.BaseYearsFemale
	}

	extraYears := totalMonths/12 - baseYears
	if extraYears < 0 {
		extraYears = 0
	}

	coefficient := rule.Coefficient.Base.Add(rule.Coefficient.StepPerYear.Mul(decimal.NewFromInt(int64(extraYears))))
	one := decimal.NewFromInt(1)
	if coefficient.GreaterThan(one) {
		return one
	}
	return coefficient
}
