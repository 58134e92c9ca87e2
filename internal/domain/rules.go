package domain

import (
	"github.com/shopspring/decimal"
)

// RuleID identifies a benefit rule of the catalog
type RuleID string

const (
	RuleAgeBased           RuleID = "age-based"
	RuleStandardPostReform RuleID = "standard-post-reform"
	RulePointsTransition   RuleID = "points-transition"
	RuleToll50Transition   RuleID = "toll-50-transition"
	RuleSpecialActivity    RuleID = "special-activity"
	RuleDisability         RuleID = "disability"
)

// SexThreshold is a value that differs for female claimants and everyone else
type SexThreshold struct {
	Female int `yaml:"female" json:"female"`
	Male   int `yaml:"male" json:"male"`
}

// For returns the threshold that applies to the given sex. Only female
// claimants get the female value.
func (st SexThreshold) For(sex Sex) int {
	if sex.IsFemale() {
		return st.Female
	}
	return st.Male
}

// CoefficientKind selects how the benefit coefficient is derived
type CoefficientKind string

const (
	CoefficientFull        CoefficientKind = "full"
	CoefficientProgressive CoefficientKind = "progressive"
)

// CoefficientRule describes the multiplier applied to the wage average.
// A progressive coefficient is min(1, Base + max(0, years - baseYears) * StepPerYear).
type CoefficientRule struct {
	Kind            CoefficientKind `yaml:"kind" json:"kind"`
	Base            decimal.Decimal `yaml:"base,omitempty" json:"base,omitempty"`
	StepPerYear     decimal.Decimal `yaml:"step_per_year,omitempty" json:"stepPerYear,omitempty"`
	BaseYearsFemale int             `yaml:"base_years_female,omitempty" json:"baseYearsFemale,omitempty"`
	BaseYearsMale   int             `yaml:"base_years_male,omitempty" json:"baseYearsMale,omitempty"`
}

// Rule is the static configuration of one benefit rule. Every rule is
// evaluated by the same function; behaviour differences live in these fields.
type Rule struct {
	ID                    RuleID          `yaml:"id" json:"id"`
	Name                  string          `yaml:"name" json:"name"`
	Description           string          `yaml:"description" json:"description"`
	MinContributionMonths int             `yaml:"min_contribution_months" json:"minContributionMonths"`
	MinQualifyingMonths   int             `yaml:"min_qualifying_months" json:"minQualifyingMonths"`
	MinAge                *SexThreshold   `yaml:"min_age,omitempty" json:"minAge,omitempty"`
	RequiredPoints        *SexThreshold   `yaml:"required_points,omitempty" json:"requiredPoints,omitempty"`
	TollProxyMonths       int             `yaml:"toll_proxy_months,omitempty" json:"tollProxyMonths,omitempty"`
	RequiresSpecialTime   bool            `yaml:"requires_special_time,omitempty" json:"requiresSpecialTime,omitempty"`
	AllowsDiscard         bool            `yaml:"allows_discard" json:"allowsDiscard"`
	Coefficient           CoefficientRule `yaml:"coefficient" json:"coefficient"`
}

// RuleCatalog is an ordered list of rules. Order matters: it is the report
// order and the tie-break when picking the best option.
type RuleCatalog []Rule

// Get returns the rule with the given id
func (rc RuleCatalog) Get(id RuleID) (Rule, bool) {
	for _, r := range rc {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// IDs returns the rule ids in catalog order
func (rc RuleCatalog) IDs() []RuleID {
	ids := make([]RuleID, len(rc))
	for i, r := range rc {
		ids[i] = r.ID
	}
	return ids
}

// DefaultRuleCatalog returns the built-in reference catalog
func DefaultRuleCatalog() RuleCatalog {
	full := CoefficientRule{Kind: CoefficientFull}
	minAge := &SexThreshold{Female: 62, Male: 65}

	return RuleCatalog{
		{
			ID:                    RuleAgeBased,
			Name:                  "Age-based retirement",
			Description:           "15 years of contribution and qualifying period with the minimum age (62 women, 65 men).",
			MinContributionMonths: 180,
			MinQualifyingMonths:   180,
			MinAge:                minAge,
			AllowsDiscard:         true,
			Coefficient:           full,
		},
		{
			ID:                    RuleStandardPostReform,
			Name:                  "Standard post-reform retirement",
			Description:           "20 years of contribution with the minimum age; benefit starts at 60% of the average plus 2% per year above the base years.",
			MinContributionMonths: 240,
			MinQualifyingMonths:   240,
			MinAge:                minAge,
			AllowsDiscard:         true,
			Coefficient: CoefficientRule{
				Kind:            CoefficientProgressive,
				Base:            decimal.NewFromFloat(0.6),
				StepPerYear:     decimal.NewFromFloat(0.02),
				BaseYearsFemale: 15,
				BaseYearsMale:   20,
			},
		},
		{
			ID:                    RulePointsTransition,
			Name:                  "Points transition rule",
			Description:           "Age plus contribution years must reach the points threshold (91 women, 101 men).",
			MinContributionMonths: 360,
			MinQualifyingMonths:   180,
			RequiredPoints:        &SexThreshold{Female: 91, Male: 101},
			AllowsDiscard:         true,
			Coefficient:           full,
		},
		{
			ID:                    RuleToll50Transition,
			Name:                  "Toll 50% transition rule",
			Description:           "Transition rule with a 50% toll over the time missing at the reform date (approximated).",
			MinContributionMonths: 420,
			MinQualifyingMonths:   180,
			TollProxyMonths:       360,
			AllowsDiscard:         false,
			Coefficient:           full,
		},
		{
			ID:                    RuleSpecialActivity,
			Name:                  "Special activity retirement",
			Description:           "Retirement for activities harmful to health, counting only special-activity time.",
			MinContributionMonths: 300,
			MinQualifyingMonths:   180,
			RequiresSpecialTime:   true,
			AllowsDiscard:         false,
			Coefficient:           full,
		},
		{
			ID:                    RuleDisability,
			Name:                  "Retirement of persons with disability",
			Description:           "Contribution-time retirement for insured persons with disability.",
			MinContributionMonths: 300,
			MinQualifyingMonths:   180,
			AllowsDiscard:         true,
			Coefficient:           full,
		},
	}
}
