package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RuleEvaluationResult is the outcome of one rule for one filing date
type RuleEvaluationResult struct {
	RuleID                      RuleID                `yaml:"rule_id" json:"ruleId"`
	Name                        string                `yaml:"name" json:"name"`
	Eligible                    bool                  `yaml:"eligible" json:"eligible"`
	IneligibilityReasons        []string              `yaml:"ineligibility_reasons" json:"ineligibilityReasons"`
	TotalContributionMonths     int                   `yaml:"total_contribution_months" json:"totalContributionMonths"`
	QualifyingMonths            int                   `yaml:"qualifying_months" json:"qualifyingMonths"`
	RequiredQualifyingMonths    int                   `yaml:"required_qualifying_months" json:"requiredQualifyingMonths"`
	BenefitAmountWithoutDiscard decimal.Decimal       `yaml:"benefit_amount_without_discard" json:"benefitAmountWithoutDiscard"`
	BenefitAmountWithDiscard    decimal.Decimal       `yaml:"benefit_amount_with_discard" json:"benefitAmountWithDiscard"`
	DiscardedCompetencies       []DiscardedCompetency `yaml:"discarded_competencies" json:"discardedCompetencies"`
	EstimatedGainPercent        decimal.Decimal       `yaml:"estimated_gain_percent" json:"estimatedGainPercent"`
}

// FilingDateKind tells the current filing date apart from a reaffirmed one
type FilingDateKind string

const (
	FilingDateCurrent    FilingDateKind = "current"
	FilingDateReaffirmed FilingDateKind = "reaffirmed"
)

// ScenarioResult holds every rule result for one filing date
type ScenarioResult struct {
	FilingDateKind     FilingDateKind         `yaml:"filing_date_kind" json:"filingDateKind"`
	FilingDate         time.Time              `yaml:"filing_date" json:"filingDate"`
	Rules              []RuleEvaluationResult `yaml:"rules" json:"rules"`
	BestEligibleOption *RuleEvaluationResult  `yaml:"best_eligible_option,omitempty" json:"bestEligibleOption,omitempty"`
}

// Rule returns the result for the given rule id
func (sr *ScenarioResult) Rule(id RuleID) (RuleEvaluationResult, bool) {
	for _, r := range sr.Rules {
		if r.RuleID == id {
			return r, true
		}
	}
	return RuleEvaluationResult{}, false
}

// SimulationResult is the final report handed to presentation and export layers
type SimulationResult struct {
	SimulationID       string           `yaml:"simulation_id" json:"simulationId"`
	MethodologySummary string           `yaml:"methodology_summary" json:"methodologySummary"`
	Alerts             []string         `yaml:"alerts" json:"alerts"`
	Scenarios          []ScenarioResult `yaml:"scenarios" json:"scenarios"`
	GeneratedAt        time.Time        `yaml:"generated_at" json:"generatedAt"`
}

// Scenario returns the scenario of the given kind
func (r *SimulationResult) Scenario(kind FilingDateKind) (*ScenarioResult, bool) {
	for i := range r.Scenarios {
		if r.Scenarios[i].FilingDateKind == kind {
			return &r.Scenarios[i], true
		}
	}
	return nil, false
}
