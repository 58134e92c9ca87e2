package breakeven

import (
	"time"

	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/shopspring/decimal"
)

// MaxSearchMonths bounds how far the filing date may be postponed
const MaxSearchMonths = 240

// OptimizationGoal defines what outcome to search for
type OptimizationGoal string

const (
	GoalEarliestEligible OptimizationGoal = "earliest_eligible" // First filing date with an eligible option
	GoalMaximizeBenefit  OptimizationGoal = "maximize_benefit"  // Highest monthly amount within the range
)

// ParseGoal maps a CLI/API goal name to a goal
func ParseGoal(name string) (OptimizationGoal, bool) {
	switch OptimizationGoal(name) {
	case GoalEarliestEligible, GoalMaximizeBenefit:
		return OptimizationGoal(name), true
	}
	return "", false
}

// Constraints bound the search over postponed filing dates
type Constraints struct {
	MinMonths int           `json:"minMonths"`
	MaxMonths int           `json:"maxMonths"`
	RuleID    domain.RuleID `json:"ruleId,omitempty"` // Only consider this rule when set
}

// DefaultConstraints searches the next five years month by month
func DefaultConstraints() Constraints {
	return Constraints{MinMonths: 0, MaxMonths: 60}
}

// OptimizationRequest defines the parameters for a search run
type OptimizationRequest struct {
	Draft         *domain.SimulationDraft
	Goal          OptimizationGoal
	Constraints   Constraints
	MaxIterations int // Maximum filing dates to evaluate
}

// OptimizationResult is the filing date found by a search run
type OptimizationResult struct {
	Request         OptimizationRequest `json:"-"`
	Goal            OptimizationGoal    `json:"goal"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergenceInfo"`

	PostponeMonths int                          `json:"postponeMonths"`
	FilingDate     time.Time                    `json:"filingDate"`
	Option         *domain.RuleEvaluationResult `json:"option"`

	// Best amount at the draft's own filing date, zero when nothing is met yet
	BaseAmount         decimal.Decimal `json:"baseAmount"`
	AmountDiffFromBase decimal.Decimal `json:"amountDiffFromBase"`
}

// EligibilityPoint is the first postponement at which a rule is met
type EligibilityPoint struct {
	RuleID         domain.RuleID   `json:"ruleId"`
	Name           string          `json:"name"`
	Reached        bool            `json:"reached"`
	PostponeMonths int             `json:"postponeMonths"`
	FilingDate     time.Time       `json:"filingDate"`
	Amount         decimal.Decimal `json:"amount"`
}

// TimelineResult lists, per rule, when it first becomes eligible
type TimelineResult struct {
	BaseFilingDate  time.Time           `json:"baseFilingDate"`
	Constraints     Constraints         `json:"constraints"`
	Points          []EligibilityPoint  `json:"points"`
	Earliest        *OptimizationResult `json:"earliest,omitempty"`
	Best            *OptimizationResult `json:"best,omitempty"`
	Recommendations []string            `json:"recommendations"`
}

// SolverOptions configures the solver
type SolverOptions struct {
	MaxIterations int
}

// DefaultSolverOptions allows the whole search range to be evaluated
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{MaxIterations: MaxSearchMonths + 1}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.MinMonths < 0 {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_months cannot be negative",
		}
	}
	if c.MinMonths > c.MaxMonths {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_months cannot be greater than max_months",
		}
	}
	if c.MaxMonths > MaxSearchMonths {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "max_months cannot exceed 240",
		}
	}
	return nil
}

// BreakEvenError represents errors from the filing date solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
