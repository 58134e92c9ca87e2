package breakeven

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/prevsim/internal/calculation"
	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/rgehrsitz/prevsim/internal/transform"
	"github.com/shopspring/decimal"
)

// Solver searches postponed filing dates for the one that best meets a goal.
// Contribution history is taken as is: postponing only ages the claimant.
type Solver struct {
	SimEngine *calculation.SimulationEngine
	Options   SolverOptions
}

// NewSolver creates a new filing date solver
func NewSolver(simEngine *calculation.SimulationEngine, options SolverOptions) *Solver {
	return &Solver{
		SimEngine: simEngine,
		Options:   options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(simEngine *calculation.SimulationEngine) *Solver {
	return NewSolver(simEngine, DefaultSolverOptions())
}

// Optimize walks the filing date month by month within the constraints
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if err := s.validateRequest(req.Draft, &req.Constraints); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Goal == "" {
		req.Goal = GoalEarliestEligible
	}
	if _, ok := ParseGoal(string(req.Goal)); !ok {
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization goal: %s", req.Goal),
		}
	}

	baseScenario, err := s.evaluate(req.Draft, 0)
	if err != nil {
		return nil, err
	}
	baseAmount := optionAmount(pickOption(baseScenario, req.Constraints.RuleID))

	var best *OptimizationResult
	iterations := 0

	for months := req.Constraints.MinMonths; months <= req.Constraints.MaxMonths; months++ {
		if iterations >= req.MaxIterations {
			break
		}
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		sc, err := s.evaluate(req.Draft, months)
		if err != nil {
			return nil, err
		}
		option := pickOption(sc, req.Constraints.RuleID)
		if option == nil {
			continue
		}

		if best == nil || (req.Goal == GoalMaximizeBenefit && option.BenefitAmountWithDiscard.GreaterThan(best.Option.BenefitAmountWithDiscard)) {
			best = &OptimizationResult{
				Request:        req,
				Goal:           req.Goal,
				PostponeMonths: months,
				FilingDate:     sc.FilingDate,
				Option:         option,
			}
		}
		if req.Goal == GoalEarliestEligible {
			break
		}
	}

	if best == nil {
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message: fmt.Sprintf("no eligible option between %d and %d months after the filing date",
				req.Constraints.MinMonths, req.Constraints.MaxMonths),
		}
	}

	best.Success = true
	best.Iterations = iterations
	best.ConvergenceInfo = fmt.Sprintf("Evaluated %d filing dates", iterations)
	best.BaseAmount = baseAmount
	best.AmountDiffFromBase = best.Option.BenefitAmountWithDiscard.Sub(baseAmount)
	return best, nil
}

func (s *Solver) validateRequest(draft *domain.SimulationDraft, c *Constraints) error {
	if draft == nil {
		return &BreakEvenError{Operation: "validate_request", Message: "draft cannot be nil"}
	}
	if draft.Claimant.FilingDate.IsZero() {
		return &BreakEvenError{Operation: "validate_request", Message: "draft has no filing date"}
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if c.RuleID != "" {
		if _, ok := s.SimEngine.Catalog.Get(c.RuleID); !ok {
			return &BreakEvenError{
				Operation: "validate_request",
				Message: fmt.Sprintf("rule %s is not in the catalog (known: %s)",
					c.RuleID, joinRuleIDs(s.SimEngine.Catalog.IDs())),
			}
		}
	}
	return nil
}

// evaluate simulates the draft with its filing date moved by months. The
// reaffirmed date is dropped so only one scenario is computed.
func (s *Solver) evaluate(draft *domain.SimulationDraft, months int) (*domain.ScenarioResult, error) {
	modified, err := transform.ApplyTransforms(draft, []transform.DraftTransform{
		&transform.PostponeFiling{Months: months},
	})
	if err != nil {
		return nil, &BreakEvenError{
			Operation: "evaluate",
			Message:   "failed to postpone filing date",
			Cause:     err,
		}
	}
	modified.Claimant.ReaffirmedFilingDate = nil

	result := s.SimEngine.Simulate(modified)
	sc, ok := result.Scenario(domain.FilingDateCurrent)
	if !ok {
		return nil, &BreakEvenError{Operation: "evaluate", Message: "simulation returned no current scenario"}
	}
	return sc, nil
}

// pickOption returns the eligible result to track: the given rule, or the
// scenario's best option when no rule is set
func pickOption(sc *domain.ScenarioResult, ruleID domain.RuleID) *domain.RuleEvaluationResult {
	if ruleID == "" {
		if sc.BestEligibleOption == nil {
			return nil
		}
		option := *sc.BestEligibleOption
		return &option
	}
	r, ok := sc.Rule(ruleID)
	if !ok || !r.Eligible {
		return nil
	}
	return &r
}

func joinRuleIDs(ids []domain.RuleID) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return strings.Join(names, ", ")
}

func optionAmount(option *domain.RuleEvaluationResult) decimal.Decimal {
	if option == nil {
		return decimal.Zero
	}
	return option.BenefitAmountWithDiscard
}

