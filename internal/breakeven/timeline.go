package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/rgehrsitz/prevsim/pkg/dateutil"
)

// EligibilityTimeline simulates every month in the range once and records,
// per catalog rule, the first postponement at which it is met. It also
// reports the earliest eligible option and the highest amount found.
func (s *Solver) EligibilityTimeline(
	ctx context.Context,
	draft *domain.SimulationDraft,
	constraints Constraints,
) (*TimelineResult, error) {
	if err := s.validateRequest(draft, &constraints); err != nil {
		return nil, err
	}

	timeline := &TimelineResult{
		BaseFilingDate: draft.Claimant.FilingDate,
		Constraints:    constraints,
	}

	points := make(map[domain.RuleID]*EligibilityPoint, len(s.SimEngine.Catalog))
	for _, rule := range s.SimEngine.Catalog {
		if constraints.RuleID != "" && rule.ID != constraints.RuleID {
			continue
		}
		timeline.Points = append(timeline.Points, EligibilityPoint{RuleID: rule.ID, Name: rule.Name})
	}
	for i := range timeline.Points {
		points[timeline.Points[i].RuleID] = &timeline.Points[i]
	}

	baseScenario, err := s.evaluate(draft, 0)
	if err != nil {
		return nil, err
	}
	baseAmount := optionAmount(pickOption(baseScenario, constraints.RuleID))

	iterations := 0
	for months := constraints.MinMonths; months <= constraints.MaxMonths; months++ {
		if iterations >= s.Options.MaxIterations {
			break
		}
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		sc, err := s.evaluate(draft, months)
		if err != nil {
			return nil, err
		}

		for _, r := range sc.Rules {
			p, tracked := points[r.RuleID]
			if !tracked || p.Reached || !r.Eligible {
				continue
			}
			p.Reached = true
			p.PostponeMonths = months
			p.FilingDate = sc.FilingDate
			p.Amount = r.BenefitAmountWithDiscard
		}

		option := pickOption(sc, constraints.RuleID)
		if option == nil {
			continue
		}
		found := &OptimizationResult{
			Goal:           GoalEarliestEligible,
			Success:        true,
			PostponeMonths: months,
			FilingDate:     sc.FilingDate,
			Option:         option,
			BaseAmount:     baseAmount,
		}
		found.AmountDiffFromBase = option.BenefitAmountWithDiscard.Sub(baseAmount)
		if timeline.Earliest == nil {
			timeline.Earliest = found
		}
		if timeline.Best == nil || option.BenefitAmountWithDiscard.GreaterThan(timeline.Best.Option.BenefitAmountWithDiscard) {
			best := *found
			best.Goal = GoalMaximizeBenefit
			timeline.Best = &best
		}
	}

	for _, r := range []*OptimizationResult{timeline.Earliest, timeline.Best} {
		if r != nil {
			r.Iterations = iterations
			r.ConvergenceInfo = fmt.Sprintf("Evaluated %d filing dates", iterations)
		}
	}

	timeline.Recommendations = s.generateRecommendations(timeline)
	return timeline, nil
}

// generateRecommendations turns a timeline into short advice lines
func (s *Solver) generateRecommendations(t *TimelineResult) []string {
	var recommendations []string

	if t.Earliest == nil {
		return append(recommendations, fmt.Sprintf(
			"No rule is met within %d months of the filing date without further contributions",
			t.Constraints.MaxMonths))
	}

	if t.Earliest.PostponeMonths == 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"Already eligible: %s pays R$ %s from %s",
			t.Earliest.Option.Name, t.Earliest.Option.BenefitAmountWithDiscard.StringFixed(2),
			dateutil.FormatDate(t.Earliest.FilingDate)))
	} else {
		recommendations = append(recommendations, fmt.Sprintf(
			"Earliest eligibility: %s in %d months (%s), R$ %s",
			t.Earliest.Option.Name, t.Earliest.PostponeMonths,
			dateutil.FormatDate(t.Earliest.FilingDate),
			t.Earliest.Option.BenefitAmountWithDiscard.StringFixed(2)))
	}

	if t.Best != nil && t.Best.PostponeMonths != t.Earliest.PostponeMonths {
		gain := t.Best.Option.BenefitAmountWithDiscard.Sub(t.Earliest.Option.BenefitAmountWithDiscard)
		recommendations = append(recommendations, fmt.Sprintf(
			"Waiting until %s (%s) raises the benefit by R$ %s per month",
			dateutil.FormatDate(t.Best.FilingDate), t.Best.Option.Name, gain.StringFixed(2)))
	}

	return recommendations
}
