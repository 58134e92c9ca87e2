package breakeven

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/prevsim/internal/calculation"
	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/rgehrsitz/prevsim/pkg/dateutil"
)

// testDraft is a woman who turns 62 five months after her filing date, with
// twenty years of common contribution at a flat wage
func testDraft() *domain.SimulationDraft {
	birth := dateutil.Date(1963, 6, 1)
	reaffirmed := dateutil.Date(2025, 3, 1)
	draft := domain.NewSimulationDraft("draft-1", dateutil.Date(2025, 1, 1))
	draft.Claimant = domain.BasicClaimantData{
		Sex:                  domain.SexFemale,
		BirthDate:            &birth,
		FilingDate:           dateutil.Date(2025, 1, 1),
		ReaffirmedFilingDate: &reaffirmed,
	}
	draft.Periods = []domain.ContributionPeriod{{
		ID:                           "p1",
		Start:                        dateutil.Date(2000, 1, 1),
		End:                          dateutil.Date(2019, 12, 31),
		Category:                     domain.CategoryCommon,
		CountsTowardQualifyingPeriod: true,
		Source:                       domain.SourceManual,
		OverlapStatus:                domain.OverlapOK,
	}}
	for i := 0; i < 12; i++ {
		draft.Wages = append(draft.Wages, domain.WageRecord{
			ID:         fmt.Sprintf("w%d", i),
			Competency: fmt.Sprintf("2019-%02d", i+1),
			Amount:     decimal.NewFromInt(3000),
			Currency:   domain.DefaultCurrency,
			Source:     domain.SourceManual,
		})
	}
	return draft
}

func TestNewSolver(t *testing.T) {
	engine := calculation.NewSimulationEngine()
	options := DefaultSolverOptions()

	solver := NewSolver(engine, options)

	if solver.SimEngine != engine {
		t.Error("Expected SimEngine to match input")
	}
	if solver.Options != options {
		t.Error("Expected Options to match input")
	}
	if NewDefaultSolver(engine).Options != DefaultSolverOptions() {
		t.Error("Expected default options to be applied")
	}
}

func TestSolver_Optimize_EarliestEligible(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewSimulationEngine())

	result, err := solver.Optimize(context.Background(), OptimizationRequest{
		Draft:       testDraft(),
		Goal:        GoalEarliestEligible,
		Constraints: DefaultConstraints(),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !result.Success {
		t.Error("Expected success")
	}
	if result.PostponeMonths != 5 {
		t.Errorf("Expected eligibility after 5 months, got %d", result.PostponeMonths)
	}
	if got := dateutil.FormatDate(result.FilingDate); got != "2025-06-01" {
		t.Errorf("Expected filing date 2025-06-01, got %s", got)
	}
	if result.Option.RuleID != domain.RuleAgeBased {
		t.Errorf("Expected age-based rule, got %s", result.Option.RuleID)
	}
	if result.Iterations != 6 {
		t.Errorf("Expected the search to stop after 6 filing dates, got %d", result.Iterations)
	}
	if !result.BaseAmount.IsZero() {
		t.Errorf("Expected nothing payable at the current filing date, got %s", result.BaseAmount)
	}
	if result.AmountDiffFromBase.StringFixed(2) != "3000.00" {
		t.Errorf("Expected a gain of 3000.00, got %s", result.AmountDiffFromBase.StringFixed(2))
	}
}

func TestSolver_Optimize_MaximizeBenefitKeepsFirstOfEqualAmounts(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewSimulationEngine())

	result, err := solver.Optimize(context.Background(), OptimizationRequest{
		Draft:       testDraft(),
		Goal:        GoalMaximizeBenefit,
		Constraints: Constraints{MinMonths: 0, MaxMonths: 24},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.PostponeMonths != 5 {
		t.Errorf("Expected the first month with the top amount, got %d", result.PostponeMonths)
	}
	if result.Iterations != 25 {
		t.Errorf("Expected the whole range to be evaluated, got %d", result.Iterations)
	}
}

func TestSolver_Optimize_RuleFilter(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewSimulationEngine())

	result, err := solver.Optimize(context.Background(), OptimizationRequest{
		Draft:       testDraft(),
		Constraints: Constraints{MinMonths: 0, MaxMonths: 12, RuleID: domain.RuleStandardPostReform},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Goal != GoalEarliestEligible {
		t.Errorf("Expected the default goal, got %s", result.Goal)
	}
	if result.Option.RuleID != domain.RuleStandardPostReform {
		t.Errorf("Expected standard post-reform rule, got %s", result.Option.RuleID)
	}
}

func TestSolver_Optimize_NoEligibleOption(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewSimulationEngine())

	_, err := solver.Optimize(context.Background(), OptimizationRequest{
		Draft:       testDraft(),
		Constraints: Constraints{MinMonths: 0, MaxMonths: 24, RuleID: domain.RulePointsTransition},
	})
	if err == nil {
		t.Fatal("Expected an error when no month qualifies")
	}
	if !strings.Contains(err.Error(), "no eligible option between 0 and 24 months") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestSolver_Optimize_InvalidRequests(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewSimulationEngine())
	noFilingDate := testDraft()
	noFilingDate.Claimant.FilingDate = dateutil.Date(1, 1, 1)

	tests := []struct {
		name string
		req  OptimizationRequest
	}{
		{"nil draft", OptimizationRequest{Constraints: DefaultConstraints()}},
		{"no filing date", OptimizationRequest{Draft: noFilingDate, Constraints: DefaultConstraints()}},
		{"bad constraints", OptimizationRequest{Draft: testDraft(), Constraints: Constraints{MinMonths: 5, MaxMonths: 1}}},
		{"unknown rule", OptimizationRequest{Draft: testDraft(), Constraints: Constraints{MaxMonths: 1, RuleID: "early-bird"}}},
		{"unknown goal", OptimizationRequest{Draft: testDraft(), Goal: "minimize_taxes", Constraints: DefaultConstraints()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := solver.Optimize(context.Background(), tt.req)
			var beErr *BreakEvenError
			if !errors.As(err, &beErr) {
				t.Errorf("Expected BreakEvenError, got %v", err)
			}
		})
	}
}

func TestSolver_Optimize_UnknownRuleListsCatalog(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewSimulationEngine())

	_, err := solver.Optimize(context.Background(), OptimizationRequest{
		Draft:       testDraft(),
		Constraints: Constraints{MaxMonths: 1, RuleID: "early-bird"},
	})
	if err == nil {
		t.Fatal("Expected an error for an unknown rule")
	}
	if !strings.Contains(err.Error(), "known: age-based, standard-post-reform") {
		t.Errorf("Expected the catalog rule ids in the error, got %v", err)
	}
}

func TestSolver_Optimize_ContextCancellation(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewSimulationEngine())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := solver.Optimize(ctx, OptimizationRequest{
		Draft:       testDraft(),
		Constraints: DefaultConstraints(),
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestSolver_Optimize_MaxIterations(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewSimulationEngine())

	_, err := solver.Optimize(context.Background(), OptimizationRequest{
		Draft:         testDraft(),
		Constraints:   DefaultConstraints(),
		MaxIterations: 3,
	})
	if err == nil {
		t.Error("Expected no option within 3 evaluated months")
	}
}

func TestSolver_Optimize_DoesNotModifyDraft(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewSimulationEngine())
	draft := testDraft()

	if _, err := solver.Optimize(context.Background(), OptimizationRequest{Draft: draft, Constraints: DefaultConstraints()}); err != nil {
		t.Fatal(err)
	}
	if got := dateutil.FormatDate(draft.Claimant.FilingDate); got != "2025-01-01" {
		t.Errorf("Expected filing date to stay 2025-01-01, got %s", got)
	}
	if draft.Claimant.ReaffirmedFilingDate == nil {
		t.Error("Expected reaffirmed filing date to be kept on the caller's draft")
	}
}

func TestSolver_EligibilityTimeline(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewSimulationEngine())

	timeline, err := solver.EligibilityTimeline(context.Background(), testDraft(), Constraints{MinMonths: 0, MaxMonths: 36})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(timeline.Points) != 6 {
		t.Fatalf("Expected one point per catalog rule, got %d", len(timeline.Points))
	}

	reached := map[domain.RuleID]EligibilityPoint{}
	for _, p := range timeline.Points {
		if p.Reached {
			reached[p.RuleID] = p
		}
	}
	if len(reached) != 2 {
		t.Errorf("Expected two rules to be reached, got %v", reached)
	}
	for _, id := range []domain.RuleID{domain.RuleAgeBased, domain.RuleStandardPostReform} {
		p, ok := reached[id]
		if !ok {
			t.Errorf("Expected %s to be reached", id)
			continue
		}
		if p.PostponeMonths != 5 {
			t.Errorf("Expected %s after 5 months, got %d", id, p.PostponeMonths)
		}
	}

	if timeline.Earliest == nil || timeline.Earliest.PostponeMonths != 5 {
		t.Fatalf("Expected earliest option after 5 months, got %+v", timeline.Earliest)
	}
	if timeline.Best == nil || timeline.Best.Goal != GoalMaximizeBenefit {
		t.Fatalf("Expected a best option, got %+v", timeline.Best)
	}
	if len(timeline.Recommendations) != 1 || !strings.HasPrefix(timeline.Recommendations[0], "Earliest eligibility: Age-based retirement in 5 months") {
		t.Errorf("Unexpected recommendations: %v", timeline.Recommendations)
	}
}

func TestSolver_EligibilityTimeline_NothingReached(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewSimulationEngine())

	timeline, err := solver.EligibilityTimeline(context.Background(), testDraft(),
		Constraints{MinMonths: 0, MaxMonths: 3, RuleID: domain.RuleAgeBased})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(timeline.Points) != 1 || timeline.Points[0].Reached {
		t.Errorf("Expected a single unreached point, got %+v", timeline.Points)
	}
	if timeline.Earliest != nil {
		t.Error("Expected no earliest option")
	}
	if !strings.HasPrefix(timeline.Recommendations[0], "No rule is met within 3 months") {
		t.Errorf("Unexpected recommendation: %s", timeline.Recommendations[0])
	}
}

func TestFormatters(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewSimulationEngine())
	timeline, err := solver.EligibilityTimeline(context.Background(), testDraft(), Constraints{MinMonths: 0, MaxMonths: 12})
	if err != nil {
		t.Fatal(err)
	}

	tf := &TableFormatter{}
	table := tf.FormatTimeline(timeline)
	for _, want := range []string{"ELIGIBILITY TIMELINE", "Age-based retirement", "2025-06-01", "not reached", "RECOMMENDATIONS"} {
		if !strings.Contains(table, want) {
			t.Errorf("Expected timeline table to contain %q", want)
		}
	}

	single := tf.Format(timeline.Earliest)
	for _, want := range []string{"FILING DATE SEARCH RESULTS", "Postponed By:        5 months", "Change:              +R$ 3000.00"} {
		if !strings.Contains(single, want) {
			t.Errorf("Expected result table to contain %q, got:\n%s", want, single)
		}
	}

	jf := &JSONFormatter{Pretty: true}
	out, err := jf.FormatTimeline(timeline)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"postponeMonths": 5`) {
		t.Errorf("Expected JSON to contain postponeMonths, got:\n%s", out)
	}
	if _, err := (&JSONFormatter{}).Format(timeline.Earliest); err != nil {
		t.Errorf("Expected compact JSON to succeed, got %v", err)
	}
}
