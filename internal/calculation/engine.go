package calculation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/rgehrsitz/prevsim/pkg/dateutil"
)

// SimulationEngine runs the rule catalog over a draft. It holds no state
// between calls and is safe for concurrent use.
type SimulationEngine struct {
	Catalog domain.RuleCatalog
	Logger  Logger
	Debug   bool // Log per-rule details

	now   func() time.Time
	newID func() string
}

// NewSimulationEngine creates an engine using the built-in rule catalog
func NewSimulationEngine() *SimulationEngine {
	return NewSimulationEngineWithCatalog(domain.DefaultRuleCatalog())
}

// NewSimulationEngineWithCatalog creates an engine using a custom rule catalog
func NewSimulationEngineWithCatalog(catalog domain.RuleCatalog) *SimulationEngine {
	return &SimulationEngine{
		Catalog: catalog,
		Logger:  NopLogger{},
		now:     func() time.Time { return time.Now().UTC() },
		newID:   func() string { return uuid.NewString() },
	}
}

// SetLogger sets the logger. A nil logger falls back to NopLogger.
func (se *SimulationEngine) SetLogger(l Logger) {
	if l == nil {
		se.Logger = NopLogger{}
		return
	}
	se.Logger = l
}

// SetClock overrides the time source used for GeneratedAt
func (se *SimulationEngine) SetClock(now func() time.Time) {
	se.now = now
}

// SetIDGenerator overrides the generator used for SimulationID
func (se *SimulationEngine) SetIDGenerator(newID func() string) {
	se.newID = newID
}

// Simulate derives a full report from the current state of the draft.
// The draft is never modified.
func (se *SimulationEngine) Simulate(draft *domain.SimulationDraft) *domain.SimulationResult {
	periods := NormalizePeriods(draft.Periods)
	wages := FilterPositiveWages(draft.Wages)

	se.Logger.Debugf("simulating draft %q: %d periods (%d after normalization), %d wages (%d positive)",
		draft.ID, len(draft.Periods), len(periods), len(draft.Wages), len(wages))

	scenarios := []domain.ScenarioResult{
		se.RunScenario(domain.FilingDateCurrent, draft.Claimant.FilingDate, draft.Claimant, periods, wages),
	}
	if draft.Claimant.HasReaffirmedFilingDate() {
		scenarios = append(scenarios,
			se.RunScenario(domain.FilingDateReaffirmed, *draft.Claimant.ReaffirmedFilingDate, draft.Claimant, periods, wages))
	}

	result := &domain.SimulationResult{
		SimulationID:       se.newID(),
		MethodologySummary: MethodologySummary(scenarios),
		Alerts:             BuildAlerts(draft, periods),
		Scenarios:          scenarios,
		GeneratedAt:        se.now(),
	}

	se.Logger.Infof("simulation %s: %d scenario(s), %d alert(s)", result.SimulationID, len(scenarios), len(result.Alerts))
	return result
}

// RunScenario evaluates every catalog rule for one filing date and picks the best eligible option
func (se *SimulationEngine) RunScenario(
	kind domain.FilingDateKind,
	filingDate time.Time,
	claimant domain.BasicClaimantData,
	normalizedPeriods []domain.ContributionPeriod,
	wages []domain.WageRecord,
) domain.ScenarioResult {
	scenario := domain.ScenarioResult{
		FilingDateKind: kind,
		FilingDate:     filingDate,
		Rules:          make([]domain.RuleEvaluationResult, 0, len(se.Catalog)),
	}

	for _, rule := range se.Catalog {
		result := EvaluateRule(rule, claimant, normalizedPeriods, wages, filingDate)
		if se.Debug {
			se.Logger.Debugf("%s %s: eligible=%t amount=%s discard=%s reasons=%v", kind, rule.ID,
				result.Eligible, result.BenefitAmountWithoutDiscard.StringFixed(2),
				result.BenefitAmountWithDiscard.StringFixed(2), result.IneligibilityReasons)
		}
		scenario.Rules = append(scenario.Rules, result)
	}

	scenario.BestEligibleOption = BestEligibleOption(scenario.Rules)
	return scenario
}

// BestEligibleOption returns the eligible result with the highest discard-adjusted
// amount. Ties go to the earlier rule. Returns nil when nothing is eligible.
func BestEligibleOption(results []domain.RuleEvaluationResult) *domain.RuleEvaluationResult {
	var best *domain.RuleEvaluationResult
	for i := range results {
		r := results[i]
		if !r.Eligible {
			continue
		}
		if best == nil || r.BenefitAmountWithDiscard.GreaterThan(best.BenefitAmountWithDiscard) {
			best = &r
		}
	}
	return best
}

// MethodologySummary describes how the report was built and what it concluded
func MethodologySummary(scenarios []domain.ScenarioResult) string {
	var sb strings.Builder
	sb.WriteString("Contribution periods were merged by category priority and every rule of the catalog ")
	sb.WriteString("was evaluated against the filing date; the wage average leaves out the lowest 20% ")
	sb.WriteString("of wages and, where the rule allows it, further low wages are discarded while the minimum contribution time is kept.")

	for _, sc := range scenarios {
		label := "current filing date"
		if sc.FilingDateKind == domain.FilingDateReaffirmed {
			label = "reaffirmed filing date"
		}
		if sc.BestEligibleOption != nil {
			fmt.Fprintf(&sb, " For the %s (%s) the best eligible option is %s with an estimated benefit of %s.",
				label, dateutil.FormatDate(sc.FilingDate), sc.BestEligibleOption.Name,
				sc.BestEligibleOption.BenefitAmountWithDiscard.StringFixed(2))
		} else {
			fmt.Fprintf(&sb, " For the %s (%s) no rule is met yet; review the qualifying period and special-activity time gaps.",
				label, dateutil.FormatDate(sc.FilingDate))
		}
	}
	return sb.String()
}
