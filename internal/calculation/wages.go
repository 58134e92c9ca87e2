package calculation

import (
	"sort"

	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/shopspring/decimal"
)

// beneficialDiscardRate is the share of lowest wages left out of every average
var beneficialDiscardRate = decimal.NewFromFloat(0.2)

// minWagesForDiscard is the wage count a rule needs before extra discards are tried
const minWagesForDiscard = 12

// DiscardOutcome is the result of the discard optimization
type DiscardOutcome struct {
	Considered  []domain.WageRecord
	Discarded   []domain.WageRecord
	GainPercent decimal.Decimal
}

// DiscardedCompetencies converts the discarded wages into report entries
func (do DiscardOutcome) DiscardedCompetencies() []domain.DiscardedCompetency {
	out := make([]domain.DiscardedCompetency, 0, len(do.Discarded))
	for _, w := range do.Discarded {
		out = append(out, domain.DiscardedCompetency{Competency: w.Competency, Amount: w.Amount})
	}
	return out
}

// FilterPositiveWages drops wages that cannot take part in an average
func FilterPositiveWages(wages []domain.WageRecord) []domain.WageRecord {
	positive := make([]domain.WageRecord, 0, len(wages))
	for _, w := range wages {
		if w.IsPositive() {
			positive = append(positive, w)
		}
	}
	return positive
}

// AverageWage sorts the amounts ascending, leaves out the lowest 20% by count
// (rounded down) and averages the rest. An empty list averages to zero.
func AverageWage(wages []domain.WageRecord) decimal.Decimal {
	if len(wages) == 0 {
		return decimal.Zero
	}

	amounts := make([]decimal.Decimal, len(wages))
	for i, w := range wages {
		amounts[i] = w.Amount
	}
	sort.SliceStable(amounts, func(i, j int) bool { return amounts[i].LessThan(amounts[j]) })

	skip := int(decimal.NewFromInt(int64(len(amounts))).Mul(beneficialDiscardRate).IntPart())
	kept := amounts[skip:]

	sum := decimal.Zero
	for _, a := range kept {
		sum = sum.Add(a)
	}
	return sum.Div(decimal.NewFromInt(int64(len(kept))))
}

// ApplyDiscardOptimization greedily discards the lowest wages while that keeps
// improving the average.
//
// Candidates are tried from the lowest amount up. A removal is committed only
// when it strictly raises the best average so far; a candidate that does not
// is skipped. Each committed removal costs one month of contribution time, and
// the search stops at the first candidate whose removal would take the time
// below the rule's minimum. The search never backtracks.
func ApplyDiscardOptimization(wages []domain.WageRecord, currentTotalMonths int, rule domain.Rule) DiscardOutcome {
	outcome := DiscardOutcome{
		Considered:  append([]domain.WageRecord(nil), wages...),
		Discarded:   []domain.WageRecord{},
		GainPercent: decimal.Zero,
	}
	if !rule.AllowsDiscard || len(wages) <= minWagesForDiscard {
		return outcome
	}

	sorted := append([]domain.WageRecord(nil), wages...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Amount.LessThan(sorted[j].Amount) })

	originalAverage := AverageWage(sorted)
	bestAverage := originalAverage
	kept := make([]bool, len(sorted))
	for i := range kept {
		kept[i] = true
	}
	remainingMonths := currentTotalMonths

	for i, candidate := range sorted {
		if remainingMonths-1 < rule.MinContributionMonths {
			break
		}

		kept[i] = false
		average := AverageWage(keptWages(sorted, kept))
		if !average.GreaterThan(bestAverage) {
			kept[i] = true
			continue
		}

		bestAverage = average
		remainingMonths--
		outcome.Discarded = append(outcome.Discarded, candidate)
	}

	outcome.Considered = keptWages(sorted, kept)
	outcome.GainPercent = percentChange(originalAverage, bestAverage)
	return outcome
}

func keptWages(wages []domain.WageRecord, kept []bool) []domain.WageRecord {
	out := make([]domain.WageRecord, 0, len(wages))
	for i, w := range wages {
		if kept[i] {
			out = append(out, w)
		}
	}
	return out
}

// percentChange returns (to - from) / from in percent, or zero without a baseline
func percentChange(from, to decimal.Decimal) decimal.Decimal {
	if from.IsZero() {
		return decimal.Zero
	}
	return to.Sub(from).Div(from).Mul(decimal.NewFromInt(100)).Round(2)
}
