package calculation

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverageWage(t *testing.T) {
	tests := []struct {
		name     string
		amounts  []int64
		expected decimal.Decimal
	}{
		{"empty list", nil, decimal.Zero},
		{"single wage", []int64{1500}, decimal.NewFromInt(1500)},
		{"four wages keep all", []int64{100, 200, 300, 400}, decimal.NewFromInt(250)},
		{"five wages drop lowest", []int64{500, 100, 300, 200, 400}, decimal.NewFromInt(350)},
		{"ten wages drop two lowest", []int64{10, 20, 100, 100, 100, 100, 100, 100, 100, 100}, decimal.NewFromInt(100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AverageWage(wagesFromAmounts(tt.amounts...))
			assert.True(t, tt.expected.Equal(got), "Expected %s, got %s", tt.expected, got)
		})
	}
}

func TestFilterPositiveWages(t *testing.T) {
	wages := wagesFromAmounts(100, 0, -50, 200)

	got := FilterPositiveWages(wages)

	require.Len(t, got, 2)
	assert.Equal(t, "2000-01", got[0].Competency)
	assert.Equal(t, "2000-04", got[1].Competency)
}

func TestApplyDiscardOptimization_NotAllowedOrTooFewWages(t *testing.T) {
	rule := domain.Rule{ID: "test", MinContributionMonths: 180, AllowsDiscard: false}
	wages := discardFriendlyWages()

	outcome := ApplyDiscardOptimization(wages, 400, rule)
	assert.Empty(t, outcome.Discarded, "Should not discard when the rule forbids it")
	assert.Len(t, outcome.Considered, len(wages))
	assert.True(t, outcome.GainPercent.IsZero())

	rule.AllowsDiscard = true
	few := wagesFromAmounts(100, 100, 100, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000)
	outcome = ApplyDiscardOptimization(few, 400, rule)
	assert.Empty(t, outcome.Discarded, "Should not discard with twelve wages or fewer")
}

func TestApplyDiscardOptimization_DiscardsWhenAverageImproves(t *testing.T) {
	rule := domain.Rule{ID: "test", MinContributionMonths: 180, AllowsDiscard: true}
	wages := discardFriendlyWages()

	outcome := ApplyDiscardOptimization(wages, 240, rule)

	require.Len(t, outcome.Discarded, 1)
	assert.Equal(t, "2000-01", outcome.Discarded[0].Competency, "Lowest wage goes first")
	assert.Len(t, outcome.Considered, len(wages)-1)
	assert.True(t, AverageWage(outcome.Considered).Equal(decimal.NewFromInt(1000)))
	// (1000 - 12100/13) / (12100/13) = 7.44%
	assert.Equal(t, "7.44", outcome.GainPercent.StringFixed(2))
}

func TestApplyDiscardOptimization_RespectsTimeFloor(t *testing.T) {
	rule := domain.Rule{ID: "test", MinContributionMonths: 180, AllowsDiscard: true}

	outcome := ApplyDiscardOptimization(discardFriendlyWages(), 180, rule)

	assert.Empty(t, outcome.Discarded, "Removing a month would drop below the minimum time")
	assert.True(t, outcome.GainPercent.IsZero())
}

func TestApplyDiscardOptimization_StopsAtTimeFloor(t *testing.T) {
	rule := domain.Rule{ID: "test", MinContributionMonths: 180, AllowsDiscard: true}
	// 44 wages: removals keep the 20% cut at eight wages for four steps
	amounts := make([]int64, 0, 44)
	for i := 1; i <= 44; i++ {
		amounts = append(amounts, int64(i*100))
	}

	unbounded := ApplyDiscardOptimization(wagesFromAmounts(amounts...), 1000, rule)
	bounded := ApplyDiscardOptimization(wagesFromAmounts(amounts...), 182, rule)

	assert.Len(t, unbounded.Discarded, 4)
	assert.Len(t, bounded.Discarded, 2, "Only two months are available above the floor")
}

func TestApplyDiscardOptimization_AverageNeverDecreases(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	rule := domain.Rule{ID: "test", MinContributionMonths: 180, AllowsDiscard: true}

	for i := 0; i < 100; i++ {
		n := 1 + rng.Intn(60)
		amounts := make([]int64, n)
		for j := range amounts {
			amounts[j] = 100 + rng.Int63n(9000)
		}
		wages := wagesFromAmounts(amounts...)

		outcome := ApplyDiscardOptimization(wages, 180+rng.Intn(60), rule)

		before := AverageWage(wages)
		after := AverageWage(outcome.Considered)
		assert.True(t, after.GreaterThanOrEqual(before), "Average decreased from %s to %s", before, after)
		assert.Equal(t, len(wages), len(outcome.Considered)+len(outcome.Discarded))
		assert.False(t, outcome.GainPercent.IsNegative())
	}
}

// discardFriendlyWages has four low wages and twelve high ones, so exactly one
// discard improves the average.
func discardFriendlyWages() []domain.WageRecord {
	return wagesFromAmounts(100, 100, 100, 100, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000)
}

func wagesFromAmounts(amounts ...int64) []domain.WageRecord {
	wages := make([]domain.WageRecord, len(amounts))
	for i, a := range amounts {
		year := 2000 + i/12
		month := i%12 + 1
		wages[i] = domain.WageRecord{
			ID:         fmt.Sprintf("w%d", i),
			Competency: fmt.Sprintf("%d-%02d", year, month),
			Amount:     decimal.NewFromInt(a),
			Currency:   domain.DefaultCurrency,
			Source:     domain.SourceManual,
		}
	}
	return wages
}
