package calculation

import (
	"fmt"
	"testing"
	"time"

	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/rgehrsitz/prevsim/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuplicateCompetencies(t *testing.T) {
	wages := []domain.WageRecord{
		{Competency: "2020-03"},
		{Competency: "2020-01"},
		{Competency: "2020-03"},
		{Competency: "2020-02"},
		{Competency: "2020-01"},
		{Competency: "2020-03"},
	}

	assert.Equal(t, []string{"2020-03", "2020-01"}, DuplicateCompetencies(wages), "First-seen order")
	assert.Empty(t, DuplicateCompetencies(wagesFromAmounts(1, 2, 3)))
}

func TestDuplicateCompetencyAlert_Truncates(t *testing.T) {
	wages := []domain.WageRecord{}
	for i := 1; i <= 8; i++ {
		c := fmt.Sprintf("2019-%02d", i)
		wages = append(wages, domain.WageRecord{Competency: c}, domain.WageRecord{Competency: c})
	}

	alert, ok := duplicateCompetencyAlert(wages)

	require.True(t, ok)
	assert.Equal(t, "Duplicated competencies in wage records: 2019-01, 2019-02, 2019-03, 2019-04, 2019-05 and 3 more.", alert)
}

func TestFindGaps(t *testing.T) {
	tests := []struct {
		name     string
		prevEnd  string
		nextFrom string
		wantGap  bool
	}{
		{"adjacent months", "2010-01-31", "2010-02-01", false},
		{"two months apart", "2010-01-31", "2010-03-01", false},
		{"three months apart", "2010-01-31", "2010-04-01", true},
		{"years apart", "2010-01-01", "2015-01-01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			periods := []domain.ContributionPeriod{
				newPeriod("a", dateutil.Date(2005, 1, 1), mustDate(t, tt.prevEnd), domain.CategoryCommon, true),
				newPeriod("b", mustDate(t, tt.nextFrom), dateutil.Date(2020, 1, 1), domain.CategoryCommon, true),
			}
			gaps := FindGaps(periods)
			if tt.wantGap {
				require.Len(t, gaps, 1)
				assert.Equal(t, "a", gaps[0].From.ID)
				assert.Equal(t, "b", gaps[0].To.ID)
			} else {
				assert.Empty(t, gaps)
			}
		})
	}
}

func TestBuildAlerts_Supplementary(t *testing.T) {
	draft := domain.NewSimulationDraft("d", dateutil.Date(2025, 1, 1))
	draft.Periods = []domain.ContributionPeriod{
		newPeriod("a", dateutil.Date(2000, 1, 1), dateutil.Date(2020, 12, 31), domain.CategoryCommon, true),
	}
	draft.Wages = []domain.WageRecord{
		{Competency: "2020-01", Amount: decimal.NewFromInt(0)},
		{Competency: "2020-02", Amount: decimal.NewFromInt(1200), IsFlaggedInconsistent: true},
		{Competency: "2020-03", Amount: decimal.NewFromInt(1300)},
	}

	alerts := BuildAlerts(draft, NormalizePeriods(draft.Periods))

	assert.Equal(t, []string{
		"1 wage record(s) with zero or negative amount were ignored.",
		"1 wage record(s) are flagged as inconsistent and should be reviewed.",
	}, alerts)
}

func TestBuildAlerts_NoneForCleanDraft(t *testing.T) {
	draft := domain.NewSimulationDraft("d", dateutil.Date(2025, 1, 1))
	draft.Periods = twentyYearsOfWork()
	draft.Wages = wagesFromAmounts(1000, 1100, 1200)

	assert.Empty(t, BuildAlerts(draft, NormalizePeriods(draft.Periods)))
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse(dateutil.DateLayout, s)
	require.NoError(t, err)
	return parsed
}
