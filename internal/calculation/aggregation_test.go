package calculation

import (
	"testing"

	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/rgehrsitz/prevsim/pkg/dateutil"
	"github.com/stretchr/testify/assert"
)

func TestMonthTotals(t *testing.T) {
	periods := []domain.ContributionPeriod{
		newPeriod("a", dateutil.Date(2000, 1, 1), dateutil.Date(2000, 12, 31), domain.CategoryCommon, true),
		newPeriod("b", dateutil.Date(2001, 1, 1), dateutil.Date(2001, 6, 30), domain.CategorySpecial20, false),
		newPeriod("c", dateutil.Date(2002, 1, 1), dateutil.Date(2002, 3, 31), domain.CategorySpecial15, true),
	}

	assert.Equal(t, 21, TotalMonths(periods))
	assert.Equal(t, 15, QualifyingMonths(periods))
	assert.Equal(t, 9, SpecialMonths(periods))
	assert.Equal(t, 0, TotalMonths(nil))
}

func TestAgeAtDate(t *testing.T) {
	birth := dateutil.Date(1960, 1, 1)

	assert.Equal(t, 65, AgeAtDate(&birth, dateutil.Date(2025, 1, 1)))
	assert.Equal(t, 64, AgeAtDate(&birth, dateutil.Date(2024, 12, 31)))
	assert.Equal(t, 0, AgeAtDate(nil, dateutil.Date(2025, 1, 1)), "Missing birth date should yield zero")
}

func TestAgeAtDate_MatchesClaimantAge(t *testing.T) {
	birth := dateutil.Date(1963, 6, 1)
	at := dateutil.Date(2025, 5, 31)

	withBirth := domain.BasicClaimantData{BirthDate: &birth}
	var withoutBirth domain.BasicClaimantData

	assert.Equal(t, withBirth.Age(at), AgeAtDate(&birth, at))
	assert.Equal(t, withoutBirth.Age(at), AgeAtDate(nil, at))
}

func TestPointsScore(t *testing.T) {
	assert.Equal(t, 95, PointsScore(360, 65))
	assert.Equal(t, 65, PointsScore(11, 65), "Partial years do not count")
	assert.Equal(t, 0, PointsScore(0, 0))
}
