package calculation

import (
	"time"

	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/rgehrsitz/prevsim/pkg/dateutil"
)

// TotalMonths sums the inclusive month span of every period
func TotalMonths(periods []domain.ContributionPeriod) int {
	total := 0
	for _, p := range periods {
		total += dateutil.MonthsBetween(p.Start, p.End)
	}
	return total
}

// QualifyingMonths sums the months of periods that count toward the qualifying period
func QualifyingMonths(periods []domain.ContributionPeriod) int {
	total := 0
	for _, p := range periods {
		if p.CountsTowardQualifyingPeriod {
			total += dateutil.MonthsBetween(p.Start, p.End)
		}
	}
	return total
}

// SpecialMonths sums the months of special-activity periods
func SpecialMonths(periods []domain.ContributionPeriod) int {
	total := 0
	for _, p := range periods {
		if p.Category.IsSpecial() {
			total += dateutil.MonthsBetween(p.Start, p.End)
		}
	}
	return total
}

// AgeAtDate returns the whole-year age at the given date, zero when the birth
// date is missing
func AgeAtDate(birthDate *time.Time, atDate time.Time) int {
	claimant := domain.BasicClaimantData{BirthDate: birthDate}
	return claimant.Age(atDate)
}

// PointsScore is age plus whole years of contribution
func PointsScore(totalMonths, age int) int {
	return age + totalMonths/12
}
