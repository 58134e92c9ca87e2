// Package dateutil holds calendar helpers shared by the calculation packages.
package dateutil

import (
	"fmt"
	"time"
)

// DateLayout is the layout used for calendar dates in reports and alerts.
const DateLayout = "2006-01-02"

// CompetencyLayout is the layout of a competency token (year-month).
const CompetencyLayout = "2006-01"

// MonthsBetween returns the inclusive number of calendar months from start to end.
// A period starting and ending in the same month counts as one month. The result
// is never negative.
func MonthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
	if months < 0 {
		return 0
	}
	return months
}

// CalendarMonthDiff returns the number of month boundaries between from and to,
// ignoring days. It is negative when to precedes from.
func CalendarMonthDiff(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// WholeYears returns the number of complete years elapsed from birth to at.
func WholeYears(birth, at time.Time) int {
	years := at.Year() - birth.Year()
	if at.Month() < birth.Month() || (at.Month() == birth.Month() && at.Day() < birth.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// FormatDate renders a date using DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseCompetency parses a "YYYY-MM" competency token.
func ParseCompetency(token string) (time.Time, error) {
	t, err := time.Parse(CompetencyLayout, token)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid competency %q: expected YYYY-MM", token)
	}
	return t, nil
}

// Date is a shorthand for a UTC midnight date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
