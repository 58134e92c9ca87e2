package domain

import (
	"time"

	"github.com/rgehrsitz/prevsim/pkg/dateutil"
)

// Sex drives the sex-dependent minimum ages, points thresholds and base years
type Sex string

const (
	SexFemale      Sex = "female"
	SexMale        Sex = "male"
	SexOther       Sex = "other"
	SexUndisclosed Sex = "undisclosed"
)

// IsFemale reports whether female thresholds apply
func (s Sex) IsFemale() bool {
	return s == SexFemale
}

// Valid reports whether s is a known value. The empty value counts as undisclosed.
func (s Sex) Valid() bool {
	switch s {
	case SexFemale, SexMale, SexOther, SexUndisclosed, "":
		return true
	}
	return false
}

// BasicClaimantData holds the personal data of the claimant
type BasicClaimantData struct {
	Sex                    Sex        `yaml:"sex" json:"sex"`
	BirthDate              *time.Time `yaml:"birth_date,omitempty" json:"birthDate,omitempty"`
	FilingDate             time.Time  `yaml:"filing_date" json:"filingDate"`
	ReaffirmedFilingDate   *time.Time `yaml:"reaffirmed_filing_date,omitempty" json:"reaffirmedFilingDate,omitempty"`
	TargetBenefitTypes     []RuleID   `yaml:"target_benefit_types,omitempty" json:"targetBenefitTypes,omitempty"`
	UnsureAboutBenefitType bool       `yaml:"unsure_about_benefit_type,omitempty" json:"unsureAboutBenefitType,omitempty"`
	SimplifiedMode         bool       `yaml:"simplified_mode,omitempty" json:"simplifiedMode,omitempty"`
}

// Age calculates the whole-year age of the claimant at the given date.
// Without a birth date the date itself stands in for it, which yields zero.
func (c *BasicClaimantData) Age(atDate time.Time) int {
	birth := atDate
	if c.BirthDate != nil {
		birth = *c.BirthDate
	}
	return dateutil.WholeYears(birth, atDate)
}

// HasReaffirmedFilingDate reports whether a later filing date should be simulated
func (c *BasicClaimantData) HasReaffirmedFilingDate() bool {
	return c.ReaffirmedFilingDate != nil && !c.ReaffirmedFilingDate.IsZero()
}
