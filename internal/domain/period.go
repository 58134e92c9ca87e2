package domain

import (
	"strings"
	"time"
)

// Category classifies the activity exercised during a contribution period
type Category string

const (
	CategoryCommon             Category = "common"
	CategorySpecial15          Category = "special_15"
	CategorySpecial20          Category = "special_20"
	CategorySpecial25          Category = "special_25"
	CategoryDisabilityMild     Category = "disability_mild"
	CategoryDisabilityModerate Category = "disability_moderate"
	CategoryDisabilitySevere   Category = "disability_severe"
)

// Categories lists every known category in ascending priority order
var Categories = []Category{
	CategoryCommon,
	CategoryDisabilityMild,
	CategoryDisabilityModerate,
	CategoryDisabilitySevere,
	CategorySpecial25,
	CategorySpecial20,
	CategorySpecial15,
}

// Priority ranks categories when overlapping periods are merged. Higher wins.
// Unknown categories rank below common.
func (c Category) Priority() int {
	for i, known := range Categories {
		if known == c {
			return i
		}
	}
	return -1
}

// IsSpecial reports whether the category is a special-activity category
func (c Category) IsSpecial() bool {
	return strings.HasPrefix(string(c), "special")
}

// Valid reports whether the category is one of the known categories
func (c Category) Valid() bool {
	return c.Priority() >= 0
}

// OverlapStatus records whether normalization changed a period
type OverlapStatus string

const (
	OverlapOK       OverlapStatus = "ok"
	OverlapAdjusted OverlapStatus = "adjusted"
)

// Source is the provenance of an imported record
type Source string

const (
	SourceCNIS        Source = "cnis"
	SourceSpreadsheet Source = "spreadsheet"
	SourceManual      Source = "manual"
)

// ContributionPeriod is a span of contribution in a given category. Start and End are inclusive dates.
type ContributionPeriod struct {
	ID                           string        `yaml:"id" json:"id"`
	Start                        time.Time     `yaml:"start" json:"start"`
	End                          time.Time     `yaml:"end" json:"end"`
	Category                     Category      `yaml:"category" json:"category"`
	CountsTowardQualifyingPeriod bool          `yaml:"counts_toward_qualifying_period" json:"countsTowardQualifyingPeriod"`
	Source                       Source        `yaml:"source,omitempty" json:"source,omitempty"`
	OverlapStatus                OverlapStatus `yaml:"overlap_status,omitempty" json:"overlapStatus,omitempty"`
	Notes                        string        `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// Overlaps reports whether other starts on or before the end of p and ends on or after its start
func (p ContributionPeriod) Overlaps(other ContributionPeriod) bool {
	return !other.Start.After(p.End) && !other.End.Before(p.Start)
}
