package calculation

import (
	"sort"

	"github.com/rgehrsitz/prevsim/internal/domain"
)

// NormalizePeriods merges overlapping contribution periods.
//
// Periods are sorted by start date and walked in order. A period starting on or
// before the end of the running merged period is folded into it: the end date
// becomes the later of the two, the category with the higher priority wins (the
// earlier one on equal priority) together with its notes, and the merged period
// is marked adjusted. The result is sorted and pairwise non-overlapping. The
// input slice is not modified.
func NormalizePeriods(periods []domain.ContributionPeriod) []domain.ContributionPeriod {
	if len(periods) == 0 {
		return []domain.ContributionPeriod{}
	}

	sorted := make([]domain.ContributionPeriod, len(periods))
	copy(sorted, periods)
	for i := range sorted {
		if sorted[i].OverlapStatus == "" {
			sorted[i].OverlapStatus = domain.OverlapOK
		}
	}
	if len(sorted) == 1 {
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	normalized := make([]domain.ContributionPeriod, 0, len(sorted))
	current := sorted[0]
	for _, next := range sorted[1:] {
		if !current.Overlaps(next) {
			normalized = append(normalized, current)
			current = next
			continue
		}

		if next.End.After(current.End) {
			current.End = next.End
		}
		if next.Category.Priority() > current.Category.Priority() {
			current.Category = next.Category
			current.Notes = next.Notes
		}
		current.CountsTowardQualifyingPeriod = current.CountsTowardQualifyingPeriod || next.CountsTowardQualifyingPeriod
		current.OverlapStatus = domain.OverlapAdjusted
	}
	normalized = append(normalized, current)

	return normalized
}
