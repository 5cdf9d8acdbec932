package monitor

import (
	"sort"

	"github.com/savoirtech/ctop/internal/config"
)

// Sort returns a copy of samples ordered by col, ascending unless reverse is
// set. Samples with equal keys keep their collection order in both
// directions. The input is not modified.
func Sort(samples SampleSet, col config.DisplayColumn, reverse bool) SampleSet {
	sorted := make(SampleSet, len(samples))
	copy(sorted, samples)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Value(col), sorted[j].Value(col)
		if reverse {
			return a > b
		}
		return a < b
	})
	return sorted
}
