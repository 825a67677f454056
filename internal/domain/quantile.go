package domain

import (
	"fmt"
	"math"
	"sort"
)

// InsufficientDataError reports a quantile scale requested over a column
// with fewer non-missing values than grade groups.
type InsufficientDataError struct {
	Scale string
	Need  int
	Have  int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("quantile scale %q: need %d non-missing values, have %d", e.Scale, e.Need, e.Have)
}

// NewQuantileScale derives a GradeScale whose breakpoints are the empirical
// k-quantiles of column, computed by linear interpolation between order
// statistics. NaN entries are ignored; input order is irrelevant.
//
// When tied values make adjacent breakpoints coincide, the duplicates are
// removed and the highest labels dropped first, so the scale silently
// collapses to the number of distinct bins. This is an accepted degeneracy,
// not an error.
func NewQuantileScale(name string, column []float64, k int, labels []string) (*GradeScale, error) {
	if k < 2 {
		return nil, fmt.Errorf("quantile scale %q: k must be at least 2, got %d", name, k)
	}
	if len(labels) != k {
		return nil, fmt.Errorf("quantile scale %q: %d groups require %d labels, got %d", name, k, k, len(labels))
	}

	values := make([]float64, 0, len(column))
	for _, v := range column {
		if !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	if len(values) < k {
		return nil, &InsufficientDataError{Scale: name, Need: k, Have: len(values)}
	}
	sort.Float64s(values)

	breakpoints := make([]float64, 0, k-1)
	for i := 1; i < k; i++ {
		q := quantile(values, float64(i)/float64(k))
		if len(breakpoints) > 0 && q == breakpoints[len(breakpoints)-1] {
			continue
		}
		breakpoints = append(breakpoints, q)
	}

	return NewGradeScale(name, breakpoints, labels[:len(breakpoints)+1])
}

// quantile returns the q-quantile of sorted values using the linear
// interpolation estimator (R-7).
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	if lo+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
