package domain

import (
	"fmt"
	"math"
)

// weightTolerance is the allowed deviation of a composite's weight sum
// from 1.0.
const weightTolerance = 1e-6

// InvalidWeightError reports composite component weights that do not sum
// to 1.0 within tolerance. Weights are never silently normalized.
type InvalidWeightError struct {
	Index string
	Sum   float64
}

func (e *InvalidWeightError) Error() string {
	return fmt.Sprintf("composite index %q: weights sum to %g, want 1.0", e.Index, e.Sum)
}

// MissingGradeError reports a Compute call whose grade mapping lacks an
// entry for one of the index's component scales.
type MissingGradeError struct {
	Index string
	Scale string
}

func (e *MissingGradeError) Error() string {
	return fmt.Sprintf("composite index %q: no grade supplied for scale %q", e.Index, e.Scale)
}

// Component pairs a grade scale with its weight in a composite index.
type Component struct {
	Scale  *GradeScale
	Weight float64
}

// CompositeIndex combines the ordinal ranks of several grade scale outputs
// into a single weighted score: scaleFactor × Σ(rank × weight).
type CompositeIndex struct {
	name        string
	scaleFactor float64
	components  []Component
}

// NewCompositeIndex validates the component weights at construction time
// and returns the index. scaleFactor stretches the rank-weighted sum onto a
// human-readable range; 20 puts a five-grade index on a 0–100 scale.
func NewCompositeIndex(name string, scaleFactor float64, components ...Component) (*CompositeIndex, error) {
	if len(components) < 2 {
		return nil, fmt.Errorf("composite index %q: need at least 2 components, got %d", name, len(components))
	}
	sum := 0.0
	for _, c := range components {
		if c.Scale == nil {
			return nil, fmt.Errorf("composite index %q: nil component scale", name)
		}
		sum += c.Weight
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return nil, &InvalidWeightError{Index: name, Sum: sum}
	}
	return &CompositeIndex{name: name, scaleFactor: scaleFactor, components: components}, nil
}

// Name returns the index's identifier.
func (ci *CompositeIndex) Name() string { return ci.name }

// Compute maps each supplied grade label to its 1-based rank within the
// originating scale and returns scaleFactor × Σ(rank × weight). The result
// is not clipped: rank cardinality and weights decide the effective range.
func (ci *CompositeIndex) Compute(grades map[string]string) (float64, error) {
	total := 0.0
	for _, c := range ci.components {
		label, ok := grades[c.Scale.Name()]
		if !ok {
			return 0, &MissingGradeError{Index: ci.name, Scale: c.Scale.Name()}
		}
		rank, err := c.Scale.Rank(label)
		if err != nil {
			return 0, fmt.Errorf("composite index %q: %w", ci.name, err)
		}
		total += float64(rank) * c.Weight
	}
	return ci.scaleFactor * total, nil
}
