package domain

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fiveGrades = []string{"매우낮음", "낮음", "보통", "높음", "매우높음"}

func TestNewQuantileScale_ArgumentValidation(t *testing.T) {
	col := []float64{1, 2, 3, 4, 5}

	_, err := NewQuantileScale("density", col, 1, []string{"a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "k must be at least 2")

	_, err = NewQuantileScale("density", col, 3, []string{"a", "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "require 3 labels")
}

func TestNewQuantileScale_InsufficientData(t *testing.T) {
	col := []float64{1, 2, math.NaN(), math.NaN()}

	_, err := NewQuantileScale("density", col, 5, fiveGrades)
	require.Error(t, err)

	var insufficient *InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 5, insufficient.Need)
	assert.Equal(t, 2, insufficient.Have)
}

// With 1,000 distinct uniform values and k=5, each grade bucket holds 200±1
// observations.
func TestNewQuantileScale_QuantileBalance(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	col := make([]float64, 1000)
	for i := range col {
		col[i] = float64(i) + rng.Float64()*0.5 // distinct, uniformly spread
	}
	rng.Shuffle(len(col), func(i, j int) { col[i], col[j] = col[j], col[i] })

	s, err := NewQuantileScale("density", col, 5, fiveGrades)
	require.NoError(t, err)
	require.Equal(t, 5, s.Len())

	counts := map[string]int{}
	for _, v := range col {
		label, ok := s.Classify(v, MissingPropagate)
		require.True(t, ok)
		counts[label]++
	}
	for _, label := range s.Labels() {
		assert.InDelta(t, 200, counts[label], 1, "bucket %q", label)
	}
}

func TestNewQuantileScale_Deterministic(t *testing.T) {
	col := []float64{9, 1, 7, 3, 5, 2, 8, 4, 6, 10}

	s1, err := NewQuantileScale("density", col, 5, fiveGrades)
	require.NoError(t, err)
	s2, err := NewQuantileScale("density", col, 5, fiveGrades)
	require.NoError(t, err)

	assert.Equal(t, s1.Intervals(), s2.Intervals())
}

// Heavily tied data collapses coinciding breakpoints; the highest labels
// are dropped first and the remaining scale stays monotonic.
func TestNewQuantileScale_DegenerateCollapse(t *testing.T) {
	col := []float64{1, 1, 1, 1, 1, 1, 1, 1, 50, 100}

	s, err := NewQuantileScale("density", col, 5, fiveGrades)
	require.NoError(t, err)

	assert.Less(t, s.Len(), 5)
	labels := s.Labels()
	assert.Equal(t, fiveGrades[:len(labels)], labels)

	// All values still classify into one of the surviving labels.
	for _, v := range col {
		label, ok := s.Classify(v, MissingPropagate)
		require.True(t, ok)
		_, err := s.Rank(label)
		assert.NoError(t, err)
	}
}

func TestNewQuantileScale_IgnoresMissing(t *testing.T) {
	col := []float64{math.NaN(), 1, 2, math.NaN(), 3, 4, 5, math.NaN()}

	s, err := NewQuantileScale("density", col, 5, fiveGrades)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Len())
}

func TestNewQuantileScale_ErrorsAreTyped(t *testing.T) {
	_, err := NewQuantileScale("density", nil, 5, fiveGrades)
	var insufficient *InsufficientDataError
	assert.True(t, errors.As(err, &insufficient))
}
