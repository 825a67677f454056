package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func heatScale(t *testing.T) *GradeScale {
	t.Helper()
	s, err := NewGradeScale("heat_risk",
		[]float64{25, 28, 31, 35},
		[]string{"안전", "주의", "경고", "위험", "매우위험"})
	require.NoError(t, err)
	return s
}

func TestNewGradeScale_Validation(t *testing.T) {
	tests := []struct {
		name        string
		breakpoints []float64
		labels      []string
		wantErr     string
	}{
		{"too few labels", nil, []string{"only"}, "at least 2 labels"},
		{"arity mismatch", []float64{1, 2}, []string{"a", "b"}, "require 3 labels"},
		{"not increasing", []float64{2, 2}, []string{"a", "b", "c"}, "strictly increasing"},
		{"decreasing", []float64{3, 1}, []string{"a", "b", "c"}, "strictly increasing"},
		{"NaN breakpoint", []float64{math.NaN()}, []string{"a", "b"}, "NaN breakpoint"},
		{"duplicate label", []float64{1}, []string{"a", "a"}, "duplicate label"},
		{"empty label", []float64{1}, []string{"a", ""}, "empty label"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGradeScale("bad", tt.breakpoints, tt.labels)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClassify_BoundaryConventions(t *testing.T) {
	s := heatScale(t)

	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"far below first breakpoint", -40, "안전"},
		{"upper bound is inclusive", 25, "안전"},
		{"just above breakpoint", 25.0001, "주의"},
		{"inner bound inclusive", 31, "경고"},
		{"last interval open above", 35.0001, "매우위험"},
		{"positive infinity", math.Inf(1), "매우위험"},
		{"negative infinity", math.Inf(-1), "안전"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, ok := s.Classify(tt.value, MissingPropagate)
			require.True(t, ok)
			assert.Equal(t, tt.want, label)
		})
	}
}

// Every finite value maps to exactly one of the declared labels.
func TestClassify_TotalCoverage(t *testing.T) {
	s := heatScale(t)
	declared := map[string]bool{}
	for _, l := range s.Labels() {
		declared[l] = true
	}

	for v := -100.0; v <= 100.0; v += 0.37 {
		label, ok := s.Classify(v, MissingPropagate)
		require.True(t, ok, "value %v", v)
		assert.True(t, declared[label], "value %v produced undeclared label %q", v, label)
	}
}

func TestClassify_MonotonicConsistency(t *testing.T) {
	s := heatScale(t)

	prev := 0
	for v := -50.0; v <= 60.0; v += 0.5 {
		label, ok := s.Classify(v, MissingPropagate)
		require.True(t, ok)
		rank, err := s.Rank(label)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, rank, prev, "rank decreased at %v", v)
		prev = rank
	}
}

func TestClassify_MissingPolicies(t *testing.T) {
	s := heatScale(t)

	t.Run("propagate returns ungraded", func(t *testing.T) {
		label, ok := s.Classify(math.NaN(), MissingPropagate)
		assert.False(t, ok)
		assert.Empty(t, label)
	})

	t.Run("zero classifies as zero", func(t *testing.T) {
		label, ok := s.Classify(math.NaN(), MissingZero)
		require.True(t, ok)
		assert.Equal(t, "안전", label)
	})
}

func TestRank(t *testing.T) {
	s := heatScale(t)

	rank, err := s.Rank("위험")
	require.NoError(t, err)
	assert.Equal(t, 4, rank)

	_, err = s.Rank("없는등급")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown label")
}

func TestIntervals_TotalPartition(t *testing.T) {
	s := heatScale(t)
	ivs := s.Intervals()

	require.Len(t, ivs, 5)
	assert.True(t, math.IsInf(ivs[0].Lower, -1))
	assert.True(t, math.IsInf(ivs[len(ivs)-1].Upper, 1))
	for i := 1; i < len(ivs); i++ {
		assert.Equal(t, ivs[i-1].Upper, ivs[i].Lower, "gap between intervals %d and %d", i-1, i)
	}
}
