package domain

import (
	"fmt"
	"math"
)

// MissingPolicy controls how Classify treats NaN input. The two modes match
// the strategies callers actually need: treat the gap as zero, or let it
// fall out of downstream grouping.
type MissingPolicy int

const (
	// MissingZero classifies NaN as if the value were 0.
	MissingZero MissingPolicy = iota

	// MissingPropagate returns an ungraded outcome for NaN.
	MissingPropagate
)

// Interval is one piece of a grade scale partition: (Lower, Upper] → Label.
type Interval struct {
	Lower float64
	Upper float64
	Label string
}

// GradeScale is a named, ordered, total partition of the real line into
// labeled intervals. Bounds are strictly increasing and labels unique, so
// every finite value maps to exactly one label.
type GradeScale struct {
	name      string
	intervals []Interval
	ranks     map[string]int // label → 1-based position
}

// NewGradeScale builds a scale from k-1 internal breakpoints and k ordered
// labels. The first interval runs from -Inf to the first breakpoint and the
// last from the final breakpoint to +Inf.
func NewGradeScale(name string, breakpoints []float64, labels []string) (*GradeScale, error) {
	if len(labels) < 2 {
		return nil, fmt.Errorf("scale %q: need at least 2 labels, got %d", name, len(labels))
	}
	if len(breakpoints) != len(labels)-1 {
		return nil, fmt.Errorf("scale %q: %d breakpoints require %d labels, got %d",
			name, len(breakpoints), len(breakpoints)+1, len(labels))
	}
	for i, b := range breakpoints {
		if math.IsNaN(b) {
			return nil, fmt.Errorf("scale %q: NaN breakpoint at position %d", name, i)
		}
		if i > 0 && b <= breakpoints[i-1] {
			return nil, fmt.Errorf("scale %q: breakpoints not strictly increasing at %v", name, b)
		}
	}

	ranks := make(map[string]int, len(labels))
	intervals := make([]Interval, len(labels))
	for i, label := range labels {
		if label == "" {
			return nil, fmt.Errorf("scale %q: empty label at position %d", name, i)
		}
		if _, dup := ranks[label]; dup {
			return nil, fmt.Errorf("scale %q: duplicate label %q", name, label)
		}
		ranks[label] = i + 1

		lower, upper := math.Inf(-1), math.Inf(1)
		if i > 0 {
			lower = breakpoints[i-1]
		}
		if i < len(breakpoints) {
			upper = breakpoints[i]
		}
		intervals[i] = Interval{Lower: lower, Upper: upper, Label: label}
	}

	return &GradeScale{name: name, intervals: intervals, ranks: ranks}, nil
}

// Name returns the scale's identifier, used as the grade key in composite
// index computation.
func (s *GradeScale) Name() string { return s.name }

// Len returns the number of grades in the scale.
func (s *GradeScale) Len() int { return len(s.intervals) }

// Labels returns the ordered grade labels, lowest interval first.
func (s *GradeScale) Labels() []string {
	out := make([]string, len(s.intervals))
	for i, iv := range s.intervals {
		out[i] = iv.Label
	}
	return out
}

// Intervals returns a copy of the scale's partition.
func (s *GradeScale) Intervals() []Interval {
	out := make([]Interval, len(s.intervals))
	copy(out, s.intervals)
	return out
}

// Classify returns the label of the interval containing v under the
// exclusive-lower/inclusive-upper convention. The boolean is false only
// under MissingPropagate with NaN input, the ungraded outcome.
func (s *GradeScale) Classify(v float64, policy MissingPolicy) (string, bool) {
	if math.IsNaN(v) {
		if policy == MissingPropagate {
			return "", false
		}
		v = 0
	}

	// Binary search for the first interval whose upper bound contains v.
	lo, hi := 0, len(s.intervals)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if v <= s.intervals[mid].Upper {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return s.intervals[lo].Label, true
}

// Rank returns the 1-based position of label within the scale.
func (s *GradeScale) Rank(label string) (int, error) {
	r, ok := s.ranks[label]
	if !ok {
		return 0, fmt.Errorf("scale %q: unknown label %q", s.name, label)
	}
	return r, nil
}
