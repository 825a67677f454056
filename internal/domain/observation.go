package domain

import "math"

// Observation is one raw input row: a set of named numeric and categorical
// fields. Identity is positional within a batch; the engine never mutates
// an observation after it is built.
type Observation struct {
	Numeric     map[string]float64
	Categorical map[string]string
}

// Number returns the numeric field value. The boolean is false when the
// field is absent or NaN, the two forms a missing measurement takes.
func (o Observation) Number(field string) (float64, bool) {
	v, ok := o.Numeric[field]
	if !ok || math.IsNaN(v) {
		return math.NaN(), false
	}
	return v, true
}

// Category returns the categorical field value, false when absent or blank.
func (o Observation) Category(field string) (string, bool) {
	v, ok := o.Categorical[field]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Column extracts one numeric field across a batch, preserving row order.
// Missing fields appear as NaN so positional identity survives.
func Column(batch []Observation, field string) []float64 {
	out := make([]float64, len(batch))
	for i, o := range batch {
		v, ok := o.Number(field)
		if !ok {
			out[i] = math.NaN()
			continue
		}
		out[i] = v
	}
	return out
}
