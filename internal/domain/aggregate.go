package domain

import (
	"math"
	"strings"
)

// Op is a grouped aggregation operator.
type Op int

const (
	OpSum Op = iota
	OpMean
	OpMin
	OpMax
	OpCount
)

// String returns the operator name used in logs.
func (op Op) String() string {
	switch op {
	case OpSum:
		return "sum"
	case OpMean:
		return "mean"
	case OpMin:
		return "min"
	case OpMax:
		return "max"
	case OpCount:
		return "count"
	default:
		return "unknown"
	}
}

// Key is an ordered list of categorical grouping fields.
type Key []string

// Group is one partition of an aggregated batch.
type Group struct {
	// Fields holds the grouping dimension values, in Key order.
	Fields []string

	// Value is the aggregate of the value field under the requested Op.
	// Mean, min and max over a partition with no measured values are NaN.
	Value float64

	// Count is the number of observations in the partition, including
	// those missing the value field.
	Count int

	// Masked marks a group suppressed by MaskSmall for disclosure control.
	Masked bool
}

// Grouped is the result of Aggregate. Groups appear in first-seen order of
// their key tuples, deterministic for a given input order; callers wanting
// a display order sort an explicit copy.
type Grouped struct {
	key    Key
	op     Op
	groups []Group
	index  map[string]int
}

// groupSep joins key tuple values into a lookup key. Unit separator keeps
// composite keys unambiguous for any printable field value.
const groupSep = "\x1f"

type accumulator struct {
	fields []string
	sum    float64
	min    float64
	max    float64
	n      int // observations with a measured value field
	total  int // all observations in the partition
}

// Aggregate partitions the batch by the key fields and applies op over
// valueField within each partition.
//
// Observations missing any grouping field are skipped entirely. Missing
// values are excluded from sum, mean, min and max; OpCount counts every
// observation in the group regardless of the value field. Empty partitions
// never appear: a key exists only if at least one observation maps to it.
func Aggregate(batch []Observation, key Key, valueField string, op Op) *Grouped {
	g := &Grouped{key: key, op: op, index: make(map[string]int)}
	var accs []*accumulator

	for _, obs := range batch {
		fields := make([]string, len(key))
		complete := true
		for i, dim := range key {
			v, ok := obs.Category(dim)
			if !ok {
				complete = false
				break
			}
			fields[i] = v
		}
		if !complete {
			continue
		}

		id := strings.Join(fields, groupSep)
		pos, seen := g.index[id]
		if !seen {
			pos = len(accs)
			g.index[id] = pos
			accs = append(accs, &accumulator{
				fields: fields,
				min:    math.Inf(1),
				max:    math.Inf(-1),
			})
		}
		acc := accs[pos]
		acc.total++

		if v, ok := obs.Number(valueField); ok {
			acc.sum += v
			acc.n++
			if v < acc.min {
				acc.min = v
			}
			if v > acc.max {
				acc.max = v
			}
		}
	}

	g.groups = make([]Group, len(accs))
	for i, acc := range accs {
		g.groups[i] = Group{
			Fields: acc.fields,
			Value:  finalize(acc, op),
			Count:  acc.total,
		}
	}
	return g
}

func finalize(acc *accumulator, op Op) float64 {
	switch op {
	case OpSum:
		return acc.sum
	case OpMean:
		if acc.n == 0 {
			return math.NaN()
		}
		return acc.sum / float64(acc.n)
	case OpMin:
		if acc.n == 0 {
			return math.NaN()
		}
		return acc.min
	case OpMax:
		if acc.n == 0 {
			return math.NaN()
		}
		return acc.max
	case OpCount:
		return float64(acc.total)
	default:
		return math.NaN()
	}
}

// Len returns the number of groups.
func (g *Grouped) Len() int { return len(g.groups) }

// Groups returns a copy of the groups in first-seen key order.
func (g *Grouped) Groups() []Group {
	out := make([]Group, len(g.groups))
	copy(out, g.groups)
	return out
}

// Value looks up the aggregate for one key tuple.
func (g *Grouped) Value(fields ...string) (float64, bool) {
	pos, ok := g.index[strings.Join(fields, groupSep)]
	if !ok {
		return 0, false
	}
	return g.groups[pos].Value, true
}

// Total sums the group values, skipping NaN, for share-of-total ratios.
func (g *Grouped) Total() float64 {
	total := 0.0
	for _, grp := range g.groups {
		if !math.IsNaN(grp.Value) {
			total += grp.Value
		}
	}
	return total
}

// MaskSmall returns a copy with every group whose aggregate value is at or
// below threshold flagged masked. Output layers render masked groups
// without their value; the disclosure rule for person counts is threshold 3.
func (g *Grouped) MaskSmall(threshold float64) *Grouped {
	out := &Grouped{
		key:    g.key,
		op:     g.op,
		groups: make([]Group, len(g.groups)),
		index:  g.index,
	}
	copy(out.groups, g.groups)
	for i := range out.groups {
		if !math.IsNaN(out.groups[i].Value) && out.groups[i].Value <= threshold {
			out.groups[i].Masked = true
		}
	}
	return out
}
