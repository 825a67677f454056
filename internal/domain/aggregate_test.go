package domain

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func obs(age string, pop float64) Observation {
	return Observation{
		Numeric:     map[string]float64{"pop": pop},
		Categorical: map[string]string{"age": age},
	}
}

func TestAggregate_SumInsertionOrder(t *testing.T) {
	batch := []Observation{obs("20", 10), obs("20", 5), obs("30", 7)}

	g := Aggregate(batch, Key{"age"}, "pop", OpSum)

	want := []Group{
		{Fields: []string{"20"}, Value: 15, Count: 2},
		{Fields: []string{"30"}, Value: 7, Count: 1},
	}
	if diff := cmp.Diff(want, g.Groups()); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_Operators(t *testing.T) {
	batch := []Observation{obs("20", 10), obs("20", 4), obs("30", 7)}

	tests := []struct {
		name string
		op   Op
		want float64
	}{
		{"sum", OpSum, 14},
		{"mean", OpMean, 7},
		{"min", OpMin, 4},
		{"max", OpMax, 10},
		{"count", OpCount, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Aggregate(batch, Key{"age"}, "pop", tt.op)
			v, ok := g.Value("20")
			require.True(t, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestAggregate_MissingValues(t *testing.T) {
	missing := Observation{
		Numeric:     map[string]float64{"pop": math.NaN()},
		Categorical: map[string]string{"age": "20"},
	}
	batch := []Observation{obs("20", 10), missing, obs("20", 2)}

	t.Run("sum excludes missing", func(t *testing.T) {
		g := Aggregate(batch, Key{"age"}, "pop", OpSum)
		v, _ := g.Value("20")
		assert.Equal(t, 12.0, v)
	})

	t.Run("mean excludes missing", func(t *testing.T) {
		g := Aggregate(batch, Key{"age"}, "pop", OpMean)
		v, _ := g.Value("20")
		assert.Equal(t, 6.0, v)
	})

	t.Run("count includes missing", func(t *testing.T) {
		g := Aggregate(batch, Key{"age"}, "pop", OpCount)
		v, _ := g.Value("20")
		assert.Equal(t, 3.0, v)
	})

	t.Run("all-missing partition yields NaN mean", func(t *testing.T) {
		g := Aggregate([]Observation{missing}, Key{"age"}, "pop", OpMean)
		v, ok := g.Value("20")
		require.True(t, ok)
		assert.True(t, math.IsNaN(v))
	})
}

func TestAggregate_SkipsObservationsMissingKeyField(t *testing.T) {
	noAge := Observation{Numeric: map[string]float64{"pop": 99}}
	batch := []Observation{obs("20", 10), noAge}

	g := Aggregate(batch, Key{"age"}, "pop", OpSum)
	assert.Equal(t, 1, g.Len())
}

func TestAggregate_CompositeKey(t *testing.T) {
	od := func(origin, dest string, n float64) Observation {
		return Observation{
			Numeric:     map[string]float64{"trips": n},
			Categorical: map[string]string{"origin": origin, "dest": dest},
		}
	}
	batch := []Observation{
		od("종로구", "중구", 12),
		od("종로구", "중구", 3),
		od("중구", "종로구", 8),
	}

	g := Aggregate(batch, Key{"origin", "dest"}, "trips", OpSum)

	require.Equal(t, 2, g.Len())
	v, ok := g.Value("종로구", "중구")
	require.True(t, ok)
	assert.Equal(t, 15.0, v)
}

func TestAggregate_Idempotent(t *testing.T) {
	batch := []Observation{obs("20", 10), obs("30", 7), obs("20", 5)}

	first := Aggregate(batch, Key{"age"}, "pop", OpSum)
	second := Aggregate(batch, Key{"age"}, "pop", OpSum)

	assert.Equal(t, first.Groups(), second.Groups())
}

func TestGrouped_Total(t *testing.T) {
	batch := []Observation{obs("20", 10), obs("30", 7)}
	g := Aggregate(batch, Key{"age"}, "pop", OpSum)
	assert.Equal(t, 17.0, g.Total())
}

func TestGrouped_MaskSmall(t *testing.T) {
	batch := []Observation{obs("20", 10), obs("30", 3), obs("40", 2)}
	g := Aggregate(batch, Key{"age"}, "pop", OpSum)

	masked := g.MaskSmall(3)

	groups := masked.Groups()
	require.Len(t, groups, 3)
	assert.False(t, groups[0].Masked)
	assert.True(t, groups[1].Masked)
	assert.True(t, groups[2].Masked)

	// The original result stays untouched.
	for _, grp := range g.Groups() {
		assert.False(t, grp.Masked)
	}
}
