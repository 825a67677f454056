package analysis

import (
	"math"
	"strings"

	"github.com/seoulbdc/heatwalk/internal/domain"
)

// GroupStat is one aggregated group in serializable form. Masked groups carry
// a zero value so the suppressed count never leaves the process.
type GroupStat struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Count  int     `json:"count"`
	Masked bool    `json:"masked,omitempty"`
}

// groupStats flattens an aggregation result. Groups whose aggregate is NaN
// (all source values missing under the propagate policy) are dropped, since
// they carry no measurable signal and NaN does not serialize to JSON.
func groupStats(g *domain.Grouped) []GroupStat {
	out := make([]GroupStat, 0, g.Len())
	for _, grp := range g.Groups() {
		if math.IsNaN(grp.Value) {
			continue
		}
		stat := GroupStat{
			Name:   strings.Join(grp.Fields, "→"),
			Value:  grp.Value,
			Count:  grp.Count,
			Masked: grp.Masked,
		}
		if stat.Masked {
			stat.Value = 0
		}
		out = append(out, stat)
	}
	return out
}
