package analysis

import (
	"fmt"
	"sort"

	"github.com/seoulbdc/heatwalk/internal/domain"
)

// Mobility dataset fields.
const (
	FieldAge         = "age"
	FieldSex         = "sex"
	FieldOrigin      = "origin"
	FieldDestination = "destination"
	FieldPlaceType   = "place_type"
	FieldTrips       = "trips"
)

// Age buckets are five-year cohort labels. Elderly is 60 and over, child is
// 15 and under, matching the census cohort boundaries.
var (
	elderlyAges = map[string]bool{"60": true, "65": true, "70": true, "75": true, "80": true}
	childAges   = map[string]bool{"0": true, "5": true, "10": true, "15": true}
)

// topAgeBuckets bounds the by-age listing.
const topAgeBuckets = 5

// MovementSummary is the mobility pattern analysis result. Origin and
// elderly origin-destination sums at or below the mask threshold are
// suppressed before they reach any output.
type MovementSummary struct {
	TotalTrips   float64     `json:"total_trips"`
	ElderlyTrips float64     `json:"elderly_trips"`
	ChildTrips   float64     `json:"child_trips"`
	ByAge        []GroupStat `json:"by_age"`
	SexShares    []GroupStat `json:"sex_shares"`
	ByOrigin     []GroupStat `json:"by_origin"`
	ByPlaceType  []GroupStat `json:"by_place_type"`
	ElderlyOD    []GroupStat `json:"elderly_od"`

	originTotals map[string]float64
}

// OriginTrips returns the unmasked trip total departing from a region. The
// site ranking consumes this internally; the published ByOrigin stats stay
// masked.
func (s *MovementSummary) OriginTrips(region string) (float64, bool) {
	v, ok := s.originTotals[region]
	return v, ok
}

// AnalyzeMovement sums trips across the mobility dimensions: age cohort,
// sex, origin region, place type, and elderly origin-destination pairs.
func AnalyzeMovement(batch []domain.Observation, opts Options) (*MovementSummary, error) {
	if len(batch) == 0 {
		return nil, fmt.Errorf("movement: no observations")
	}

	summary := &MovementSummary{originTotals: make(map[string]float64)}
	summary.TotalTrips, _ = domain.Aggregate(batch, domain.Key{}, FieldTrips, domain.OpSum).Value()

	byAge := domain.Aggregate(batch, domain.Key{FieldAge}, FieldTrips, domain.OpSum)
	for _, grp := range byAge.Groups() {
		switch {
		case elderlyAges[grp.Fields[0]]:
			summary.ElderlyTrips += grp.Value
		case childAges[grp.Fields[0]]:
			summary.ChildTrips += grp.Value
		}
	}
	summary.ByAge = topByValue(groupStats(byAge), topAgeBuckets)

	bySex := domain.Aggregate(batch, domain.Key{FieldSex}, FieldTrips, domain.OpSum)
	summary.SexShares = shares(groupStats(bySex))

	byOrigin := domain.Aggregate(batch, domain.Key{FieldOrigin}, FieldTrips, domain.OpSum)
	for _, grp := range byOrigin.Groups() {
		summary.originTotals[grp.Fields[0]] = grp.Value
	}
	summary.ByOrigin = groupStats(byOrigin.MaskSmall(opts.MaskThreshold))

	byPlace := domain.Aggregate(batch, domain.Key{FieldPlaceType}, FieldTrips, domain.OpSum)
	summary.ByPlaceType = groupStats(byPlace)

	elderly := make([]domain.Observation, 0, len(batch))
	for _, obs := range batch {
		if age, ok := obs.Category(FieldAge); ok && elderlyAges[age] {
			elderly = append(elderly, obs)
		}
	}
	elderlyOD := domain.Aggregate(elderly, domain.Key{FieldOrigin, FieldDestination}, FieldTrips, domain.OpSum)
	summary.ElderlyOD = groupStats(elderlyOD.MaskSmall(opts.MaskThreshold))

	return summary, nil
}

// topByValue sorts stats by value descending, name ascending on ties, and
// keeps the first n.
func topByValue(stats []GroupStat, n int) []GroupStat {
	sorted := make([]GroupStat, len(stats))
	copy(sorted, stats)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Value != sorted[j].Value {
			return sorted[i].Value > sorted[j].Value
		}
		return sorted[i].Name < sorted[j].Name
	})
	if n > 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// shares rescales stat values to fractions of their sum.
func shares(stats []GroupStat) []GroupStat {
	total := 0.0
	for _, s := range stats {
		total += s.Value
	}
	if total == 0 {
		return stats
	}
	out := make([]GroupStat, len(stats))
	copy(out, stats)
	for i := range out {
		out[i].Value /= total
	}
	return out
}
