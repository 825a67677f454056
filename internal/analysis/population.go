package analysis

import (
	"fmt"
	"sort"

	"github.com/seoulbdc/heatwalk/internal/domain"
)

// Population dataset fields.
const (
	FieldRegion        = "region"
	FieldPopulation    = "population"
	FieldHouseholdSize = "household_size"
	FieldDensity       = "density"
)

// RegionVulnerability scores one region's heat vulnerability from its
// population density and family structure.
type RegionVulnerability struct {
	Region        string  `json:"region"`
	Population    float64 `json:"population"`
	Density       float64 `json:"density"`
	HouseholdSize float64 `json:"household_size"`
	DensityGrade  string  `json:"density_grade"`
	FamilyType    string  `json:"family_type"`
	Score         float64 `json:"score"`
}

// PopulationSummary is the population vulnerability analysis result.
type PopulationSummary struct {
	TotalPopulation   float64               `json:"total_population"`
	MeanHouseholdSize float64               `json:"mean_household_size"`
	DensityGrades     []GroupStat           `json:"density_grades"`
	Regions           []RegionVulnerability `json:"regions"`
	Top               []RegionVulnerability `json:"top"`
}

// AnalyzePopulation grades every region's density against the run's own
// distribution and combines it with the family structure grade into a
// vulnerability score. Missing numerics grade as zero: a region absent from
// a census column reads as the lowest grade, never as an error.
func AnalyzePopulation(batch []domain.Observation, opts Options) (*PopulationSummary, error) {
	if len(batch) == 0 {
		return nil, fmt.Errorf("population: no observations")
	}

	density, err := domain.NewQuantileScale(ScaleDensity,
		domain.Column(batch, FieldDensity), len(DensityGradeLabels), DensityGradeLabels)
	if err != nil {
		return nil, fmt.Errorf("population: %w", err)
	}

	vulnerability, err := domain.NewCompositeIndex("population_vulnerability", compositeScaleFactor,
		domain.Component{Scale: density, Weight: opts.Weights.Vulnerability.Density},
		domain.Component{Scale: opts.Scales.Family, Weight: opts.Weights.Vulnerability.Family},
	)
	if err != nil {
		return nil, fmt.Errorf("population: %w", err)
	}

	summary := &PopulationSummary{}
	households := 0
	for _, obs := range batch {
		region, ok := obs.Category(FieldRegion)
		if !ok {
			continue
		}

		pop := numberOrZero(obs, FieldPopulation)
		dens := numberOrZero(obs, FieldDensity)
		size := numberOrZero(obs, FieldHouseholdSize)

		densityGrade, _ := density.Classify(dens, domain.MissingZero)
		familyType, _ := opts.Scales.Family.Classify(size, domain.MissingZero)

		score, err := vulnerability.Compute(map[string]string{
			ScaleDensity: densityGrade,
			ScaleFamily:  familyType,
		})
		if err != nil {
			return nil, fmt.Errorf("population: region %s: %w", region, err)
		}

		summary.Regions = append(summary.Regions, RegionVulnerability{
			Region:        region,
			Population:    pop,
			Density:       dens,
			HouseholdSize: size,
			DensityGrade:  densityGrade,
			FamilyType:    familyType,
			Score:         score,
		})
		summary.TotalPopulation += pop
		if size > 0 {
			summary.MeanHouseholdSize += size
			households++
		}
	}
	if len(summary.Regions) == 0 {
		return nil, fmt.Errorf("population: no observations carry a %s field", FieldRegion)
	}
	if households > 0 {
		summary.MeanHouseholdSize /= float64(households)
	}

	summary.DensityGrades = gradeDistribution(density, summary.Regions)
	summary.Top = topVulnerable(summary.Regions, opts.TopRegions)
	return summary, nil
}

// gradeDistribution counts regions per density grade, in scale order.
func gradeDistribution(scale *domain.GradeScale, regions []RegionVulnerability) []GroupStat {
	counts := make(map[string]int)
	for _, r := range regions {
		counts[r.DensityGrade]++
	}
	out := make([]GroupStat, 0, scale.Len())
	for _, label := range scale.Labels() {
		out = append(out, GroupStat{
			Name:  label,
			Value: float64(counts[label]),
			Count: counts[label],
		})
	}
	return out
}

func topVulnerable(regions []RegionVulnerability, n int) []RegionVulnerability {
	sorted := make([]RegionVulnerability, len(regions))
	copy(sorted, regions)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].Region < sorted[j].Region
	})
	if n > 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

func numberOrZero(obs domain.Observation, field string) float64 {
	if v, ok := obs.Number(field); ok {
		return v
	}
	return 0
}
