package analysis

import "github.com/seoulbdc/heatwalk/internal/domain"

// Scale names. Composite indices look grades up by these keys.
const (
	ScaleDensity    = "population_density"
	ScaleFamily     = "family_structure"
	ScaleHeatRisk   = "heat_risk"
	ScaleDiscomfort = "discomfort"
	ScaleUVRisk     = "uv_risk"

	ScaleSitePopulation  = "site_population"
	ScaleSiteEnvironment = "site_environment"
	ScaleSiteMovement    = "site_movement"
)

// Grade labels, lowest interval first.
var (
	DensityGradeLabels = []string{"매우낮음", "낮음", "보통", "높음", "매우높음"}
	FamilyTypeLabels   = []string{"1인가구형", "소가족형", "일반가족형", "대가족형"}
	HeatRiskLabels     = []string{"안전", "주의", "경고", "위험", "매우위험"}
	DiscomfortLabels   = []string{"쾌적", "보통", "약간불쾌", "불쾌", "매우불쾌"}
	UVRiskLabels       = []string{"낮음", "보통", "높음", "매우높음", "위험"}
	SiteGradeLabels    = []string{"매우낮음", "낮음", "보통", "높음", "매우높음"}
)

// compositeScaleFactor converts a weighted 1..5 rank mean onto a 0..100 axis.
const compositeScaleFactor = 20

// ScaleSet holds the fixed-breakpoint grade scales used by the analyses.
// The density and site pillar scales are quantile scales built per run and
// are not part of the set.
type ScaleSet struct {
	Family     *domain.GradeScale
	HeatRisk   *domain.GradeScale
	Discomfort *domain.GradeScale
	UVRisk     *domain.GradeScale
}

// VulnerabilityWeights weight the population vulnerability composite.
type VulnerabilityWeights struct {
	Density float64
	Family  float64
}

// EnvironmentWeights weight the environmental risk composite.
type EnvironmentWeights struct {
	Heat       float64
	Discomfort float64
	UV         float64
}

// SiteWeights weight the site ranking composite.
type SiteWeights struct {
	Population  float64
	Environment float64
	Movement    float64
}

// WeightSet groups the composite weights. Each set must sum to 1.0; the
// composite constructors reject anything else.
type WeightSet struct {
	Vulnerability VulnerabilityWeights
	Environment   EnvironmentWeights
	Site          SiteWeights
}

// Options parameterize an analysis run.
type Options struct {
	// MaskThreshold suppresses mobility groups at or below this trip count.
	MaskThreshold float64

	// TopRegions bounds the most-vulnerable-regions listing.
	TopRegions int

	Scales  ScaleSet
	Weights WeightSet
}

// DefaultOptions returns the standard scales and weights.
func DefaultOptions() Options {
	return Options{
		MaskThreshold: 3,
		TopRegions:    5,
		Scales: ScaleSet{
			Family:     mustScale(ScaleFamily, []float64{2.0, 2.5, 3.0}, FamilyTypeLabels),
			HeatRisk:   mustScale(ScaleHeatRisk, []float64{25, 28, 31, 35}, HeatRiskLabels),
			Discomfort: mustScale(ScaleDiscomfort, []float64{68, 75, 80, 85}, DiscomfortLabels),
			UVRisk:     mustScale(ScaleUVRisk, []float64{2, 5, 7, 10}, UVRiskLabels),
		},
		Weights: WeightSet{
			Vulnerability: VulnerabilityWeights{Density: 0.6, Family: 0.4},
			Environment:   EnvironmentWeights{Heat: 0.5, Discomfort: 0.3, UV: 0.2},
			Site:          SiteWeights{Population: 0.3, Environment: 0.4, Movement: 0.3},
		},
	}
}

func mustScale(name string, breakpoints []float64, labels []string) *domain.GradeScale {
	s, err := domain.NewGradeScale(name, breakpoints, labels)
	if err != nil {
		panic(err)
	}
	return s
}
