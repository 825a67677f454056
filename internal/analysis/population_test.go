package analysis

import (
	"math"
	"testing"

	"github.com/seoulbdc/heatwalk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func popObs(region string, population, density, size float64) domain.Observation {
	return domain.Observation{
		Numeric: map[string]float64{
			FieldPopulation:    population,
			FieldDensity:       density,
			FieldHouseholdSize: size,
		},
		Categorical: map[string]string{FieldRegion: region},
	}
}

func TestAnalyzePopulation_Scoring(t *testing.T) {
	batch := []domain.Observation{
		popObs("강남구", 500000, 500, 3.2),
		popObs("서초구", 400000, 400, 2.8),
		popObs("송파구", 600000, 300, 2.2),
		popObs("마포구", 350000, 200, 1.8),
		popObs("도봉구", 300000, 100, 1.5),
	}

	summary, err := AnalyzePopulation(batch, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 2150000.0, summary.TotalPopulation)
	assert.InDelta(t, (3.2+2.8+2.2+1.8+1.5)/5, summary.MeanHouseholdSize, 1e-9)

	byRegion := map[string]RegionVulnerability{}
	for _, r := range summary.Regions {
		byRegion[r.Region] = r
	}

	// Highest density and largest households: rank 5 of 5 on density,
	// 대가족형 is rank 4 of 4, so 20 * (5*0.6 + 4*0.4) = 92.
	gangnam := byRegion["강남구"]
	assert.Equal(t, "매우높음", gangnam.DensityGrade)
	assert.Equal(t, "대가족형", gangnam.FamilyType)
	assert.InDelta(t, 92, gangnam.Score, 1e-9)

	dobong := byRegion["도봉구"]
	assert.Equal(t, "매우낮음", dobong.DensityGrade)
	assert.Equal(t, "1인가구형", dobong.FamilyType)
	assert.InDelta(t, 20, dobong.Score, 1e-9)

	// Five distinct densities spread one region per grade.
	for _, stat := range summary.DensityGrades {
		assert.Equal(t, 1, stat.Count, "grade %s", stat.Name)
	}
}

func TestAnalyzePopulation_TopOrdering(t *testing.T) {
	batch := []domain.Observation{
		popObs("강남구", 500000, 500, 3.2),
		popObs("서초구", 400000, 400, 2.8),
		popObs("송파구", 600000, 300, 2.2),
		popObs("마포구", 350000, 200, 1.8),
		popObs("도봉구", 300000, 100, 1.5),
	}

	opts := DefaultOptions()
	opts.TopRegions = 3
	summary, err := AnalyzePopulation(batch, opts)
	require.NoError(t, err)

	require.Len(t, summary.Top, 3)
	assert.Equal(t, "강남구", summary.Top[0].Region)
	assert.Equal(t, "서초구", summary.Top[1].Region)
	assert.Equal(t, "송파구", summary.Top[2].Region)
	for i := 1; i < len(summary.Top); i++ {
		assert.GreaterOrEqual(t, summary.Top[i-1].Score, summary.Top[i].Score)
	}
}

func TestAnalyzePopulation_MissingDensityGradesAsZero(t *testing.T) {
	batch := []domain.Observation{
		popObs("강남구", 500000, 500, 3.2),
		popObs("서초구", 400000, 400, 2.8),
		popObs("송파구", 600000, 300, 2.2),
		popObs("마포구", 350000, 200, 1.8),
		popObs("도봉구", 300000, 100, 1.5),
		popObs("결측구", 100000, math.NaN(), 2.1),
	}

	summary, err := AnalyzePopulation(batch, DefaultOptions())
	require.NoError(t, err)

	for _, r := range summary.Regions {
		if r.Region == "결측구" {
			assert.Equal(t, "매우낮음", r.DensityGrade)
			return
		}
	}
	t.Fatal("결측구 missing from regions")
}

func TestAnalyzePopulation_Empty(t *testing.T) {
	_, err := AnalyzePopulation(nil, DefaultOptions())
	require.Error(t, err)
}
