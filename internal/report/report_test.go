package report

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/seoulbdc/heatwalk/internal/analysis"
	"github.com/seoulbdc/heatwalk/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *analysis.Result {
	return &analysis.Result{
		RunID:       "8d6f56ce-7a2e-4af9-9a65-3b9f6a2a8d11",
		GeneratedAt: time.Date(2024, 8, 5, 9, 30, 0, 0, time.UTC),
		Population: &analysis.PopulationSummary{
			TotalPopulation:   945000,
			MeanHouseholdSize: 2.45,
			DensityGrades: []analysis.GroupStat{
				{Name: "매우낮음", Count: 1}, {Name: "매우높음", Count: 1},
			},
			Top: []analysis.RegionVulnerability{
				{Region: "강남구", Score: 92, DensityGrade: "매우높음", FamilyType: "대가족형"},
			},
		},
		Environment: &analysis.EnvironmentSummary{
			TemperatureMin:  27.1,
			TemperatureMean: 30.4,
			TemperatureMax:  34.2,
			HotShare:        0.42,
			DiscomfortMean:  79.3,
			RiskMean:        61.5,
			RiskByRegion: []analysis.GroupStat{
				{Name: "강남구", Value: 80, Count: 3},
			},
		},
		Movement: &analysis.MovementSummary{
			TotalTrips:   2800,
			ElderlyTrips: 1800,
			ChildTrips:   200,
			ByOrigin: []analysis.GroupStat{
				{Name: "강남구", Value: 1500, Count: 2},
				{Name: "성동구", Masked: true, Count: 1},
			},
			ElderlyOD: []analysis.GroupStat{
				{Name: "종로구→중구", Value: 150, Count: 2},
			},
		},
		Sites: []analysis.SiteScore{
			{Rank: 1, Region: "강남구", Score: 100, PopulationGrade: "매우높음", EnvironmentGrade: "매우높음", MovementGrade: "매우높음"},
			{Rank: 2, Region: "서초구", Score: 80, PopulationGrade: "높음", EnvironmentGrade: "높음", MovementGrade: "높음"},
		},
		SkippedRegions: []string{"은평구"},
		MaskThreshold:  5,
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "지하산책로_최적입지_분석보고서_20240805_0930.txt", Filename(sampleResult()))
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := NewWriter(dir, logger, observability.NewMetricsForTesting())

	res := sampleResult()
	require.NoError(t, w.WriteReport(context.Background(), res))

	raw, err := os.ReadFile(filepath.Join(dir, Filename(res)))
	require.NoError(t, err)
	text := string(raw)

	assert.Contains(t, text, res.RunID)
	assert.Contains(t, text, "945000명")
	assert.Contains(t, text, "총 인구")
	assert.Contains(t, text, "1위 강남구 종합 100.0점")
	assert.Contains(t, text, "42.0%")
	assert.Contains(t, text, "자료 부족으로 제외된 지역: 은평구")

	// The masked origin renders without its count, and the footnote states
	// the threshold the run was masked with.
	assert.Contains(t, text, "성동구 ***")
	assert.NotContains(t, text, "성동구 0명")
	assert.Contains(t, text, "이동량 5명 이하")
}

func TestWriteReport_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := NewWriter(dir, logger, observability.NewMetricsForTesting())

	require.NoError(t, w.WriteReport(context.Background(), sampleResult()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
