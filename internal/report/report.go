package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/seoulbdc/heatwalk/internal/analysis"
	"github.com/seoulbdc/heatwalk/internal/observability"
)

// filenameStamp is the timestamp layout embedded in report filenames.
const filenameStamp = "20060102_1504"

const reportTemplate = `================================================================
          폭염 대비 지하산책로 최적 입지 분석 보고서
================================================================
실행 ID   : {{.RunID}}
생성 시각 : {{.GeneratedAt.Format "2006-01-02 15:04:05"}} UTC

[1] 인구 취약성 분석
  총 인구        : {{num .Population.TotalPopulation}}명
  평균 가구원수  : {{fixed .Population.MeanHouseholdSize}}명
  밀도 등급 분포 :{{range .Population.DensityGrades}} {{.Name}} {{.Count}}곳{{end}}
  취약 상위 지역 :
{{- range .Population.Top}}
    - {{.Region}} {{fixed .Score}}점 (밀도 {{.DensityGrade}}, {{.FamilyType}})
{{- end}}

[2] 환경 위험도 분석
  기온           : 최저 {{fixed .Environment.TemperatureMin}}℃ / 평균 {{fixed .Environment.TemperatureMean}}℃ / 최고 {{fixed .Environment.TemperatureMax}}℃
  30℃ 초과 비율  : {{pct .Environment.HotShare}}
  평균 불쾌지수  : {{fixed .Environment.DiscomfortMean}}
  평균 위험도    : {{fixed .Environment.RiskMean}}점
  지역별 위험도  :
{{- range .Environment.RiskByRegion}}
    - {{.Name}} {{fixed .Value}}점
{{- end}}

[3] 이동 패턴 분석
  총 이동량      : {{num .Movement.TotalTrips}}명
  고령자 이동량  : {{num .Movement.ElderlyTrips}}명
  어린이 이동량  : {{num .Movement.ChildTrips}}명
  출발지별 이동량 :
{{- range .Movement.ByOrigin}}
    - {{.Name}} {{stat .}}
{{- end}}
  고령자 주요 이동경로 :
{{- range .Movement.ElderlyOD}}
    - {{.Name}} {{stat .}}
{{- end}}

[4] 지하산책로 최적 입지 순위
{{- range .Sites}}
  {{.Rank}}위 {{.Region}} 종합 {{fixed .Score}}점 (인구 {{.PopulationGrade}} / 환경 {{.EnvironmentGrade}} / 이동 {{.MovementGrade}})
{{- end}}
{{- if .SkippedRegions}}

  ※ 자료 부족으로 제외된 지역: {{join .SkippedRegions}}
{{- end}}

  ※ 이동량 {{num .MaskThreshold}}명 이하 집단은 ***로 마스킹되어 있습니다.
`

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"fixed": func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"num":   func(v float64) string { return fmt.Sprintf("%.0f", v) },
	"pct":   func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
	"join":  func(s []string) string { return strings.Join(s, ", ") },
	"stat": func(s analysis.GroupStat) string {
		if s.Masked {
			return "***"
		}
		return fmt.Sprintf("%.0f명", s.Value)
	},
}).Parse(reportTemplate))

// Writer renders analysis results into timestamped report files.
type Writer struct {
	dir     string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewWriter creates a Writer that writes reports under dir.
func NewWriter(dir string, logger *slog.Logger, metrics *observability.Metrics) *Writer {
	return &Writer{dir: dir, logger: logger, metrics: metrics}
}

// Filename returns the report filename for a result.
func Filename(res *analysis.Result) string {
	return fmt.Sprintf("지하산책로_최적입지_분석보고서_%s.txt", res.GeneratedAt.Format(filenameStamp))
}

// WriteReport renders the result and writes it to the report directory.
func (w *Writer) WriteReport(_ context.Context, res *analysis.Result) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, res); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("report dir: %w", err)
	}
	path := filepath.Join(w.dir, Filename(res))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	w.metrics.ReportsWritten.Inc()
	w.logger.Info("report written", "path", path, "bytes", buf.Len())
	return nil
}
