package analysis

import (
	"fmt"
	"math"

	"github.com/seoulbdc/heatwalk/internal/domain"
)

// Environmental sensor dataset fields.
const (
	FieldTemperature = "temperature"
	FieldHumidity    = "humidity"
	FieldUVIndex     = "uv_index"
	FieldSensorModel = "sensor_model"
)

// hotThreshold is the temperature above which a reading counts as hot.
const hotThreshold = 30.0

// derived fields computed per reading.
const (
	fieldRisk       = "risk"
	fieldDiscomfort = "discomfort"
)

// DiscomfortIndex computes the Thom discomfort index from temperature in
// degrees Celsius and relative humidity in percent.
func DiscomfortIndex(temperature, humidity float64) float64 {
	return 0.81*temperature + 0.01*humidity*(0.99*temperature-14.3) + 46.3
}

// EnvironmentSummary is the environmental risk analysis result.
type EnvironmentSummary struct {
	TemperatureMin  float64 `json:"temperature_min"`
	TemperatureMean float64 `json:"temperature_mean"`
	TemperatureMax  float64 `json:"temperature_max"`

	// HotShare is the fraction of measured readings above 30 degrees.
	HotShare float64 `json:"hot_share"`

	DiscomfortMean float64 `json:"discomfort_mean"`
	RiskMean       float64 `json:"risk_mean"`

	RiskByModel  []GroupStat `json:"risk_by_model"`
	RiskByRegion []GroupStat `json:"risk_by_region"`
}

// AnalyzeEnvironment grades every sensor reading on the heat, discomfort and
// UV scales and combines them into a per-reading risk score, then averages
// risk by sensor model and by region. Sensor gaps propagate: a reading with
// any ungraded component contributes no risk value, and groups where every
// reading dropped out are omitted.
func AnalyzeEnvironment(batch []domain.Observation, opts Options) (*EnvironmentSummary, error) {
	if len(batch) == 0 {
		return nil, fmt.Errorf("environment: no observations")
	}

	risk, err := domain.NewCompositeIndex("environmental_risk", compositeScaleFactor,
		domain.Component{Scale: opts.Scales.HeatRisk, Weight: opts.Weights.Environment.Heat},
		domain.Component{Scale: opts.Scales.Discomfort, Weight: opts.Weights.Environment.Discomfort},
		domain.Component{Scale: opts.Scales.UVRisk, Weight: opts.Weights.Environment.UV},
	)
	if err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	derived := make([]domain.Observation, 0, len(batch))
	measured, hot := 0, 0
	for _, obs := range batch {
		t, okT := obs.Number(FieldTemperature)
		h, okH := obs.Number(FieldHumidity)
		u, _ := obs.Number(FieldUVIndex)

		if okT {
			measured++
			if t > hotThreshold {
				hot++
			}
		}

		di := math.NaN()
		if okT && okH {
			di = DiscomfortIndex(t, h)
		}

		score := math.NaN()
		heatGrade, okHeat := opts.Scales.HeatRisk.Classify(t, domain.MissingPropagate)
		diGrade, okDI := opts.Scales.Discomfort.Classify(di, domain.MissingPropagate)
		uvGrade, okUV := opts.Scales.UVRisk.Classify(u, domain.MissingPropagate)
		if okHeat && okDI && okUV {
			score, err = risk.Compute(map[string]string{
				ScaleHeatRisk:   heatGrade,
				ScaleDiscomfort: diGrade,
				ScaleUVRisk:     uvGrade,
			})
			if err != nil {
				return nil, fmt.Errorf("environment: %w", err)
			}
		}

		categorical := make(map[string]string, 2)
		if model, ok := obs.Category(FieldSensorModel); ok {
			categorical[FieldSensorModel] = model
		}
		if region, ok := obs.Category(FieldRegion); ok {
			categorical[FieldRegion] = region
		}
		derived = append(derived, domain.Observation{
			Numeric: map[string]float64{
				FieldTemperature: t,
				fieldDiscomfort:  di,
				fieldRisk:        score,
			},
			Categorical: categorical,
		})
	}
	if measured == 0 {
		return nil, fmt.Errorf("environment: no measured %s readings", FieldTemperature)
	}

	all := domain.Key{}
	summary := &EnvironmentSummary{
		HotShare:     float64(hot) / float64(measured),
		RiskByModel:  groupStats(domain.Aggregate(derived, domain.Key{FieldSensorModel}, fieldRisk, domain.OpMean)),
		RiskByRegion: groupStats(domain.Aggregate(derived, domain.Key{FieldRegion}, fieldRisk, domain.OpMean)),
	}
	summary.TemperatureMin, _ = domain.Aggregate(derived, all, FieldTemperature, domain.OpMin).Value()
	summary.TemperatureMean, _ = domain.Aggregate(derived, all, FieldTemperature, domain.OpMean).Value()
	summary.TemperatureMax, _ = domain.Aggregate(derived, all, FieldTemperature, domain.OpMax).Value()
	summary.DiscomfortMean, _ = domain.Aggregate(derived, all, fieldDiscomfort, domain.OpMean).Value()
	summary.RiskMean, _ = domain.Aggregate(derived, all, fieldRisk, domain.OpMean).Value()

	if math.IsNaN(summary.RiskMean) {
		return nil, fmt.Errorf("environment: no gradable readings")
	}
	if math.IsNaN(summary.DiscomfortMean) {
		summary.DiscomfortMean = 0
	}
	return summary, nil
}
