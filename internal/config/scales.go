package config

import (
	"fmt"
	"os"

	"github.com/seoulbdc/heatwalk/internal/analysis"
	"github.com/seoulbdc/heatwalk/internal/domain"
	"gopkg.in/yaml.v3"
)

// ScaleSpec declares one grade scale override.
type ScaleSpec struct {
	Breakpoints []float64 `yaml:"breakpoints"`
	Labels      []string  `yaml:"labels"`
}

// WeightsSpec declares composite weight overrides. Each present map fully
// replaces that composite's weights.
type WeightsSpec struct {
	Vulnerability map[string]float64 `yaml:"vulnerability"`
	Environment   map[string]float64 `yaml:"environment"`
	Site          map[string]float64 `yaml:"site"`
}

// ScalesFile is the optional YAML override for scales and weights.
type ScalesFile struct {
	Scales  map[string]ScaleSpec `yaml:"scales"`
	Weights WeightsSpec          `yaml:"weights"`
}

// ApplyScales overlays the YAML file at path onto opts. Every override passes
// through the engine constructors, so a malformed scale or a weight set that
// does not sum to 1.0 fails here, at startup, not mid-run.
func ApplyScales(path string, opts analysis.Options) (analysis.Options, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("scales file: %w", err)
	}

	var file ScalesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return opts, fmt.Errorf("scales file %s: %w", path, err)
	}

	for name, spec := range file.Scales {
		scale, err := domain.NewGradeScale(name, spec.Breakpoints, spec.Labels)
		if err != nil {
			return opts, fmt.Errorf("scales file %s: %w", path, err)
		}
		switch name {
		case analysis.ScaleFamily:
			opts.Scales.Family = scale
		case analysis.ScaleHeatRisk:
			opts.Scales.HeatRisk = scale
		case analysis.ScaleDiscomfort:
			opts.Scales.Discomfort = scale
		case analysis.ScaleUVRisk:
			opts.Scales.UVRisk = scale
		default:
			return opts, fmt.Errorf("scales file %s: unknown scale %q", path, name)
		}
	}

	if w := file.Weights.Vulnerability; w != nil {
		if err := requireKeys("vulnerability", w, "density", "family"); err != nil {
			return opts, err
		}
		opts.Weights.Vulnerability = analysis.VulnerabilityWeights{
			Density: w["density"],
			Family:  w["family"],
		}
		if err := checkWeightSum("vulnerability", w); err != nil {
			return opts, err
		}
	}
	if w := file.Weights.Environment; w != nil {
		if err := requireKeys("environment", w, "heat", "discomfort", "uv"); err != nil {
			return opts, err
		}
		opts.Weights.Environment = analysis.EnvironmentWeights{
			Heat:       w["heat"],
			Discomfort: w["discomfort"],
			UV:         w["uv"],
		}
		if err := checkWeightSum("environment", w); err != nil {
			return opts, err
		}
	}
	if w := file.Weights.Site; w != nil {
		if err := requireKeys("site", w, "population", "environment", "movement"); err != nil {
			return opts, err
		}
		opts.Weights.Site = analysis.SiteWeights{
			Population:  w["population"],
			Environment: w["environment"],
			Movement:    w["movement"],
		}
		if err := checkWeightSum("site", w); err != nil {
			return opts, err
		}
	}

	return opts, nil
}

func requireKeys(index string, weights map[string]float64, keys ...string) error {
	if len(weights) != len(keys) {
		return fmt.Errorf("weights %s: want keys %v", index, keys)
	}
	for _, k := range keys {
		if _, ok := weights[k]; !ok {
			return fmt.Errorf("weights %s: missing key %q", index, k)
		}
	}
	return nil
}

func checkWeightSum(index string, weights map[string]float64) error {
	sum := 0.0
	for _, v := range weights {
		sum += v
	}
	if sum < 1-1e-6 || sum > 1+1e-6 {
		return &domain.InvalidWeightError{Index: index, Sum: sum}
	}
	return nil
}
