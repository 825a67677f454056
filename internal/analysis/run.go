package analysis

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/seoulbdc/heatwalk/internal/domain"
)

// Datasets are the three input extracts for one analysis run.
type Datasets struct {
	Population  []domain.Observation
	Environment []domain.Observation
	Movement    []domain.Observation
}

// Result is one complete analysis run. It is immutable once returned.
type Result struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Population  *PopulationSummary  `json:"population"`
	Environment *EnvironmentSummary `json:"environment"`
	Movement    *MovementSummary    `json:"movement"`

	Sites          []SiteScore `json:"sites"`
	SkippedRegions []string    `json:"skipped_regions,omitempty"`

	// MaskThreshold records the disclosure threshold the run was masked
	// with, so output layers can state the rule they applied.
	MaskThreshold float64 `json:"mask_threshold"`
}

// Run executes the three analyses and the site ranking over the datasets.
// Any analysis failure aborts the run; there are no partial results.
func Run(ds Datasets, opts Options) (*Result, error) {
	pop, err := AnalyzePopulation(ds.Population, opts)
	if err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}
	env, err := AnalyzeEnvironment(ds.Environment, opts)
	if err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}
	move, err := AnalyzeMovement(ds.Movement, opts)
	if err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}
	sites, skipped, err := RankSites(pop, env, move, opts)
	if err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}

	return &Result{
		RunID:          uuid.NewString(),
		GeneratedAt:    clock.Now().UTC(),
		Population:     pop,
		Environment:    env,
		Movement:       move,
		Sites:          sites,
		SkippedRegions: skipped,
		MaskThreshold:  opts.MaskThreshold,
	}, nil
}
