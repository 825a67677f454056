package ingest

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/seoulbdc/heatwalk/internal/analysis"
	"github.com/seoulbdc/heatwalk/internal/domain"
	"github.com/seoulbdc/heatwalk/internal/observability"
)

// Dataset file names expected inside the data directory.
const (
	PopulationFile  = "population.csv"
	EnvironmentFile = "environment.csv"
	MovementFile    = "movement.csv"
)

// Loader reads the three dataset files from a directory.
type Loader struct {
	dir     string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewLoader creates a Loader rooted at dir.
func NewLoader(dir string, logger *slog.Logger, metrics *observability.Metrics) *Loader {
	return &Loader{dir: dir, logger: logger, metrics: metrics}
}

// Load reads all three datasets. Any failure aborts the load; a run never
// starts on a partial set.
func (l *Loader) Load(ctx context.Context) (analysis.Datasets, error) {
	var ds analysis.Datasets
	if err := ctx.Err(); err != nil {
		return ds, err
	}

	var err error
	if ds.Population, err = l.loadOne(PopulationFile, PopulationSchema); err != nil {
		return analysis.Datasets{}, err
	}
	if ds.Environment, err = l.loadOne(EnvironmentFile, EnvironmentSchema); err != nil {
		return analysis.Datasets{}, err
	}
	if ds.Movement, err = l.loadOne(MovementFile, MovementSchema); err != nil {
		return analysis.Datasets{}, err
	}
	return ds, nil
}

func (l *Loader) loadOne(file string, schema Schema) ([]domain.Observation, error) {
	path := filepath.Join(l.dir, file)
	batch, err := LoadFile(path, schema)
	if err != nil {
		l.metrics.LoadErrors.Inc()
		l.logger.Error("dataset load failed", "dataset", schema.Dataset, "path", path, "error", err)
		return nil, err
	}
	l.metrics.ObservationsLoaded.WithLabelValues(schema.Dataset).Add(float64(len(batch)))
	l.logger.Info("dataset loaded", "dataset", schema.Dataset, "rows", len(batch))
	return batch, nil
}
