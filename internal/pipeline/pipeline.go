package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/seoulbdc/heatwalk/internal/analysis"
	"github.com/seoulbdc/heatwalk/internal/observability"
)

// DatasetLoader reads the three input datasets.
type DatasetLoader interface {
	Load(ctx context.Context) (analysis.Datasets, error)
}

// ReportWriter renders a result to the report directory.
type ReportWriter interface {
	WriteReport(ctx context.Context, res *analysis.Result) error
}

// ResultSink publishes a result to an external system.
type ResultSink interface {
	Publish(ctx context.Context, res *analysis.Result) error
}

// Pipeline orchestrates the load-analyze-publish cycle and holds the latest
// result. The engine fails fast; the pipeline is the recovery boundary. A
// failed run keeps the previous result in place.
type Pipeline struct {
	loader   DatasetLoader
	reporter ReportWriter
	sinks    []ResultSink
	opts     analysis.Options
	logger   *slog.Logger
	metrics  *observability.Metrics

	mu     sync.RWMutex
	latest *analysis.Result
	ready  atomic.Bool
}

// New creates a Pipeline with the given stages and observability.
func New(loader DatasetLoader, reporter ReportWriter, opts analysis.Options, logger *slog.Logger, metrics *observability.Metrics, sinks ...ResultSink) *Pipeline {
	return &Pipeline{
		loader:   loader,
		reporter: reporter,
		sinks:    sinks,
		opts:     opts,
		logger:   logger,
		metrics:  metrics,
	}
}

// CheckReadiness returns nil once at least one run has completed.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no analysis run has completed yet")
	}
	return nil
}

// Latest returns the most recent completed result, nil before the first run.
func (p *Pipeline) Latest() *analysis.Result {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest
}

// RunOnce executes one complete cycle: load the datasets, run the analyses,
// store the result, write the report, and publish to the sinks.
func (p *Pipeline) RunOnce(ctx context.Context) error {
	start := time.Now()

	ds, err := p.loader.Load(ctx)
	if err != nil {
		p.metrics.AnalysisFailures.Inc()
		return err
	}

	res, err := analysis.Run(ds, p.opts)
	if err != nil {
		p.metrics.AnalysisFailures.Inc()
		p.logger.Error("analysis failed", "error", err)
		return err
	}

	p.mu.Lock()
	p.latest = res
	p.mu.Unlock()
	p.ready.Store(true)

	p.metrics.AnalysisRuns.Inc()
	p.metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	p.metrics.SitesRanked.Set(float64(len(res.Sites)))
	p.metrics.LastRunTimestamp.Set(float64(res.GeneratedAt.Unix()))
	p.metrics.GroupsMasked.Add(float64(maskedGroups(res)))

	p.logger.Info("analysis run complete",
		"run_id", res.RunID,
		"sites", len(res.Sites),
		"skipped_regions", len(res.SkippedRegions),
		"duration", time.Since(start),
	)

	if err := p.reporter.WriteReport(ctx, res); err != nil {
		p.logger.Error("report write failed", "run_id", res.RunID, "error", err)
		return err
	}
	for _, sink := range p.sinks {
		if err := sink.Publish(ctx, res); err != nil {
			p.logger.Error("result publish failed", "run_id", res.RunID, "error", err)
			return err
		}
	}
	return nil
}

func maskedGroups(res *analysis.Result) int {
	n := 0
	for _, s := range res.Movement.ByOrigin {
		if s.Masked {
			n++
		}
	}
	for _, s := range res.Movement.ElderlyOD {
		if s.Masked {
			n++
		}
	}
	return n
}
