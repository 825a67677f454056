// Command heatwalk analyzes Seoul heatwave datasets and ranks candidate
// regions for shaded underground walkways.
//
// In oneshot mode (the default) it loads the data directory, runs the
// analyses, writes the report, and exits. In serve mode it additionally
// exposes the latest result over HTTP and re-runs whenever the data
// directory changes.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/seoulbdc/heatwalk/internal/adapter/http"
	kafkaadapter "github.com/seoulbdc/heatwalk/internal/adapter/kafka"
	"github.com/seoulbdc/heatwalk/internal/analysis"
	"github.com/seoulbdc/heatwalk/internal/config"
	"github.com/seoulbdc/heatwalk/internal/ingest"
	"github.com/seoulbdc/heatwalk/internal/observability"
	"github.com/seoulbdc/heatwalk/internal/pipeline"
	"github.com/seoulbdc/heatwalk/internal/report"
)

// watchDebounce coalesces bursts of file events into one re-run.
const watchDebounce = 2 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	opts := analysis.DefaultOptions()
	opts.MaskThreshold = cfg.MaskThreshold
	opts.TopRegions = cfg.TopRegions
	if cfg.ScalesFile != "" {
		opts, err = config.ApplyScales(cfg.ScalesFile, opts)
		if err != nil {
			logger.Error("failed to apply scales file", "path", cfg.ScalesFile, "error", err)
			os.Exit(1)
		}
		logger.Info("scale overrides applied", "path", cfg.ScalesFile)
	}

	loader := ingest.NewLoader(cfg.DataDir, logger, metrics)
	reporter := report.NewWriter(cfg.ReportDir, logger, metrics)

	var sinks []pipeline.ResultSink
	var kafkaWriter *kafkaadapter.Writer
	if cfg.KafkaEnabled() {
		kafkaWriter = kafkaadapter.NewWriter(cfg, logger)
		sinks = append(sinks, kafkaWriter)
		logger.Info("kafka export enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSinkTopic)
	} else {
		logger.Info("kafka export disabled")
	}

	p := pipeline.New(loader, reporter, opts, logger, metrics, sinks...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.RunMode == config.ModeOneshot {
		err := p.RunOnce(ctx)
		closeKafka(kafkaWriter, logger)
		if err != nil {
			logger.Error("run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// The initial run may fail (e.g. data not staged yet); the watcher picks
	// up the next change and tries again.
	if err := p.RunOnce(ctx); err != nil {
		logger.Error("initial run failed", "error", err)
	}

	go func() {
		if err := p.Watch(ctx, cfg.DataDir, watchDebounce); err != nil {
			logger.Error("watcher stopped", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	closeKafka(kafkaWriter, logger)

	logger.Info("shutdown complete")
}

func closeKafka(w *kafkaadapter.Writer, logger *slog.Logger) {
	if w == nil {
		return
	}
	if err := w.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}
}
