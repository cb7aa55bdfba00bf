package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/couchcryptid/ocean-globe/internal/adapter/dataset"
	"github.com/couchcryptid/ocean-globe/internal/adapter/geojson"
	httpadapter "github.com/couchcryptid/ocean-globe/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/ocean-globe/internal/adapter/kafka"
	"github.com/couchcryptid/ocean-globe/internal/adapter/plotly"
	"github.com/couchcryptid/ocean-globe/internal/adapter/snapshot"
	"github.com/couchcryptid/ocean-globe/internal/config"
	"github.com/couchcryptid/ocean-globe/internal/domain"
	"github.com/couchcryptid/ocean-globe/internal/observability"
	"github.com/couchcryptid/ocean-globe/internal/pipeline"
)

// Artifact file names under OUTPUT_DIR.
const (
	pageFile     = httpadapter.IndexFile
	snapshotFile = "globe.png"
	geoJSONFile  = "readings.geojson"
	csvFile      = "annotated.csv"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	seed := rand.Int64() //nolint:gosec // presentation order, not security
	if cfg.FactSeed != nil {
		seed = *cfg.FactSeed
	}
	cycler, err := domain.NewSeededFactCycler(domain.DefaultCatalog(), seed)
	if err != nil {
		logger.Error("failed to build fact cycler", "error", err)
		os.Exit(1)
	}
	logger.Info("fact order shuffled", "seed", seed, "fixed", cfg.FactSeed != nil)

	sinks := []pipeline.Sink{plotly.NewSink(filepath.Join(cfg.OutputDir, pageFile), logger)}
	if cfg.SnapshotEnabled {
		sinks = append(sinks, snapshot.NewSink(filepath.Join(cfg.OutputDir, snapshotFile), cfg.SnapshotSize, logger))
	}
	if cfg.GeoJSONEnabled {
		sinks = append(sinks, geojson.NewSink(filepath.Join(cfg.OutputDir, geoJSONFile)))
	}
	if cfg.CSVExportEnabled {
		sinks = append(sinks, dataset.NewCSVSink(filepath.Join(cfg.OutputDir, csvFile)))
	}

	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		sinks = append(sinks, writer)
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	}

	loader := dataset.NewLoader(cfg.DatasetPath, logger)
	transformer := pipeline.NewTransformer(cycler, logger)
	p := pipeline.New(loader, transformer, sinks, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srv *httpadapter.Server
	if cfg.Serve {
		srv = httpadapter.NewServer(cfg.HTTPAddr, cfg.OutputDir, p, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	code := 0
	summary, err := p.Run(ctx)
	if err != nil {
		logger.Error("pipeline failed", "error", err)
		code = 1
	} else {
		logger.Info("globe rendered", "run_id", summary.RunID, "rows", summary.Rows, "output_dir", cfg.OutputDir)
	}

	if srv != nil && code == 0 {
		logger.Info("serving globe", "addr", cfg.HTTPAddr)
		<-ctx.Done()
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
	if code != 0 {
		cancel()
		stop()
		os.Exit(code)
	}
}
