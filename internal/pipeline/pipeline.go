package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/ocean-globe/internal/domain"
	"github.com/couchcryptid/ocean-globe/internal/observability"
	"github.com/oklog/ulid/v2"
)

// Extractor reads every reading from the source in table order.
type Extractor interface {
	Extract(ctx context.Context) ([]domain.Reading, error)
}

// Transformer annotates a single reading. index is the row position.
type Transformer interface {
	Transform(ctx context.Context, index int, reading domain.Reading) (domain.AnnotatedReading, error)
}

// Sink receives the full annotated batch once per run.
type Sink interface {
	Name() string
	Load(ctx context.Context, batch domain.Batch) error
}

// Summary describes a finished run.
type Summary struct {
	RunID    string
	Rows     int
	ByRegion map[domain.Region]int
	Duration time.Duration
}

// Pipeline orchestrates one extract-annotate-emit pass.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	sinks       []Sink
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
}

// New creates a Pipeline with the given stages and observability. Sinks are
// loaded in the order given.
func New(e Extractor, t Transformer, sinks []Sink, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		sinks:       sinks,
		logger:      logger,
		metrics:     metrics,
	}
}

// CheckReadiness returns nil once a run has completed successfully.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("globe has not been rendered yet")
	}
	return nil
}

// Run loads the dataset, annotates every reading in order and hands the batch
// to each sink. Any failure aborts the run; nothing is retried.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	runID := ulid.Make().String()
	logger := p.logger.With("run_id", runID)

	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	logger.Info("pipeline started", "sinks", len(p.sinks))

	readings, err := p.extractor.Extract(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("extract readings: %w", err)
	}
	p.metrics.ReadingsLoaded.Add(float64(len(readings)))
	logger.Info("dataset loaded", "rows", len(readings))

	batch := domain.Batch{
		RunID:       runID,
		GeneratedAt: domain.Now(),
		Readings:    make([]domain.AnnotatedReading, 0, len(readings)),
	}
	byRegion := make(map[domain.Region]int, len(domain.Regions()))

	for i, reading := range readings {
		if err := ctx.Err(); err != nil {
			return Summary{}, fmt.Errorf("annotate readings: %w", err)
		}
		if !reading.InRange() {
			p.metrics.CoordinatesOutRange.Inc()
			logger.Warn("coordinates out of range, classifying anyway",
				"index", i,
				"lat", reading.Latitude,
				"lon", reading.Longitude,
			)
		}

		out, err := p.transformer.Transform(ctx, i, reading)
		if err != nil {
			return Summary{}, fmt.Errorf("transform reading %d: %w", i, err)
		}
		batch.Readings = append(batch.Readings, out)
		byRegion[out.Region]++
		p.metrics.ReadingsAnnotated.Inc()
		p.metrics.ReadingsByRegion.WithLabelValues(string(out.Region)).Inc()
	}

	for _, sink := range p.sinks {
		if err := ctx.Err(); err != nil {
			return Summary{}, fmt.Errorf("load sinks: %w", err)
		}
		if err := p.load(ctx, sink, batch); err != nil {
			return Summary{}, err
		}
		logger.Debug("sink loaded", "sink", sink.Name(), "rows", len(batch.Readings))
	}

	summary := Summary{
		RunID:    runID,
		Rows:     len(batch.Readings),
		ByRegion: byRegion,
		Duration: time.Since(start),
	}
	p.metrics.RunDuration.Observe(summary.Duration.Seconds())
	p.ready.Store(true)

	logger.Info("pipeline finished",
		"rows", summary.Rows,
		"atlantic", byRegion[domain.Atlantic],
		"pacific", byRegion[domain.Pacific],
		"indian", byRegion[domain.Indian],
		"duration", summary.Duration,
	)
	return summary, nil
}

func (p *Pipeline) load(ctx context.Context, sink Sink, batch domain.Batch) error {
	start := time.Now()
	err := sink.Load(ctx, batch)
	p.metrics.SinkDuration.WithLabelValues(sink.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		p.metrics.SinkWrites.WithLabelValues(sink.Name(), "error").Inc()
		return fmt.Errorf("load sink %s: %w", sink.Name(), err)
	}
	p.metrics.SinkWrites.WithLabelValues(sink.Name(), "success").Inc()
	return nil
}
