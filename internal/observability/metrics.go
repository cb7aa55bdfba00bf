package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for a globe run.
type Metrics struct {
	ReadingsLoaded      prometheus.Counter
	ReadingsAnnotated   prometheus.Counter
	ReadingsByRegion    *prometheus.CounterVec // labels: region={Atlantic,Pacific,Indian}
	CoordinatesOutRange prometheus.Counter
	PipelineRunning     prometheus.Gauge
	RunDuration         prometheus.Histogram

	// Sink metrics.
	SinkWrites   *prometheus.CounterVec   // labels: sink, outcome={success,error}
	SinkDuration *prometheus.HistogramVec // labels: sink
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.ReadingsLoaded,
		m.ReadingsAnnotated,
		m.ReadingsByRegion,
		m.CoordinatesOutRange,
		m.PipelineRunning,
		m.RunDuration,
		m.SinkWrites,
		m.SinkDuration,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ReadingsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ocean_globe",
			Name:      "readings_loaded_total",
			Help:      "Total rows read from the dataset.",
		}),
		ReadingsAnnotated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ocean_globe",
			Name:      "readings_annotated_total",
			Help:      "Total rows tagged with a region, fact and hover text.",
		}),
		ReadingsByRegion: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ocean_globe",
			Name:      "readings_by_region_total",
			Help:      "Annotated rows by ocean region.",
		}, []string{"region"}),
		CoordinatesOutRange: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ocean_globe",
			Name:      "coordinates_out_of_range_total",
			Help:      "Rows whose latitude or longitude lies outside the valid range.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ocean_globe",
			Name:      "pipeline_running",
			Help:      "1 while a run is in progress, 0 otherwise.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ocean_globe",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete load-annotate-emit run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		SinkWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ocean_globe",
			Name:      "sink_writes_total",
			Help:      "Batch writes by sink and outcome.",
		}, []string{"sink", "outcome"}),
		SinkDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ocean_globe",
			Name:      "sink_duration_seconds",
			Help:      "Time spent writing a batch to a sink.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"sink"}),
	}
}
