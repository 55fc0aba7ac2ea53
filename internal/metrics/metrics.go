// Package metrics records aggregation runs as Prometheus metrics.
//
// The brc command is a one-shot batch job, so metrics are not scraped; they
// are written once per run in the text exposition format, for example into
// the node_exporter textfile collector directory.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/arloliu/brc/engine"
)

const namespace = "brc"

// Recorder holds the run metrics on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	Runs      *prometheus.CounterVec
	BytesRead prometheus.Counter
	Records   prometheus.Counter
	Skipped   prometheus.Counter
	Discarded prometheus.Counter
	Keys      prometheus.Gauge
	Duration  *prometheus.HistogramVec
}

// NewRecorder creates a Recorder with all metrics registered.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		Runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total aggregation runs",
		}, []string{"strategy", "result"}), // "ok", "error"
		BytesRead: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_read_total",
			Help:      "Decompressed input bytes consumed",
		}),
		Records: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "Records aggregated",
		}),
		Skipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_skipped_total",
			Help:      "Malformed records skipped",
		}),
		Discarded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trailing_bytes_discarded_total",
			Help:      "Bytes of unterminated final records dropped",
		}),
		Keys: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "keys",
			Help:      "Distinct keys in the last run",
		}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Aggregation wall time",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"strategy"}),
	}
}

// Observe records one run. err is the error the run returned, if any.
func (r *Recorder) Observe(s engine.Summary, err error) {
	strategy := s.Strategy.String()
	result := "ok"
	if err != nil {
		result = "error"
	}

	r.Runs.WithLabelValues(strategy, result).Inc()
	r.BytesRead.Add(float64(s.Bytes))
	r.Records.Add(float64(s.Records))
	r.Skipped.Add(float64(s.Skipped))
	r.Discarded.Add(float64(s.Discarded))
	r.Keys.Set(float64(s.Keys))
	r.Duration.WithLabelValues(strategy).Observe(s.Elapsed.Seconds())
}

// Gatherer exposes the registry, e.g. for promhttp.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteToTextfile writes all metrics to path atomically.
func (r *Recorder) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
