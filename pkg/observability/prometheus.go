package observability

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder exports operation counts and latencies as Prometheus
// metrics.
type PrometheusRecorder struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewPrometheusRecorder registers the recorder's collectors on reg. When the
// collectors are already registered the existing ones are reused.
func NewPrometheusRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	calls := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "microplate",
			Subsystem: "operation",
			Name:      "calls_total",
			Help:      "Total number of operation calls by operator, level and status",
		},
		[]string{"operation", "level", "status"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "microplate",
			Subsystem: "operation",
			Name:      "duration_seconds",
			Help:      "Operation call latency by operator and level",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		},
		[]string{"operation", "level"},
	)

	var err error
	if calls, err = register(reg, calls); err != nil {
		return nil, fmt.Errorf("register calls counter: %w", err)
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, fmt.Errorf("register duration histogram: %w", err)
	}
	return &PrometheusRecorder{calls: calls, duration: duration}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Observe implements Recorder.
func (r *PrometheusRecorder) Observe(operation, level string, success bool, d time.Duration) {
	r.calls.WithLabelValues(operation, level, Status(success)).Inc()
	r.duration.WithLabelValues(operation, level).Observe(d.Seconds())
}
