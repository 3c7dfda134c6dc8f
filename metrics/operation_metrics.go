package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"nosqlkit.app/internal/core/instrument"
)

// OperationMetricsCollector holds the per-operation Prometheus series
type OperationMetricsCollector struct {
	Calls    *prometheus.CounterVec
	Errors   *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

var (
	operationCollector     *OperationMetricsCollector
	operationCollectorOnce sync.Once
)

// Operations returns the process-wide operation collector
func Operations() *OperationMetricsCollector {
	operationCollectorOnce.Do(func() {
		operationCollector = &OperationMetricsCollector{
			Calls: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "nosqlkit_operation_calls_total",
					Help: "The total number of calls per instrumented operation",
				},
				[]string{"operation"},
			),
			Errors: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "nosqlkit_operation_errors_total",
					Help: "The total number of failed calls per instrumented operation",
				},
				[]string{"operation"},
			),
			Duration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "nosqlkit_operation_duration_seconds",
					Help:    "Instrumented operation duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"operation"},
			),
		}
	})
	return operationCollector
}

// ObserveCalls records count, failures and latency of next under name
func ObserveCalls[A, R any](name string, next instrument.Operation[A, R]) instrument.Operation[A, R] {
	collector := Operations()
	return func(ctx context.Context, in A) (R, error) {
		start := time.Now()
		out, err := next(ctx, in)

		collector.Calls.WithLabelValues(name).Inc()
		collector.Duration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		if err != nil {
			collector.Errors.WithLabelValues(name).Inc()
		}
		return out, err
	}
}

// WithObserve is ObserveCalls as an instrument.Middleware
func WithObserve[A, R any](name string) instrument.Middleware[A, R] {
	return func(next instrument.Operation[A, R]) instrument.Operation[A, R] {
		return ObserveCalls(name, next)
	}
}
