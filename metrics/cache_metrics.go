package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type CacheMetricsCollector struct {
	Hits     *prometheus.CounterVec
	Misses   *prometheus.CounterVec
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
	HitRatio *prometheus.GaugeVec
}

var (
	cacheCollector     *CacheMetricsCollector
	cacheCollectorOnce sync.Once
)

func getCacheCollector() *CacheMetricsCollector {
	cacheCollectorOnce.Do(func() {
		cacheCollector = &CacheMetricsCollector{
			Hits: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "nosqlkit_cache_hits_total",
					Help: "The total number of cache reads that found their key",
				},
				[]string{"store_type"},
			),
			Misses: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "nosqlkit_cache_misses_total",
					Help: "The total number of cache reads for absent keys",
				},
				[]string{"store_type"},
			),
			Requests: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "nosqlkit_cache_reads_total",
					Help: "The total number of cache reads",
				},
				[]string{"store_type"},
			),
			Latency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "nosqlkit_cache_duration_seconds",
					Help:    "Cache operation duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"store_type", "operation"},
			),
			HitRatio: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "nosqlkit_cache_hit_ratio",
					Help: "Cache hit ratio (hits/total reads)",
				},
				[]string{"store_type"},
			),
		}
	})
	return cacheCollector
}

// CacheMetrics tracks cache reads for one store type
type CacheMetrics struct {
	storeType string
	hits      int64
	misses    int64
	total     int64
	collector *CacheMetricsCollector
	mu        sync.RWMutex
}

func NewCacheMetrics(storeType string) *CacheMetrics {
	return &CacheMetrics{
		storeType: storeType,
		collector: getCacheCollector(),
	}
}

func (m *CacheMetrics) RecordHit() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hits++
	m.total++
	m.collector.Hits.WithLabelValues(m.storeType).Inc()
	m.collector.Requests.WithLabelValues(m.storeType).Inc()
	m.updateHitRatio()
}

func (m *CacheMetrics) RecordMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.misses++
	m.total++
	m.collector.Misses.WithLabelValues(m.storeType).Inc()
	m.collector.Requests.WithLabelValues(m.storeType).Inc()
	m.updateHitRatio()
}

// RecordLatency observes the duration in seconds of a store round trip
func (m *CacheMetrics) RecordLatency(operation string, seconds float64) {
	m.collector.Latency.WithLabelValues(m.storeType, operation).Observe(seconds)
}

// updateHitRatio must be called while holding the mutex
func (m *CacheMetrics) updateHitRatio() {
	if m.total > 0 {
		m.collector.HitRatio.WithLabelValues(m.storeType).Set(float64(m.hits) / float64(m.total))
	}
}

func (m *CacheMetrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var hitRatio float64
	if m.total > 0 {
		hitRatio = float64(m.hits) / float64(m.total)
	}

	return map[string]interface{}{
		"store_type": m.storeType,
		"hits":       m.hits,
		"misses":     m.misses,
		"total":      m.total,
		"hit_ratio":  hitRatio,
	}
}
