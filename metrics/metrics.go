// Package metrics exposes Prometheus instrumentation for the service
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metricsCollector struct {
	CacheHits     *prometheus.CounterVec
	CacheMisses   *prometheus.CounterVec
	CacheRequests *prometheus.CounterVec
	CacheHitRatio *prometheus.GaugeVec

	NotificationFires    prometheus.Counter
	NotificationDrops    prometheus.Counter
	NotificationFailures prometheus.Counter
	UpstreamFetches      prometheus.Counter
}

var (
	globalCollector *metricsCollector
	collectorOnce   sync.Once
)

func getCollector() *metricsCollector {
	collectorOnce.Do(func() {
		globalCollector = &metricsCollector{
			CacheHits: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "forecast_cache_hits_total",
					Help: "The total number of forecast cache hits",
				},
				[]string{"cache_type"},
			),
			CacheMisses: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "forecast_cache_misses_total",
					Help: "The total number of forecast cache misses",
				},
				[]string{"cache_type"},
			),
			CacheRequests: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "forecast_cache_requests_total",
					Help: "The total number of forecast cache requests",
				},
				[]string{"cache_type"},
			),
			CacheHitRatio: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "forecast_cache_hit_ratio",
					Help: "Forecast cache hit ratio (hits/total requests)",
				},
				[]string{"cache_type"},
			),
			NotificationFires: promauto.NewCounter(prometheus.CounterOpts{
				Name: "notification_fires_total",
				Help: "The total number of scheduled notification fires",
			}),
			NotificationDrops: promauto.NewCounter(prometheus.CounterOpts{
				Name: "notification_drops_total",
				Help: "The total number of fires dropped because the previous run was still in progress",
			}),
			NotificationFailures: promauto.NewCounter(prometheus.CounterOpts{
				Name: "notification_failures_total",
				Help: "The total number of notification cycles that failed",
			}),
			UpstreamFetches: promauto.NewCounter(prometheus.CounterOpts{
				Name: "forecast_upstream_fetches_total",
				Help: "The total number of requests made to the upstream forecast API",
			}),
		}
	})
	return globalCollector
}

// CacheMetrics tracks hit/miss statistics for one cache backend
type CacheMetrics struct {
	cacheType string
	hits      int64
	misses    int64
	total     int64
	collector *metricsCollector
	mu        sync.RWMutex
}

func NewCacheMetrics(cacheType string) *CacheMetrics {
	return &CacheMetrics{
		cacheType: cacheType,
		collector: getCollector(),
	}
}

func (m *CacheMetrics) RecordHit() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hits++
	m.total++
	m.collector.CacheHits.WithLabelValues(m.cacheType).Inc()
	m.collector.CacheRequests.WithLabelValues(m.cacheType).Inc()
	m.updateHitRatio()
}

func (m *CacheMetrics) RecordMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.misses++
	m.total++
	m.collector.CacheMisses.WithLabelValues(m.cacheType).Inc()
	m.collector.CacheRequests.WithLabelValues(m.cacheType).Inc()
	m.updateHitRatio()
}

// updateHitRatio updates the Prometheus hit ratio gauge.
// Must be called while holding the mutex.
func (m *CacheMetrics) updateHitRatio() {
	if m.total > 0 {
		ratio := float64(m.hits) / float64(m.total)
		m.collector.CacheHitRatio.WithLabelValues(m.cacheType).Set(ratio)
	}
}

// Stats is a point-in-time snapshot of the cache counters
type Stats struct {
	CacheType string  `json:"cache_type"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Total     int64   `json:"total"`
	HitRatio  float64 `json:"hit_ratio"`
}

func (m *CacheMetrics) GetStats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var hitRatio float64
	if m.total > 0 {
		hitRatio = float64(m.hits) / float64(m.total)
	}

	return Stats{
		CacheType: m.cacheType,
		Hits:      m.hits,
		Misses:    m.misses,
		Total:     m.total,
		HitRatio:  hitRatio,
	}
}

// NotificationMetrics tracks scheduler fire outcomes
type NotificationMetrics struct {
	collector *metricsCollector
}

func NewNotificationMetrics() *NotificationMetrics {
	return &NotificationMetrics{collector: getCollector()}
}

func (m *NotificationMetrics) RecordFire()    { m.collector.NotificationFires.Inc() }
func (m *NotificationMetrics) RecordDrop()    { m.collector.NotificationDrops.Inc() }
func (m *NotificationMetrics) RecordFailure() { m.collector.NotificationFailures.Inc() }

// RecordUpstreamFetch counts one request to the upstream forecast API
func RecordUpstreamFetch() {
	getCollector().UpstreamFetches.Inc()
}
