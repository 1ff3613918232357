package providers

import (
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
	"weatherbot.app/metrics"
	"weatherbot.app/models"
	"weatherbot.app/providers/cache"
)

// ForecastCacheProxy layers the TTL cache in front of a real forecast
// provider. Coordinates are bucketed to two decimal places so nearby users
// share one entry, and concurrent misses on the same bucket are collapsed
// into a single upstream fetch.
type ForecastCacheProxy struct {
	realProvider ForecastProvider
	cache        cache.ForecastCacheInterface
	cacheTTL     time.Duration
	cacheMetrics *metrics.CacheMetrics
	group        singleflight.Group
}

func NewForecastCacheProxy(
	realProvider ForecastProvider,
	forecastCache cache.ForecastCacheInterface,
	cacheTTL time.Duration,
	cacheMetrics *metrics.CacheMetrics,
) *ForecastCacheProxy {
	return &ForecastCacheProxy{
		realProvider: realProvider,
		cache:        forecastCache,
		cacheTTL:     cacheTTL,
		cacheMetrics: cacheMetrics,
	}
}

// GetForecast returns the cached payload for the coordinate bucket when it
// is still fresh, otherwise fetches and stores a new one.
func (p *ForecastCacheProxy) GetForecast(lat, lon float64) (*models.ForecastPayload, error) {
	key := CoordinateKey(lat, lon)

	if cached, found := p.cache.Get(key); found {
		slog.Debug("forecast cache hit", "key", key)
		p.cacheMetrics.RecordHit()
		return cached, nil
	}

	slog.Debug("forecast cache miss", "key", key)
	p.cacheMetrics.RecordMiss()

	result, err, _ := p.group.Do(key, func() (interface{}, error) {
		payload, err := p.realProvider.GetForecast(lat, lon)
		if err != nil {
			return nil, err
		}
		p.cache.Set(key, payload, p.cacheTTL)
		return payload, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*models.ForecastPayload), nil
}

// CoordinateKey buckets a coordinate pair to two decimal places
func CoordinateKey(lat, lon float64) string {
	return fmt.Sprintf("forecast:%.2f:%.2f", lat, lon)
}
