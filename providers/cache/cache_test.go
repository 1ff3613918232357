package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherbot.app/models"
)

func samplePayload() *models.ForecastPayload {
	return &models.ForecastPayload{
		Timezone: "Europe/Kyiv",
		Hourly: models.HourlySeries{
			Time:        []string{"2026-03-10T00:00", "2026-03-10T01:00"},
			Temperature: []float64{3.5, 2.9},
			WeatherCode: []int{2, 3},
		},
		Daily: models.DailySeries{
			Time:           []string{"2026-03-10"},
			TemperatureMax: []float64{7.1},
		},
	}
}

func TestMemoryCache(t *testing.T) {
	memory := NewMemoryCache()
	defer memory.Stop()

	cache := NewForecastCache(memory)
	payload := samplePayload()

	t.Run("SetAndGet", func(t *testing.T) {
		cache.Set("forecast:50.45:30.52", payload, 5*time.Minute)

		result, found := cache.Get("forecast:50.45:30.52")
		require.True(t, found)
		assert.Equal(t, payload.Timezone, result.Timezone)
		assert.Equal(t, payload.Hourly.Temperature, result.Hourly.Temperature)
		assert.Equal(t, payload.Daily.TemperatureMax, result.Daily.TemperatureMax)
	})

	t.Run("GetNonExistentKey", func(t *testing.T) {
		result, found := cache.Get("forecast:0.00:0.00")
		assert.False(t, found)
		assert.Nil(t, result)
	})

	t.Run("Delete", func(t *testing.T) {
		cache.Set("forecast:48.85:2.35", payload, 5*time.Minute)

		_, found := cache.Get("forecast:48.85:2.35")
		require.True(t, found)

		cache.Delete("forecast:48.85:2.35")

		_, found = cache.Get("forecast:48.85:2.35")
		assert.False(t, found)
	})

	t.Run("TTLExpiration", func(t *testing.T) {
		cache.Set("forecast:ttl", payload, 50*time.Millisecond)

		_, found := cache.Get("forecast:ttl")
		require.True(t, found)

		time.Sleep(100 * time.Millisecond)

		_, found = cache.Get("forecast:ttl")
		assert.False(t, found)
	})

	t.Run("NilPayloadIsIgnored", func(t *testing.T) {
		cache.Set("forecast:nil", nil, 5*time.Minute)

		_, found := cache.Get("forecast:nil")
		assert.False(t, found)
	})
}

func TestRedisCache(t *testing.T) {
	mockRedis := miniredis.RunT(t)

	backend, err := NewRedisCache(&RedisCacheConfig{
		Addr:         mockRedis.Addr(),
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	require.NoError(t, err)
	defer func() { _ = backend.Close() }()

	cache := NewForecastCache(backend)
	payload := samplePayload()

	t.Run("SetAndGet", func(t *testing.T) {
		cache.Set("forecast:50.45:30.52", payload, 10*time.Minute)

		result, found := cache.Get("forecast:50.45:30.52")
		require.True(t, found)
		assert.Equal(t, payload.Hourly.Time, result.Hourly.Time)
	})

	t.Run("TTLExpiration", func(t *testing.T) {
		cache.Set("forecast:ttl", payload, time.Minute)

		mockRedis.FastForward(2 * time.Minute)

		_, found := cache.Get("forecast:ttl")
		assert.False(t, found)
	})

	t.Run("MalformedEntryIsAMiss", func(t *testing.T) {
		require.NoError(t, mockRedis.Set("forecast:bad", "{not json"))

		result, found := cache.Get("forecast:bad")
		assert.False(t, found)
		assert.Nil(t, result)
	})

	t.Run("Clear", func(t *testing.T) {
		cache.Set("forecast:a", payload, time.Minute)
		cache.Clear()

		_, found := cache.Get("forecast:a")
		assert.False(t, found)
	})
}

func TestMemoryCacheSweep(t *testing.T) {
	memory := &MemoryCache{
		data:   make(map[string]cacheEntry),
		ticker: time.NewTicker(time.Hour),
		stopCh: make(chan struct{}),
	}
	defer memory.Stop()

	memory.Set(context.Background(), "stale", []byte("x"), -time.Second)
	memory.Set(context.Background(), "fresh", []byte("y"), time.Hour)

	memory.removeExpiredEntries()

	assert.NotContains(t, memory.data, "stale")
	assert.Contains(t, memory.data, "fresh")
}
