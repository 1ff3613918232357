package providers

import (
	goerrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherbot.app/config"
	apperrors "weatherbot.app/errors"
)

func forecastConfig(baseURL string) *config.ForecastConfig {
	return &config.ForecastConfig{
		BaseURL:        baseURL,
		TimeoutSeconds: 5,
	}
}

func TestOpenMeteoProvider_GetForecast(t *testing.T) {
	t.Run("ValidForecastResponse", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.Path, "/forecast")
			query := r.URL.Query()
			assert.Equal(t, "auto", query.Get("timezone"))
			assert.Contains(t, query.Get("hourly"), "temperature_2m")
			assert.Contains(t, query.Get("hourly"), "apparent_temperature")
			assert.Contains(t, query.Get("daily"), "winddirection_10m_dominant")

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, err := w.Write([]byte(`{
				"timezone": "Europe/Kyiv",
				"hourly": {
					"time": ["2026-03-10T00:00", "2026-03-10T01:00"],
					"temperature_2m": [3.5, 2.9],
					"relative_humidity_2m": [80, 82],
					"wind_speed_10m": [12.1, 11.4],
					"precipitation": [0, 0.2],
					"weathercode": [2, 61],
					"apparent_temperature": [0.9, 0.1]
				},
				"daily": {
					"time": ["2026-03-10"],
					"temperature_2m_max": [7.1],
					"temperature_2m_min": [1.3]
				}
			}`))
			require.NoError(t, err)
		}))
		defer mockServer.Close()

		provider := NewOpenMeteoProvider(forecastConfig(mockServer.URL))
		payload, err := provider.GetForecast(50.45, 30.52)

		require.NoError(t, err)
		require.NotNil(t, payload)
		assert.Equal(t, "Europe/Kyiv", payload.Timezone)
		assert.Equal(t, []float64{3.5, 2.9}, payload.Hourly.Temperature)
		assert.Equal(t, []int{2, 61}, payload.Hourly.WeatherCode)
		assert.Equal(t, []float64{7.1}, payload.Daily.TemperatureMax)
	})

	t.Run("AbsentArraysDecodeToEmptySequences", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, err := w.Write([]byte(`{"timezone": "UTC"}`))
			require.NoError(t, err)
		}))
		defer mockServer.Close()

		provider := NewOpenMeteoProvider(forecastConfig(mockServer.URL))
		payload, err := provider.GetForecast(0, 0)

		require.NoError(t, err)
		assert.Empty(t, payload.Hourly.Time)
		assert.Empty(t, payload.Daily.Time)
	})

	t.Run("NonSuccessStatus", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer mockServer.Close()

		provider := NewOpenMeteoProvider(forecastConfig(mockServer.URL))
		payload, err := provider.GetForecast(50.45, 30.52)

		assert.Nil(t, payload)
		var appErr *apperrors.AppError
		require.True(t, goerrors.As(err, &appErr))
		assert.Equal(t, apperrors.ExternalAPIError, appErr.Type)
	})

	t.Run("MalformedResponseBody", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, err := w.Write([]byte(`{not json`))
			require.NoError(t, err)
		}))
		defer mockServer.Close()

		provider := NewOpenMeteoProvider(forecastConfig(mockServer.URL))
		payload, err := provider.GetForecast(50.45, 30.52)

		assert.Nil(t, payload)
		var appErr *apperrors.AppError
		require.True(t, goerrors.As(err, &appErr))
		assert.Equal(t, apperrors.ExternalAPIError, appErr.Type)
	})

	t.Run("CoordinatesOutOfRange", func(t *testing.T) {
		provider := NewOpenMeteoProvider(forecastConfig("http://localhost"))

		_, err := provider.GetForecast(91, 0)
		assert.True(t, apperrors.IsValidationError(err))

		_, err = provider.GetForecast(0, -181)
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("CircuitOpensAfterRepeatedFailures", func(t *testing.T) {
		var requests int
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer mockServer.Close()

		provider := NewOpenMeteoProvider(forecastConfig(mockServer.URL))

		for i := 0; i < 10; i++ {
			_, err := provider.GetForecast(50.45, 30.52)
			require.Error(t, err)
			var appErr *apperrors.AppError
			require.True(t, goerrors.As(err, &appErr))
			assert.Equal(t, apperrors.ExternalAPIError, appErr.Type)
		}

		// The breaker tripped at some point, so not every call reached upstream.
		assert.Less(t, requests, 10)
	})
}
