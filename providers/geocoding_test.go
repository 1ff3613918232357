package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherbot.app/config"
	apperrors "weatherbot.app/errors"
)

func geocodingConfig(baseURL string) *config.GeocodingConfig {
	return &config.GeocodingConfig{
		BaseURL:          baseURL,
		FallbackTimezone: "Europe/Moscow",
	}
}

func TestOpenMeteoGeocoder_LookupCity(t *testing.T) {
	t.Run("CityFound", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.Path, "/search")
			assert.Equal(t, "Kyiv", r.URL.Query().Get("name"))

			w.WriteHeader(http.StatusOK)
			_, err := w.Write([]byte(`{
				"results": [{
					"name": "Kyiv",
					"latitude": 50.4547,
					"longitude": 30.5238,
					"timezone": "Europe/Kyiv"
				}]
			}`))
			require.NoError(t, err)
		}))
		defer mockServer.Close()

		geocoder := NewOpenMeteoGeocoder(geocodingConfig(mockServer.URL))
		location, err := geocoder.LookupCity("Kyiv")

		require.NoError(t, err)
		assert.Equal(t, "Kyiv", location.Name)
		assert.Equal(t, 50.4547, location.Latitude)
		assert.Equal(t, 30.5238, location.Longitude)
		assert.Equal(t, "Europe/Kyiv", location.Timezone)
	})

	t.Run("CityNotFound", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, err := w.Write([]byte(`{"results": []}`))
			require.NoError(t, err)
		}))
		defer mockServer.Close()

		geocoder := NewOpenMeteoGeocoder(geocodingConfig(mockServer.URL))
		location, err := geocoder.LookupCity("Nowhereville")

		assert.Nil(t, location)
		assert.True(t, apperrors.IsNotFoundError(err))
	})

	t.Run("MissingTimezoneFallsBack", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, err := w.Write([]byte(`{
				"results": [{"name": "Atlantis", "latitude": 1, "longitude": 2}]
			}`))
			require.NoError(t, err)
		}))
		defer mockServer.Close()

		geocoder := NewOpenMeteoGeocoder(geocodingConfig(mockServer.URL))
		location, err := geocoder.LookupCity("Atlantis")

		require.NoError(t, err)
		assert.Equal(t, "Europe/Moscow", location.Timezone)
	})

	t.Run("InvalidTimezoneFallsBack", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, err := w.Write([]byte(`{
				"results": [{"name": "Atlantis", "latitude": 1, "longitude": 2, "timezone": "Not/AZone"}]
			}`))
			require.NoError(t, err)
		}))
		defer mockServer.Close()

		geocoder := NewOpenMeteoGeocoder(geocodingConfig(mockServer.URL))
		location, err := geocoder.LookupCity("Atlantis")

		require.NoError(t, err)
		assert.Equal(t, "Europe/Moscow", location.Timezone)
	})

	t.Run("EmptyCityName", func(t *testing.T) {
		geocoder := NewOpenMeteoGeocoder(geocodingConfig("http://localhost"))

		_, err := geocoder.LookupCity("")
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("UpstreamError", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer mockServer.Close()

		geocoder := NewOpenMeteoGeocoder(geocodingConfig(mockServer.URL))

		_, err := geocoder.LookupCity("Kyiv")
		assert.True(t, apperrors.IsExternalAPIError(err))
	})
}
