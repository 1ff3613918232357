package providers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"weatherbot.app/config"
	"weatherbot.app/errors"
	"weatherbot.app/models"
)

// OpenMeteoGeocoder implements GeocodingProvider using the Open-Meteo
// geocoding API. Lookups that resolve without a usable timezone fall back
// to the configured zone.
type OpenMeteoGeocoder struct {
	baseURL          string
	fallbackTimezone string
	client           *http.Client
}

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Timezone  string  `json:"timezone"`
	} `json:"results"`
}

// NewOpenMeteoGeocoder creates a new geocoding provider
func NewOpenMeteoGeocoder(config *config.GeocodingConfig) *OpenMeteoGeocoder {
	return &OpenMeteoGeocoder{
		baseURL:          config.BaseURL,
		fallbackTimezone: config.FallbackTimezone,
		client:           &http.Client{Timeout: 10 * time.Second},
	}
}

// LookupCity resolves a city name to coordinates and an IANA timezone
func (g *OpenMeteoGeocoder) LookupCity(name string) (*models.GeoLocation, error) {
	if name == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}

	query := url.Values{}
	query.Set("name", name)
	query.Set("count", "1")
	query.Set("language", "en")
	query.Set("format", "json")

	resp, err := g.client.Get(fmt.Sprintf("%s/search?%s", g.baseURL, query.Encode()))
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to get geocoding data", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalAPIError(fmt.Sprintf("geocoding API returned status code %d", resp.StatusCode), nil)
	}

	var result geocodingResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode geocoding data", err)
	}

	if len(result.Results) == 0 {
		return nil, errors.NewNotFoundError(fmt.Sprintf("city not found: %s", name))
	}

	match := result.Results[0]
	return &models.GeoLocation{
		Name:      match.Name,
		Latitude:  match.Latitude,
		Longitude: match.Longitude,
		Timezone:  g.resolveTimezone(match.Timezone, name),
	}, nil
}

func (g *OpenMeteoGeocoder) resolveTimezone(zone, city string) string {
	if zone == "" {
		slog.Warn("Geocoding result has no timezone, using fallback", "city", city, "fallback", g.fallbackTimezone)
		return g.fallbackTimezone
	}
	if _, err := time.LoadLocation(zone); err != nil {
		slog.Warn("Geocoding result has invalid timezone, using fallback", "city", city, "zone", zone, "fallback", g.fallbackTimezone)
		return g.fallbackTimezone
	}
	return zone
}
