package providers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"weatherbot.app/config"
	"weatherbot.app/errors"
	"weatherbot.app/metrics"
	"weatherbot.app/models"
)

// Field lists requested from the upstream forecast API. The aggregator
// depends on these arrays staying index-aligned per the API contract.
const (
	hourlyFields = "temperature_2m,relative_humidity_2m,wind_speed_10m," +
		"precipitation,weathercode,apparent_temperature"
	dailyFields = "sunrise,sunset,temperature_2m_max,temperature_2m_min," +
		"apparent_temperature_max,apparent_temperature_min,precipitation_sum," +
		"uv_index_max,weathercode,windspeed_10m_max,winddirection_10m_dominant"
)

// OpenMeteoProvider implements ForecastProvider for the Open-Meteo API
type OpenMeteoProvider struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteoProvider creates a new Open-Meteo forecast provider
func NewOpenMeteoProvider(config *config.ForecastConfig) *OpenMeteoProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenMeteoProvider{
		baseURL: config.BaseURL,
		client:  &http.Client{Timeout: config.Timeout()},
		circuit: cb,
	}
}

// GetForecast retrieves the raw hourly/daily forecast for a coordinate pair
func (p *OpenMeteoProvider) GetForecast(lat, lon float64) (*models.ForecastPayload, error) {
	if lat < -90 || lat > 90 {
		return nil, errors.NewValidationError("latitude must be between -90 and 90")
	}
	if lon < -180 || lon > 180 {
		return nil, errors.NewValidationError("longitude must be between -180 and 180")
	}

	result, err := p.circuit.Execute(func() (interface{}, error) {
		return p.fetch(lat, lon)
	})
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return nil, appErr
		}
		return nil, errors.NewExternalAPIError("forecast service unavailable", err)
	}

	return result.(*models.ForecastPayload), nil
}

func (p *OpenMeteoProvider) fetch(lat, lon float64) (*models.ForecastPayload, error) {
	metrics.RecordUpstreamFetch()

	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%f", lat))
	query.Set("longitude", fmt.Sprintf("%f", lon))
	query.Set("hourly", hourlyFields)
	query.Set("daily", dailyFields)
	query.Set("timezone", "auto")

	resp, err := p.client.Get(fmt.Sprintf("%s/forecast?%s", p.baseURL, query.Encode()))
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to get forecast data", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			// Ignore close error as it's not critical for the main operation
			_ = closeErr
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalAPIError(fmt.Sprintf("forecast API returned status code %d", resp.StatusCode), nil)
	}

	var payload models.ForecastPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode forecast data", err)
	}

	return &payload, nil
}
