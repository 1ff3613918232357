package service

import (
	"log/slog"
	"time"

	"weatherbot.app/errors"
	"weatherbot.app/forecast"
	"weatherbot.app/models"
	"weatherbot.app/providers"
)

// CityDigest is the response for an on-demand weather query
type CityDigest struct {
	City     string                `json:"city"`
	Timezone string                `json:"timezone"`
	Digest   models.ForecastDigest `json:"digest"`
	Alerts   []string              `json:"alerts"`
}

// ForecastService produces digests for ad-hoc city queries
type ForecastService struct {
	geocoder providers.GeocodingProvider
	provider providers.ForecastProvider
	nowFn    func() time.Time
}

// NewForecastService creates a new forecast service
func NewForecastService(geocoder providers.GeocodingProvider, provider providers.ForecastProvider) *ForecastService {
	return &ForecastService{
		geocoder: geocoder,
		provider: provider,
		nowFn:    time.Now,
	}
}

// GetDigestByCity resolves a city and returns its current digest and alerts
func (s *ForecastService) GetDigestByCity(city string) (*CityDigest, error) {
	if city == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}

	location, err := s.geocoder.LookupCity(city)
	if err != nil {
		return nil, err
	}

	payload, err := s.provider.GetForecast(location.Latitude, location.Longitude)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(location.Timezone)
	if err != nil {
		// Geocoding already falls back to a known-good zone; a failure here
		// means the tz database changed underneath us.
		slog.Warn("Cannot load timezone, using UTC", "zone", location.Timezone, "error", err)
		loc = time.UTC
	}

	digest := forecast.BuildDigest(payload, loc, s.nowFn())

	return &CityDigest{
		City:     location.Name,
		Timezone: location.Timezone,
		Digest:   digest,
		Alerts:   forecast.DetectChanges(digest.DailyOutlook),
	}, nil
}
