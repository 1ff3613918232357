// Package providers implements clients for external collaborators
package providers

import "weatherbot.app/models"

// ForecastProvider defines the interface for forecast data sources
type ForecastProvider interface {
	GetForecast(lat, lon float64) (*models.ForecastPayload, error)
}

// GeocodingProvider defines the interface for city lookups
type GeocodingProvider interface {
	LookupCity(name string) (*models.GeoLocation, error)
}

// EmailProvider defines the interface for email providers
type EmailProvider interface {
	SendEmail(to, subject, body string, isHTML bool) error
}
