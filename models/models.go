// Package models defines data structures used throughout the application
package models

import (
	"time"

	"gorm.io/gorm"
)

// ChatID identifies a subscriber. It is opaque to this service; the chat
// platform owns the value.
type ChatID int64

// UserProfile represents a subscriber and their notification preferences
type UserProfile struct {
	ID           ChatID         `json:"chat_id" gorm:"primaryKey"`
	Email        string         `json:"email" gorm:"not null"`
	City         string         `json:"city" gorm:"not null"`
	Latitude     float64        `json:"latitude"`
	Longitude    float64        `json:"longitude"`
	Timezone     string         `json:"timezone" gorm:"not null"`
	NotifyHour   int            `json:"notify_hour"`
	NotifyMinute int            `json:"notify_minute"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// GeoLocation is a resolved city: coordinates plus the IANA zone they fall in
type GeoLocation struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// ForecastPayload is the parsed Open-Meteo forecast response. Absent arrays
// decode to nil slices, which the aggregator treats as empty sequences.
type ForecastPayload struct {
	Timezone string       `json:"timezone"`
	Hourly   HourlySeries `json:"hourly"`
	Daily    DailySeries  `json:"daily"`
}

// HourlySeries holds the parallel hourly arrays, index-aligned by the upstream API
type HourlySeries struct {
	Time                []string  `json:"time"`
	Temperature         []float64 `json:"temperature_2m"`
	Humidity            []float64 `json:"relative_humidity_2m"`
	WindSpeed           []float64 `json:"wind_speed_10m"`
	Precipitation       []float64 `json:"precipitation"`
	WeatherCode         []int     `json:"weathercode"`
	ApparentTemperature []float64 `json:"apparent_temperature"`
}

// DailySeries holds the parallel daily arrays, index-aligned by the upstream API
type DailySeries struct {
	Time                   []string  `json:"time"`
	Sunrise                []string  `json:"sunrise"`
	Sunset                 []string  `json:"sunset"`
	TemperatureMax         []float64 `json:"temperature_2m_max"`
	TemperatureMin         []float64 `json:"temperature_2m_min"`
	ApparentTemperatureMax []float64 `json:"apparent_temperature_max"`
	ApparentTemperatureMin []float64 `json:"apparent_temperature_min"`
	PrecipitationSum       []float64 `json:"precipitation_sum"`
	UVIndexMax             []float64 `json:"uv_index_max"`
	WindSpeedMax           []float64 `json:"windspeed_10m_max"`
	WindDirectionDominant  []float64 `json:"winddirection_10m_dominant"`
	WeatherCode            []int     `json:"weathercode"`
}

// HourlyEntry is a single hour of the notification window
type HourlyEntry struct {
	Time                time.Time `json:"time"`
	Temperature         float64   `json:"temperature"`
	ApparentTemperature float64   `json:"apparent_temperature"`
	Humidity            float64   `json:"humidity"`
	WindSpeed           float64   `json:"wind_speed"`
	Precipitation       float64   `json:"precipitation"`
	WeatherCode         int       `json:"weather_code"`
}

// DayRecord is one day of the outlook, copied verbatim from the daily arrays
type DayRecord struct {
	Date                  string  `json:"date"`
	Sunrise               string  `json:"sunrise"`
	Sunset                string  `json:"sunset"`
	TempMax               float64 `json:"temp_max"`
	TempMin               float64 `json:"temp_min"`
	ApparentTempMax       float64 `json:"apparent_temp_max"`
	ApparentTempMin       float64 `json:"apparent_temp_min"`
	PrecipitationSum      float64 `json:"precipitation_sum"`
	UVIndexMax            float64 `json:"uv_index_max"`
	WindSpeedMax          float64 `json:"wind_speed_max"`
	WindDirectionDominant float64 `json:"wind_direction_dominant"`
	WeatherCode           int     `json:"weather_code"`
}

// DigestStats are derived from the 12-hour window. They are absent (nil
// pointer on the digest) when the window is empty, never zero-valued.
type DigestStats struct {
	MinTemp      float64 `json:"min_temp"`
	MaxTemp      float64 `json:"max_temp"`
	AvgTemp      float64 `json:"avg_temp"`
	AvgHumidity  float64 `json:"avg_humidity"`
	AvgWind      float64 `json:"avg_wind"`
	RainExpected bool    `json:"rain_expected"`
}

// ForecastDigest is the normalized forecast summary produced per
// notification cycle. It is computed fresh each time and never persisted.
type ForecastDigest struct {
	Next12h      []HourlyEntry `json:"next_12h"`
	Stats        *DigestStats  `json:"stats,omitempty"`
	Summary      string        `json:"summary"`
	DailyOutlook []DayRecord   `json:"daily_outlook"`
}

// SubscriptionRequest represents data required to create or update a subscription
type SubscriptionRequest struct {
	ChatID       ChatID `json:"chat_id" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	City         string `json:"city" binding:"required"`
	NotifyHour   int    `json:"notify_hour" binding:"gte=0,lte=23"`
	NotifyMinute int    `json:"notify_minute" binding:"gte=0,lte=59"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
