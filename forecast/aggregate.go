// Package forecast turns raw forecast payloads into notification digests
package forecast

import (
	"math"
	"time"

	"weatherbot.app/models"
)

const (
	// hourlyTimeLayout is the local-time format Open-Meteo uses with timezone=auto
	hourlyTimeLayout = "2006-01-02T15:04"

	windowSize  = 12
	outlookDays = 3
)

// BuildDigest normalizes a raw forecast payload into a digest for one user.
// The 12-hour window starts at the top of the current hour in loc; derived
// stats are absent when the window is empty.
func BuildDigest(payload *models.ForecastPayload, loc *time.Location, now time.Time) models.ForecastDigest {
	digest := models.ForecastDigest{
		Next12h:      buildWindow(&payload.Hourly, loc, now),
		DailyOutlook: buildOutlook(&payload.Daily),
	}

	if len(digest.Next12h) > 0 {
		digest.Stats = computeStats(digest.Next12h)
		digest.Summary = WeatherCodeLabel(digest.Next12h[0].WeatherCode)
	}

	return digest
}

func buildWindow(hourly *models.HourlySeries, loc *time.Location, now time.Time) []models.HourlyEntry {
	if len(hourly.Time) == 0 {
		return nil
	}

	local := now.In(loc)
	hourStart := time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), 0, 0, 0, loc)

	start := 0
	for i, raw := range hourly.Time {
		ts, err := time.ParseInLocation(hourlyTimeLayout, raw, loc)
		if err != nil {
			continue
		}
		if !ts.Before(hourStart) {
			start = i
			break
		}
	}

	end := start + windowSize
	if end > len(hourly.Time) {
		end = len(hourly.Time)
	}

	entries := make([]models.HourlyEntry, 0, end-start)
	for i := start; i < end; i++ {
		ts, err := time.ParseInLocation(hourlyTimeLayout, hourly.Time[i], loc)
		if err != nil {
			continue
		}
		entries = append(entries, models.HourlyEntry{
			Time:                ts,
			Temperature:         floatAt(hourly.Temperature, i),
			ApparentTemperature: floatAt(hourly.ApparentTemperature, i),
			Humidity:            floatAt(hourly.Humidity, i),
			WindSpeed:           floatAt(hourly.WindSpeed, i),
			Precipitation:       floatAt(hourly.Precipitation, i),
			WeatherCode:         intAt(hourly.WeatherCode, i),
		})
	}

	return entries
}

func buildOutlook(daily *models.DailySeries) []models.DayRecord {
	days := len(daily.Time)
	if days > outlookDays {
		days = outlookDays
	}

	outlook := make([]models.DayRecord, 0, days)
	for i := 0; i < days; i++ {
		outlook = append(outlook, models.DayRecord{
			Date:                  daily.Time[i],
			Sunrise:               stringAt(daily.Sunrise, i),
			Sunset:                stringAt(daily.Sunset, i),
			TempMax:               floatAt(daily.TemperatureMax, i),
			TempMin:               floatAt(daily.TemperatureMin, i),
			ApparentTempMax:       floatAt(daily.ApparentTemperatureMax, i),
			ApparentTempMin:       floatAt(daily.ApparentTemperatureMin, i),
			PrecipitationSum:      floatAt(daily.PrecipitationSum, i),
			UVIndexMax:            floatAt(daily.UVIndexMax, i),
			WindSpeedMax:          floatAt(daily.WindSpeedMax, i),
			WindDirectionDominant: floatAt(daily.WindDirectionDominant, i),
			WeatherCode:           intAt(daily.WeatherCode, i),
		})
	}

	return outlook
}

func computeStats(entries []models.HourlyEntry) *models.DigestStats {
	stats := &models.DigestStats{
		MinTemp: entries[0].Temperature,
		MaxTemp: entries[0].Temperature,
	}

	var tempSum, humiditySum, windSum float64
	for _, e := range entries {
		if e.Temperature < stats.MinTemp {
			stats.MinTemp = e.Temperature
		}
		if e.Temperature > stats.MaxTemp {
			stats.MaxTemp = e.Temperature
		}
		tempSum += e.Temperature
		humiditySum += e.Humidity
		windSum += e.WindSpeed
		if e.Precipitation > 0 {
			stats.RainExpected = true
		}
	}

	n := float64(len(entries))
	stats.AvgTemp = round1(tempSum / n)
	stats.AvgHumidity = round1(humiditySum / n)
	stats.AvgWind = round1(windSum / n)

	return stats
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func floatAt(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}

func intAt(values []int, i int) int {
	if i < len(values) {
		return values[i]
	}
	return 0
}

func stringAt(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}
