package forecast

import (
	"fmt"
	"math"

	"weatherbot.app/models"
)

// tempChangeThreshold is the day-over-day delta (in °C) that triggers a
// warming or cooling alert.
const tempChangeThreshold = 8.0

// DetectChanges compares today against tomorrow and returns severe-change
// alerts in a fixed order: warming, cooling, new precipitation, thunderstorm.
// Fewer than two days of outlook yields no alerts. Warming and cooling are
// not mutually exclusive.
func DetectChanges(outlook []models.DayRecord) []string {
	if len(outlook) < 2 {
		return nil
	}

	today, tomorrow := outlook[0], outlook[1]
	maxDelta := tomorrow.TempMax - today.TempMax
	minDelta := tomorrow.TempMin - today.TempMin

	var alerts []string

	if warming := math.Max(maxDelta, minDelta); warming >= tempChangeThreshold {
		alerts = append(alerts, fmt.Sprintf("🔥 Sharp warming tomorrow: up to %.0f°C warmer", warming))
	}

	if cooling := math.Min(maxDelta, minDelta); cooling <= -tempChangeThreshold {
		alerts = append(alerts, fmt.Sprintf("🥶 Sharp cooling tomorrow: up to %.0f°C colder", -cooling))
	}

	if tomorrow.PrecipitationSum > 0 && today.PrecipitationSum == 0 {
		alerts = append(alerts, "🌧 Precipitation expected tomorrow after a dry day")
	}

	if IsThunderstormCode(tomorrow.WeatherCode) {
		alerts = append(alerts, "⛈ Thunderstorm expected tomorrow")
	}

	return alerts
}
