package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherbot.app/models"
)

func outlookOf(today, tomorrow models.DayRecord) []models.DayRecord {
	return []models.DayRecord{today, tomorrow}
}

func TestDetectChanges(t *testing.T) {
	t.Run("WarmingAlertWithMagnitude", func(t *testing.T) {
		alerts := DetectChanges(outlookOf(
			models.DayRecord{TempMax: 10, TempMin: 2},
			models.DayRecord{TempMax: 19, TempMin: 4},
		))

		require.Len(t, alerts, 1)
		assert.Contains(t, alerts[0], "warming")
		assert.Contains(t, alerts[0], "9°C")
	})

	t.Run("CoolingAlert", func(t *testing.T) {
		alerts := DetectChanges(outlookOf(
			models.DayRecord{TempMax: 10, TempMin: 2},
			models.DayRecord{TempMax: 1, TempMin: -7},
		))

		require.Len(t, alerts, 1)
		assert.Contains(t, alerts[0], "cooling")
	})

	t.Run("WarmingAndCoolingTogether", func(t *testing.T) {
		// Max temp jumps while min temp collapses: both rules fire.
		alerts := DetectChanges(outlookOf(
			models.DayRecord{TempMax: 10, TempMin: 5},
			models.DayRecord{TempMax: 20, TempMin: -5},
		))

		require.Len(t, alerts, 2)
		assert.Contains(t, alerts[0], "warming")
		assert.Contains(t, alerts[1], "cooling")
	})

	t.Run("BelowThresholdIsQuiet", func(t *testing.T) {
		alerts := DetectChanges(outlookOf(
			models.DayRecord{TempMax: 10, TempMin: 2},
			models.DayRecord{TempMax: 17, TempMin: 3},
		))

		assert.Empty(t, alerts)
	})

	t.Run("NewPrecipitationAlert", func(t *testing.T) {
		alerts := DetectChanges(outlookOf(
			models.DayRecord{PrecipitationSum: 0},
			models.DayRecord{PrecipitationSum: 2.5},
		))

		require.Len(t, alerts, 1)
		assert.Contains(t, alerts[0], "Precipitation")
	})

	t.Run("NoPrecipitationAlertWhenAlreadyRaining", func(t *testing.T) {
		alerts := DetectChanges(outlookOf(
			models.DayRecord{PrecipitationSum: 1.2},
			models.DayRecord{PrecipitationSum: 2.5},
		))

		assert.Empty(t, alerts)
	})

	t.Run("ThunderstormAlert", func(t *testing.T) {
		alerts := DetectChanges(outlookOf(
			models.DayRecord{},
			models.DayRecord{WeatherCode: 96},
		))

		require.Len(t, alerts, 1)
		assert.Contains(t, alerts[0], "Thunderstorm")
	})

	t.Run("AlertsKeepFixedOrder", func(t *testing.T) {
		alerts := DetectChanges(outlookOf(
			models.DayRecord{TempMax: 10, TempMin: 2, PrecipitationSum: 0},
			models.DayRecord{TempMax: 20, TempMin: 4, PrecipitationSum: 3, WeatherCode: 95},
		))

		require.Len(t, alerts, 3)
		assert.Contains(t, alerts[0], "warming")
		assert.Contains(t, alerts[1], "Precipitation")
		assert.Contains(t, alerts[2], "Thunderstorm")
	})

	t.Run("SingleDayOutlookEmitsNothing", func(t *testing.T) {
		alerts := DetectChanges([]models.DayRecord{{TempMax: 10}})

		assert.Empty(t, alerts)
	})

	t.Run("EmptyOutlookEmitsNothing", func(t *testing.T) {
		assert.Empty(t, DetectChanges(nil))
	})
}
