package forecast

// WMO weather interpretation codes as used by the Open-Meteo API.
// Codes missing from the table map to the generic unknown label.

var weatherCodeLabels = map[int]string{
	0:  "☀️ Clear sky",
	1:  "🌤 Mainly clear",
	2:  "⛅ Partly cloudy",
	3:  "☁️ Overcast",
	45: "🌫 Fog",
	48: "🌫 Depositing rime fog",
	51: "🌦 Light drizzle",
	53: "🌦 Moderate drizzle",
	55: "🌧 Dense drizzle",
	56: "🌧 Light freezing drizzle",
	57: "🌧 Dense freezing drizzle",
	61: "🌧 Slight rain",
	63: "🌧 Moderate rain",
	65: "🌧 Heavy rain",
	66: "🌧 Light freezing rain",
	67: "🌧 Heavy freezing rain",
	71: "🌨 Slight snowfall",
	73: "🌨 Moderate snowfall",
	75: "❄️ Heavy snowfall",
	77: "❄️ Snow grains",
	80: "🌦 Slight rain showers",
	81: "🌧 Moderate rain showers",
	82: "⛈ Violent rain showers",
	85: "🌨 Slight snow showers",
	86: "❄️ Heavy snow showers",
	95: "⛈ Thunderstorm",
	96: "⛈ Thunderstorm with slight hail",
	99: "⛈ Thunderstorm with heavy hail",
}

const unknownWeatherLabel = "🌈 Unknown conditions"

// thunderstormCodes are the codes the change detector treats as storm weather
var thunderstormCodes = map[int]bool{
	95: true,
	96: true,
	99: true,
}

// WeatherCodeLabel returns the human-readable label for a WMO weather code
func WeatherCodeLabel(code int) string {
	if label, ok := weatherCodeLabels[code]; ok {
		return label
	}
	return unknownWeatherLabel
}

// IsThunderstormCode reports whether the code denotes thunderstorm conditions
func IsThunderstormCode(code int) bool {
	return thunderstormCodes[code]
}
