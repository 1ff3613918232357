package service

import (
	"fmt"
	"strings"

	"weatherbot.app/errors"
	"weatherbot.app/models"
	"weatherbot.app/providers"
)

// DeliveryService formats digests and sends them through the email provider
type DeliveryService struct {
	provider providers.EmailProvider
}

// NewDeliveryService creates a new delivery service
func NewDeliveryService(provider providers.EmailProvider) *DeliveryService {
	return &DeliveryService{
		provider: provider,
	}
}

// Deliver sends the digest to the user's email address
func (s *DeliveryService) Deliver(profile *models.UserProfile, digest models.ForecastDigest, alerts []string) error {
	if profile.Email == "" {
		return errors.NewValidationError("profile has no email address")
	}

	subject := fmt.Sprintf("Weather digest for %s", profile.City)
	body := FormatDigestHTML(profile.City, digest, alerts)

	return s.provider.SendEmail(profile.Email, subject, body, true)
}

// FormatDigestHTML renders the digest as a simple HTML email body
func FormatDigestHTML(city string, digest models.ForecastDigest, alerts []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<h2>%s — %s</h2>", city, digest.Summary)

	if len(alerts) > 0 {
		b.WriteString("<p>")
		for _, alert := range alerts {
			fmt.Fprintf(&b, "<b>%s</b><br>", alert)
		}
		b.WriteString("</p>")
	}

	if stats := digest.Stats; stats != nil {
		fmt.Fprintf(&b, "<p>Next 12 hours: %.1f…%.1f°C (avg %.1f°C), humidity %.1f%%, wind %.1f m/s",
			stats.MinTemp, stats.MaxTemp, stats.AvgTemp, stats.AvgHumidity, stats.AvgWind)
		if stats.RainExpected {
			b.WriteString(", rain expected")
		}
		b.WriteString("</p>")
	}

	if len(digest.Next12h) > 0 {
		b.WriteString("<ul>")
		for _, entry := range digest.Next12h {
			fmt.Fprintf(&b, "<li>%s — %.1f°C (feels like %.1f°C), %.1f mm</li>",
				entry.Time.Format("15:04"), entry.Temperature, entry.ApparentTemperature, entry.Precipitation)
		}
		b.WriteString("</ul>")
	}

	if len(digest.DailyOutlook) > 0 {
		b.WriteString("<h3>3-day outlook</h3><ul>")
		for _, day := range digest.DailyOutlook {
			fmt.Fprintf(&b, "<li>%s: %.1f…%.1f°C, precipitation %.1f mm, UV %.1f</li>",
				day.Date, day.TempMin, day.TempMax, day.PrecipitationSum, day.UVIndexMax)
		}
		b.WriteString("</ul>")
	}

	return b.String()
}
