package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"weatherbot.app/errors"
	"weatherbot.app/forecast"
	"weatherbot.app/models"
	"weatherbot.app/providers"
)

// NotificationService runs one notification cycle per scheduler fire:
// fetch (through the cache) -> aggregate -> detect changes -> deliver.
// Every stage failure is a structured error; the scheduler logs it and
// leaves the job armed.
type NotificationService struct {
	userRepo UserRepositoryInterface
	provider providers.ForecastProvider
	delivery DeliveryServiceInterface
	nowFn    func() time.Time
}

// NewNotificationService creates a new notification pipeline
func NewNotificationService(
	userRepo UserRepositoryInterface,
	provider providers.ForecastProvider,
	delivery DeliveryServiceInterface,
) *NotificationService {
	return &NotificationService{
		userRepo: userRepo,
		provider: provider,
		delivery: delivery,
		nowFn:    time.Now,
	}
}

// Notify executes the pipeline for one user
func (s *NotificationService) Notify(id models.ChatID) error {
	cycleID := uuid.NewString()
	logger := slog.With("cycle_id", cycleID, "chat_id", id)

	profile, err := s.userRepo.FindByID(id)
	if err != nil {
		return errors.NewDatabaseError("failed to load user profile", err)
	}
	if profile == nil {
		return errors.NewNotFoundError(fmt.Sprintf("user profile not found: %d", id))
	}

	loc, err := time.LoadLocation(profile.Timezone)
	if err != nil {
		return errors.NewConfigurationError(fmt.Sprintf("invalid profile timezone: %s", profile.Timezone), err)
	}

	payload, err := s.provider.GetForecast(profile.Latitude, profile.Longitude)
	if err != nil {
		// Skip this cycle; the job stays armed for the next scheduled time.
		return err
	}

	digest := forecast.BuildDigest(payload, loc, s.nowFn())
	if len(digest.Next12h) == 0 && len(digest.DailyOutlook) == 0 {
		logger.Warn("Upstream returned no forecast data, skipping cycle")
		return nil
	}

	alerts := forecast.DetectChanges(digest.DailyOutlook)

	if err := s.delivery.Deliver(profile, digest, alerts); err != nil {
		return err
	}

	logger.Info("Notification delivered", "city", profile.City, "alerts", len(alerts))
	return nil
}
