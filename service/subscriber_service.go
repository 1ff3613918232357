package service

import (
	"fmt"
	"log/slog"

	"weatherbot.app/errors"
	"weatherbot.app/models"
	"weatherbot.app/providers"
)

// SubscriberService manages subscription lifecycle: geocoding the city,
// persisting the profile and arming the notification job.
type SubscriberService struct {
	userRepo  UserRepositoryInterface
	geocoder  providers.GeocodingProvider
	scheduler JobScheduler
}

// NewSubscriberService creates a new subscriber service
func NewSubscriberService(
	userRepo UserRepositoryInterface,
	geocoder providers.GeocodingProvider,
	scheduler JobScheduler,
) *SubscriberService {
	return &SubscriberService{
		userRepo:  userRepo,
		geocoder:  geocoder,
		scheduler: scheduler,
	}
}

// Subscribe creates or updates a user's subscription. The scheduler job for
// the chat id is replaced; a validation failure leaves any prior job intact.
func (s *SubscriberService) Subscribe(req *models.SubscriptionRequest) (*models.UserProfile, error) {
	location, err := s.geocoder.LookupCity(req.City)
	if err != nil {
		return nil, err
	}

	profile := &models.UserProfile{
		ID:           req.ChatID,
		Email:        req.Email,
		City:         location.Name,
		Latitude:     location.Latitude,
		Longitude:    location.Longitude,
		Timezone:     location.Timezone,
		NotifyHour:   req.NotifyHour,
		NotifyMinute: req.NotifyMinute,
	}

	if err := s.scheduler.Register(profile.ID, profile.NotifyHour, profile.NotifyMinute, profile.Timezone); err != nil {
		return nil, err
	}

	// The armed job is authoritative for this process lifetime; a failed
	// write only loses the profile across a restart.
	if err := s.userRepo.Save(profile); err != nil {
		slog.Error("Failed to persist user profile, continuing with armed job",
			"chat_id", profile.ID, "error", errors.NewDatabaseError("failed to save user profile", err))
	}

	return profile, nil
}

// Unsubscribe disarms the user's job and removes the profile
func (s *SubscriberService) Unsubscribe(id models.ChatID) error {
	profile, err := s.userRepo.FindByID(id)
	if err != nil {
		return errors.NewDatabaseError("failed to load user profile", err)
	}
	if profile == nil {
		return errors.NewNotFoundError(fmt.Sprintf("user profile not found: %d", id))
	}

	s.scheduler.Unregister(id)

	if err := s.userRepo.Delete(id); err != nil {
		slog.Error("Failed to delete user profile, job already disarmed",
			"chat_id", id, "error", errors.NewDatabaseError("failed to delete user profile", err))
	}

	return nil
}

// Get returns the stored profile for a chat id
func (s *SubscriberService) Get(id models.ChatID) (*models.UserProfile, error) {
	profile, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to load user profile", err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user profile not found: %d", id))
	}

	return profile, nil
}

// ArmAll loads every stored profile and arms its notification job. Called
// once at process start. Invalid profiles are logged and skipped.
func (s *SubscriberService) ArmAll() (int, error) {
	profiles, err := s.userRepo.LoadAll()
	if err != nil {
		return 0, errors.NewDatabaseError("failed to load user profiles", err)
	}

	armed := 0
	for _, profile := range profiles {
		if err := s.scheduler.Register(profile.ID, profile.NotifyHour, profile.NotifyMinute, profile.Timezone); err != nil {
			slog.Error("Skipping profile with invalid schedule", "chat_id", profile.ID, "error", err)
			continue
		}
		armed++
	}

	slog.Info("Armed notification jobs", "count", armed, "total", len(profiles))
	return armed, nil
}
