package service

import (
	"time"

	"weatherbot.app/models"
)

// UserRepositoryInterface defines the registry operations the services need
type UserRepositoryInterface interface {
	FindByID(id models.ChatID) (*models.UserProfile, error)
	LoadAll() ([]models.UserProfile, error)
	Save(profile *models.UserProfile) error
	Delete(id models.ChatID) error
}

// JobScheduler defines the trigger operations the subscriber service needs
type JobScheduler interface {
	Register(id models.ChatID, hour, minute int, timezone string) error
	Unregister(id models.ChatID)
	NextFire(id models.ChatID, from time.Time) (time.Time, bool)
}

// DeliveryServiceInterface hands a finished digest to the delivery collaborator
type DeliveryServiceInterface interface {
	Deliver(profile *models.UserProfile, digest models.ForecastDigest, alerts []string) error
}

// ForecastServiceInterface produces digests for on-demand city queries
type ForecastServiceInterface interface {
	GetDigestByCity(city string) (*CityDigest, error)
}

// SubscriberServiceInterface manages subscription lifecycle
type SubscriberServiceInterface interface {
	Subscribe(req *models.SubscriptionRequest) (*models.UserProfile, error)
	Unsubscribe(id models.ChatID) error
	Get(id models.ChatID) (*models.UserProfile, error)
}
