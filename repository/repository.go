// Package repository implements data access layer for the application
package repository

import (
	"errors"
	"log"

	"gorm.io/gorm"
	"weatherbot.app/models"
)

// UserRepository handles data access operations for user profiles
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository for user profile data
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID retrieves a user profile by chat id
func (r *UserRepository) FindByID(id models.ChatID) (*models.UserProfile, error) {
	var profile models.UserProfile
	result := r.db.First(&profile, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("[ERROR] Database error when finding user profile: %v\n", result.Error)
		return nil, result.Error
	}

	return &profile, nil
}

// LoadAll retrieves every registered user profile
func (r *UserRepository) LoadAll() ([]models.UserProfile, error) {
	var profiles []models.UserProfile
	result := r.db.Find(&profiles)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when loading user profiles: %v\n", result.Error)
		return nil, result.Error
	}

	log.Printf("[DEBUG] Loaded %d user profiles\n", len(profiles))
	return profiles, nil
}

// Save creates the user profile or updates it when one already exists
func (r *UserRepository) Save(profile *models.UserProfile) error {
	log.Printf("[DEBUG] UserRepository.Save: %+v\n", profile)

	result := r.db.Save(profile)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when saving user profile: %v\n", result.Error)
		return result.Error
	}

	return nil
}

// Delete removes a user profile; deleting an unknown id is a no-op
func (r *UserRepository) Delete(id models.ChatID) error {
	result := r.db.Delete(&models.UserProfile{}, "id = ?", id)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when deleting user profile: %v\n", result.Error)
		return result.Error
	}

	return nil
}
