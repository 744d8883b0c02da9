package db

import (
	"errors"

	"github.com/lance116/period-tracker/internal/models"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	database *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{database: database}
}

// FindByUser returns the user's profile, creating an empty one on first
// access so every authenticated user always has a row to update.
func (repo *ProfileRepository) FindByUser(userID uint) (models.Profile, error) {
	var profile models.Profile
	err := repo.database.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{UserID: userID}
		if createErr := repo.database.Create(&profile).Error; createErr != nil {
			return models.Profile{}, createErr
		}
		return profile, nil
	}
	if err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

func (repo *ProfileRepository) UpdateForUser(userID uint, updates map[string]any) error {
	return repo.database.Model(&models.Profile{}).Where("user_id = ?", userID).Updates(updates).Error
}
