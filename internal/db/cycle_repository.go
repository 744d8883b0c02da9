package db

import (
	"errors"

	"github.com/lance116/period-tracker/internal/models"
	"gorm.io/gorm"
)

var ErrCycleNotFound = errors.New("cycle not found")

type CycleRepository struct {
	database *gorm.DB
}

func NewCycleRepository(database *gorm.DB) *CycleRepository {
	return &CycleRepository{database: database}
}

// ListByUser returns the user's cycle records most recent first, the order
// the analytics engine assumes.
func (repo *CycleRepository) ListByUser(userID uint) ([]models.Cycle, error) {
	cycles := make([]models.Cycle, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("start_date DESC, id DESC").
		Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

func (repo *CycleRepository) FindByIDForUser(cycleID uint, userID uint) (models.Cycle, error) {
	var cycle models.Cycle
	err := repo.database.Where("id = ? AND user_id = ?", cycleID, userID).First(&cycle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Cycle{}, ErrCycleNotFound
	}
	if err != nil {
		return models.Cycle{}, err
	}
	return cycle, nil
}

func (repo *CycleRepository) Create(cycle *models.Cycle) error {
	return repo.database.Create(cycle).Error
}

func (repo *CycleRepository) Save(cycle *models.Cycle) error {
	return repo.database.Save(cycle).Error
}

func (repo *CycleRepository) DeleteByIDForUser(cycleID uint, userID uint) error {
	result := repo.database.Where("id = ? AND user_id = ?", cycleID, userID).Delete(&models.Cycle{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCycleNotFound
	}
	return nil
}
