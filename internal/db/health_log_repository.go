package db

import (
	"errors"
	"time"

	"github.com/lance116/period-tracker/internal/models"
	"gorm.io/gorm"
)

type HealthLogRepository struct {
	database *gorm.DB
}

func NewHealthLogRepository(database *gorm.DB) *HealthLogRepository {
	return &HealthLogRepository{database: database}
}

func (repo *HealthLogRepository) ListRecentByUser(userID uint, limit int) ([]models.HealthLog, error) {
	if limit <= 0 {
		limit = 7
	}
	logs := make([]models.HealthLog, 0, limit)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("log_date DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *HealthLogRepository) FindByUserAndDate(userID uint, dayStart time.Time, dayEnd time.Time) (models.HealthLog, bool, error) {
	var entry models.HealthLog
	result := repo.database.
		Where("user_id = ? AND log_date >= ? AND log_date < ?", userID, dayStart, dayEnd).
		Order("log_date DESC, id DESC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.HealthLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.HealthLog{}, false, nil
	}
	return entry, true, nil
}

func (repo *HealthLogRepository) Create(entry *models.HealthLog) error {
	return repo.database.Create(entry).Error
}

func (repo *HealthLogRepository) Save(entry *models.HealthLog) error {
	return repo.database.Save(entry).Error
}

func (repo *HealthLogRepository) DeleteByUserAndDate(userID uint, dayStart time.Time, dayEnd time.Time) error {
	result := repo.database.
		Where("user_id = ? AND log_date >= ? AND log_date < ?", userID, dayStart, dayEnd).
		Delete(&models.HealthLog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
