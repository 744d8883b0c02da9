package db

import (
	"github.com/lance116/period-tracker/internal/models"
	"gorm.io/gorm"
)

type ChatMessageRepository struct {
	database *gorm.DB
}

func NewChatMessageRepository(database *gorm.DB) *ChatMessageRepository {
	return &ChatMessageRepository{database: database}
}

func (repo *ChatMessageRepository) Create(message *models.ChatMessage) error {
	return repo.database.Create(message).Error
}

// ListRecentByUser returns the newest messages in chronological order.
func (repo *ChatMessageRepository) ListRecentByUser(userID uint, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	messages := make([]models.ChatMessage, 0, limit)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	for left, right := 0, len(messages)-1; left < right; left, right = left+1, right-1 {
		messages[left], messages[right] = messages[right], messages[left]
	}
	return messages, nil
}

func (repo *ChatMessageRepository) DeleteByUser(userID uint) error {
	return repo.database.Where("user_id = ?", userID).Delete(&models.ChatMessage{}).Error
}
