package models

import "time"

type ChatMessage struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	Content   string    `gorm:"not null"`
	IsUser    bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
}
