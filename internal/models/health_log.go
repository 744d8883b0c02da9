package models

import "time"

const (
	FlowNone   = "none"
	FlowLight  = "light"
	FlowMedium = "medium"
	FlowHeavy  = "heavy"
)

// HealthLog is one day of symptom/mood/flow notes. One row per user per day.
type HealthLog struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"not null;uniqueIndex:uidx_log_user_date"`
	LogDate    time.Time `gorm:"type:date;not null;uniqueIndex:uidx_log_user_date"`
	Flow       string    `gorm:"not null;default:none"`
	Mood       string
	PainLevel  *int
	SleepHours *float64
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func ValidFlow(flow string) bool {
	switch flow {
	case FlowNone, FlowLight, FlowMedium, FlowHeavy:
		return true
	}
	return false
}
