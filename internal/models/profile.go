package models

import "time"

// Profile holds per-user cycle defaults. The hint fields are optional;
// IsRegular is informational only and never feeds the prediction math.
type Profile struct {
	ID                    uint `gorm:"primaryKey"`
	UserID                uint `gorm:"not null;uniqueIndex"`
	AverageCycleLength    *int
	AveragePeriodDuration *int
	IsRegular             bool `gorm:"not null;default:false"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (profile *Profile) CycleLengthHint() int {
	if profile != nil && profile.AverageCycleLength != nil && *profile.AverageCycleLength > 0 {
		return *profile.AverageCycleLength
	}
	return DefaultCycleLength
}

func (profile *Profile) PeriodDurationHint() int {
	if profile != nil && profile.AveragePeriodDuration != nil && *profile.AveragePeriodDuration > 0 {
		return *profile.AveragePeriodDuration
	}
	return DefaultPeriodDuration
}
