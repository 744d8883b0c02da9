package models

import "time"

const (
	DefaultCycleLength    = 28
	DefaultPeriodDuration = 5
)

// Cycle is one logged menstrual period. StartDate is stored at day
// granularity; EndDate and PeriodDuration are optional and fall back to
// the profile defaults when absent.
type Cycle struct {
	ID             uint       `gorm:"primaryKey"`
	UserID         uint       `gorm:"not null;index:idx_cycle_user_start"`
	StartDate      time.Time  `gorm:"type:date;not null;index:idx_cycle_user_start"`
	EndDate        *time.Time `gorm:"type:date"`
	PeriodDuration *int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ResolvedPeriodDuration returns the record's own duration when set,
// otherwise the given fallback (the profile hint or DefaultPeriodDuration).
func (cycle Cycle) ResolvedPeriodDuration(fallback int) int {
	if cycle.PeriodDuration != nil && *cycle.PeriodDuration > 0 {
		return *cycle.PeriodDuration
	}
	if fallback > 0 {
		return fallback
	}
	return DefaultPeriodDuration
}
