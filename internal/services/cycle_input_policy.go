package services

import (
	"errors"
	"time"
)

var (
	ErrCycleStartDateInFuture       = errors.New("cycle start date in the future")
	ErrCycleEndBeforeStart          = errors.New("cycle end date before start date")
	ErrCyclePeriodDurationNotPositive = errors.New("cycle period duration not positive")
)

// ValidateCycleInput enforces the store-side invariants for a cycle
// record: the start never lies after today, the end never precedes the
// start, and an explicit duration is positive.
func ValidateCycleInput(start time.Time, end *time.Time, periodDuration *int, today time.Time, location *time.Location) error {
	startDay := DateAtLocation(start, location)
	todayDay := DateAtLocation(today, location)
	if startDay.After(todayDay) {
		return ErrCycleStartDateInFuture
	}
	if end != nil {
		endDay := DateAtLocation(*end, location)
		if endDay.Before(startDay) {
			return ErrCycleEndBeforeStart
		}
	}
	if periodDuration != nil && *periodDuration <= 0 {
		return ErrCyclePeriodDurationNotPositive
	}
	return nil
}
