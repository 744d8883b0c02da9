package services

import "errors"

const (
	MinCycleLengthHint    = 15
	MaxCycleLengthHint    = 60
	MinPeriodDurationHint = 1
	MaxPeriodDurationHint = 14
)

var (
	ErrProfileCycleLengthOutOfRange    = errors.New("profile cycle length out of range")
	ErrProfilePeriodDurationOutOfRange = errors.New("profile period duration out of range")
)

func ValidateProfileInput(cycleLength *int, periodDuration *int) error {
	if cycleLength != nil && (*cycleLength < MinCycleLengthHint || *cycleLength > MaxCycleLengthHint) {
		return ErrProfileCycleLengthOutOfRange
	}
	if periodDuration != nil && (*periodDuration < MinPeriodDurationHint || *periodDuration > MaxPeriodDurationHint) {
		return ErrProfilePeriodDurationOutOfRange
	}
	return nil
}
