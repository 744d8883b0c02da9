package services

import "time"

// DateAtLocation truncates a timestamp to midnight in the given location.
// All cycle math runs on these normalized dates so partial days and DST
// shifts never produce off-by-one differences.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DaysBetween returns the whole-day difference between two normalized
// dates. Rounding absorbs the 23h/25h days that DST transitions create.
func DaysBetween(from time.Time, to time.Time) int {
	hours := to.Sub(from).Hours()
	if hours >= 0 {
		return int(hours/24 + 0.5)
	}
	return -int(-hours/24 + 0.5)
}

func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}
