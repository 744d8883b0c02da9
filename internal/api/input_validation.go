package api

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

const dateInputLayout = "2006-01-02"

var errDateInputInvalid = errors.New("date input invalid")

func parseDateInput(raw string, location *time.Location) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, errDateInputInvalid
	}
	parsed, err := time.ParseInLocation(dateInputLayout, trimmed, location)
	if err != nil {
		return time.Time{}, errDateInputInvalid
	}
	return parsed, nil
}

func parseOptionalDateInput(raw *string, location *time.Location) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	parsed, err := parseDateInput(*raw, location)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseMonthInput(raw string, location *time.Location) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, errDateInputInvalid
	}
	parsed, err := time.ParseInLocation("2006-01", trimmed, location)
	if err != nil {
		return time.Time{}, errDateInputInvalid
	}
	return parsed, nil
}

func parseUintParam(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || value == 0 {
		return 0, errors.New("id param invalid")
	}
	return uint(value), nil
}

func parsePositiveQueryInt(raw string, fallback int, max int) int {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback
	}
	value, err := strconv.Atoi(trimmed)
	if err != nil || value <= 0 {
		return fallback
	}
	if max > 0 && value > max {
		return max
	}
	return value
}
