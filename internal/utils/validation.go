package utils

import (
	"errors"
	"regexp"
)

// Compiled regular expressions for validation
var (
	// Allow alphanumeric, underscore, hyphen, dot - common in vehicle IDs
	validIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

	// Detect potentially dangerous characters - focused on injection patterns
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/|;.*--`)
)

// ValidateID validates that an ID is safe and within reasonable limits
func ValidateID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}

	if len(id) > 100 {
		return errors.New("id too long (max 100 characters)")
	}

	if !validIDPattern.MatchString(id) {
		return errors.New("id contains invalid characters")
	}

	return nil
}

// ValidateStopName validates a free-form stop name supplied by a caller.
func ValidateStopName(name string) error {
	if name == "" {
		return errors.New("stop name cannot be empty")
	}

	if len(name) > 200 {
		return errors.New("stop name too long (max 200 characters)")
	}

	if dangerousPattern.MatchString(name) {
		return errors.New("stop name contains invalid characters")
	}

	return nil
}

// ValidateLatitude validates latitude values
func ValidateLatitude(lat float64) error {
	if lat < -90.0 || lat > 90.0 {
		return errors.New("latitude must be between -90 and 90")
	}
	return nil
}

// ValidateLongitude validates longitude values
func ValidateLongitude(lon float64) error {
	if lon < -180.0 || lon > 180.0 {
		return errors.New("longitude must be between -180 and 180")
	}
	return nil
}

// ValidateHour validates an hour-of-day parameter.
func ValidateHour(hour int) error {
	if hour < 0 || hour > 23 {
		return errors.New("hour must be between 0 and 23")
	}
	return nil
}
