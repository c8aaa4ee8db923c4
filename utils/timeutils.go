package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeToMinutes parses a wall-clock string ("HH:MM" or "HH:MM:SS", seconds
// ignored) into minutes from midnight. Malformed input is a caller contract
// violation and is reported, not repaired.
func TimeToMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	return hours*60 + minutes, nil
}

// MinutesToTime formats minutes from midnight as zero-padded "HH:MM".
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
