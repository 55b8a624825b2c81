package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock is a minute-of-day timestamp (minutes since midnight). Schedules
// operate on a single shift, so no date component is carried.
type Clock int

// NewClock builds a Clock from an hour and minute pair.
func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock parses a "HH:MM" string into a Clock.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock %q: want HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid clock %q: out of range", s)
	}
	return NewClock(hour, minute), nil
}

// ClampClock converts raw minutes into a Clock with the hour component capped
// at 23. A span that would cross midnight is truncated, not rejected.
func ClampClock(minutes int) Clock {
	hour := minutes / 60
	if hour > 23 {
		hour = 23
	}
	return NewClock(hour, minutes%60)
}

// Hour returns the hour component.
func (c Clock) Hour() int { return int(c) / 60 }

// Minute returns the minute component.
func (c Clock) Minute() int { return int(c) % 60 }

// Minutes returns the raw minutes since midnight.
func (c Clock) Minutes() int { return int(c) }

// String formats the clock as "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}
