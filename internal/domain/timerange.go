package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseClock resolves an "HH:MM" wall-clock value on the calendar day of day.
// "24:00" is accepted as the end of that day and resolves to 23:59:59.
func ParseClock(raw string, day time.Time) (time.Time, error) {
	hourPart, minutePart, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok || !twoDigits(hourPart) || !twoDigits(minutePart) {
		return time.Time{}, fmt.Errorf("%w: %q is not HH:MM", ErrInvalidTimeRange, raw)
	}

	hour, _ := strconv.Atoi(hourPart)
	minute, _ := strconv.Atoi(minutePart)

	year, month, date := day.Date()
	switch {
	case hour == 24 && minute == 0:
		return time.Date(year, month, date, 23, 59, 59, 0, day.Location()), nil
	case hour > 23 || minute > 59:
		return time.Time{}, fmt.Errorf("%w: %q is out of range", ErrInvalidTimeRange, raw)
	}

	return time.Date(year, month, date, hour, minute, 0, 0, day.Location()), nil
}

// ParseTimeRange returns the whole-minute length between start and end on
// the day of day. The end must come after the start.
func ParseTimeRange(start, end string, day time.Time) (time.Duration, error) {
	from, err := ParseClock(start, day)
	if err != nil {
		return 0, err
	}
	to, err := ParseClock(end, day)
	if err != nil {
		return 0, err
	}

	if !to.After(from) {
		return 0, fmt.Errorf("%w: end %s must be after start %s", ErrInvalidTimeRange, end, start)
	}

	return to.Sub(from).Truncate(time.Minute), nil
}

func twoDigits(value string) bool {
	if len(value) != 2 {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
