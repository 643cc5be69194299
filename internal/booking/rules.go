package booking

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ClockMinutes converts an "HH:MM" wall-clock value to minutes since midnight.
func ClockMinutes(clock string) (int, error) {
	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Overlap reports whether two half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share any point. Touching endpoints do not count.
func Overlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// Instant combines a civil date and clock value into the absolute instant
// they denote at UTC+offsetHours. The shift is plain arithmetic on UTC so
// the host timezone database never participates.
func Instant(date, clock string, offsetHours int) (time.Time, error) {
	wall, err := time.Parse(DateLayout+" "+ClockLayout, date+" "+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q: %w", date, clock, err)
	}
	return wall.Add(-time.Duration(offsetHours) * time.Hour), nil
}

// IsExpired reports whether a booking ending at date+endClock (fixed offset)
// has been over for longer than the grace window at the given instant.
// Unparseable values are never expired.
func IsExpired(date, endClock string, offsetHours int, grace time.Duration, now time.Time) bool {
	end, err := Instant(date, endClock, offsetHours)
	if err != nil {
		return false
	}
	return now.Sub(end) > grace
}

// IsFuture reports whether date+startClock (fixed offset) is strictly after
// the given instant.
func IsFuture(date, startClock string, offsetHours int, now time.Time) (bool, error) {
	start, err := Instant(date, startClock, offsetHours)
	if err != nil {
		return false, err
	}
	return start.After(now), nil
}
