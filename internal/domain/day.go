package domain

import "time"

// dayKeyLayout is the canonical serialization of a calendar day.
// Keys in this form compare chronologically as plain strings.
const dayKeyLayout = "2006-01-02"

// DayKey identifies one calendar day in the device's local timezone,
// serialized as zero-padded YYYY-MM-DD. The empty string means "absent".
type DayKey string

// Today returns the day key for the current local calendar day.
func Today() DayKey {
	return DayKeyOf(time.Now())
}

// DayKeyOf returns the day key for the local calendar day containing t.
func DayKeyOf(t time.Time) DayKey {
	return DayKey(t.Local().Format(dayKeyLayout))
}

// ParseDayKey validates and parses a serialized day key.
func ParseDayKey(s string) (DayKey, error) {
	t, err := time.ParseInLocation(dayKeyLayout, s, time.Local)
	if err != nil {
		return "", err
	}
	return DayKeyOf(t), nil
}

// IsZero reports whether the key is absent.
func (k DayKey) IsZero() bool {
	return k == ""
}

// Time returns midnight of the key's day in local time. Zero time for an
// absent or malformed key.
func (k DayKey) Time() time.Time {
	t, err := time.ParseInLocation(dayKeyLayout, string(k), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// DaysBetween returns the whole number of calendar days from a to b
// (b - a), computed at midnight granularity rather than wall-clock
// elapsed time. Negative when b precedes a. The subtraction happens on
// UTC midnights so DST transitions cannot shave a day short.
func DaysBetween(a, b DayKey) int {
	from := a.Time()
	to := b.Time()
	fromUTC := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toUTC := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toUTC.Sub(fromUTC).Hours() / 24)
}
