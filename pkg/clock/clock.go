// Package clock handles the 12-hour wall-clock time-of-day format used on the
// wire for schedule rules, breaks and booking slots ("9:30 AM", "02:30 PM").
// Times are represented internally as minutes since midnight so that slot
// arithmetic stays integer-only and timezone-free until a concrete date is
// attached.
package clock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the exclusive upper bound for a time of day.
const MinutesPerDay = 24 * 60

var ErrInvalidTimeOfDay = errors.New("invalid time of day, expected H:MM AM/PM")

// Parse parses a 12-hour time string into minutes since midnight. The accepted
// grammar is (0?[1-9]|1[0-2]):[0-5][0-9] ?(AM|PM), case-insensitive. It is
// implemented by hand rather than with regexp so the error cases stay explicit.
func Parse(s string) (int, error) {
	rest := strings.TrimSpace(s)

	colon := strings.IndexByte(rest, ':')
	if colon < 1 || colon > 2 {
		return 0, ErrInvalidTimeOfDay
	}

	hourStr := rest[:colon]
	rest = rest[colon+1:]
	if len(rest) < 4 || len(rest) > 5 {
		return 0, ErrInvalidTimeOfDay
	}

	minuteStr := rest[:2]
	meridiem := strings.ToUpper(strings.TrimLeft(rest[2:], " "))
	if meridiem != "AM" && meridiem != "PM" {
		return 0, ErrInvalidTimeOfDay
	}
	// At most one space between minutes and meridiem.
	if len(rest) == 5 && rest[2] != ' ' {
		return 0, ErrInvalidTimeOfDay
	}

	for i := 0; i < len(hourStr); i++ {
		if hourStr[i] < '0' || hourStr[i] > '9' {
			return 0, ErrInvalidTimeOfDay
		}
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 1 || hour > 12 {
		return 0, ErrInvalidTimeOfDay
	}

	if minuteStr[0] < '0' || minuteStr[0] > '5' || minuteStr[1] < '0' || minuteStr[1] > '9' {
		return 0, ErrInvalidTimeOfDay
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil {
		return 0, ErrInvalidTimeOfDay
	}

	if hour == 12 {
		hour = 0
	}
	if meridiem == "PM" {
		hour += 12
	}

	return hour*60 + minute, nil
}

// Format renders minutes since midnight in normalized form: unpadded hour,
// two-digit minutes, single space, upper-case meridiem ("9:00 AM", "12:30 PM").
func Format(minutes int) string {
	minutes %= MinutesPerDay
	if minutes < 0 {
		minutes += MinutesPerDay
	}

	hour := minutes / 60
	minute := minutes % 60

	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}

	return fmt.Sprintf("%d:%02d %s", hour, minute, meridiem)
}

// Normalize parses and re-formats a 12-hour time string, fixing casing,
// zero-padding and spacing.
func Normalize(s string) (string, error) {
	minutes, err := Parse(s)
	if err != nil {
		return "", err
	}
	return Format(minutes), nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Minute resolution, no hour truncation.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// At anchors a time of day to a calendar date in the given location.
func At(date time.Time, minutes int, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, minutes, 0, 0, loc)
}
