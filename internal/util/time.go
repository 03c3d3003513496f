package util

import (
	"fmt"
	"time"
)

const (
	// DateFormat is the default date format for captions.
	DateFormat = "2006-01-02"

	// DateTimeFormat is used for calculation timestamps.
	DateTimeFormat = "2006-01-02 15:04:05"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the local wall-clock time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.T
}

// TomorrowCutoff returns the given hour on the day after now, in now's location.
func TomorrowCutoff(now time.Time, hour int) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, hour, 0, 0, 0, now.Location())
}

// CutoffCaption describes tomorrow's cutoff for the sales form.
func CutoffCaption(now time.Time, hour int, dateFormat string) string {
	if dateFormat == "" {
		dateFormat = DateFormat
	}
	cutoff := TomorrowCutoff(now, hour)
	return fmt.Sprintf("Cutoff set to %02d:00 tomorrow (%s).", hour, cutoff.Format(dateFormat))
}
