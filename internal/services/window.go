package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/wavelength/internal/models"
)

const (
	DefaultWindowLength  = 30 * 24 * time.Hour
	DominantWindowLength = 7 * 24 * time.Hour
)

// Window is an inclusive [Start, End] range of canonical UTC timestamps.
type Window struct {
	Start time.Time
	End   time.Time
}

// ResolveWindow applies the analytics defaults: end falls back to now and
// start to end minus thirty days.
func ResolveWindow(start *time.Time, end *time.Time, now time.Time) (Window, error) {
	resolvedEnd := models.CanonicalUTC(now)
	if end != nil {
		resolvedEnd = models.CanonicalUTC(*end)
	}

	resolvedStart := resolvedEnd.Add(-DefaultWindowLength)
	if start != nil {
		resolvedStart = models.CanonicalUTC(*start)
	}

	if resolvedStart.After(resolvedEnd) {
		return Window{}, ErrInvalidWindow
	}
	return Window{Start: resolvedStart, End: resolvedEnd}, nil
}

// DaysInPeriod counts calendar days touched by the window, both ends included.
func (window Window) DaysInPeriod() int {
	days := models.UTCDate(window.End).Sub(models.UTCDate(window.Start)) / (24 * time.Hour)
	return int(days) + 1
}

// Previous is the window of identical duration ending where this one starts.
func (window Window) Previous() Window {
	duration := window.End.Sub(window.Start)
	return Window{Start: window.Start.Add(-duration), End: window.Start}
}

// TrailingDominant is the fixed seven day slice ending at the window end.
func (window Window) TrailingDominant() Window {
	return Window{Start: window.End.Add(-DominantWindowLength), End: window.End}
}

func (window Window) Contains(value time.Time) bool {
	return !value.Before(window.Start) && !value.After(window.End)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
}

// ParseTimestamp accepts RFC 3339 values with or without an offset and bare
// YYYY-MM-DD dates. Values without an offset are read as UTC.
func ParseTimestamp(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty timestamp", ErrValidation)
	}

	if parsed, err := time.ParseInLocation("2006-01-02", value, time.UTC); err == nil {
		return parsed, nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return models.CanonicalUTC(parsed), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid timestamp %q", ErrValidation, raw)
}
