package models

import "time"

// CanonicalUTC is the single timestamp normalization applied at every write
// and every comparison boundary. Values are converted to UTC and truncated to
// microseconds so stored and queried timestamps compare consistently.
func CanonicalUTC(value time.Time) time.Time {
	return value.UTC().Truncate(time.Microsecond)
}

// UTCDate returns midnight UTC of the calendar day value falls on once
// canonicalized.
func UTCDate(value time.Time) time.Time {
	year, month, day := value.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
