package models

import "time"

// NormalizeUTC anchors a timestamp read from a zone-less TIMESTAMP
// column to UTC, so cutoff comparisons are done between aware instants
// regardless of the driver's parsing location.
func NormalizeUTC(t time.Time) time.Time {
	if t.Location() == time.Local {
		// Zone-less value the driver pinned to the process zone: keep
		// the wall-clock reading, assume it was UTC all along.
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	}
	return t.UTC()
}

// DepartureClosed is the single cutoff predicate shared by purchase and
// check-in: a flight whose departure equals the canonical now is already
// closed (>= comparison, boundary treated as departed).
func DepartureClosed(now, departure time.Time) bool {
	return !NormalizeUTC(now).Before(NormalizeUTC(departure))
}
