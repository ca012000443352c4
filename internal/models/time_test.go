package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDepartureClosedBoundary(t *testing.T) {
	departure := time.Date(2025, 6, 17, 14, 0, 0, 0, time.UTC)

	// Exactly at departure the flight is closed, not open.
	assert.True(t, DepartureClosed(departure, departure))
	assert.True(t, DepartureClosed(departure.Add(time.Second), departure))
	assert.False(t, DepartureClosed(departure.Add(-time.Second), departure))
}

func TestDepartureClosedMixedZones(t *testing.T) {
	lisbon := time.FixedZone("WEST", 3600)
	departure := time.Date(2025, 6, 17, 15, 0, 0, 0, lisbon) // 14:00 UTC

	assert.False(t, DepartureClosed(time.Date(2025, 6, 17, 13, 59, 59, 0, time.UTC), departure))
	assert.True(t, DepartureClosed(time.Date(2025, 6, 17, 14, 0, 0, 0, time.UTC), departure))
}

func TestNormalizeUTCKeepsWallClockForLocal(t *testing.T) {
	naive := time.Date(2025, 6, 17, 14, 0, 0, 0, time.Local)
	got := NormalizeUTC(naive)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, 14, got.Hour())
}
