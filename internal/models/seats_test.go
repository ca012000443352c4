package models

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSeatLabel(t *testing.T) {
	row, letter, err := ParseSeatLabel("12A")
	assert.NoError(t, err)
	assert.Equal(t, 12, row)
	assert.Equal(t, "A", letter)

	row, letter, err = ParseSeatLabel("1F")
	assert.NoError(t, err)
	assert.Equal(t, 1, row)
	assert.Equal(t, "F", letter)

	for _, bad := range []string{"", "A1", "123A", "12a", "12"} {
		_, _, err := ParseSeatLabel(bad)
		assert.Error(t, err, "label %q should be rejected", bad)
	}
}

func TestSeatLabelOrdering(t *testing.T) {
	labels := []string{"10A", "2C", "2B", "1A", "10B", "1F"}
	sort.Slice(labels, func(i, j int) bool { return SeatLabelLess(labels[i], labels[j]) })

	// Numeric row first, then letter: 2 before 10 despite "10" < "2"
	// lexicographically.
	assert.Equal(t, []string{"1A", "1F", "2B", "2C", "10A", "10B"}, labels)
}
