package models

import (
	"fmt"
	"regexp"
	"strconv"
)

var seatLabelRe = regexp.MustCompile(`^([0-9]{1,2})([A-Z])$`)

// ParseSeatLabel splits a seat label like "12A" into its numeric row
// and cabin letter
func ParseSeatLabel(lugar string) (row int, letter string, err error) {
	m := seatLabelRe.FindStringSubmatch(lugar)
	if m == nil {
		return 0, "", fmt.Errorf("invalid seat label %q", lugar)
	}
	row, _ = strconv.Atoi(m[1])
	return row, m[2], nil
}

// SeatLabelLess orders seat labels the way check-in picks them: numeric
// row ascending, then cabin letter ascending. Malformed labels sort
// last so they are never picked ahead of valid ones.
func SeatLabelLess(a, b string) bool {
	ra, la, errA := ParseSeatLabel(a)
	rb, lb, errB := ParseSeatLabel(b)
	if errA != nil || errB != nil {
		return errA == nil
	}
	if ra != rb {
		return ra < rb
	}
	return la < lb
}
