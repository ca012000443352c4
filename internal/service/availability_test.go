package service

import (
	"context"
	"testing"
	"time"

	apperrors "aviacao/internal/errors"

	"github.com/stretchr/testify/assert"
)

// Malformed codes must be rejected before any repository access, so the
// service is built with nil repositories: reaching storage would panic.
func TestListDeparturesRejectsMalformedCodes(t *testing.T) {
	svc := NewAvailabilityService(nil, nil, time.UTC)

	for _, code := range []string{"lis", "Lis", "LISB", "L1S", "12", ""} {
		_, err := svc.ListDepartures(context.Background(), code)

		assert.Error(t, err, "code %q", code)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err), "code %q", code)
	}
}

func TestNextAvailableRejectsMalformedCodes(t *testing.T) {
	svc := NewAvailabilityService(nil, nil, time.UTC)

	cases := [][2]string{
		{"lis", "OPO"},
		{"LIS", "opo"},
		{"LISB", "OPO"},
		{"LIS", "O1O"},
	}
	for _, pair := range cases {
		_, _, err := svc.NextAvailable(context.Background(), pair[0], pair[1])

		assert.Error(t, err, "%s/%s", pair[0], pair[1])
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err), "%s/%s", pair[0], pair[1])
	}
}

func TestNextAvailableRejectsSameAirport(t *testing.T) {
	svc := NewAvailabilityService(nil, nil, time.UTC)

	_, _, err := svc.NextAvailable(context.Background(), "LIS", "LIS")

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "cannot be the same")
}
