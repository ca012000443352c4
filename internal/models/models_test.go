package models

import (
	"testing"

	apperrors "aviacao/internal/errors"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestPurchaseRequestValidate(t *testing.T) {
	valid := PurchaseRequest{
		NIFCliente: "123456789",
		BilhetesAComprar: []PurchaseTicketRequest{
			{NomePassageiro: "Ana Silva", PrimClasse: boolPtr(false)},
		},
	}
	assert.NoError(t, valid.Validate())
}

func TestPurchaseRequestValidateNIF(t *testing.T) {
	cases := []string{"", "12345678", "1234567890", "12345678a", "abcdefghi", " 23456789"}
	for _, nif := range cases {
		req := PurchaseRequest{
			NIFCliente: nif,
			BilhetesAComprar: []PurchaseTicketRequest{
				{NomePassageiro: "Ana Silva", PrimClasse: boolPtr(false)},
			},
		}
		err := req.Validate()
		assert.Error(t, err, "nif %q should be rejected", nif)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	}
}

func TestPurchaseRequestValidateTickets(t *testing.T) {
	empty := PurchaseRequest{NIFCliente: "123456789"}
	assert.Error(t, empty.Validate())

	blankName := PurchaseRequest{
		NIFCliente: "123456789",
		BilhetesAComprar: []PurchaseTicketRequest{
			{NomePassageiro: "   ", PrimClasse: boolPtr(true)},
		},
	}
	assert.Error(t, blankName.Validate())

	missingClass := PurchaseRequest{
		NIFCliente: "123456789",
		BilhetesAComprar: []PurchaseTicketRequest{
			{NomePassageiro: "Ana Silva"},
		},
	}
	assert.Error(t, missingClass.Validate())
}

func TestValidAirportCode(t *testing.T) {
	assert.True(t, ValidAirportCode("LIS"))
	assert.True(t, ValidAirportCode("CDG"))
	assert.False(t, ValidAirportCode("lis"))
	assert.False(t, ValidAirportCode("LISB"))
	assert.False(t, ValidAirportCode("LI"))
	assert.False(t, ValidAirportCode("L1S"))
	assert.False(t, ValidAirportCode(""))
}

func TestTicketPrice(t *testing.T) {
	assert.Equal(t, 500.00, TicketPrice(true))
	assert.Equal(t, 150.00, TicketPrice(false))
}

func TestClassLabel(t *testing.T) {
	assert.Equal(t, "Primeira", ClassLabel(true))
	assert.Equal(t, "Económica", ClassLabel(false))
}
