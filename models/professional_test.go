package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfessionalOffers(t *testing.T) {
	p := ProfessionalProfile{AvailableServices: JoinServices([]string{"Plumbing", " ac repair ", ""})}
	assert.Equal(t, "Plumbing, ac repair", p.AvailableServices)

	cases := []struct {
		name string
		want bool
	}{
		{"plumbing", true},
		{"AC Repair", true},
		{"  ac repair", true},
		{"pest control", false},
		{"repair", false},
		{"", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, p.Offers(c.name))
		})
	}

	assert.False(t, (&ProfessionalProfile{}).Offers("plumbing"))
}

func TestProfessionalEligible(t *testing.T) {
	assert.True(t, (&ProfessionalProfile{IsActive: true, IsApproved: true}).Eligible())
	assert.False(t, (&ProfessionalProfile{IsActive: true}).Eligible())
	assert.False(t, (&ProfessionalProfile{IsApproved: true}).Eligible())
}
