package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArea(t *testing.T) {
	cases := map[string]Area{
		"PPC Balboa":       AreaPPCBalboa,
		"ppc  balboa":      AreaPPCBalboa,
		"Colon":            AreaColon,
		"chiriqui":         AreaChiriqui,
		" Bocas del Toro ": AreaBocasDelToro,
	}
	for in, want := range cases {
		got, ok := ParseArea(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseArea("PPC Valboa")
	assert.False(t, ok)
	_, ok = ParseArea("")
	assert.False(t, ok)
}
