package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhoneDigits(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"formatted with parens", "(617) 555-0100", "6175550100"},
		{"dashed", "617-555-0100", "6175550100"},
		{"dotted", "617.555.0100", "6175550100"},
		{"with country code", "+1 617 555 0100", "16175550100"},
		{"already bare", "6175550100", "6175550100"},
		{"empty", "", ""},
		{"no digits", "ext.", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizePhoneDigits(tc.input))
		})
	}
}

func TestIsValidNPI(t *testing.T) {
	assert.True(t, IsValidNPI("1234567890"))
	assert.False(t, IsValidNPI("123456789"))
	assert.False(t, IsValidNPI("12345678901"))
	assert.False(t, IsValidNPI("123456789X"))
	assert.False(t, IsValidNPI(""))
}
