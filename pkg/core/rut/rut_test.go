package rut

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"dotted with hyphen", "11.111.111-1", true},
		{"plain", "222222222", true},
		{"check digit zero", "76.123.456-0", true},
		{"check digit K upper", "10.000.013-K", true},
		{"check digit K lower", "10000013-k", true},
		{"single digit body", "7-8", true},
		{"surrounding spaces", "  18.371.911-4 ", true},
		{"wrong check digit", "11.111.111-2", false},
		{"wrong K", "12.345.678-K", false},
		{"letters in body", "1A.111.111-1", false},
		{"too short", "1", false},
		{"empty", "", false},
		{"only separators", "..-", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.in))
		})
	}
}

func TestCheckDigit(t *testing.T) {
	assert.Equal(t, byte('5'), CheckDigit("12345678"))
	assert.Equal(t, byte('K'), CheckDigit("1000005"))
	assert.Equal(t, byte('0'), CheckDigit("1000013"))
	assert.Equal(t, byte('9'), CheckDigit("1"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "10000013K", Normalize(" 10.000.013-k "))
	assert.Equal(t, "111111111", Normalize("11.111.111-1"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "11.111.111-1", Format("111111111"))
	assert.Equal(t, "1.000.005-K", Format("1000005k"))
	assert.Equal(t, "7-8", Format("78"))
	assert.Equal(t, "123.456-0", Format("123.456-0"))
	assert.Equal(t, "abc", Format(" abc "))
}
