// Package rut validates and formats Chilean tax identifiers (RUT).
package rut

import (
	"strings"
)

// Normalize strips periods and hyphens, trims and uppercases a RUT
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, "-", "")
	return strings.ToUpper(s)
}

// Split returns the numeric body and check character of a RUT.
// ok is false when the value is too short or the body is not all digits.
func Split(s string) (body string, check byte, ok bool) {
	clean := Normalize(s)
	if len(clean) < 2 {
		return "", 0, false
	}
	body = clean[:len(clean)-1]
	check = clean[len(clean)-1]
	for i := 0; i < len(body); i++ {
		if body[i] < '0' || body[i] > '9' {
			return "", 0, false
		}
	}
	return body, check, true
}

// CheckDigit computes the modulo-11 check character for a digit string.
// Multipliers cycle 2..7 from the rightmost digit; 11 maps to '0' and 10 to 'K'.
func CheckDigit(body string) byte {
	sum := 0
	mult := 2
	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * mult
		mult++
		if mult > 7 {
			mult = 2
		}
	}
	switch r := 11 - sum%11; r {
	case 11:
		return '0'
	case 10:
		return 'K'
	default:
		return byte('0' + r)
	}
}

// IsValid reports whether s is a well-formed RUT with a correct check character
func IsValid(s string) bool {
	body, check, ok := Split(s)
	if !ok {
		return false
	}
	return CheckDigit(body) == check
}

// Format renders a RUT as 12.345.678-5. Values that cannot be split are returned trimmed.
func Format(s string) string {
	body, check, ok := Split(s)
	if !ok {
		return strings.TrimSpace(s)
	}
	body = strings.TrimLeft(body, "0")
	if body == "" {
		body = "0"
	}

	var b strings.Builder
	lead := len(body) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(body[:lead])
	for i := lead; i < len(body); i += 3 {
		b.WriteByte('.')
		b.WriteString(body[i : i+3])
	}
	b.WriteByte('-')
	b.WriteByte(check)
	return b.String()
}
