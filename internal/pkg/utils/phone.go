package utils

import "strings"

// NormalizePhoneDigits strips everything but digits so that formatting
// variants like "(617) 555-0100" and "617-555-0100" compare as equal.
func NormalizePhoneDigits(input string) string {
	var b strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
