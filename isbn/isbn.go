// Package isbn classifies raw provider ISBN strings.
package isbn

import "strings"

// Classify splits a raw whitespace-delimited ISBN string into its ISBN-10
// and ISBN-13 parts. A token of exactly 10 digits counts as ISBN-10, one of
// exactly 13 digits as ISBN-13; anything else is dropped without error
// because provider data is not validated upstream. Only the first two
// tokens are considered, and when both land in the same class the later one
// wins. Malformed input yields two empty strings.
func Classify(raw string) (isbn10, isbn13 string) {
	parts := strings.Fields(raw)
	if len(parts) > 2 {
		parts = parts[:2]
	}
	for _, part := range parts {
		switch {
		case len(part) == 10 && isDigits(part):
			isbn10 = part
		case len(part) == 13 && isDigits(part):
			isbn13 = part
		}
	}
	return isbn10, isbn13
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
